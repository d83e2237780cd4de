package model

import "testing"

func TestTourAbsTimeline(t *testing.T) {
	tour := TourInstance{ID: "t1", Day: 2, Start: 600, End: 900}
	if tour.StartAbs() != 2*MinutesPerDay+600 {
		t.Fatalf("start abs %d", tour.StartAbs())
	}
	if tour.EndAbs() != 2*MinutesPerDay+900 {
		t.Fatalf("end abs %d", tour.EndAbs())
	}
	if tour.WorkMinutes() != 300 {
		t.Fatalf("work %d", tour.WorkMinutes())
	}
}

func TestTourCrossMidnightEndsNextDay(t *testing.T) {
	tour := TourInstance{ID: "n1", Day: 0, Start: 1320, End: 360, CrossesMidnight: true}
	if tour.EndAbs() != MinutesPerDay+360 {
		t.Fatalf("expected end on day 1, got %d", tour.EndAbs())
	}
	if tour.WorkMinutes() != 480 {
		t.Fatalf("work %d", tour.WorkMinutes())
	}
	next := TourInstance{ID: "m1", Day: 1, Start: 480, End: 960}
	if tour.Overlaps(next) {
		t.Fatalf("tours should not overlap")
	}
	early := TourInstance{ID: "m2", Day: 1, Start: 300, End: 600}
	if !tour.Overlaps(early) {
		t.Fatalf("night tour runs until 06:00, expected overlap")
	}
}

func TestTourDurationWins(t *testing.T) {
	tour := TourInstance{ID: "t1", Day: 0, Start: 0, End: 600, Duration: 480}
	if tour.WorkMinutes() != 480 {
		t.Fatalf("duration field should win, got %d", tour.WorkMinutes())
	}
}

func TestSortToursOrder(t *testing.T) {
	tours := []TourInstance{
		{ID: "b", Day: 1, Start: 100},
		{ID: "a", Day: 0, Start: 200},
		{ID: "c", Day: 0, Start: 100},
		{ID: "a2", Day: 0, Start: 100},
	}
	SortTours(tours)
	want := []string{"a2", "c", "a", "b"}
	for i, id := range want {
		if tours[i].ID != id {
			t.Fatalf("pos %d: expected %s got %s", i, id, tours[i].ID)
		}
	}
}
