// Package export serializes solve results for downstream consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/DRNaser/shift-optimizer-sub007/core/model"
	"github.com/DRNaser/shift-optimizer-sub007/core/solve"
)

// WriteJSON writes the full solve result to w, indented for readability.
func WriteJSON(w io.Writer, res *solve.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes one row per driver assignment with its covered tours.
func WriteCSV(w io.Writer, assignments []model.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"driver_id", "driver_type", "work_minutes", "tours"}); err != nil {
		return err
	}
	for _, a := range assignments {
		rec := []string{
			a.DriverID,
			string(a.DriverType),
			strconv.Itoa(a.WorkMin),
			strings.Join(a.Covered, "+"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
