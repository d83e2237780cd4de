package model

import "strings"

// BlockType classifies a block by the number of tours it chains.
type BlockType string

const (
	BlockSingle BlockType = "single"
	BlockDouble BlockType = "double"
	BlockTriple BlockType = "triple"
)

// Block is a contiguous set of 1-3 tours driven by one driver on one day.
// Blocks are generated once per solve and immutable afterwards.
type Block struct {
	Day   int
	Tours []TourInstance

	// HasMultiTourAlternative marks blocks whose tours could all be packed
	// into some denser 2- or 3-tour block instead. It drives a shaping
	// penalty against forcing such tours into singles.
	HasMultiTourAlternative bool
}

// Type returns the block classification.
func (b *Block) Type() BlockType {
	switch len(b.Tours) {
	case 1:
		return BlockSingle
	case 2:
		return BlockDouble
	default:
		return BlockTriple
	}
}

// StartAbs returns the absolute minute-of-week at which the block begins.
func (b *Block) StartAbs() int { return b.Tours[0].StartAbs() }

// EndAbs returns the absolute minute-of-week at which the block ends.
func (b *Block) EndAbs() int { return b.Tours[len(b.Tours)-1].EndAbs() }

// Span returns the elapsed minutes from first start to last end.
func (b *Block) Span() int { return b.EndAbs() - b.StartAbs() }

// Work returns the total driving minutes inside the block.
func (b *Block) Work() int {
	sum := 0
	for _, t := range b.Tours {
		sum += t.WorkMinutes()
	}
	return sum
}

// LongestGap returns the longest pause between consecutive tours.
func (b *Block) LongestGap() int {
	gap := 0
	for i := 1; i < len(b.Tours); i++ {
		g := b.Tours[i].StartAbs() - b.Tours[i-1].EndAbs()
		if g > gap {
			gap = g
		}
	}
	return gap
}

// IsSplit reports whether the block qualifies as a split shift under the
// given minimum break length.
func (b *Block) IsSplit(splitBreak int) bool {
	return len(b.Tours) > 1 && b.LongestGap() >= splitBreak
}

// TourIDs returns the ids of the block's tours in driving order.
func (b *Block) TourIDs() []string {
	ids := make([]string, len(b.Tours))
	for i, t := range b.Tours {
		ids[i] = t.ID
	}
	return ids
}

// Key is the canonical identity of a block: its tour ids in driving order.
func (b *Block) Key() string {
	return strings.Join(b.TourIDs(), "+")
}
