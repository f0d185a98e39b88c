package catalog

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// StarRating is the 5-glyph breakdown of a product rating: full stars
// for the integer part, one half glyph when a fractional remainder
// exists, empty glyphs for the rest. Full+Half+Empty is always 5.
type StarRating struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

// Stars derives the glyph breakdown. A rating that does not parse as a
// number renders as zero stars; values are clamped to [0, 5].
func Stars(rating interface{}) StarRating {
	r := cast.ToFloat64(rating)
	if math.IsNaN(r) || r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	full := int(math.Floor(r))
	half := 0
	if r != math.Floor(r) {
		half = 1
	}
	return StarRating{Full: full, Half: half, Empty: 5 - full - half}
}

// Glyphs renders the breakdown as the legacy glyph sequence.
func (s StarRating) Glyphs() string {
	var b strings.Builder
	for i := 0; i < s.Full; i++ {
		b.WriteRune('★')
	}
	for i := 0; i < s.Half+s.Empty; i++ {
		b.WriteRune('☆')
	}
	return b.String()
}
