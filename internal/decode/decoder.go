package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"drivemap/internal/models"
)

// Decoder projects raw delimited rows onto the canonical measurement schema.
// Bindings are resolved once from the header; a row decodes the same way
// every time.
type Decoder struct {
	bindings []binding
}

type binding struct {
	str func(*models.Measurement) **string
	num func(*models.Measurement) **float64
}

// NewDecoder resolves each header column against the name mapping. Columns
// without a mapping entry get a nil binding and are skipped during decode.
// The export may carry the same header more than once; the mapping names the
// Nth repeat with a ".N" suffix, so repeats are looked up under that name
// instead of rebinding the first occurrence's field.
func NewDecoder(header []string) *Decoder {
	bindings := make([]binding, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		lookup := name
		if n := seen[name]; n > 0 {
			lookup = fmt.Sprintf("%s.%d", name, n)
		}
		seen[name]++

		if set, ok := stringColumns[lookup]; ok {
			bindings[i].str = set
			continue
		}
		if set, ok := floatColumns[lookup]; ok {
			bindings[i].num = set
		}
	}
	return &Decoder{bindings: bindings}
}

// Decode turns one raw row into a measurement without an id. Blank cells,
// unparsable numbers and non-finite values all become nil so consumers can
// tell "missing" from zero. Rows shorter than the header are allowed; the
// missing tail decodes as nil.
func (d *Decoder) Decode(row []string) *models.Measurement {
	m := &models.Measurement{}
	for i, cell := range row {
		if i >= len(d.bindings) {
			break
		}
		b := d.bindings[i]
		switch {
		case b.str != nil:
			if v := strings.TrimSpace(cell); v != "" {
				*b.str(m) = &v
			}
		case b.num != nil:
			if v, ok := parseFinite(cell); ok {
				*b.num(m) = &v
			}
		}
	}
	return m
}

func parseFinite(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
