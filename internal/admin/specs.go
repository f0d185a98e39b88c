package admin

import (
	"strings"

	"github.com/lumenlabs/webmart/internal/domain"
)

// SpecRow is one editable key/value row of the product form.
type SpecRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SpecEditor models the repeatable spec-row list of the product form.
// The form always shows at least one row: removing the last remaining
// row clears its values instead of removing it.
type SpecEditor struct {
	rows []SpecRow
}

// NewSpecEditor returns an editor with a single blank row, as shown
// when creating a new product.
func NewSpecEditor() *SpecEditor {
	return &SpecEditor{rows: []SpecRow{{}}}
}

// EditorFor returns an editor pre-filled with one row per existing
// spec entry, or a single blank row when the product has none.
func EditorFor(specs domain.SpecList) *SpecEditor {
	if len(specs) == 0 {
		return NewSpecEditor()
	}
	rows := make([]SpecRow, 0, len(specs))
	for _, e := range specs {
		rows = append(rows, SpecRow{Key: e.Key, Value: e.Value})
	}
	return &SpecEditor{rows: rows}
}

func (e *SpecEditor) AddRow(key, value string) {
	e.rows = append(e.rows, SpecRow{Key: key, Value: value})
}

// RemoveRow deletes the row at index i. The last remaining row is
// cleared rather than removed.
func (e *SpecEditor) RemoveRow(i int) {
	if i < 0 || i >= len(e.rows) {
		return
	}
	if len(e.rows) == 1 {
		e.rows[0] = SpecRow{}
		return
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
}

func (e *SpecEditor) Rows() []SpecRow {
	return append([]SpecRow(nil), e.rows...)
}

// Collect gathers the submitted rows into a spec list, skipping any
// row that is missing either the key or the value.
func (e *SpecEditor) Collect() domain.SpecList {
	return CollectSpecs(keysOf(e.rows), valuesOf(e.rows))
}

func keysOf(rows []SpecRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}

func valuesOf(rows []SpecRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Value
	}
	return out
}

// CollectSpecs pairs up submitted key/value arrays, skipping positions
// where either side is blank.
func CollectSpecs(keys, values []string) domain.SpecList {
	specs := domain.SpecList{}
	for i, k := range keys {
		if i >= len(values) {
			break
		}
		if strings.TrimSpace(k) == "" || strings.TrimSpace(values[i]) == "" {
			continue
		}
		specs = append(specs, domain.SpecEntry{Key: k, Value: values[i]})
	}
	return specs
}
