package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumenlabs/webmart/internal/domain"
)

func TestNewSpecEditorHasOneBlankRow(t *testing.T) {
	e := NewSpecEditor()
	assert.Equal(t, []SpecRow{{}}, e.Rows())
}

func TestEditorForPrefillsRows(t *testing.T) {
	e := EditorFor(domain.SpecList{
		{Key: "Material", Value: "Oak"},
		{Key: "Width", Value: "70cm"},
	})
	assert.Equal(t, []SpecRow{
		{Key: "Material", Value: "Oak"},
		{Key: "Width", Value: "70cm"},
	}, e.Rows())

	// no specs still shows one blank row
	assert.Equal(t, []SpecRow{{}}, EditorFor(nil).Rows())
}

func TestRemoveRowKeepsAtLeastOne(t *testing.T) {
	e := NewSpecEditor()
	e.AddRow("Material", "Oak")
	assert.Len(t, e.Rows(), 2)

	e.RemoveRow(0)
	assert.Equal(t, []SpecRow{{Key: "Material", Value: "Oak"}}, e.Rows())

	// removing the last remaining row clears it instead
	e.RemoveRow(0)
	assert.Equal(t, []SpecRow{{}}, e.Rows())

	// out-of-range indexes are ignored
	e.RemoveRow(5)
	e.RemoveRow(-1)
	assert.Len(t, e.Rows(), 1)
}

func TestCollectSkipsIncompleteRows(t *testing.T) {
	e := NewSpecEditor()
	e.RemoveRow(0) // still one blank row
	e.AddRow("Material", "Oak")
	e.AddRow("MissingValue", "")
	e.AddRow("", "MissingKey")
	e.AddRow("Width", "70cm")

	assert.Equal(t, domain.SpecList{
		{Key: "Material", Value: "Oak"},
		{Key: "Width", Value: "70cm"},
	}, e.Collect())
}

func TestCollectSpecsUnevenArrays(t *testing.T) {
	specs := CollectSpecs([]string{"A", "B", "C"}, []string{"1", "2"})
	assert.Equal(t, domain.SpecList{
		{Key: "A", Value: "1"},
		{Key: "B", Value: "2"},
	}, specs)
}
