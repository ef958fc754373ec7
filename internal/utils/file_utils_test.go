package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredientsCSV(t *testing.T) {
	data := []byte("абрикосовое варенье,г\nSalt, g\n\"flour, wheat\",kg\n")

	records, err := ParseIngredientsCSV(data)
	require.NoError(t, err)
	assert.Equal(t, []IngredientRecord{
		{Name: "абрикосовое варенье", MeasurementUnit: "г"},
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "flour, wheat", MeasurementUnit: "kg"},
	}, records)
}

func TestParseIngredientsCSVSkipsHeader(t *testing.T) {
	records, err := ParseIngredientsCSV([]byte("name,measurement_unit\nSugar,kg\n"))
	require.NoError(t, err)
	assert.Equal(t, []IngredientRecord{{Name: "Sugar", MeasurementUnit: "kg"}}, records)
}

func TestParseIngredientsCSVRejectsMissingUnit(t *testing.T) {
	_, err := ParseIngredientsCSV([]byte("Sugar\n"))
	assert.Error(t, err)
}

func TestParseIngredientsJSON(t *testing.T) {
	array := []byte(`[{"name":"Salt","measurement_unit":"g"},{"name":" Milk ","measurement_unit":"ml"}]`)
	records, err := ParseIngredientsJSON(array)
	require.NoError(t, err)
	assert.Equal(t, []IngredientRecord{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Milk", MeasurementUnit: "ml"},
	}, records)

	lines := []byte("{\"name\":\"Salt\",\"measurement_unit\":\"g\"}\n\n{\"name\":\"Egg\",\"measurement_unit\":\"pcs\"}\n")
	records, err = ParseIngredientsJSON(lines)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = ParseIngredientsJSON([]byte(`[{"name":"Salt"}]`))
	assert.Error(t, err)
}

func TestParseIngredientFileByExtension(t *testing.T) {
	records, err := ParseIngredientFile("data/ingredients.CSV", []byte("Salt,g\n"))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = ParseIngredientFile("ingredients.xml", nil)
	assert.Error(t, err)
}
