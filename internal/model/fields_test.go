package model_test

import (
	"testing"

	"github.com/sciops/workorder-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKindFieldsCoversEveryKind each kind yields a contract and the
// required flags match the validator's rules.
func TestKindFieldsCoversEveryKind(t *testing.T) {
	for _, kind := range model.Kinds() {
		fields, err := model.KindFields(kind)
		require.NoError(t, err, kind)
		assert.NotEmpty(t, fields, kind)

		required := 0
		for _, f := range fields {
			if f.Required {
				required++
			}
		}
		assert.Greater(t, required, 0, "%s needs at least one required field", kind)
	}

	_, err := model.KindFields("plumbing")
	assert.Error(t, err)
}

// TestKindFieldsFuel spot check the fuel contract.
func TestKindFieldsFuel(t *testing.T) {
	fields, err := model.KindFields(model.KindFuel)
	require.NoError(t, err)

	byName := make(map[string]model.FieldSpec)
	for _, f := range fields {
		byName[f.Name] = f
	}

	assert.True(t, byName["vehicle_id"].Required)
	assert.True(t, byName["requested_fill_percent"].Required)
	assert.False(t, byName["current_fill_percent"].Required)
	assert.ElementsMatch(t, []string{"gasoline", "diesel", "ethanol"}, byName["fuel_type"].Enum)
}
