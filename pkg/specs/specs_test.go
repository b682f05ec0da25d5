package specs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
)

func TestGetTriesAlternateSpellings(t *testing.T) {
	part := &models.Part{Specifications: map[string]string{"socket": "AM5"}}

	v, ok := Get(part, Socket)
	assert.True(t, ok)
	assert.Equal(t, "AM5", v)
}

func TestGetSkipsEmptyValues(t *testing.T) {
	part := &models.Part{Specifications: map[string]string{"Socket": "  ", "CPU Socket": "LGA1700"}}

	v, ok := Get(part, Socket)
	assert.True(t, ok)
	assert.Equal(t, "LGA1700", v)
}

func TestGetMissing(t *testing.T) {
	_, ok := Get(&models.Part{}, Socket)
	assert.False(t, ok)

	_, ok = Get(nil, Socket)
	assert.False(t, ok)
}

func TestNumeric(t *testing.T) {
	assert.Equal(t, 850.0, Numeric("850W"))
	assert.Equal(t, 16.0, Numeric("16 GB"))
	assert.Equal(t, 1000.0, Numeric("1,000 W"))
	assert.Equal(t, 32.0, Numeric("32GB (2x16GB)"))
	assert.True(t, math.IsNaN(Numeric("unknown")))
}

func TestNumber(t *testing.T) {
	part := &models.Part{Specifications: map[string]string{"Wattage": "750 W", "Efficiency Rating": "80 PLUS Gold"}}

	w, ok := Number(part, Wattage)
	assert.True(t, ok)
	assert.Equal(t, 750.0, w)

	_, ok = Number(&models.Part{Specifications: map[string]string{"Wattage": "n/a"}}, Wattage)
	assert.False(t, ok)

	assert.True(t, Contains(part, Efficiency, "80 plus"))
	assert.False(t, Contains(part, Efficiency, "titanium"))
}

func TestEveryFieldHasKeys(t *testing.T) {
	for f, keys := range candidateKeys {
		assert.NotEmpty(t, keys, string(f))
	}
}
