package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
)

func part(id, category string, price float64) models.Part {
	return models.Part{ID: id, Name: id, CategoryID: category, Price: price, Stock: 1}
}

func TestSelectReplacesStructuralPart(t *testing.T) {
	s := New()
	s.Select(models.CategoryCPU, part("cpu-1", models.CategoryCPU, 200))
	s.Select(models.CategoryCPU, part("cpu-2", models.CategoryCPU, 300))

	got, ok := s.Get(models.CategoryCPU)
	require.True(t, ok)
	assert.Equal(t, "cpu-2", got.ID)
	assert.Len(t, s.All(models.CategoryCPU), 1)
}

func TestServiceToggle(t *testing.T) {
	s := New()
	assembly := part("svc-assembly", models.CategoryServices, 50)

	s.Select(models.CategoryServices, assembly)
	assert.True(t, s.Has(models.CategoryServices))
	assert.Len(t, s.All(models.CategoryServices), 1)

	s.Select(models.CategoryServices, assembly)
	assert.False(t, s.Has(models.CategoryServices))
	_, present := s.Entry(models.CategoryServices)
	assert.False(t, present, "empty services list must be removed")
}

func TestServicesKeepOrder(t *testing.T) {
	s := New()
	s.Select(models.CategoryServices, part("a", models.CategoryServices, 10))
	s.Select(models.CategoryServices, part("b", models.CategoryServices, 20))
	s.Select(models.CategoryServices, part("c", models.CategoryServices, 30))
	s.Select(models.CategoryServices, part("b", models.CategoryServices, 20))

	var ids []string
	for _, p := range s.All(models.CategoryServices) {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)

	first, ok := s.Get(models.CategoryServices)
	require.True(t, ok)
	assert.Equal(t, "a", first.ID)

	entry, _ := s.Entry(models.CategoryServices)
	assert.True(t, entry.IsMultiple())
}

func TestDeselectAndUnknownCategories(t *testing.T) {
	s := New()
	s.Select(models.CategoryGPU, part("gpu-1", models.CategoryGPU, 500))
	s.Deselect(models.CategoryGPU)
	assert.False(t, s.Has(models.CategoryGPU))

	s.Deselect("does-not-exist")
	_, ok := s.Get("does-not-exist")
	assert.False(t, ok)
	assert.Empty(t, s.All("does-not-exist"))
}

func TestVersionBumpsOnMutation(t *testing.T) {
	s := New()
	v0 := s.Version()
	s.Select(models.CategoryRAM, part("ram", models.CategoryRAM, 90))
	assert.Greater(t, s.Version(), v0)

	v1 := s.Version()
	s.Deselect(models.CategoryPSU)
	assert.Equal(t, v1, s.Version(), "no-op deselect keeps the version")

	s.Clear()
	assert.Greater(t, s.Version(), v1)
	assert.Zero(t, s.Len())
}

func TestLineItemsAndPrice(t *testing.T) {
	s := New()
	discounted := part("gpu", models.CategoryGPU, 600)
	sale := 550.0
	discounted.DiscountPrice = &sale
	s.Select(models.CategoryGPU, discounted)
	s.Select(models.CategoryCPU, part("cpu", models.CategoryCPU, 300))
	s.Select(models.CategoryServices, part("svc-1", models.CategoryServices, 40))
	s.Select(models.CategoryServices, part("svc-2", models.CategoryServices, 10))

	assert.Equal(t, []models.LineItem{
		{ID: "cpu", Quantity: 1},
		{ID: "gpu", Quantity: 1},
		{ID: "svc-1", Quantity: 1},
		{ID: "svc-2", Quantity: 1},
	}, s.LineItems())
	assert.InDelta(t, 900.0, s.TotalPrice(), 0.001)
	assert.Equal(t, []string{models.CategoryCPU, models.CategoryGPU, models.CategoryServices}, s.Categories())
}
