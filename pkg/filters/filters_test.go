package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
)

func cpu(kv ...string) models.Part {
	p := models.Part{CategoryID: models.CategoryCPU, Specifications: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Specifications[kv[i]] = kv[i+1]
	}
	return p
}

func TestBuildGroupsSkipsReservedKeys(t *testing.T) {
	parts := []models.Part{
		cpu("Brand", "AMD", "Series", "Ryzen 7", "Core Count", "8", "Socket", "AM5"),
		cpu("Brand", "Intel", "Series", "Core i7", "Core Count", "20", "Socket", "LGA1700"),
		cpu("Brand", "AMD", "Series", "Ryzen 5", "Core Count", "6", "Socket", "AM5"),
	}

	groups := BuildGroups(models.CategoryCPU, parts)
	require.Len(t, groups, 2)

	assert.Equal(t, "Core Count", groups[0].Title)
	assert.Equal(t, []Option{
		{ID: "Core Count=6", Name: "6"},
		{ID: "Core Count=8", Name: "8"},
		{ID: "Core Count=20", Name: "20"},
	}, groups[0].Options)

	assert.Equal(t, "Socket", groups[1].Title)
	assert.Equal(t, []Option{
		{ID: "Socket=AM5", Name: "AM5"},
		{ID: "Socket=LGA1700", Name: "LGA1700"},
	}, groups[1].Options)
}

func TestBuildGroupsNumericAwareSort(t *testing.T) {
	parts := []models.Part{
		cpu("Cache", "128 MB"),
		cpu("Cache", "32 MB"),
		cpu("Cache", "Unknown"),
		cpu("Cache", "  "),
		cpu("Cache", "8 MB"),
	}

	groups := BuildGroups(models.CategoryCPU, parts)
	require.Len(t, groups, 1)

	var names []string
	for _, o := range groups[0].Options {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"8 MB", "32 MB", "128 MB", "Unknown"}, names)
}

func TestBuildGroupsEmpty(t *testing.T) {
	assert.Empty(t, BuildGroups(models.CategoryCPU, nil))
	assert.Empty(t, BuildGroups(models.CategoryCPU, []models.Part{cpu("Brand", "AMD")}))
}

func TestExpand(t *testing.T) {
	got, ok := Expand(models.CategoryCPU, "amd-ryzen-7")
	require.True(t, ok)
	assert.Equal(t, []string{"Brand=AMD", "Series=Ryzen 7"}, got)

	_, ok = Expand(models.CategoryCPU, "nvidia")
	assert.False(t, ok)
}

func TestIsQuickFilterActive(t *testing.T) {
	assert.True(t, IsQuickFilterActive(models.CategoryCPU, "amd-ryzen-7", []string{"Series=Ryzen 7", "Brand=AMD"}))
	assert.False(t, IsQuickFilterActive(models.CategoryCPU, "amd-ryzen-7", []string{"Brand=AMD"}))
	assert.False(t, IsQuickFilterActive(models.CategoryCPU, "amd", []string{"Brand=AMD", "Series=Ryzen 7"}))
	assert.False(t, IsQuickFilterActive(models.CategoryCPU, "missing", nil))
}

func TestStateQuickAndManualAreExclusive(t *testing.T) {
	var s State

	require.True(t, s.SelectQuick(models.CategoryCPU, "intel-core-i7"))
	assert.Equal(t, "intel-core-i7", s.Quick)
	assert.Equal(t, []string{"Brand=Intel", "Series=Core i7"}, s.Filters)
	assert.Equal(t, "intel-core-i7", s.ActiveQuick(models.CategoryCPU))

	require.True(t, s.Toggle("Socket=LGA1700"))
	assert.Empty(t, s.Quick)
	assert.Equal(t, []string{"Socket=LGA1700"}, s.Filters)
	assert.Empty(t, s.ActiveQuick(models.CategoryCPU))

	require.True(t, s.SelectQuick(models.CategoryCPU, "amd"))
	assert.Equal(t, []string{"Brand=AMD"}, s.Filters)

	require.True(t, s.SelectQuick(models.CategoryCPU, "amd"))
	assert.Empty(t, s.Filters, "selecting the active quick filter again clears it")
	assert.Empty(t, s.Quick)
}

func TestStateToggle(t *testing.T) {
	var s State
	s.Toggle("Socket=AM5")
	s.Toggle("Cores=8")
	s.Toggle("Socket=AM5")
	assert.Equal(t, []string{"Cores=8"}, s.Filters)

	assert.False(t, s.Toggle("garbage"))
	assert.False(t, s.SelectQuick(models.CategoryCPU, "unknown"))
}

func TestStateSet(t *testing.T) {
	s := State{Quick: "amd", Filters: []string{"Brand=AMD"}}
	s.Set([]string{"Socket=AM5", "bad", "Cores=16"})
	assert.Empty(t, s.Quick)
	assert.Equal(t, []string{"Socket=AM5", "Cores=16"}, s.Filters)
}

func TestReservedKeys(t *testing.T) {
	keys := ReservedKeys(models.CategoryPSU)
	assert.True(t, keys["Wattage"])
	assert.True(t, keys["Efficiency Rating"])
	assert.False(t, keys["Length"])
	assert.Empty(t, ReservedKeys(models.CategoryServices))
}

func TestParseFilter(t *testing.T) {
	f, ok := ParseFilter(" Brand = AMD ")
	require.True(t, ok)
	assert.Equal(t, Filter{Key: "Brand", Value: "AMD"}, f)

	_, ok = ParseFilter("Brand=")
	assert.False(t, ok)
}
