package power

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/selection"
)

func withSpecs(category string, kv ...string) models.Part {
	p := models.Part{ID: category, CategoryID: category, Specifications: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		p.Specifications[kv[i]] = kv[i+1]
	}
	return p
}

func TestContributionDefaults(t *testing.T) {
	tests := []struct {
		category string
		part     models.Part
		want     float64
	}{
		{models.CategoryCPU, withSpecs(models.CategoryCPU), 65},
		{models.CategoryCPU, withSpecs(models.CategoryCPU, "TDP", "105 W"), 105},
		{models.CategoryCPU, models.Part{CPU: &models.PowerRecord{PowerConsumption: 125}, Specifications: map[string]string{"TDP": "105 W"}}, 125},
		{models.CategoryGPU, withSpecs(models.CategoryGPU), 150},
		{models.CategoryGPU, models.Part{GPU: &models.PowerRecord{PowerConsumption: 320}}, 320},
		{models.CategoryRAM, withSpecs(models.CategoryRAM), 10},
		{models.CategoryStorage, withSpecs(models.CategoryStorage), 15},
		{models.CategoryMotherboard, withSpecs(models.CategoryMotherboard), 30},
		{models.CategoryCooling, withSpecs(models.CategoryCooling, "Type", "Liquid AIO"), 20},
		{models.CategoryCooling, withSpecs(models.CategoryCooling, "Type", "Tower Air"), 10},
		{models.CategoryCase, withSpecs(models.CategoryCase), 0},
		{models.CategoryPSU, withSpecs(models.CategoryPSU), 0},
	}

	for _, tt := range tests {
		p := tt.part
		assert.Equal(t, tt.want, Contribution(tt.category, &p), tt.category)
	}
}

func TestEstimateIsMonotonic(t *testing.T) {
	sel := selection.New()
	prev := Estimate(sel)
	assert.Zero(t, prev)

	for _, c := range models.StructuralCategories {
		sel.Select(c, withSpecs(c))
		total := Estimate(sel)
		assert.GreaterOrEqual(t, total, prev, c)
		prev = total
	}
	// 65 + 150 + 30 + 10 + 15 + 10
	assert.Equal(t, 280, prev)
}

func TestEstimateIgnoresServices(t *testing.T) {
	sel := selection.New()
	sel.Select(models.CategoryServices, models.Part{ID: "svc", GPU: &models.PowerRecord{PowerConsumption: 500}})
	assert.Zero(t, Estimate(sel))
}

func TestRecommended(t *testing.T) {
	tests := []struct {
		total int
		want  Tier
	}{
		{0, Tier{Watts: 500}},
		{300, Tier{Watts: 500}},
		{384, Tier{Watts: 500}},
		{385, Tier{Watts: 600}},
		{480, Tier{Watts: 650}},
		{500, Tier{Watts: 650}},
		{560, Tier{Watts: 750}},
		{650, Tier{Watts: 850}},
		{700, Tier{Watts: 1000}},
		{769, Tier{Watts: 1000}},
		{770, topTier},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Recommended(tt.total), "total %d", tt.total)
	}
	assert.Equal(t, "1200W+", topTier.String())
	assert.Equal(t, "650W", Recommended(480).String())
}

func TestRecommendedIsMonotonicAndOnLadder(t *testing.T) {
	allowed := map[Tier]bool{topTier: true}
	for _, w := range ladder {
		allowed[Tier{Watts: w}] = true
	}

	prev := 0
	for total := 0; total <= 1500; total++ {
		tier := Recommended(total)
		assert.True(t, allowed[tier], "total %d gave %v", total, tier)
		assert.GreaterOrEqual(t, tier.Watts, prev)
		prev = tier.Watts
	}
}

func TestAssessBands(t *testing.T) {
	// total 480: danger threshold 528, headroom threshold 624
	assert.Equal(t, Critical, Assess(479, 480))
	assert.Equal(t, Dangerous, Assess(480, 480))
	assert.Equal(t, Dangerous, Assess(527, 480))
	assert.Equal(t, Advisory, Assess(528, 480))
	assert.Equal(t, Advisory, Assess(623, 480))
	assert.Equal(t, Sufficient, Assess(624, 480))
	assert.Equal(t, Sufficient, Assess(HeadroomThreshold(333), 333))
}
