// Package power estimates the draw of a build and the power supply it needs.
package power

import (
	"fmt"
	"math"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/selection"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/specs"
)

const (
	defaultCPUWatts     = 65
	defaultGPUWatts     = 150
	defaultRAMWatts     = 10
	defaultStorageWatts = 15
	motherboardWatts    = 30
	liquidCoolerWatts   = 20
	airCoolerWatts      = 10

	minimumRecommendation = 450
	// LowEfficiencyThreshold is the draw above which an 80 PLUS unit is expected.
	LowEfficiencyThreshold = 500
)

// market PSU steps; anything above the last one is "1200+"
var ladder = []int{500, 600, 650, 750, 850, 1000}

// Tier is a recommended power supply size.
type Tier struct {
	Watts  int
	OrMore bool
}

func (t Tier) String() string {
	if t.OrMore {
		return fmt.Sprintf("%dW+", t.Watts)
	}
	return fmt.Sprintf("%dW", t.Watts)
}

var topTier = Tier{Watts: 1200, OrMore: true}

// Contribution is the wattage one selected part adds to the build.
func Contribution(categoryID string, part *models.Part) float64 {
	if part == nil {
		return 0
	}
	switch categoryID {
	case models.CategoryCPU:
		if w := part.PowerConsumption(); w > 0 {
			return w
		}
		if w, ok := specs.Number(part, specs.TDP); ok && w > 0 {
			return w
		}
		return defaultCPUWatts
	case models.CategoryGPU:
		if w := part.PowerConsumption(); w > 0 {
			return w
		}
		if w, ok := specs.Number(part, specs.PowerDraw); ok && w > 0 {
			return w
		}
		return defaultGPUWatts
	case models.CategoryRAM:
		return orDefault(part.PowerConsumption(), defaultRAMWatts)
	case models.CategoryStorage:
		return orDefault(part.PowerConsumption(), defaultStorageWatts)
	case models.CategoryMotherboard:
		return motherboardWatts
	case models.CategoryCooling:
		if specs.Contains(part, specs.CoolerType, "liquid") {
			return liquidCoolerWatts
		}
		return airCoolerWatts
	}
	return 0
}

func orDefault(w, def float64) float64 {
	if w > 0 {
		return w
	}
	return def
}

// Estimate sums the contribution of every structural category in the selection.
func Estimate(sel *selection.Selection) int {
	var total float64
	for _, categoryID := range models.StructuralCategories {
		part, ok := sel.Get(categoryID)
		if !ok {
			continue
		}
		total += Contribution(categoryID, part)
	}
	return int(math.Round(total))
}

// ceilScaled returns ceil(total * tenths / 10) without float rounding noise.
func ceilScaled(total, tenths int) int {
	return (total*tenths + 9) / 10
}

// DangerThreshold is ceil(total * 1.1).
func DangerThreshold(total int) int {
	return ceilScaled(total, 11)
}

// HeadroomThreshold is ceil(total * 1.3).
func HeadroomThreshold(total int) int {
	return ceilScaled(total, 13)
}

// Recommended rounds max(450, ceil(total*1.3)) up to the next market step.
func Recommended(total int) Tier {
	need := HeadroomThreshold(total)
	if need < minimumRecommendation {
		need = minimumRecommendation
	}
	for _, w := range ladder {
		if need <= w {
			return Tier{Watts: w}
		}
	}
	return topTier
}

type Severity int

const (
	Sufficient Severity = iota
	Advisory
	Dangerous
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "critical"
	case Dangerous:
		return "danger"
	case Advisory:
		return "warning"
	}
	return "ok"
}

// Assess grades a power supply rated psuWatts against the estimated draw.
func Assess(psuWatts, total int) Severity {
	switch {
	case psuWatts < total:
		return Critical
	case psuWatts < DangerThreshold(total):
		return Dangerous
	case psuWatts < HeadroomThreshold(total):
		return Advisory
	}
	return Sufficient
}
