// Package compatibility evaluates the pairwise physical and electrical rules
// between the parts of a build. Rules never block a selection; they only
// report what they find, and a rule whose inputs are missing is skipped.
package compatibility

import (
	"strings"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/power"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/selection"
)

type env struct {
	sel   *selection.Selection
	total int
}

// pair returns the parts of two categories when both are selected.
func (e *env) pair(a, b string) (*models.Part, *models.Part, bool) {
	pa, ok := e.sel.Get(a)
	if !ok {
		return nil, nil, false
	}
	pb, ok := e.sel.Get(b)
	if !ok {
		return nil, nil, false
	}
	return pa, pb, true
}

// Rule is one independent check; it yields at most one issue.
type Rule struct {
	Name  string
	check func(*env) *models.CompatibilityInfo
}

var rules = []Rule{
	{"cpu-socket", checkSocket},
	{"cpu-chipset", checkChipset},
	{"ram-type", checkMemoryType},
	{"ram-capacity", checkMemoryCapacity},
	{"ram-speed", checkMemorySpeed},
	{"ram-slots", checkMemorySlots},
	{"case-form-factor", checkCaseFormFactor},
	{"gpu-length", checkGPULength},
	{"gpu-slots", checkGPUSlots},
	{"cooler-height", checkCoolerHeight},
	{"cooler-socket", checkCoolerSocket},
	{"cooler-tdp", checkCoolerTDP},
	{"cooler-ram-clearance", checkRAMClearance},
	{"cooler-radiator", checkRadiator},
	{"psu-length", checkPSULength},
	{"psu-form-factor", checkPSUFormFactor},
	{"psu-wattage", checkPSUWattage},
	{"psu-efficiency", checkPSUEfficiency},
	{"storage-interface", checkStorageInterface},
	{"gpu-psu-connectors", checkGPUConnectors},
}

// RuleNames lists the rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// Evaluate runs every rule against the selection and collects all findings.
func Evaluate(sel *selection.Selection) []models.CompatibilityInfo {
	return EvaluateWithTotal(sel, power.Estimate(sel))
}

// EvaluateWithTotal is Evaluate with an already computed power estimate.
func EvaluateWithTotal(sel *selection.Selection, total int) []models.CompatibilityInfo {
	e := &env{sel: sel, total: total}
	issues := []models.CompatibilityInfo{}
	for _, r := range rules {
		if found := r.check(e); found != nil {
			issues = append(issues, *found)
		}
	}
	return issues
}

var powerWords = []string{"power", "wattage", "consumption"}

func IsPowerIssue(info models.CompatibilityInfo) bool {
	lower := strings.ToLower(info.Message)
	for _, w := range powerWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// PowerIssues keeps the findings about power, wattage or consumption, which
// the selection panel highlights.
func PowerIssues(issues []models.CompatibilityInfo) []models.CompatibilityInfo {
	out := []models.CompatibilityInfo{}
	for _, i := range issues {
		if IsPowerIssue(i) {
			out = append(out, i)
		}
	}
	return out
}

func Messages(issues []models.CompatibilityInfo) []string {
	out := make([]string, len(issues))
	for i, info := range issues {
		out[i] = info.Message
	}
	return out
}
