package compatibility

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/internal/utils"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/power"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/specs"
)

const (
	LevelCritical = "critical"
	LevelProblem  = "problem"
	LevelDanger   = "danger"
	LevelWarning  = "warning"
)

// high profile memory starts around this height
const highProfileRAMHeight = 45

var (
	amdChipsets = []string{
		"A320", "B350", "X370", "B450", "X470", "A520", "B550", "X570",
		"A620", "B650", "X670", "B840", "B850", "X870", "TRX40", "TRX50", "WRX80", "WRX90", "X399",
	}
	intelChipsets = []string{
		"H310", "B360", "H370", "Z370", "Z390", "H410", "B460", "H470", "Z490",
		"H510", "B560", "H570", "Z590", "H610", "B660", "H670", "Z690", "W680", "Q670",
		"B760", "H770", "Z790", "W790", "H810", "B860", "Z890", "X299",
	}
)

func issue(level, format string, args ...interface{}) *models.CompatibilityInfo {
	return &models.CompatibilityInfo{Level: level, Message: fmt.Sprintf(format, args...)}
}

func squashUpper(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func vendorOf(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "intel"), strings.Contains(lower, "core i"), strings.Contains(lower, "core ultra"):
		return "intel"
	case strings.Contains(lower, "amd"), strings.Contains(lower, "ryzen"), strings.Contains(lower, "threadripper"):
		return "amd"
	}
	return ""
}

func cpuVendor(cpu *models.Part) string {
	if brand, ok := specs.Get(cpu, specs.Brand); ok {
		if v := vendorOf(brand); v != "" {
			return v
		}
	}
	return vendorOf(cpu.Name)
}

func chipsetVendor(chipset string) string {
	upper := squashUpper(chipset)
	for _, c := range amdChipsets {
		if strings.Contains(upper, c) {
			return "amd"
		}
	}
	for _, c := range intelChipsets {
		if strings.Contains(upper, c) {
			return "intel"
		}
	}
	return vendorOf(chipset)
}

func checkSocket(e *env) *models.CompatibilityInfo {
	cpu, board, ok := e.pair(models.CategoryCPU, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	cpuSocket, ok1 := specs.Get(cpu, specs.Socket)
	boardSocket, ok2 := specs.Get(board, specs.Socket)
	if !ok1 || !ok2 || squashUpper(cpuSocket) == squashUpper(boardSocket) {
		return nil
	}
	return issue(LevelProblem, "CPU socket %s is not compatible with motherboard socket %s", cpuSocket, boardSocket)
}

func checkChipset(e *env) *models.CompatibilityInfo {
	cpu, board, ok := e.pair(models.CategoryCPU, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	chipset, ok := specs.Get(board, specs.Chipset)
	if !ok {
		return nil
	}
	cv, bv := cpuVendor(cpu), chipsetVendor(chipset)
	if cv == "" || bv == "" || cv == bv {
		return nil
	}
	return issue(LevelProblem, "%s CPU is not compatible with the %s chipset (%s platform)", strings.ToUpper(cv), chipset, strings.ToUpper(bv))
}

func checkMemoryType(e *env) *models.CompatibilityInfo {
	ram, board, ok := e.pair(models.CategoryRAM, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	ramType, ok1 := specs.Get(ram, specs.MemoryType)
	boardType, ok2 := specs.Get(board, specs.MemoryType)
	if !ok1 || !ok2 || strings.Contains(squashUpper(boardType), squashUpper(ramType)) {
		return nil
	}
	return issue(LevelProblem, "Motherboard does not support %s memory (supports %s)", ramType, boardType)
}

func checkMemoryCapacity(e *env) *models.CompatibilityInfo {
	ram, board, ok := e.pair(models.CategoryRAM, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	capacity, ok1 := specs.Number(ram, specs.Capacity)
	max, ok2 := specs.Number(board, specs.MaxMemory)
	if !ok1 || !ok2 || capacity <= max {
		return nil
	}
	return issue(LevelProblem, "RAM capacity %gGB exceeds the motherboard maximum of %gGB", capacity, max)
}

func checkMemorySpeed(e *env) *models.CompatibilityInfo {
	ram, board, ok := e.pair(models.CategoryRAM, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	speed, ok1 := specs.Number(ram, specs.Speed)
	max, ok2 := specs.Number(board, specs.MaxMemorySpeed)
	if !ok1 || !ok2 || speed <= max {
		return nil
	}
	return issue(LevelWarning, "RAM speed %gMHz exceeds the motherboard maximum of %gMHz", speed, max)
}

func checkMemorySlots(e *env) *models.CompatibilityInfo {
	ram, board, ok := e.pair(models.CategoryRAM, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	modules, ok1 := specs.Number(ram, specs.Modules)
	slots, ok2 := specs.Number(board, specs.MemorySlots)
	if !ok1 || !ok2 || modules <= slots {
		return nil
	}
	return issue(LevelProblem, "RAM kit has %g modules but the motherboard only has %g memory slots", modules, slots)
}

func checkCaseFormFactor(e *env) *models.CompatibilityInfo {
	pcCase, board, ok := e.pair(models.CategoryCase, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	caseText, ok1 := specs.Get(pcCase, specs.CaseType)
	boardText, ok2 := specs.Get(board, specs.FormFactor)
	if !ok1 || !ok2 || CaseFits(caseText, boardText) {
		return nil
	}
	return issue(LevelProblem, "%s motherboard is too large for the %s case", boardText, caseText)
}

func checkGPULength(e *env) *models.CompatibilityInfo {
	gpu, pcCase, ok := e.pair(models.CategoryGPU, models.CategoryCase)
	if !ok {
		return nil
	}
	length, ok1 := specs.Number(gpu, specs.GPULength)
	max, ok2 := specs.Number(pcCase, specs.MaxGPULength)
	if !ok1 || !ok2 || length <= max {
		return nil
	}
	return issue(LevelProblem, "Graphics card length %gmm exceeds the case maximum of %gmm", length, max)
}

func checkGPUSlots(e *env) *models.CompatibilityInfo {
	gpu, pcCase, ok := e.pair(models.CategoryGPU, models.CategoryCase)
	if !ok {
		return nil
	}
	width, ok1 := specs.Number(gpu, specs.GPUSlots)
	slots, ok2 := specs.Number(pcCase, specs.ExpansionSlots)
	if !ok1 || !ok2 || width <= slots {
		return nil
	}
	return issue(LevelProblem, "Graphics card needs %g expansion slots but the case has %g", width, slots)
}

func checkCoolerHeight(e *env) *models.CompatibilityInfo {
	cooler, pcCase, ok := e.pair(models.CategoryCooling, models.CategoryCase)
	if !ok {
		return nil
	}
	height, ok1 := specs.Number(cooler, specs.CoolerHeight)
	max, ok2 := specs.Number(pcCase, specs.MaxCoolerHeight)
	if !ok1 || !ok2 || height <= max {
		return nil
	}
	return issue(LevelProblem, "CPU cooler height %gmm exceeds the case maximum of %gmm", height, max)
}

func checkCoolerSocket(e *env) *models.CompatibilityInfo {
	cooler, cpu, ok := e.pair(models.CategoryCooling, models.CategoryCPU)
	if !ok {
		return nil
	}
	supported, ok1 := specs.Get(cooler, specs.CoolerSockets)
	socket, ok2 := specs.Get(cpu, specs.Socket)
	if !ok1 || !ok2 {
		return nil
	}
	if strings.Contains(squashUpper(supported), squashUpper(socket)) || hasWord(supported, "universal", "all") {
		return nil
	}
	return issue(LevelProblem, "CPU cooler does not support socket %s (supports %s)", socket, supported)
}

func hasWord(text string, words ...string) bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

func cpuTDP(cpu *models.Part) (float64, bool) {
	if tdp, ok := specs.Number(cpu, specs.TDP); ok {
		return tdp, true
	}
	if cpu.CPU != nil && cpu.CPU.PowerConsumption > 0 {
		return cpu.CPU.PowerConsumption, true
	}
	return 0, false
}

func checkCoolerTDP(e *env) *models.CompatibilityInfo {
	cooler, cpu, ok := e.pair(models.CategoryCooling, models.CategoryCPU)
	if !ok {
		return nil
	}
	tdp, ok1 := cpuTDP(cpu)
	rating, ok2 := specs.Number(cooler, specs.CoolerMaxTDP)
	if !ok1 || !ok2 || tdp <= rating {
		return nil
	}
	return issue(LevelWarning, "CPU TDP %gW exceeds the cooler rating of %gW, cooling may be insufficient", tdp, rating)
}

func isHighProfile(ram *models.Part) bool {
	if specs.Contains(ram, specs.Profile, "high") {
		return true
	}
	height, ok := specs.Number(ram, specs.Profile)
	return ok && height >= highProfileRAMHeight
}

func checkRAMClearance(e *env) *models.CompatibilityInfo {
	cooler, ram, ok := e.pair(models.CategoryCooling, models.CategoryRAM)
	if !ok || !e.sel.Has(models.CategoryMotherboard) {
		return nil
	}
	if !specs.Contains(cooler, specs.CoolerType, "tower", "air") || !isHighProfile(ram) {
		return nil
	}
	return issue(LevelWarning, "Tower air cooler may not clear high-profile memory modules")
}

func checkRadiator(e *env) *models.CompatibilityInfo {
	cooler, pcCase, ok := e.pair(models.CategoryCooling, models.CategoryCase)
	if !ok || !specs.Contains(cooler, specs.CoolerType, "liquid") {
		return nil
	}
	size, ok1 := specs.Number(cooler, specs.RadiatorSize)
	supportText, ok2 := specs.Get(pcCase, specs.RadiatorSupport)
	if !ok1 || !ok2 {
		return nil
	}
	support := utils.MaxNumber(supportText)
	if math.IsNaN(support) || size <= support {
		return nil
	}
	return issue(LevelProblem, "Radiator size %gmm exceeds the case radiator support of %gmm", size, support)
}

func checkPSULength(e *env) *models.CompatibilityInfo {
	psu, pcCase, ok := e.pair(models.CategoryPSU, models.CategoryCase)
	if !ok {
		return nil
	}
	length, ok1 := specs.Number(psu, specs.PSULength)
	max, ok2 := specs.Number(pcCase, specs.MaxPSULength)
	if !ok1 || !ok2 || length <= max {
		return nil
	}
	return issue(LevelProblem, "PSU length %gmm exceeds the case maximum of %gmm", length, max)
}

func checkPSUFormFactor(e *env) *models.CompatibilityInfo {
	psu, pcCase, ok := e.pair(models.CategoryPSU, models.CategoryCase)
	if !ok {
		return nil
	}
	formFactor, ok1 := specs.Get(psu, specs.PSUFormFactor)
	supported, ok2 := specs.Get(pcCase, specs.PSUSupport)
	if !ok1 || !ok2 || strings.Contains(squashUpper(supported), squashUpper(formFactor)) {
		return nil
	}
	return issue(LevelProblem, "PSU form factor %s is not supported by the case (supports %s)", formFactor, supported)
}

func checkPSUWattage(e *env) *models.CompatibilityInfo {
	psu, ok := e.sel.Get(models.CategoryPSU)
	if !ok {
		return nil
	}
	rated, ok := specs.Number(psu, specs.Wattage)
	if !ok {
		return nil
	}
	watts := int(rated)
	switch power.Assess(watts, e.total) {
	case power.Critical:
		return issue(LevelCritical, "Insufficient power: %dW PSU is below the estimated consumption of %dW", watts, e.total)
	case power.Dangerous:
		return issue(LevelDanger, "PSU wattage %dW leaves less than 10%% headroom over the estimated %dW consumption", watts, e.total)
	case power.Advisory:
		return issue(LevelWarning, "PSU wattage %dW < %dW recommended for the estimated %dW consumption", watts, power.HeadroomThreshold(e.total), e.total)
	}
	return nil
}

func checkPSUEfficiency(e *env) *models.CompatibilityInfo {
	psu, ok := e.sel.Get(models.CategoryPSU)
	if !ok || e.total <= power.LowEfficiencyThreshold {
		return nil
	}
	rating, ok := specs.Get(psu, specs.Efficiency)
	if !ok || strings.Contains(squashUpper(rating), "80PLUS") || strings.Contains(squashUpper(rating), "80+") {
		return nil
	}
	return issue(LevelWarning, "Estimated power consumption %dW exceeds %dW; an 80 PLUS certified PSU is recommended (selected: %s)", e.total, power.LowEfficiencyThreshold, rating)
}

func checkStorageInterface(e *env) *models.CompatibilityInfo {
	drive, board, ok := e.pair(models.CategoryStorage, models.CategoryMotherboard)
	if !ok {
		return nil
	}
	kind, ok := specs.Get(drive, specs.StorageType)
	if !ok {
		return nil
	}
	lower := strings.ToLower(kind)
	switch {
	case strings.Contains(lower, "nvme") || strings.Contains(lower, "m.2"):
		slots, ok := specs.Number(board, specs.M2Slots)
		if ok && slots < 1 {
			return issue(LevelProblem, "Motherboard has no M.2 slot for the %s drive", kind)
		}
	case strings.Contains(lower, "sata"):
		ports, ok := specs.Number(board, specs.SATAPorts)
		if ok && ports < 1 {
			return issue(LevelProblem, "Motherboard has no SATA port for the %s drive", kind)
		}
	}
	return nil
}

func psuConnectors(psu *models.Part) (eight, six int, ok bool) {
	n8, ok8 := specs.Number(psu, specs.PCIe8Pin)
	n6, ok6 := specs.Number(psu, specs.PCIe6Pin)
	if ok8 || ok6 {
		return int(n8), int(n6), true
	}
	text, ok := specs.Get(psu, specs.PCIeConnectors)
	if !ok {
		return 0, 0, false
	}
	eight, six = utils.CountConnectors(text)
	return eight, six, true
}

func checkGPUConnectors(e *env) *models.CompatibilityInfo {
	gpu, psu, ok := e.pair(models.CategoryGPU, models.CategoryPSU)
	if !ok {
		return nil
	}
	text, ok := specs.Get(gpu, specs.PowerConnectors)
	if !ok {
		return nil
	}
	need8, need6 := utils.CountConnectors(text)
	if need8+need6 == 0 {
		return nil
	}
	have8, have6, ok := psuConnectors(psu)
	if !ok {
		return nil
	}
	// an 8-pin (6+2) plug also serves a 6-pin socket
	if need8 <= have8 && need8+need6 <= have8+have6 {
		return nil
	}
	return issue(LevelProblem, "Graphics card needs %d x 8-pin and %d x 6-pin power connectors but the PSU provides %d x 8-pin and %d x 6-pin", need8, need6, have8, have6)
}
