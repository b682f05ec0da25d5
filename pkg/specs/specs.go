// Package specs reads logical fields out of a part's specification bag. The
// catalog has used several spellings for the same attribute over time, so each
// field maps to an ordered list of candidate keys.
package specs

import (
	"math"
	"strings"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/internal/utils"
)

type Field string

const (
	Socket          Field = "socket"
	Brand           Field = "brand"
	Series          Field = "series"
	Chipset         Field = "chipset"
	TDP             Field = "tdp"
	MemoryType      Field = "memoryType"
	Capacity        Field = "capacity"
	Speed           Field = "speed"
	Modules         Field = "modules"
	Profile         Field = "profile"
	MaxMemory       Field = "maxMemory"
	MaxMemorySpeed  Field = "maxMemorySpeed"
	MemorySlots     Field = "memorySlots"
	FormFactor      Field = "formFactor"
	CaseType        Field = "caseType"
	MaxGPULength    Field = "maxGpuLength"
	ExpansionSlots  Field = "expansionSlots"
	GPULength       Field = "gpuLength"
	GPUSlots        Field = "gpuSlots"
	PowerConnectors Field = "powerConnectors"
	PowerDraw       Field = "powerDraw"
	CoolerType      Field = "coolerType"
	CoolerHeight    Field = "coolerHeight"
	MaxCoolerHeight Field = "maxCoolerHeight"
	CoolerSockets   Field = "coolerSockets"
	CoolerMaxTDP    Field = "coolerMaxTdp"
	RadiatorSize    Field = "radiatorSize"
	RadiatorSupport Field = "radiatorSupport"
	Wattage         Field = "wattage"
	Efficiency      Field = "efficiency"
	PSULength       Field = "psuLength"
	MaxPSULength    Field = "maxPsuLength"
	PSUFormFactor   Field = "psuFormFactor"
	PSUSupport      Field = "psuSupport"
	PCIe8Pin        Field = "pcie8Pin"
	PCIe6Pin        Field = "pcie6Pin"
	PCIeConnectors  Field = "pcieConnectors"
	StorageType     Field = "storageType"
	M2Slots         Field = "m2Slots"
	SATAPorts       Field = "sataPorts"
)

// candidateKeys lists, per field, every key spelling seen in the catalog in
// lookup order.
var candidateKeys = map[Field][]string{
	Socket:          {"Socket", "socket", "CPU Socket", "Socket Type", "cpuSocket"},
	Brand:           {"Brand", "brand", "Manufacturer", "manufacturer"},
	Series:          {"Series", "series", "Family"},
	Chipset:         {"Chipset", "chipset", "Motherboard Chipset"},
	TDP:             {"TDP", "tdp", "Thermal Design Power"},
	MemoryType:      {"Memory Type", "memoryType", "Type", "type", "RAM Type"},
	Capacity:        {"Capacity", "capacity", "Total Capacity", "Size"},
	Speed:           {"Speed", "speed", "Frequency", "Memory Speed"},
	Modules:         {"Modules", "modules", "Module Count", "Kit"},
	Profile:         {"Profile", "profile", "Height", "height", "Heat Spreader"},
	MaxMemory:       {"Max Memory", "maxMemory", "Memory Max", "Maximum Memory"},
	MaxMemorySpeed:  {"Max Memory Speed", "maxMemorySpeed", "Memory Speed", "Supported Memory Speed"},
	MemorySlots:     {"Memory Slots", "memorySlots", "RAM Slots", "DIMM Slots"},
	FormFactor:      {"Form Factor", "formFactor", "form_factor"},
	CaseType:        {"Type", "type", "Case Type", "Size", "Form Factor", "formFactor"},
	MaxGPULength:    {"Max GPU Length", "maxGpuLength", "Maximum Video Card Length", "GPU Clearance"},
	ExpansionSlots:  {"Expansion Slots", "expansionSlots", "Full-Height Expansion Slots"},
	GPULength:       {"Length", "length", "GPU Length", "Card Length"},
	GPUSlots:        {"Slot Width", "slotWidth", "Slots", "Total Slot Width"},
	PowerConnectors: {"Power Connectors", "powerConnectors", "External Power", "Power Connector"},
	PowerDraw:       {"Power Consumption", "powerConsumption", "TDP", "tdp", "Board Power"},
	CoolerType:      {"Type", "type", "Cooler Type", "Cooling Type"},
	CoolerHeight:    {"Height", "height", "Cooler Height"},
	MaxCoolerHeight: {"Max CPU Cooler Height", "maxCoolerHeight", "CPU Cooler Clearance", "Max Cooler Height"},
	CoolerSockets:   {"Supported Sockets", "supportedSockets", "CPU Socket", "Socket", "socket"},
	CoolerMaxTDP:    {"Max TDP", "maxTdp", "TDP Rating", "TDP"},
	RadiatorSize:    {"Radiator Size", "radiatorSize", "Radiator"},
	RadiatorSupport: {"Radiator Support", "radiatorSupport", "Max Radiator Size", "Front Radiator Support"},
	Wattage:         {"Wattage", "wattage", "Power", "Output"},
	Efficiency:      {"Efficiency Rating", "efficiency", "Efficiency", "Certification"},
	PSULength:       {"Length", "length", "PSU Length"},
	MaxPSULength:    {"Max PSU Length", "maxPsuLength", "Power Supply Clearance"},
	PSUFormFactor:   {"Form Factor", "formFactor", "Type", "type"},
	PSUSupport:      {"PSU Form Factor", "psuFormFactor", "Power Supply", "Supported PSU"},
	PCIe8Pin:        {"PCIe 8-pin", "PCIe 8-pin Connectors", "pcie8pin"},
	PCIe6Pin:        {"PCIe 6-pin", "PCIe 6-pin Connectors", "pcie6pin"},
	PCIeConnectors:  {"PCIe Connectors", "pcieConnectors", "Connectors"},
	StorageType:     {"Interface", "interface", "Type", "type", "Form Factor"},
	M2Slots:         {"M.2 Slots", "m2Slots", "M.2 Sockets", "M.2"},
	SATAPorts:       {"SATA Ports", "sataPorts", "SATA 6.0 Gb/s", "SATA Connectors"},
}

// Keys returns the candidate key spellings of a field.
func Keys(f Field) []string {
	return candidateKeys[f]
}

// Lookup returns the first present, non-empty value among keys.
func Lookup(part *models.Part, keys ...string) (string, bool) {
	if part == nil {
		return "", false
	}
	for _, key := range keys {
		if v := strings.TrimSpace(part.Specifications[key]); v != "" {
			return v, true
		}
	}
	return "", false
}

// Get resolves a logical field on a part.
func Get(part *models.Part, f Field) (string, bool) {
	return Lookup(part, candidateKeys[f]...)
}

// Numeric turns a quantity with a unit into a number. NaN means unknown.
func Numeric(value string) float64 {
	return utils.FirstNumber(value)
}

// Number resolves a field and parses it; ok is false when the field is
// missing or holds no number.
func Number(part *models.Part, f Field) (float64, bool) {
	v, ok := Get(part, f)
	if !ok {
		return 0, false
	}
	n := Numeric(v)
	if math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// Contains reports whether the field resolves and holds any of the needles,
// case-insensitively.
func Contains(part *models.Part, f Field, needles ...string) bool {
	v, ok := Get(part, f)
	if !ok {
		return false
	}
	v = strings.ToLower(v)
	for _, n := range needles {
		if strings.Contains(v, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
