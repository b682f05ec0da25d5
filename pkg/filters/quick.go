package filters

import "github.com/Aquilabot/KreaPC-Configurator/internal/models"

// QuickFilter is a category-scoped shorthand for one or more structured filters.
type QuickFilter struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Filters []Filter `json:"-"`
}

func quick(id, label string, kv ...string) QuickFilter {
	q := QuickFilter{ID: id, Label: label}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Filters = append(q.Filters, Filter{Key: kv[i], Value: kv[i+1]})
	}
	return q
}

var quickFilters = map[string][]QuickFilter{
	models.CategoryCPU: {
		quick("intel", "Intel", "Brand", "Intel"),
		quick("intel-core-i3", "Intel Core i3", "Brand", "Intel", "Series", "Core i3"),
		quick("intel-core-i5", "Intel Core i5", "Brand", "Intel", "Series", "Core i5"),
		quick("intel-core-i7", "Intel Core i7", "Brand", "Intel", "Series", "Core i7"),
		quick("intel-core-i9", "Intel Core i9", "Brand", "Intel", "Series", "Core i9"),
		quick("amd", "AMD", "Brand", "AMD"),
		quick("amd-ryzen-3", "AMD Ryzen 3", "Brand", "AMD", "Series", "Ryzen 3"),
		quick("amd-ryzen-5", "AMD Ryzen 5", "Brand", "AMD", "Series", "Ryzen 5"),
		quick("amd-ryzen-7", "AMD Ryzen 7", "Brand", "AMD", "Series", "Ryzen 7"),
		quick("amd-ryzen-9", "AMD Ryzen 9", "Brand", "AMD", "Series", "Ryzen 9"),
	},
	models.CategoryGPU: {
		quick("nvidia", "NVIDIA", "Chipset Manufacturer", "NVIDIA"),
		quick("nvidia-rtx-40", "GeForce RTX 40", "Chipset Manufacturer", "NVIDIA", "Series", "GeForce RTX 40"),
		quick("nvidia-rtx-50", "GeForce RTX 50", "Chipset Manufacturer", "NVIDIA", "Series", "GeForce RTX 50"),
		quick("amd", "AMD", "Chipset Manufacturer", "AMD"),
		quick("amd-rx-7000", "Radeon RX 7000", "Chipset Manufacturer", "AMD", "Series", "Radeon RX 7000"),
		quick("amd-rx-9000", "Radeon RX 9000", "Chipset Manufacturer", "AMD", "Series", "Radeon RX 9000"),
	},
	models.CategoryMotherboard: {
		quick("am4", "AM4", "Socket", "AM4"),
		quick("am5", "AM5", "Socket", "AM5"),
		quick("lga1700", "LGA1700", "Socket", "LGA1700"),
		quick("lga1851", "LGA1851", "Socket", "LGA1851"),
		quick("atx", "ATX", "Form Factor", "ATX"),
		quick("micro-atx", "Micro ATX", "Form Factor", "Micro ATX"),
		quick("mini-itx", "Mini ITX", "Form Factor", "Mini ITX"),
	},
	models.CategoryRAM: {
		quick("ddr4", "DDR4", "Memory Type", "DDR4"),
		quick("ddr5", "DDR5", "Memory Type", "DDR5"),
		quick("16gb", "16 GB", "Capacity", "16 GB"),
		quick("32gb", "32 GB", "Capacity", "32 GB"),
		quick("64gb", "64 GB", "Capacity", "64 GB"),
	},
	models.CategoryStorage: {
		quick("nvme", "NVMe SSD", "Interface", "M.2 NVMe"),
		quick("sata", "SATA", "Interface", "SATA"),
		quick("1tb", "1 TB", "Capacity", "1 TB"),
		quick("2tb", "2 TB", "Capacity", "2 TB"),
	},
	models.CategoryCooling: {
		quick("air", "Air", "Type", "Air"),
		quick("liquid", "Liquid", "Type", "Liquid"),
	},
	models.CategoryCase: {
		quick("full-tower", "Full Tower", "Type", "Full Tower"),
		quick("mid-tower", "Mid Tower", "Type", "Mid Tower"),
		quick("mini-itx", "Mini ITX", "Type", "Mini ITX"),
	},
	models.CategoryPSU: {
		quick("650w", "650 W", "Wattage", "650 W"),
		quick("750w", "750 W", "Wattage", "750 W"),
		quick("850w", "850 W", "Wattage", "850 W"),
		quick("1000w", "1000 W", "Wattage", "1000 W"),
		quick("80-plus-gold", "80 PLUS Gold", "Efficiency Rating", "80 PLUS Gold"),
		quick("modular", "Fully Modular", "Modular", "Full"),
	},
}

// QuickFilters returns the shorthand filters of a category.
func QuickFilters(categoryID string) []QuickFilter {
	return quickFilters[categoryID]
}

func findQuick(categoryID, quickID string) (QuickFilter, bool) {
	for _, q := range quickFilters[categoryID] {
		if q.ID == quickID {
			return q, true
		}
	}
	return QuickFilter{}, false
}

// ReservedKeys are the specification keys covered by the category's quick
// filters; they get no generated filter group.
func ReservedKeys(categoryID string) map[string]bool {
	keys := map[string]bool{}
	for _, q := range quickFilters[categoryID] {
		for _, f := range q.Filters {
			keys[f.Key] = true
		}
	}
	return keys
}

// Expand turns a quick filter id into its structured "key=value" filters.
func Expand(categoryID, quickID string) ([]string, bool) {
	q, ok := findQuick(categoryID, quickID)
	if !ok {
		return nil, false
	}
	out := make([]string, len(q.Filters))
	for i, f := range q.Filters {
		out[i] = f.String()
	}
	return out, true
}

// IsQuickFilterActive reports whether the active filter set is exactly the
// expansion of the quick filter.
func IsQuickFilterActive(categoryID, quickID string, active []string) bool {
	expanded, ok := Expand(categoryID, quickID)
	if !ok || len(expanded) != len(active) {
		return false
	}
	want := make(map[string]int, len(expanded))
	for _, f := range expanded {
		want[f]++
	}
	for _, f := range active {
		if want[f] == 0 {
			return false
		}
		want[f]--
	}
	return true
}
