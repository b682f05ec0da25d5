package models

const (
	CategoryCPU         = "cpu"
	CategoryGPU         = "gpu"
	CategoryMotherboard = "motherboard"
	CategoryRAM         = "ram"
	CategoryStorage     = "storage"
	CategoryCooling     = "cooling"
	CategoryCase        = "case"
	CategoryPSU         = "psu"
	CategoryServices    = "services"
)

// StructuralCategories is the configurator's step order.
var StructuralCategories = []string{
	CategoryCPU,
	CategoryGPU,
	CategoryMotherboard,
	CategoryRAM,
	CategoryStorage,
	CategoryCooling,
	CategoryCase,
	CategoryPSU,
}

// legacy categories still present in the catalog that never show up in the configurator
var excludedCategories = map[string]bool{
	"networking":  true,
	"sound-cards": true,
}

type Category struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Key returns the identifier the configurator uses for the category.
func (c Category) Key() string {
	if c.Slug != "" {
		return c.Slug
	}
	return c.ID
}

func IsExcludedCategory(key string) bool {
	return excludedCategories[key]
}

func IsStructuralCategory(key string) bool {
	for _, k := range StructuralCategories {
		if k == key {
			return true
		}
	}
	return false
}

// ConfiguratorCategories keeps the structural categories in step order followed
// by services, dropping excluded and unknown categories.
func ConfiguratorCategories(catalog []Category) []Category {
	byKey := make(map[string]Category, len(catalog))
	for _, c := range catalog {
		byKey[c.Key()] = c
	}

	var ordered []Category
	for _, key := range append(append([]string{}, StructuralCategories...), CategoryServices) {
		if IsExcludedCategory(key) {
			continue
		}
		if c, ok := byKey[key]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
