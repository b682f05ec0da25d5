package models

type Vendor struct {
	Name    string
	Image   string
	InStock bool
	Price   Price
	URL     string
}

type SearchPart struct {
	Name   string
	Image  string
	URL    string
	Vendor Vendor
}

type PartSpec struct {
	Name   string
	Values []string
}

// PowerRecord is the typed sub-record the catalog attaches to cpu, gpu, ram and
// storage parts. A zero PowerConsumption means the catalog does not know it.
type PowerRecord struct {
	PowerConsumption float64 `json:"powerConsumption"`
}

// Part is a purchasable component as served by the catalog API.
type Part struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	DiscountPrice  *float64          `json:"discountPrice,omitempty"`
	CategoryID     string            `json:"categoryId"`
	Specifications map[string]string `json:"specifications,omitempty"`
	CPU            *PowerRecord      `json:"cpu,omitempty"`
	GPU            *PowerRecord      `json:"gpu,omitempty"`
	RAM            *PowerRecord      `json:"ram,omitempty"`
	Storage        *PowerRecord      `json:"storage,omitempty"`
	Stock          int               `json:"stock"`
	Images         []string          `json:"images,omitempty"`
	SourceURL      string            `json:"sourceUrl,omitempty"`
}

// EffectivePrice returns the discount price when it is present and lower than
// the list price.
func (p Part) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Part) Available() bool {
	return p.Stock > 0
}

// PowerConsumption returns the authoritative wattage from whichever typed
// sub-record the part carries, or 0 when none is known.
func (p Part) PowerConsumption() float64 {
	for _, rec := range []*PowerRecord{p.CPU, p.GPU, p.RAM, p.Storage} {
		if rec != nil && rec.PowerConsumption > 0 {
			return rec.PowerConsumption
		}
	}
	return 0
}

// CompatibilityInfo is a single advisory finding about the current build.
type CompatibilityInfo struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

type LineItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// BuildSummary is what the presentation layer renders for a build session.
type BuildSummary struct {
	ID              string              `json:"id"`
	Name            string              `json:"name,omitempty"`
	ConfigurationID string              `json:"configurationId,omitempty"`
	Parts           map[string][]Part   `json:"parts"`
	Price           float64             `json:"price"`
	Wattage         int                 `json:"wattage"`
	RecommendedPSU  string              `json:"recommendedPsu"`
	Compatibility   []CompatibilityInfo `json:"compatibility"`
	PowerWarnings   []CompatibilityInfo `json:"powerWarnings"`
}
