package scraper

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
	"github.com/gofiber/fiber/v2/log"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/internal/utils"
)

var (
	ErrInvalidURL    = errors.New("invalid part URL")
	ErrInvalidRegion = errors.New("invalid region")

	partClassMappings = map[string]string{
		"Base":     ".td__base",
		"Promo":    ".td__promo",
		"Shipping": ".td__shipping",
		"Tax":      ".td__tax",
		"Total":    ".td__finalPrice",
	}

	// checked in order, so "cpu cooler" wins over "cpu"
	breadcrumbCategories = []struct {
		label    string
		category string
	}{
		{"case fan", ""},
		{"cpu cooler", models.CategoryCooling},
		{"cpu", models.CategoryCPU},
		{"video card", models.CategoryGPU},
		{"motherboard", models.CategoryMotherboard},
		{"memory", models.CategoryRAM},
		{"storage", models.CategoryStorage},
		{"power supply", models.CategoryPSU},
		{"case", models.CategoryCase},
	}
)

// Scraper imports parts from PCPartPicker so they can be checked by the
// compatibility rules like catalog parts.
type Scraper struct {
	Collector *colly.Collector
	randomUA  bool
}

type RedirectError struct {
	URL string
}

func (r RedirectError) Error() string {
	return r.URL
}

func linkURL(parts ...string) string {
	last := parts[len(parts)-1]
	if last == "" {
		return ""
	} else if strings.HasPrefix(last, "http") {
		return last
	}
	return strings.Join(parts, "")
}

func buildPCPartPickerURL(searchTerm string, region string) string {
	return utils.BuildPrefixURL(region) + "search?q=" + url.QueryEscape(searchTerm)
}

// NewScraper creates a scraper whose requests run asynchronously and may
// revisit URLs.
func NewScraper() Scraper {
	col := colly.NewCollector()
	col.Async = true
	col.AllowURLRevisit = true

	return Scraper{
		Collector: col,
	}
}

func (scrap *Scraper) RandomizeUserAgent() {
	scrap.randomUA = true
}

// collector returns a fresh clone per call so callbacks of earlier requests
// never fire again.
func (scrap *Scraper) collector() *colly.Collector {
	col := scrap.Collector.Clone()
	if scrap.randomUA {
		extensions.RandomUserAgent(col)
		col.OnRequest(func(r *colly.Request) {
			log.Debug("User-Agent:", r.Headers.Get("User-Agent"))
		})
	}
	return col
}

// SearchPCParts runs a PCPartPicker search in the given region. A search that
// lands on a single product page returns a RedirectError with that URL.
func (scrap *Scraper) SearchPCParts(searchTerm string, region string) ([]models.SearchPart, error) {
	fullURL := buildPCPartPickerURL(searchTerm, region)

	if !utils.MatchPCPPURL(fullURL) {
		return nil, ErrInvalidRegion
	}

	col := scrap.collector()
	searchResults := []models.SearchPart{}

	var reqURL string

	col.OnHTML(".pageTitle", func(h *colly.HTMLElement) {
		reqURL = h.Request.URL.String()
	})

	col.OnHTML(".search-results__pageContent .block", func(elem *colly.HTMLElement) {
		elem.ForEach(".list-unstyled li", func(i int, searchResult *colly.HTMLElement) {
			searchResultURL := linkURL("https://", elem.Request.URL.Host, searchResult.ChildAttr(".search_results--price a", "href"))
			extractedPrice := searchResult.ChildText(".search_results--price a")

			price, curr, _ := models.ParsePrice(extractedPrice)

			extractedVendorName := ""

			if extractedPrice != "" {
				extractedVendorName = utils.ExtractVendorName(searchResultURL)
			}

			searchResults = append(searchResults, models.SearchPart{
				Name:  searchResult.ChildText(".search_results--link a"),
				Image: linkURL("https:", searchResult.ChildAttr(".search_results--img a img", "src")),
				URL:   linkURL("https://", elem.Request.URL.Host, searchResult.ChildAttr(".search_results--link a", "href")),
				Vendor: models.Vendor{
					URL:  searchResultURL,
					Name: extractedVendorName,
					Price: models.Price{
						Total:       price,
						TotalString: extractedPrice,
						Currency:    curr,
					},
					InStock: len(extractedPrice) > 0,
				},
			})
		})
	})

	err := col.Visit(fullURL)
	col.Wait()

	if err != nil {
		return nil, err
	}

	if utils.MatchProductURL(reqURL) {
		return nil, &RedirectError{
			URL: reqURL,
		}
	}

	return searchResults, nil
}

// GetPart imports a PCPartPicker product page as a catalog part.
func (scrap *Scraper) GetPart(URL string) (*models.Part, error) {
	if !utils.MatchProductURL(URL) {
		return nil, ErrInvalidURL
	}
	return scrap.scrapePart(URL)
}

func (scrap *Scraper) scrapePart(URL string) (*models.Part, error) {
	col := scrap.collector()

	var name, breadcrumb string
	var images, scriptImages []string
	var vendors []models.Vendor
	var specs []models.PartSpec

	col.OnHTML(".wrapper__pageTitle", func(title *colly.HTMLElement) {
		name = title.ChildText(".pageTitle")
		breadcrumb = title.ChildText(".breadcrumb")
	})

	col.OnHTML(".single_image_gallery_box", func(image *colly.HTMLElement) {
		images = append(images, linkURL("https:", image.ChildAttr("a img", "src")))
	})

	col.OnHTML("script", func(script *colly.HTMLElement) {
		scriptImages = utils.FindScriptImages(script, scriptImages)
	})

	col.OnHTML("#prices table tbody tr", func(vendor *colly.HTMLElement) {
		if vendor.Attr("class") != "" {
			return
		}

		price := models.Price{}

		for k, v := range partClassMappings {
			val, curr, _ := models.ParsePrice(vendor.ChildText(v))

			switch k {
			case "Base":
				price.Base = val
			case "Promo":
				price.Discounts = val
			case "Shipping":
				price.Shipping = val
			case "Tax":
				price.Tax = val
			case "Total":
				price.Total = val
				price.Currency = curr
				price.TotalString = vendor.ChildText(v)
			}
		}

		vendors = append(vendors, models.Vendor{
			Name:    vendor.ChildAttr(".td__logo a img", "alt"),
			Image:   linkURL("https:", vendor.ChildAttr(".td__logo a img", "src")),
			InStock: vendor.ChildText(".td__availability") == "In stock",
			URL:     linkURL("https://", vendor.Request.URL.Host, vendor.ChildAttr(".td__finalPrice a", "href")),
			Price:   price,
		})
	})

	col.OnHTML(".specs", func(specsContainer *colly.HTMLElement) {
		if len(specs) > 0 {
			return
		}
		specsContainer.ForEach(".group", func(i int, spec *colly.HTMLElement) {
			var values []string

			spec.ForEach(".group__content li", func(i int, specValue *colly.HTMLElement) {
				values = append(values, strings.TrimSpace(specValue.Text))
			})

			if len(values) == 0 {
				values = []string{spec.ChildText(".group__content")}
			}

			specs = append(specs, models.PartSpec{
				Name:   spec.ChildText(".group__title"),
				Values: values,
			})
		})
	})

	err := col.Visit(URL)
	col.Wait()

	if err != nil {
		return nil, err
	}

	if len(images) == 0 {
		images = scriptImages
	}

	part := &models.Part{
		ID:             productID(URL),
		Name:           name,
		CategoryID:     categoryFromBreadcrumb(breadcrumb),
		Specifications: specBag(specs),
		Images:         images,
		SourceURL:      URL,
	}
	if cheapest, ok := models.CheapestInStock(vendors); ok {
		part.Price = cheapest.Price.Total
		part.Stock = 1
	}
	return part, nil
}

// specBag flattens the spec groups into the catalog's key/value shape.
func specBag(specs []models.PartSpec) map[string]string {
	bag := make(map[string]string, len(specs))
	for _, s := range specs {
		var values []string
		for _, v := range s.Values {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if s.Name == "" || len(values) == 0 {
			continue
		}
		bag[s.Name] = strings.Join(values, ", ")
	}
	return bag
}

func categoryFromBreadcrumb(breadcrumb string) string {
	lower := strings.ToLower(breadcrumb)
	for _, c := range breadcrumbCategories {
		if strings.Contains(lower, c.label) {
			return c.category
		}
	}
	return ""
}

// productID derives a stable id from ".../product/<id>/<slug>".
func productID(URL string) string {
	_, rest, ok := strings.Cut(URL, "/product/")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, "/")
	return "pcpp-" + id
}
