// Package configurator drives a build session: it applies selection changes,
// keeps the derived compatibility findings and power figures current, and
// navigates the categories and their part lists.
package configurator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/catalog"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/compatibility"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/filters"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/power"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/selection"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/specs"
)

const defaultPageSize = 12

var (
	ErrUnknownCategory  = errors.New("category is not part of the configurator")
	ErrEmptyBuild       = errors.New("build has no parts")
	ErrNoCategory       = errors.New("no category is active")
	ErrMissingPartsData = errors.New("saved configuration did not include part details")
	ErrInvalidFilter    = errors.New("invalid filter")
)

type Options struct {
	PageSize int
	Naming   NamingPolicy
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.Naming == nil {
		o.Naming = TimestampNaming
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PartList is the state of the active category's part list.
type PartList struct {
	Category     models.Category       `json:"category"`
	Parts        []models.Part         `json:"parts"`
	Page         PageInfo              `json:"page"`
	Groups       []filters.Group       `json:"groups"`
	QuickFilters []filters.QuickFilter `json:"quickFilters"`
	Filters      filters.State         `json:"filters"`
	LoadFailed   bool                  `json:"loadFailed"`
}

type Configurator struct {
	mu sync.Mutex

	id      string
	catalog catalog.Catalog
	opts    Options

	sel        *selection.Selection
	categories []models.Category
	current    int

	parts      []models.Part
	loadFailed bool
	filters    map[string]*filters.State
	search     string
	minPrice   *float64
	maxPrice   *float64
	seq        uint64

	derivedAt uint64
	derived   bool
	total     int
	issues    []models.CompatibilityInfo

	name            string
	configurationID string
}

func defaultCategories() []models.Category {
	var cats []models.Category
	for _, key := range append(append([]string{}, models.StructuralCategories...), models.CategoryServices) {
		cats = append(cats, models.Category{ID: key, Slug: key, Name: key})
	}
	return cats
}

func New(id string, cat catalog.Catalog, opts Options) *Configurator {
	return &Configurator{
		id:         id,
		catalog:    cat,
		opts:       opts.withDefaults(),
		sel:        selection.New(),
		categories: defaultCategories(),
		current:    -1,
		filters:    map[string]*filters.State{},
	}
}

func (c *Configurator) ID() string {
	return c.id
}

// LoadCategories replaces the default step list with the catalog's categories,
// excluded and unknown ones removed.
func (c *Configurator) LoadCategories(ctx context.Context) error {
	cats, err := c.catalog.Categories(ctx)
	if err != nil {
		log.Warnf("session %s: loading categories failed: %v", c.id, err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ordered := models.ConfiguratorCategories(cats); len(ordered) > 0 {
		c.categories = ordered
		c.current = -1
	}
	return nil
}

func (c *Configurator) Categories() []models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Category(nil), c.categories...)
}

func (c *Configurator) CurrentCategory() (models.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentCategory()
}

func (c *Configurator) currentCategory() (models.Category, bool) {
	if c.current < 0 || c.current >= len(c.categories) {
		return models.Category{}, false
	}
	return c.categories[c.current], true
}

// categoryKey maps a part's category id onto the configurator key.
func (c *Configurator) categoryKey(categoryID string) string {
	for _, cat := range c.categories {
		if cat.ID == categoryID || cat.Key() == categoryID {
			return cat.Key()
		}
	}
	return categoryID
}

// Goto makes a category active and loads its parts.
func (c *Configurator) Goto(ctx context.Context, key string) error {
	c.mu.Lock()
	idx := -1
	for i, cat := range c.categories {
		if cat.Key() == key || cat.ID == key {
			idx = i
			break
		}
	}
	if idx < 0 || models.IsExcludedCategory(key) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownCategory, key)
	}
	c.current = idx
	c.parts = nil
	c.loadFailed = false
	c.mu.Unlock()

	return c.LoadParts(ctx)
}

// Next moves to the following category; it stays on the last one.
func (c *Configurator) Next(ctx context.Context) error {
	return c.step(ctx, 1)
}

func (c *Configurator) Previous(ctx context.Context) error {
	return c.step(ctx, -1)
}

func (c *Configurator) step(ctx context.Context, delta int) error {
	c.mu.Lock()
	if len(c.categories) == 0 {
		c.mu.Unlock()
		return ErrNoCategory
	}
	idx := c.current + delta
	if c.current < 0 {
		idx = 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.categories) {
		idx = len(c.categories) - 1
	}
	key := c.categories[idx].Key()
	c.mu.Unlock()

	return c.Goto(ctx, key)
}

func (c *Configurator) filterState(key string) *filters.State {
	st, ok := c.filters[key]
	if !ok {
		st = &filters.State{}
		c.filters[key] = st
	}
	return st
}

// LoadParts fetches the active category's parts. Responses to requests that
// were superseded by a newer one are dropped.
func (c *Configurator) LoadParts(ctx context.Context) error {
	c.mu.Lock()
	cat, ok := c.currentCategory()
	if !ok {
		c.mu.Unlock()
		return ErrNoCategory
	}
	c.seq++
	seq := c.seq
	query := catalog.Query{
		Category: cat.Key(),
		MinPrice: c.minPrice,
		MaxPrice: c.maxPrice,
		Search:   c.search,
		Filters:  append([]string(nil), c.filterState(cat.Key()).Filters...),
	}
	c.mu.Unlock()

	parts, err := c.catalog.Parts(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		log.Debugf("session %s: dropping stale %s response (request %d, latest %d)", c.id, cat.Key(), seq, c.seq)
		return nil
	}
	if err != nil {
		log.Warnf("session %s: loading %s parts failed: %v", c.id, cat.Key(), err)
		c.parts = nil
		c.loadFailed = true
		return err
	}
	c.parts = parts
	c.loadFailed = false
	return nil
}

// SetSearch changes the free-text search and price bounds and reloads.
func (c *Configurator) SetSearch(ctx context.Context, search string, minPrice, maxPrice *float64) error {
	c.mu.Lock()
	c.search = strings.TrimSpace(search)
	c.minPrice, c.maxPrice = minPrice, maxPrice
	c.mu.Unlock()
	return c.LoadParts(ctx)
}

func (c *Configurator) updateFilters(ctx context.Context, update func(key string, st *filters.State) bool) error {
	c.mu.Lock()
	cat, ok := c.currentCategory()
	if !ok {
		c.mu.Unlock()
		return ErrNoCategory
	}
	if !update(cat.Key(), c.filterState(cat.Key())) {
		c.mu.Unlock()
		return fmt.Errorf("%w for %s", ErrInvalidFilter, cat.Key())
	}
	c.mu.Unlock()
	return c.LoadParts(ctx)
}

func (c *Configurator) ApplyQuickFilter(ctx context.Context, quickID string) error {
	return c.updateFilters(ctx, func(key string, st *filters.State) bool {
		return st.SelectQuick(key, quickID)
	})
}

func (c *Configurator) ToggleFilter(ctx context.Context, filter string) error {
	return c.updateFilters(ctx, func(_ string, st *filters.State) bool {
		return st.Toggle(filter)
	})
}

func (c *Configurator) SetFilters(ctx context.Context, list []string) error {
	return c.updateFilters(ctx, func(_ string, st *filters.State) bool {
		st.Set(list)
		return true
	})
}

func (c *Configurator) ClearFilters(ctx context.Context) error {
	return c.updateFilters(ctx, func(_ string, st *filters.State) bool {
		st.Clear()
		return true
	})
}

// visibleParts narrows the loaded list by the case and motherboard already
// selected.
func (c *Configurator) visibleParts(key string) []models.Part {
	var fits func(p *models.Part) bool

	switch key {
	case models.CategoryMotherboard:
		pcCase, ok := c.sel.Get(models.CategoryCase)
		caseText, ok2 := specs.Get(pcCase, specs.CaseType)
		if ok && ok2 {
			fits = func(p *models.Part) bool {
				board, ok := specs.Get(p, specs.FormFactor)
				return !ok || compatibility.CaseFits(caseText, board)
			}
		}
	case models.CategoryCase:
		board, ok := c.sel.Get(models.CategoryMotherboard)
		boardText, ok2 := specs.Get(board, specs.FormFactor)
		if ok && ok2 {
			fits = func(p *models.Part) bool {
				caseText, ok := specs.Get(p, specs.CaseType)
				return !ok || compatibility.CaseFits(caseText, boardText)
			}
		}
	}

	visible := make([]models.Part, 0, len(c.parts))
	for i := range c.parts {
		if fits == nil || fits(&c.parts[i]) {
			visible = append(visible, c.parts[i])
		}
	}
	return visible
}

// Page returns one page (1-based) of the active category's visible parts
// along with its filter vocabulary.
func (c *Configurator) Page(page int) (PartList, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cat, ok := c.currentCategory()
	if !ok {
		return PartList{}, ErrNoCategory
	}
	key := cat.Key()
	visible := c.visibleParts(key)

	size := c.opts.PageSize
	totalPages := (len(visible) + size - 1) / size
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > len(visible) {
		start = len(visible)
	}
	end := start + size
	if end > len(visible) {
		end = len(visible)
	}

	state := *c.filterState(key)
	state.Filters = append([]string{}, state.Filters...)

	return PartList{
		Category:     cat,
		Parts:        visible[start:end],
		Page:         PageInfo{Page: page, PageSize: size, Total: len(visible), TotalPages: totalPages},
		Groups:       filters.BuildGroups(key, c.parts),
		QuickFilters: filters.QuickFilters(key),
		Filters:      state,
		LoadFailed:   c.loadFailed,
	}, nil
}

// Select adds a part to the build under its category (services toggle).
func (c *Configurator) Select(categoryID string, part models.Part) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.categoryKey(categoryID)
	if key == "" {
		key = c.categoryKey(part.CategoryID)
	}
	if models.IsExcludedCategory(key) || (!models.IsStructuralCategory(key) && key != models.CategoryServices) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, key)
	}
	c.sel.Select(key, part)
	return nil
}

func (c *Configurator) Deselect(categoryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Deselect(c.categoryKey(categoryID))
}

// Reset empties the build and forgets the saved configuration it came from.
func (c *Configurator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Clear()
	c.name = ""
	c.configurationID = ""
}

func (c *Configurator) derive() {
	if c.derived && c.derivedAt == c.sel.Version() {
		return
	}
	c.total = power.Estimate(c.sel)
	c.issues = compatibility.EvaluateWithTotal(c.sel, c.total)
	c.derivedAt = c.sel.Version()
	c.derived = true
}

func (c *Configurator) Issues() []models.CompatibilityInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.derive()
	return append([]models.CompatibilityInfo{}, c.issues...)
}

func (c *Configurator) Wattage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.derive()
	return c.total
}

func (c *Configurator) RecommendedPSU() power.Tier {
	return power.Recommended(c.Wattage())
}

func (c *Configurator) Summary() models.BuildSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.derive()

	issues := append([]models.CompatibilityInfo{}, c.issues...)
	return models.BuildSummary{
		ID:              c.id,
		Name:            c.name,
		ConfigurationID: c.configurationID,
		Parts:           c.sel.Parts(),
		Price:           c.sel.TotalPrice(),
		Wattage:         c.total,
		RecommendedPSU:  power.Recommended(c.total).String(),
		Compatibility:   issues,
		PowerWarnings:   compatibility.PowerIssues(issues),
	}
}

func (c *Configurator) LineItems() []models.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.LineItems()
}

// SourceLinks lists the PCPartPicker pages of imported parts in the build.
func (c *Configurator) SourceLinks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var links []string
	for _, key := range c.sel.Categories() {
		for _, p := range c.sel.All(key) {
			if p.SourceURL != "" {
				links = append(links, p.SourceURL)
			}
		}
	}
	return links
}

// Save creates or updates the configuration. An empty name falls back to the
// one already saved, then to the naming policy.
func (c *Configurator) Save(ctx context.Context, name string) (*catalog.Configuration, error) {
	c.mu.Lock()
	items := c.sel.LineItems()
	if len(items) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyBuild
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.name
	}
	if name == "" {
		name = c.opts.Naming(c.opts.Now())
	}
	cfg := catalog.Configuration{ID: c.configurationID, Name: name, Items: items}
	c.mu.Unlock()

	saved, err := c.catalog.SaveConfiguration(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}

	c.mu.Lock()
	c.configurationID = saved.ID
	c.name = saved.Name
	c.mu.Unlock()
	log.Infof("session %s: saved configuration %s (%d items)", c.id, saved.ID, len(items))
	return saved, nil
}

// Load replaces the build with a saved configuration.
func (c *Configurator) Load(ctx context.Context, configurationID string) error {
	cfg, err := c.catalog.Configuration(ctx, configurationID)
	if err != nil {
		return fmt.Errorf("loading configuration %s: %w", configurationID, err)
	}
	if len(cfg.Parts) == 0 && len(cfg.Items) > 0 {
		return ErrMissingPartsData
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.sel.Clear()
	for _, p := range cfg.Parts {
		key := c.categoryKey(p.CategoryID)
		if models.IsExcludedCategory(key) {
			continue
		}
		if !models.IsStructuralCategory(key) && key != models.CategoryServices {
			log.Warnf("session %s: skipping part %s with unknown category %s", c.id, p.ID, p.CategoryID)
			continue
		}
		c.sel.Select(key, p)
	}
	c.configurationID = cfg.ID
	if c.configurationID == "" {
		c.configurationID = configurationID
	}
	c.name = cfg.Name
	return nil
}

func (c *Configurator) AddToCart(ctx context.Context) error {
	items := c.LineItems()
	if len(items) == 0 {
		return ErrEmptyBuild
	}
	return c.catalog.AddToCart(ctx, items)
}

// CreateOrder orders the saved configuration, saving the build first when it
// has not been saved yet.
func (c *Configurator) CreateOrder(ctx context.Context) (*catalog.Order, error) {
	c.mu.Lock()
	configurationID := c.configurationID
	c.mu.Unlock()

	if configurationID == "" {
		saved, err := c.Save(ctx, "")
		if err != nil {
			return nil, err
		}
		configurationID = saved.ID
	}
	return c.catalog.CreateOrder(ctx, configurationID)
}
