// Package api exposes build sessions, the stateless compatibility check and
// the PCPartPicker import/export over HTTP.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/Aquilabot/KreaPC-Configurator/internal/models"
	"github.com/Aquilabot/KreaPC-Configurator/internal/utils"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/catalog"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/compatibility"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/configurator"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/pcpartpicker_automation"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/power"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/scraper"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/selection"
)

// Importer finds and imports parts from PCPartPicker.
type Importer interface {
	SearchPCParts(searchTerm string, region string) ([]models.SearchPart, error)
	GetPart(URL string) (*models.Part, error)
}

// ExportFunc turns a build's PCPartPicker links into a shareable part list.
type ExportFunc func(region string, links []string) (*pcpartpicker_automation.Export, error)

type Handler struct {
	sessions *configurator.Sessions
	catalog  catalog.Catalog
	importer Importer
	export   ExportFunc
	region   string
}

func NewHandler(sessions *configurator.Sessions, cat catalog.Catalog, importer Importer, export ExportFunc, region string) *Handler {
	if export == nil {
		export = pcpartpicker_automation.ExportBuild
	}
	return &Handler{
		sessions: sessions,
		catalog:  cat,
		importer: importer,
		export:   export,
		region:   region,
	}
}

type buildResponse struct {
	models.BuildSummary
	Categories      []models.Category `json:"categories"`
	CurrentCategory *models.Category  `json:"currentCategory,omitempty"`
}

func newBuildResponse(cfg *configurator.Configurator) buildResponse {
	resp := buildResponse{
		BuildSummary: cfg.Summary(),
		Categories:   cfg.Categories(),
	}
	if cat, ok := cfg.CurrentCategory(); ok {
		resp.CurrentCategory = &cat
	}
	return resp
}

// parseBody decodes and validates an optional JSON body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(out); err != nil {
			return err
		}
	}
	return utils.ValidateStruct(out)
}

func (h *Handler) session(c *fiber.Ctx) (*configurator.Configurator, error) {
	return h.sessions.Get(c.Params("id"))
}

// loadFailure reports errors that only mean the catalog could not serve the
// part list. The list is then returned empty with its LoadFailed flag set.
func loadFailure(err error) bool {
	var statusErr *catalog.StatusError
	return errors.Is(err, catalog.ErrUnavailable) || errors.As(err, &statusErr)
}

func (h *Handler) Categories(c *fiber.Ctx) error {
	cats, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.ConfiguratorCategories(cats))
}

func (h *Handler) CreateBuild(c *fiber.Ctx) error {
	cfg := h.sessions.Create()
	if err := cfg.LoadCategories(c.UserContext()); err != nil {
		log.Warnf("session %s: using the default categories", cfg.ID())
	}
	return c.Status(fiber.StatusCreated).JSON(newBuildResponse(cfg))
}

func (h *Handler) GetBuild(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(newBuildResponse(cfg))
}

func (h *Handler) DeleteBuild(c *fiber.Ctx) error {
	if err := h.sessions.Close(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SelectPart(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req SelectPartRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}

	part := req.Part
	if req.URL != "" {
		if part, err = h.importer.GetPart(req.URL); err != nil {
			return fail(c, err)
		}
	}
	if part == nil || part.ID == "" {
		return badRequest(c, "a part with an id or a PCPartPicker url is required")
	}

	if err := cfg.Select(c.Params("category"), *part); err != nil {
		return fail(c, err)
	}
	return c.JSON(newBuildResponse(cfg))
}

func (h *Handler) DeselectPart(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	cfg.Deselect(c.Params("category"))
	return c.JSON(newBuildResponse(cfg))
}

// partList answers with the first page after a reload, tolerating a catalog
// that could not serve the list.
func partList(c *fiber.Ctx, cfg *configurator.Configurator, loadErr error) error {
	if loadErr != nil && !loadFailure(loadErr) {
		return fail(c, loadErr)
	}
	list, err := cfg.Page(c.QueryInt("page", 1))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *Handler) Navigate(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return partList(c, cfg, cfg.Goto(c.UserContext(), c.Params("category")))
}

func (h *Handler) Parts(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return partList(c, cfg, nil)
}

func (h *Handler) Filters(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req FilterRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}

	ctx := c.UserContext()
	switch {
	case req.Clear:
		err = cfg.ClearFilters(ctx)
	case req.Quick != "":
		err = cfg.ApplyQuickFilter(ctx, req.Quick)
	case req.Toggle != "":
		err = cfg.ToggleFilter(ctx, req.Toggle)
	case req.Filters != nil:
		err = cfg.SetFilters(ctx, req.Filters)
	}
	if err == nil && (req.Search != nil || req.MinPrice != nil || req.MaxPrice != nil) {
		search := ""
		if req.Search != nil {
			search = *req.Search
		}
		err = cfg.SetSearch(ctx, search, req.MinPrice, req.MaxPrice)
	}
	return partList(c, cfg, err)
}

func (h *Handler) Save(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req SaveRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}

	saved, err := cfg.Save(c.UserContext(), req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"configuration": saved,
		"build":         newBuildResponse(cfg),
	})
}

func (h *Handler) Load(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req LoadRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}

	if err := cfg.Load(c.UserContext(), req.ConfigurationID); err != nil {
		return fail(c, err)
	}
	return c.JSON(newBuildResponse(cfg))
}

func (h *Handler) Cart(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	if err := cfg.AddToCart(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"items": cfg.LineItems()})
}

func (h *Handler) Order(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	order, err := cfg.CreateOrder(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	cfg, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	var req ExportRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}
	region := req.Region
	if region == "" {
		region = h.region
	}

	export, err := h.export(region, cfg.SourceLinks())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(export)
}

// Compatibility evaluates a posted selection without opening a session.
func (h *Handler) Compatibility(c *fiber.Ctx) error {
	var req CompatibilityRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}

	sel := selection.New()
	for _, sp := range req.Parts {
		if models.IsExcludedCategory(sp.Category) ||
			(!models.IsStructuralCategory(sp.Category) && sp.Category != models.CategoryServices) {
			return fail(c, configurator.ErrUnknownCategory)
		}
		sel.Select(sp.Category, sp.Part)
	}

	total := power.Estimate(sel)
	issues := compatibility.EvaluateWithTotal(sel, total)
	return c.JSON(models.BuildSummary{
		Parts:          sel.Parts(),
		Price:          sel.TotalPrice(),
		Wattage:        total,
		RecommendedPSU: power.Recommended(total).String(),
		Compatibility:  issues,
		PowerWarnings:  compatibility.PowerIssues(issues),
	})
}

// Search looks parts up on PCPartPicker. A search that lands on a single
// product answers with that imported part.
func (h *Handler) Search(c *fiber.Ctx) error {
	var req SearchRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}
	if req.Region == "" {
		req.Region = h.region
	}

	searchResults, err := h.importer.SearchPCParts(req.Query, req.Region)
	if err != nil {
		var redirectError *scraper.RedirectError
		if errors.As(err, &redirectError) {
			part, err := h.importer.GetPart(redirectError.URL)
			if err != nil {
				return fail(c, err)
			}
			return c.JSON(part)
		}
		return fail(c, err)
	}

	return c.JSON(searchResults)
}

func (h *Handler) GetPart(c *fiber.Ctx) error {
	var req GetPartRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, errorInvalidPayload)
	}

	part, err := h.importer.GetPart(req.URL)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(part)
}
