package api

import "github.com/gofiber/fiber/v2"

func (h *Handler) Register(router fiber.Router) {
	router.Get("/categories", h.Categories)
	router.Post("/compatibility", h.Compatibility)

	router.Post("/search", h.Search)
	router.Post("/getPart", h.GetPart)

	builds := router.Group("/builds")
	builds.Post("/", h.CreateBuild)
	builds.Get("/:id", h.GetBuild)
	builds.Delete("/:id", h.DeleteBuild)

	builds.Put("/:id/parts/:category", h.SelectPart)
	builds.Delete("/:id/parts/:category", h.DeselectPart)
	builds.Get("/:id/parts", h.Parts)

	builds.Post("/:id/categories/:category", h.Navigate)
	builds.Post("/:id/filters", h.Filters)

	builds.Post("/:id/save", h.Save)
	builds.Post("/:id/load", h.Load)
	builds.Post("/:id/cart", h.Cart)
	builds.Post("/:id/order", h.Order)
	builds.Post("/:id/export", h.Export)
}
