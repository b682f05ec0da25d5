package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/Aquilabot/KreaPC-Configurator/pkg/catalog"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/configurator"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/pcpartpicker_automation"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/scraper"
)

const (
	errorInvalidPayload = "Invalid request payload"
	errorInternal       = "Internal server error"
)

var badRequestErrors = []error{
	configurator.ErrUnknownCategory,
	configurator.ErrInvalidFilter,
	configurator.ErrNoCategory,
	configurator.ErrEmptyBuild,
	scraper.ErrInvalidURL,
	scraper.ErrInvalidRegion,
	pcpartpicker_automation.ErrInvalidRegion,
	pcpartpicker_automation.ErrNoLinks,
	pcpartpicker_automation.ErrInvalidLink,
}

func statusFor(err error) int {
	if errors.Is(err, configurator.ErrSessionNotFound) {
		return fiber.StatusNotFound
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	if errors.Is(err, configurator.ErrMissingPartsData) {
		return fiber.StatusUnprocessableEntity
	}

	var statusErr *catalog.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == fiber.StatusNotFound {
			return fiber.StatusNotFound
		}
		return fiber.StatusBadGateway
	}
	if errors.Is(err, catalog.ErrUnavailable) {
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// fail writes err as a JSON error body. Internal errors are logged and
// replaced by a generic message.
func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		message = errorInternal
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
