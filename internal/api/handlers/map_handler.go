package handlers

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/internal/api/presenters"
	"Recipe-Marketplace/pkg/location"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MapHandler interface {
		GetLocations(c *fiber.Ctx) error
		GetUserCard(c *fiber.Ctx) error
		GetMyLocation(c *fiber.Ctx) error
		UpsertMyLocation(c *fiber.Ctx) error
	}

	mapHandler struct {
		locationService location.LocationService
		validator       *validator.Validate
	}
)

func NewMapHandler(locationService location.LocationService, validator *validator.Validate) MapHandler {
	return &mapHandler{
		locationService: locationService,
		validator:       validator,
	}
}

func (h *mapHandler) GetLocations(c *fiber.Ctx) error {
	res, err := h.locationService.GetLocations(c.Context(), c.Query("q"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLocations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLocations)
}

func (h *mapHandler) GetUserCard(c *fiber.Ctx) error {
	res, err := h.locationService.GetUserCard(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetUserCard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserCard)
}

func (h *mapHandler) GetMyLocation(c *fiber.Ctx) error {
	res, err := h.locationService.GetMyLocation(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetLocations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLocations)
}

func (h *mapHandler) UpsertMyLocation(c *fiber.Ctx) error {
	req := new(domain.UpsertLocationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertLocation, err)
	}

	res, err := h.locationService.UpsertLocation(c.Context(), *req, currentSession(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpsertLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpsertLocation)
}
