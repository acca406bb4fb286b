package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/funmap-service/internal/pkg/errors"
	"github.com/funmap-service/internal/pkg/utils"
	"github.com/funmap-service/internal/pkg/validator"
	"github.com/funmap-service/internal/usecase"
	"github.com/funmap-service/internal/usecase/dto"
)

// VenueHandler - обработчик запросов по развлекательным площадкам
type VenueHandler struct {
	venueUC *usecase.VenueUseCase
	logger  *zap.Logger
}

// NewVenueHandler - создание нового VenueHandler
func NewVenueHandler(venueUC *usecase.VenueUseCase, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{
		venueUC: venueUC,
		logger:  logger,
	}
}

// GetGeoJSON godoc
// @Summary Get all venues as GeoJSON
// @Description Возвращает полную FeatureCollection всех площадок (только точки)
// @Tags Venues
// @Produce json
// @Success 200 {object} domain.FeatureCollection
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/venues.geojson [get]
func (h *VenueHandler) GetGeoJSON(c *fiber.Ctx) error {
	data, err := h.venueUC.GetGeoJSON(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(data)
}

// SearchByRadius godoc
// @Summary Search venues within a radius
// @Description Поиск площадок в радиусе от точки с сортировкой по дистанции
// @Tags Venues
// @Accept json
// @Produce json
// @Param request body dto.RadiusVenueRequest true "Параметры поиска"
// @Success 200 {object} dto.RadiusVenueResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/venues/radius [post]
func (h *VenueHandler) SearchByRadius(c *fiber.Ctx) error {
	var req dto.RadiusVenueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"cause": err.Error(),
		}))
	}

	result, err := h.venueUC.SearchByRadius(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// GetCategories godoc
// @Summary Get venue categories
// @Description Распределение площадок по категориям и видам
// @Tags Venues
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /api/v1/venues/categories [get]
func (h *VenueHandler) GetCategories(c *fiber.Ctx) error {
	result, err := h.venueUC.GetCategories(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
