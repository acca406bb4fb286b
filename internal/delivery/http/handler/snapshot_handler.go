package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/funmap-service/internal/pkg/utils"
	"github.com/funmap-service/internal/usecase"
)

// SnapshotHandler - обработчик запросов по снимкам данных
type SnapshotHandler struct {
	venueUC    *usecase.VenueUseCase
	snapshotUC *usecase.SnapshotUseCase
	logger     *zap.Logger
}

// NewSnapshotHandler - создание нового SnapshotHandler
func NewSnapshotHandler(venueUC *usecase.VenueUseCase, snapshotUC *usecase.SnapshotUseCase, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		venueUC:    venueUC,
		snapshotUC: snapshotUC,
		logger:     logger,
	}
}

// GetLatest godoc
// @Summary Get latest snapshot metadata
// @Description Метаданные последней успешной загрузки из Overpass
// @Tags Snapshots
// @Produce json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/snapshots/latest [get]
func (h *SnapshotHandler) GetLatest(c *fiber.Ctx) error {
	result, err := h.venueUC.GetLatestSnapshot(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Refresh godoc
// @Summary Trigger a data refresh
// @Description Запускает полный цикл обновления: Overpass, конвертация, замена данных
// @Tags Snapshots
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/refresh [post]
func (h *SnapshotHandler) Refresh(c *fiber.Ctx) error {
	h.logger.Info("Manual refresh requested", zap.String("ip", c.IP()))

	result, err := h.snapshotUC.Refresh(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
