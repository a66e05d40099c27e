package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/saved-places-service/internal/delivery/http/middleware"
	"github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/pkg/utils"
	"github.com/saved-places-service/internal/pkg/validator"
	"github.com/saved-places-service/internal/usecase"
	"github.com/saved-places-service/internal/usecase/dto"
)

// PlaceHandler serves place ingestion and the cached-place inventory.
type PlaceHandler struct {
	ingestUC *usecase.IngestUseCase
	placeUC  *usecase.PlaceUseCase
	logger   *zap.Logger
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(ingestUC *usecase.IngestUseCase, placeUC *usecase.PlaceUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		ingestUC: ingestUC,
		placeUC:  placeUC,
		logger:   logger,
	}
}

// IngestPlace godoc
// @Summary Save a place for the requesting user
// @Description Accepts an upstream places-provider payload and saves it into one of the user's trips
// @Tags Places
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Requesting user id (UUID)"
// @Param request body dto.IngestPlaceRequest true "Place payload with optional trip and status"
// @Success 201 {object} utils.SuccessResponse{data=dto.SavedPlaceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse "Place already saved; existing entry in error details"
// @Router /api/v1/places [post]
func (h *PlaceHandler) IngestPlace(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.IngestPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.ingestUC.Ingest(c.Context(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// ListCachedPlaces godoc
// @Summary List all cached places
// @Description Returns every known place joined with its cached attributes; rows past the retention window are flagged stale
// @Tags Places
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CachedPlaceListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places [get]
func (h *PlaceHandler) ListCachedPlaces(c *fiber.Ctx) error {
	result, err := h.placeUC.ListCached(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// GetCachedPlace godoc
// @Summary Get one cached place
// @Description Returns a place with its cached attributes by upstream external id
// @Tags Places
// @Produce json
// @Param external_id path string true "Upstream external id"
// @Success 200 {object} utils.SuccessResponse{data=dto.CachedPlaceResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/places/{external_id} [get]
func (h *PlaceHandler) GetCachedPlace(c *fiber.Ctx) error {
	externalID := c.Params("external_id")
	if externalID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.placeUC.GetCached(c.Context(), externalID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
