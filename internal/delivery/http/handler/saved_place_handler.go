package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saved-places-service/internal/delivery/http/middleware"
	"github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/pkg/utils"
	"github.com/saved-places-service/internal/pkg/validator"
	"github.com/saved-places-service/internal/usecase"
	"github.com/saved-places-service/internal/usecase/dto"
)

// SavedPlaceHandler serves the saved-place ledger: listing, proximity
// queries, updates and removal.
type SavedPlaceHandler struct {
	savedUC  *usecase.SavedPlaceUseCase
	nearbyUC *usecase.NearbyUseCase
	logger   *zap.Logger
}

// NewSavedPlaceHandler creates a new SavedPlaceHandler.
func NewSavedPlaceHandler(savedUC *usecase.SavedPlaceUseCase, nearbyUC *usecase.NearbyUseCase, logger *zap.Logger) *SavedPlaceHandler {
	return &SavedPlaceHandler{
		savedUC:  savedUC,
		nearbyUC: nearbyUC,
		logger:   logger,
	}
}

// ListSavedPlaces godoc
// @Summary List the user's saved places
// @Description Returns the user's saved places joined with their places and cached attributes, optionally filtered by status and trip
// @Tags SavedPlaces
// @Produce json
// @Param X-User-ID header string true "Requesting user id (UUID)"
// @Param status query string false "Filter by status" Enums(WISHLIST, VISITED, SKIPPED)
// @Param trip_id query string false "Filter by trip id (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SavedPlaceListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/saved-places [get]
func (h *SavedPlaceHandler) ListSavedPlaces(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ListSavedPlacesRequest
	if status := c.Query("status"); status != "" {
		req.Status = &status
	}
	if raw := c.Query("trip_id"); raw != "" {
		tripID, err := uuid.Parse(raw)
		if err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"trip_id": "must be a UUID",
			}))
		}
		req.TripID = &tripID
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.savedUC.List(c.Context(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// FindNearby godoc
// @Summary Find saved places near a position
// @Description Returns the user's saved places within the given radius, nearest first, with distances in km and meters
// @Tags SavedPlaces
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Requesting user id (UUID)"
// @Param request body dto.NearbyRequest true "Position, radius in meters and optional status filter"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/saved-places/nearby [post]
func (h *SavedPlaceHandler) FindNearby(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.NearbyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.nearbyUC.FindNearby(c.Context(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// UpdateSavedPlace godoc
// @Summary Update a saved place
// @Description Partially updates a saved place's status and notes; visited_at follows status transitions
// @Tags SavedPlaces
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Requesting user id (UUID)"
// @Param id path string true "Saved place id (UUID)"
// @Param request body dto.UpdateSavedPlaceRequest true "Fields to update"
// @Success 200 {object} utils.SuccessResponse{data=dto.SavedPlaceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/saved-places/{id} [patch]
func (h *SavedPlaceHandler) UpdateSavedPlace(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": "must be a UUID",
		}))
	}

	var req dto.UpdateSavedPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.savedUC.Update(c.Context(), userID, id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// DeleteSavedPlace godoc
// @Summary Remove a saved place
// @Description Removes a saved place from the user's ledger; the place and its cache stay
// @Tags SavedPlaces
// @Produce json
// @Param X-User-ID header string true "Requesting user id (UUID)"
// @Param id path string true "Saved place id (UUID)"
// @Success 204 "Removed"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/saved-places/{id} [delete]
func (h *SavedPlaceHandler) DeleteSavedPlace(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": "must be a UUID",
		}))
	}

	if err := h.savedUC.Unsave(c.Context(), userID, id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
