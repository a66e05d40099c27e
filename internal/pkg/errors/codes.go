package errors

import "net/http"

var (
	ErrMissingExternalID = New(
		"MISSING_EXTERNAL_ID",
		"Place payload must carry a non-empty external identifier",
		http.StatusBadRequest,
	)

	ErrMissingGeometry = New(
		"MISSING_GEOMETRY",
		"Place payload must carry a coordinate pair",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = New(
		"INVALID_STATUS",
		"Invalid saved-place status",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnauthenticated = New(
		"UNAUTHENTICATED",
		"Missing or invalid user identity",
		http.StatusUnauthorized,
	)

	ErrTripForbidden = New(
		"TRIP_FORBIDDEN",
		"Trip does not belong to the requesting user",
		http.StatusForbidden,
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrTripNotFound = New(
		"TRIP_NOT_FOUND",
		"Trip not found",
		http.StatusNotFound,
	)

	ErrSavedPlaceNotFound = New(
		"SAVED_PLACE_NOT_FOUND",
		"Saved place not found",
		http.StatusNotFound,
	)

	ErrSavedPlaceExists = New(
		"SAVED_PLACE_EXISTS",
		"Place is already saved by this user",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
