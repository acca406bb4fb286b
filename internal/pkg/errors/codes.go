package errors

import "net/http"

var (
	ErrInvalidConfiguration = New(
		"INVALID_CONFIGURATION",
		"Invalid query configuration",
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

	ErrSnapshotNotFound = New(
		"SNAPSHOT_NOT_FOUND",
		"No snapshot has been loaded yet",
		http.StatusNotFound,
	)

	ErrEmptySnapshot = New(
		"EMPTY_SNAPSHOT",
		"Overpass returned no usable point features",
		http.StatusBadGateway,
	)

	ErrFeatureDrop = New(
		"FEATURE_DROP",
		"New snapshot dropped too many features, refresh aborted",
		http.StatusConflict,
	)

	ErrUpstreamFailure = New(
		"UPSTREAM_FAILURE",
		"All Overpass endpoints failed",
		http.StatusBadGateway,
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

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
