package errors

import "net/http"

var (
	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Listing draft is not valid",
		http.StatusUnprocessableEntity,
	)

	ErrUploadsPending = New(
		"UPLOADS_PENDING",
		"Photos are still uploading",
		http.StatusConflict,
	)

	ErrSubmissionInProgress = New(
		"SUBMISSION_IN_PROGRESS",
		"Listing is already being submitted",
		http.StatusConflict,
	)

	ErrSubmissionFailed = New(
		"SUBMISSION_FAILED",
		"Failed to create listing",
		http.StatusBadGateway,
	)

	ErrFormNotFound = New(
		"FORM_NOT_FOUND",
		"Listing form session not found",
		http.StatusNotFound,
	)

	ErrImageNotFound = New(
		"IMAGE_NOT_FOUND",
		"Image not found",
		http.StatusNotFound,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrListingNotFound = New(
		"LISTING_NOT_FOUND",
		"Listing not found",
		http.StatusNotFound,
	)

	ErrStreetNotInCity = New(
		"STREET_NOT_IN_CITY",
		"Street does not belong to the selected city",
		http.StatusBadRequest,
	)

	ErrInvalidField = New(
		"INVALID_FIELD",
		"Invalid field value",
		http.StatusBadRequest,
	)

	ErrInvalidReorder = New(
		"INVALID_REORDER",
		"Invalid image position",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		http.StatusUnauthorized,
	)

	ErrUnsupportedLocale = New(
		"UNSUPPORTED_LOCALE",
		"Unsupported locale",
		http.StatusBadRequest,
	)

	ErrUpstream = New(
		"UPSTREAM_ERROR",
		"Upstream service request failed",
		http.StatusBadGateway,
	)

	ErrReferenceData = New(
		"REFERENCE_DATA_ERROR",
		"Reference data is unavailable",
		http.StatusServiceUnavailable,
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
