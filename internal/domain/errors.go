package domain

import "errors"

var (
	// ErrNotJSON is returned when an analysis response cannot be parsed as JSON
	ErrNotJSON = errors.New("analysis response is not valid JSON")

	// ErrNotArray is returned when an analysis response parses but is not a JSON array
	ErrNotArray = errors.New("analysis response is not a JSON array")

	// ErrInvalidProduct is returned when an element of the analysis response does not
	// match the product shape; the whole batch is rejected
	ErrInvalidProduct = errors.New("analysis response contains an invalid product")

	// ErrMissingCredentials is returned when the API key or base URL is not configured
	ErrMissingCredentials = errors.New("video API key or base URL not configured")

	// ErrMissingIndexID is returned when no index id is configured for the operation
	ErrMissingIndexID = errors.New("video index id not configured")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrVideoNotFound is returned when the upstream service has no such video
	ErrVideoNotFound = errors.New("video not found")

	// ErrUpstreamFailure is returned when a video API request fails
	ErrUpstreamFailure = errors.New("video API request failed")

	// ErrStaleSelection is returned when an analysis response arrives after the
	// viewer has already moved on to a different video
	ErrStaleSelection = errors.New("selection changed while analysis was in flight")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCartItemNotFound is returned when a cart mutation references an unknown item
	ErrCartItemNotFound = errors.New("cart item not found")
)
