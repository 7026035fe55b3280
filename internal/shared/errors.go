package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Account and session errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrUserExists       = fmt.Errorf("account already exists")
	ErrUserNotFound     = fmt.Errorf("account not found")

	// Catalog errors
	ErrCatalogSearch = fmt.Errorf("catalog search failed")
	ErrTrackNotFound = fmt.Errorf("track not found")

	// Rating store errors
	ErrStore          = fmt.Errorf("rating store request failed")
	ErrRatingNotFound = fmt.Errorf("rating not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
