package trends

import "fmt"

// ProviderErrorKind classifies search-API failures
type ProviderErrorKind string

const (
	ErrUnauthorized    ProviderErrorKind = "unauthorized"
	ErrRateLimited     ProviderErrorKind = "rate_limited"
	ErrUpgradeRequired ProviderErrorKind = "upgrade_required"
	ErrGeneric         ProviderErrorKind = "generic"
)

// ProviderError is a non-2xx or explicit error payload from the search API.
// Message is the provider's human-readable message when available.
type ProviderError struct {
	Kind    ProviderErrorKind
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider error: %s", e.Kind)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Kind, e.Message)
}
