package research

import "fmt"

// ConfigurationError means a required provider credential is missing.
// It is fatal for the call and is never retried.
type ConfigurationError struct {
	Provider string
	Message  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func NewConfigurationError(provider, msg string) error {
	return &ConfigurationError{Provider: provider, Message: msg}
}

// ExternalServiceError means the provider was reachable but reported an
// error status or payload.
type ExternalServiceError struct {
	Provider string
	Reason   string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func NewExternalServiceError(provider, reason string) error {
	return &ExternalServiceError{Provider: provider, Reason: reason}
}
