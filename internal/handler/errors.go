package handler

import "fmt"

// UnsupportedProviderError is returned when the configured email provider is unknown.
type UnsupportedProviderError struct {
	Provider string
}

func (m *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported email provider: %q", m.Provider)
}

// MissingCredentialsError is returned when a provider is selected without its credentials.
type MissingCredentialsError struct {
	Provider string
	Setting  string
}

func (m *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing %s for email provider %s", m.Setting, m.Provider)
}
