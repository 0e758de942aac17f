package core

import (
	"fmt"
	"strings"
)

// SignInCancelledMessage is the literal error text the MSA library emits
// when the user aborts the interactive flow. The provider distinguishes
// cancellation only through this string; classification against it lives
// in errors.go and nowhere else.
const SignInCancelledMessage = "The user cancelled the login operation."

type Config struct {
	ClientID string   `koanf:"client_id" mapstructure:"client_id"`
	Scopes   []string `koanf:"scopes" mapstructure:"scopes"`
	// CancelledMessage overrides the provider cancellation text when a
	// deployment ships a localized MSA library build.
	CancelledMessage string `koanf:"cancelled_message" mapstructure:"cancelled_message"`
}

func DefaultConfig() Config {
	return Config{
		CancelledMessage: SignInCancelledMessage,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientID) == "" {
		return fmt.Errorf("core: client_id is required")
	}
	if len(c.Scopes) == 0 {
		return fmt.Errorf("core: at least one scope is required")
	}
	return nil
}

func (c Config) cancelledMessage() string {
	if strings.TrimSpace(c.CancelledMessage) == "" {
		return SignInCancelledMessage
	}
	return c.CancelledMessage
}
