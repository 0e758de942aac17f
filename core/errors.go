package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrNotInitialized = errors.New("core: init must be called")
	ErrNilCallback    = errors.New("core: completion callback is required")
)

const (
	AuthErrorNotInitialized  = "AUTH_NOT_INITIALIZED"
	AuthErrorInvalidCallback = "AUTH_INVALID_CALLBACK"
	AuthErrorCancelled       = "AUTH_CANCELLED"
	AuthErrorFailure         = "AUTH_FAILURE"
)

func notInitializedError(operation string) *goerrors.Error {
	return goerrors.Wrap(ErrNotInitialized, goerrors.CategoryOperation,
		fmt.Sprintf("core: %s requires Init", operation)).
		WithTextCode(AuthErrorNotInitialized).
		WithMetadata(map[string]any{"operation": operation})
}

func invalidCallbackError(operation string) *goerrors.Error {
	return goerrors.Wrap(ErrNilCallback, goerrors.CategoryBadInput,
		fmt.Sprintf("core: %s requires a non-nil callback", operation)).
		WithTextCode(AuthErrorInvalidCallback).
		WithMetadata(map[string]any{"operation": operation})
}

// classifyProviderError maps a raw provider failure into the closed
// taxonomy. Cancellation is recognized only by a verbatim match against
// the provider's cancellation message.
func classifyProviderError(err error, cancelledMessage string, message string) *goerrors.Error {
	textCode := AuthErrorFailure
	if err != nil && err.Error() == cancelledMessage {
		textCode = AuthErrorCancelled
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, message).
		WithTextCode(textCode)
}

// providerFailureError wraps a provider error as a plain failure with no
// cancellation detection. Logout uses this: an aborted logout is not a
// user cancellation, whatever text the provider reports.
func providerFailureError(err error, message string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryAuth, message).
		WithTextCode(AuthErrorFailure)
}

// statusError covers listener completions whose status never reached
// connected; the provider reports no error object in that case.
func statusError(factory ErrorFactory, status AuthStatus, message string) *goerrors.Error {
	if factory == nil {
		factory = goerrors.New
	}
	return factory(message, goerrors.CategoryAuth).
		WithTextCode(AuthErrorFailure).
		WithMetadata(map[string]any{"status": string(status)})
}

// classifyWaitError converts an interrupted wait into the taxonomy: a
// cancelled context surfaces as user cancellation, a deadline as failure.
func classifyWaitError(err error, message string) *goerrors.Error {
	textCode := AuthErrorFailure
	if errors.Is(err, context.Canceled) {
		textCode = AuthErrorCancelled
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, message).
		WithTextCode(textCode)
}

func IsNotInitialized(err error) bool {
	return hasTextCode(err, AuthErrorNotInitialized)
}

func IsInvalidCallback(err error) bool {
	return hasTextCode(err, AuthErrorInvalidCallback)
}

func IsCancelled(err error) bool {
	return hasTextCode(err, AuthErrorCancelled)
}

func IsAuthFailure(err error) bool {
	return hasTextCode(err, AuthErrorFailure)
}

func hasTextCode(err error, code string) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}

func authErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ensureAuthErrorEnvelope(rich)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "init must be called"):
		return ensureAuthErrorEnvelope(
			goerrors.Wrap(err, goerrors.CategoryOperation, err.Error()).
				WithTextCode(AuthErrorNotInitialized))
	case strings.Contains(msg, "callback is required"):
		return ensureAuthErrorEnvelope(
			goerrors.Wrap(err, goerrors.CategoryBadInput, err.Error()).
				WithTextCode(AuthErrorInvalidCallback))
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return ensureAuthErrorEnvelope(
			goerrors.Wrap(err, goerrors.CategoryBadInput, err.Error()))
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureAuthErrorEnvelope(mapped)
}

func ensureAuthErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultAuthTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultAuthTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return AuthErrorInvalidCallback
	case goerrors.CategoryOperation:
		return AuthErrorNotInitialized
	default:
		return AuthErrorFailure
	}
}
