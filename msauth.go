// Package msauth wraps a listener-based Microsoft Account
// authentication client behind synchronous and callback-based login,
// silent login, and logout operations with a uniform account result and
// a closed error taxonomy. The heavy lifting lives in core; this
// package re-exports the public surface.
package msauth

import (
	"github.com/goliatone/go-msauth/core"
)

type (
	Authenticator     = core.Authenticator
	Config            = core.Config
	Option            = core.Option
	AccountInfo       = core.AccountInfo
	AuthClient        = core.AuthClient
	AuthClientFactory = core.AuthClientFactory
	AuthListener      = core.AuthListener
	AuthListenerFuncs = core.AuthListenerFuncs
	AuthStatus        = core.AuthStatus
	Session           = core.Session
	Executors         = core.Executors
	UIContext         = core.UIContext
	Logger            = core.Logger
	LoggerProvider    = core.LoggerProvider
	MetricsRecorder   = core.MetricsRecorder
	LoginCallback     = core.LoginCallback
	LogoutCallback    = core.LogoutCallback
	Waiter            = core.Waiter
)

const (
	StatusConnected    = core.StatusConnected
	StatusNotConnected = core.StatusNotConnected
	StatusUnknown      = core.StatusUnknown

	AuthErrorNotInitialized  = core.AuthErrorNotInitialized
	AuthErrorInvalidCallback = core.AuthErrorInvalidCallback
	AuthErrorCancelled       = core.AuthErrorCancelled
	AuthErrorFailure         = core.AuthErrorFailure

	SignInCancelledMessage = core.SignInCancelledMessage
	AccountTypeMSA         = core.AccountTypeMSA
)

func New(cfg Config, opts ...Option) (*Authenticator, error) {
	return core.New(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Authenticator, error) {
	return core.Setup(cfg, opts...)
}

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewWaiter() *Waiter {
	return core.NewWaiter()
}

func IsNotInitialized(err error) bool {
	return core.IsNotInitialized(err)
}

func IsInvalidCallback(err error) bool {
	return core.IsInvalidCallback(err)
}

func IsCancelled(err error) bool {
	return core.IsCancelled(err)
}

func IsAuthFailure(err error) bool {
	return core.IsAuthFailure(err)
}

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorFactory    = core.WithErrorFactory
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithConfigLoader    = core.WithConfigLoader
	WithOptionsResolver = core.WithOptionsResolver
	WithClientFactory   = core.WithClientFactory
)
