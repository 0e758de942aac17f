package core

import (
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
)

// AuthStatus is the completion status reported by the provider through
// its listener.
type AuthStatus string

const (
	StatusConnected    AuthStatus = "connected"
	StatusNotConnected AuthStatus = "not_connected"
	StatusUnknown      AuthStatus = "unknown"
)

// Session is the provider's live session handle. The orchestrator never
// inspects it beyond the accessors below; ownership stays with the
// provider client.
type Session interface {
	AccessToken() string
	IsExpired() bool
}

// AuthListener is the callback surface the provider invokes when an
// operation finishes. The provider may call it from any goroutine.
type AuthListener interface {
	OnAuthComplete(status AuthStatus, session Session, state any)
	OnAuthError(err error, state any)
}

// AuthListenerFuncs adapts plain funcs to the AuthListener contract.
type AuthListenerFuncs struct {
	Complete func(status AuthStatus, session Session, state any)
	Error    func(err error, state any)
}

func (l *AuthListenerFuncs) OnAuthComplete(status AuthStatus, session Session, state any) {
	if l == nil || l.Complete == nil {
		return
	}
	l.Complete(status, session, state)
}

func (l *AuthListenerFuncs) OnAuthError(err error, state any) {
	if l == nil || l.Error == nil {
		return
	}
	l.Error(err, state)
}

// AuthClient is the external identity-provider client. Login requires the
// UI-bound context; LoginSilent reports through its return value whether
// the listener will ever be invoked.
type AuthClient interface {
	Login(uiContext UIContext, scopes []string, state any, loginHint string, listener AuthListener)
	LoginSilent(listener AuthListener) (willCallback bool)
	Logout(listener AuthListener)
	Session() Session
}

// AuthClientFactory builds the provider client at Init time from the
// resolved configuration and the host-supplied collaborators.
type AuthClientFactory func(cfg Config, httpClient *http.Client, uiContext UIContext, logger Logger) (AuthClient, error)

// UIContext is the opaque UI-bound handle the provider needs for
// interactive flows. The orchestrator only stores and forwards it.
type UIContext = any

// Executors is the host's scheduling capability pair. The orchestrator
// never spawns goroutines of its own; interactive provider calls are
// handed to the foreground executor, async variants run on the
// background executor and redeliver through the foreground one.
type Executors interface {
	PerformOnBackground(task func())
	PerformOnForeground(task func())
}

// LoginCallback receives the outcome of an asynchronous login or silent
// login. Exactly one invocation, on the foreground executor, after the
// underlying synchronous operation fully completes.
type LoginCallback func(account *AccountInfo, err error)

// LogoutCallback receives the outcome of an asynchronous logout under
// the same delivery contract as LoginCallback.
type LogoutCallback func(err error)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
