package core

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// AccountTypeMSA identifies sessions produced by the Microsoft Account
// provider.
const AccountTypeMSA = "MicrosoftAccount"

// AccountInfo is the immutable success value wrapping the provider's
// live session. Each call to Authenticator.AccountInfo produces a fresh
// instance reflecting the session at that moment; nothing is cached
// across operations.
type AccountInfo struct {
	authenticator *Authenticator
	session       Session
	logger        Logger
}

func newAccountInfo(authenticator *Authenticator, session Session, logger Logger) *AccountInfo {
	return &AccountInfo{
		authenticator: authenticator,
		session:       session,
		logger:        logger,
	}
}

func (a *AccountInfo) AccountType() string {
	return AccountTypeMSA
}

// AccessToken returns the wrapped session's current access token.
func (a *AccountInfo) AccessToken() string {
	if a == nil || a.session == nil {
		return ""
	}
	return a.session.AccessToken()
}

func (a *AccountInfo) IsExpired() bool {
	if a == nil || a.session == nil {
		return true
	}
	return a.session.IsExpired()
}

// Session exposes the provider session this result wraps.
func (a *AccountInfo) Session() Session {
	if a == nil {
		return nil
	}
	return a.session
}

// Refresh renews the credentials behind this account by re-running the
// silent login flow on the owning authenticator.
func (a *AccountInfo) Refresh(ctx context.Context) error {
	if a == nil || a.authenticator == nil {
		return goerrors.New("core: account info is not bound to an authenticator",
			goerrors.CategoryOperation).
			WithTextCode(AuthErrorNotInitialized)
	}
	_, err := a.authenticator.LoginSilent(ctx)
	return err
}
