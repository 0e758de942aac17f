// Package devkit provides scripted fakes and conformance helpers for
// integrators binding a real provider client or executor pair to the
// authenticator contracts.
package devkit

import (
	"sync"

	"github.com/goliatone/go-msauth/core"
)

// StaticSession is a fixed-value core.Session for scripting fakes.
type StaticSession struct {
	Token   string
	Expired bool
}

func (s StaticSession) AccessToken() string {
	return s.Token
}

func (s StaticSession) IsExpired() bool {
	return s.Expired
}

// Outcome scripts one listener delivery. When Err is set the listener
// receives OnAuthError; otherwise OnAuthComplete with Status and
// Session. Async delivers from a separate goroutine, exercising the
// real blocking path.
type Outcome struct {
	Status  core.AuthStatus
	Session core.Session
	Err     error
	Async   bool
}

// SilentOutcome scripts a silent attempt. WillCallback false models the
// provider fast-fail: the listener is never invoked.
type SilentOutcome struct {
	WillCallback bool
	Outcome      Outcome
}

// LoginCall records one interactive login invocation.
type LoginCall struct {
	UIContext core.UIContext
	Scopes    []string
	State     any
	Hint      string
}

// FakeAuthClient is a scripted core.AuthClient. A successful connected
// completion installs the outcome's session as the live session; a
// successful logout clears it.
type FakeAuthClient struct {
	mu sync.Mutex

	LoginOutcome  Outcome
	SilentOutcome SilentOutcome
	LogoutOutcome Outcome

	session     core.Session
	loginCalls  []LoginCall
	silentCalls int
	logoutCalls int
}

func NewFakeAuthClient() *FakeAuthClient {
	return &FakeAuthClient{
		LoginOutcome:  Outcome{Status: core.StatusConnected, Session: StaticSession{Token: "fake-token"}},
		SilentOutcome: SilentOutcome{},
		LogoutOutcome: Outcome{Status: core.StatusUnknown},
	}
}

func (f *FakeAuthClient) Login(uiContext core.UIContext, scopes []string, state any, loginHint string, listener core.AuthListener) {
	if f == nil {
		return
	}
	f.mu.Lock()
	f.loginCalls = append(f.loginCalls, LoginCall{
		UIContext: uiContext,
		Scopes:    append([]string(nil), scopes...),
		State:     state,
		Hint:      loginHint,
	})
	outcome := f.LoginOutcome
	f.mu.Unlock()

	f.deliver(outcome, listener, false)
}

func (f *FakeAuthClient) LoginSilent(listener core.AuthListener) bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	f.silentCalls++
	script := f.SilentOutcome
	f.mu.Unlock()

	if !script.WillCallback {
		return false
	}
	f.deliver(script.Outcome, listener, false)
	return true
}

func (f *FakeAuthClient) Logout(listener core.AuthListener) {
	if f == nil {
		return
	}
	f.mu.Lock()
	f.logoutCalls++
	outcome := f.LogoutOutcome
	f.mu.Unlock()

	f.deliver(outcome, listener, true)
}

func (f *FakeAuthClient) Session() core.Session {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// SetSession preseeds the live session, modeling cached credentials.
func (f *FakeAuthClient) SetSession(session core.Session) {
	if f == nil {
		return
	}
	f.mu.Lock()
	f.session = session
	f.mu.Unlock()
}

func (f *FakeAuthClient) LoginCalls() []LoginCall {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]LoginCall(nil), f.loginCalls...)
}

func (f *FakeAuthClient) SilentCalls() int {
	if f == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.silentCalls
}

func (f *FakeAuthClient) LogoutCalls() int {
	if f == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutCalls
}

func (f *FakeAuthClient) deliver(outcome Outcome, listener core.AuthListener, logout bool) {
	fire := func() {
		if outcome.Err != nil {
			listener.OnAuthError(outcome.Err, nil)
			return
		}
		f.mu.Lock()
		switch {
		case logout:
			f.session = nil
		case outcome.Status == core.StatusConnected:
			f.session = outcome.Session
		}
		f.mu.Unlock()
		listener.OnAuthComplete(outcome.Status, outcome.Session, nil)
	}
	if outcome.Async {
		go fire()
		return
	}
	fire()
}

var _ core.AuthClient = (*FakeAuthClient)(nil)
