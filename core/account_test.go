package core

import (
	"context"
	"testing"
)

func TestAccountInfo_Accessors(t *testing.T) {
	session := scriptedSession{token: "tok", expired: false}
	account := newAccountInfo(nil, session, nil)

	if account.AccountType() != AccountTypeMSA {
		t.Fatalf("expected account type %q, got %q", AccountTypeMSA, account.AccountType())
	}
	if account.AccessToken() != "tok" {
		t.Fatalf("expected token passthrough, got %q", account.AccessToken())
	}
	if account.IsExpired() {
		t.Fatalf("expected live session not expired")
	}
	if account.Session() != Session(session) {
		t.Fatalf("expected the wrapped session back")
	}
}

func TestAccountInfo_ExpiredSession(t *testing.T) {
	account := newAccountInfo(nil, scriptedSession{token: "tok", expired: true}, nil)
	if !account.IsExpired() {
		t.Fatalf("expected expired passthrough")
	}
}

func TestAccountInfo_NilSafety(t *testing.T) {
	var account *AccountInfo
	if account.AccessToken() != "" {
		t.Fatalf("expected empty token on nil receiver")
	}
	if !account.IsExpired() {
		t.Fatalf("nil account must report expired")
	}
	if account.Session() != nil {
		t.Fatalf("expected nil session on nil receiver")
	}
	if err := account.Refresh(context.Background()); !IsNotInitialized(err) {
		t.Fatalf("expected not-initialized from unbound refresh, got %v", err)
	}
}

func TestAccountInfo_RefreshRunsSilentLogin(t *testing.T) {
	refreshed := scriptedSession{token: "refreshed"}
	client := &scriptedClient{
		session:            scriptedSession{token: "stale", expired: true},
		silentWillCallback: true,
		silent:             clientOutcome{status: StatusConnected, session: refreshed},
	}
	auth := newTestAuthenticator(t, client)
	initAuthenticator(t, auth, &inlineExecutors{})

	account := auth.AccountInfo()
	if account == nil || account.AccessToken() != "stale" {
		t.Fatalf("expected account wrapping the stale session")
	}

	if err := account.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if client.silentCalls != 1 {
		t.Fatalf("expected refresh to run one silent login, got %d", client.silentCalls)
	}

	renewed := auth.AccountInfo()
	if renewed == nil || renewed.AccessToken() != "refreshed" {
		t.Fatalf("expected a fresh account to reflect the renewed session")
	}
	if account.AccessToken() != "stale" {
		t.Fatalf("existing account instances must keep their original session")
	}
}
