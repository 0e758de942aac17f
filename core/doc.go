// Package core contains the authenticator contracts, configuration, and
// orchestration logic that bridge a listener-based Microsoft Account
// authentication client into blocking and callback-based call shapes.
// Host adapters (executor pairs, provider clients) must depend on this
// package; core must not depend on host- or transport-specific code.
package core
