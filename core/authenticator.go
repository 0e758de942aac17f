package core

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// Authenticator bridges the provider's listener-based asynchronous
// protocol into three call shapes: blocking synchronous operations,
// callback-based asynchronous variants, and a uniform AccountInfo
// result. One mutex serializes Init, Login, LoginSilent, and Logout per
// instance, including each operation's internal wait for the provider
// callback; AccountInfo and precondition checks stay outside it.
type Authenticator struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	clientFactory   AuthClientFactory

	mu          sync.Mutex
	initialized atomic.Bool
	executors   Executors
	uiContext   UIContext
	client      AuthClient
}

func New(cfg Config, options ...Option) (*Authenticator, error) {
	builder := defaultAuthenticatorBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("msauth", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("msauth"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.clientFactory == nil {
		return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: auth client factory is required"))
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Authenticator{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		clientFactory:   builder.clientFactory,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Authenticator, error) {
	return New(cfg, options...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (a *Authenticator) mapError(err error) error {
	if err == nil {
		return nil
	}
	if a == nil {
		return err
	}
	mapper := a.errorMapper
	if mapper == nil {
		mapper = defaultErrorMapper
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (a *Authenticator) Config() Config {
	if a == nil {
		return Config{}
	}
	return a.config
}

// Init records the host collaborators and builds the provider client
// from the resolved client identity and scope list. Idempotent: calls
// after the first successful one return immediately with no side
// effects.
func (a *Authenticator) Init(executors Executors, httpClient *http.Client, uiContext UIContext, logger Logger) error {
	if a == nil {
		return fmt.Errorf("core: authenticator is nil")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized.Load() {
		return nil
	}
	if executors == nil {
		return a.mapError(fmt.Errorf("core: executors are required"))
	}
	if logger != nil {
		a.logger = glog.Ensure(logger)
	}

	client, err := a.clientFactory(a.config, httpClient, uiContext, a.logger)
	if err != nil {
		a.logError(nil, "provider client construction failed", map[string]any{"error": err.Error()})
		return a.mapError(err)
	}
	if client == nil {
		return a.mapError(fmt.Errorf("core: auth client factory returned a nil client"))
	}

	a.executors = executors
	a.uiContext = uiContext
	a.client = client
	a.initialized.Store(true)
	a.logDebug(nil, "authenticator initialized", map[string]any{"client_id": a.config.ClientID})
	return nil
}

// Login runs the interactive login flow and blocks until the provider
// listener fires. The provider call itself is dispatched to the
// foreground executor; the listener may complete from any goroutine.
func (a *Authenticator) Login(ctx context.Context, emailHint string) (account *AccountInfo, err error) {
	startedAt := time.Now().UTC()
	fields := operationFields()
	defer func() {
		err = a.mapError(err)
		a.observeOperation(ctx, startedAt, "login", err, fields)
	}()

	if a == nil {
		return nil, fmt.Errorf("core: authenticator is nil")
	}
	if !a.initialized.Load() {
		return nil, notInitializedError("login")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.logDebug(ctx, "starting login", fields)

	waiter := NewWaiter()
	slot := &errorSlot{}
	listener := a.operationListener(waiter, slot, a.loginClassifier("core: interactive login failed"), true)

	a.executors.PerformOnForeground(func() {
		a.client.Login(a.uiContext, nil, nil, emailHint, listener)
	})

	a.logDebug(ctx, "waiting for provider callback", fields)
	if waitErr := waiter.WaitContext(ctx); waitErr != nil {
		return nil, classifyWaitError(waitErr, "core: interactive login interrupted")
	}
	if pending := slot.get(); pending != nil {
		return nil, pending
	}
	return a.accountInfoFromSession(), nil
}

// LoginAsync schedules the interactive login on the background executor
// and redelivers the outcome through the foreground executor. The
// callback fires exactly once, never on the caller's goroutine.
// Precondition failures are returned here, before any dispatch.
func (a *Authenticator) LoginAsync(ctx context.Context, emailHint string, callback LoginCallback) error {
	if a == nil {
		return fmt.Errorf("core: authenticator is nil")
	}
	if !a.initialized.Load() {
		return a.surfacePreconditionError(ctx, notInitializedError("login_async"))
	}
	if callback == nil {
		return a.surfacePreconditionError(ctx, invalidCallbackError("login_async"))
	}

	a.logDebug(ctx, "starting login async", nil)
	a.executors.PerformOnBackground(func() {
		account, err := a.Login(ctx, emailHint)
		a.executors.PerformOnForeground(func() {
			callback(account, err)
		})
	})
	return nil
}

// LoginSilent attempts a login with cached credentials only. The
// provider reports through its return value whether the listener will
// ever fire; a fast-fail returns (nil, nil) without blocking.
func (a *Authenticator) LoginSilent(ctx context.Context) (account *AccountInfo, err error) {
	startedAt := time.Now().UTC()
	fields := operationFields()
	defer func() {
		err = a.mapError(err)
		a.observeOperation(ctx, startedAt, "login_silent", err, fields)
	}()

	if a == nil {
		return nil, fmt.Errorf("core: authenticator is nil")
	}
	if !a.initialized.Load() {
		return nil, notInitializedError("login_silent")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.logDebug(ctx, "starting silent login", fields)

	waiter := NewWaiter()
	slot := &errorSlot{}
	listener := a.operationListener(waiter, slot, a.loginClassifier("core: silent login failed"), true)

	if willCallback := a.client.LoginSilent(listener); !willCallback {
		a.logDebug(ctx, "silent login fast-failed, no cached session", fields)
		return nil, nil
	}

	a.logDebug(ctx, "waiting for provider callback", fields)
	if waitErr := waiter.WaitContext(ctx); waitErr != nil {
		return nil, classifyWaitError(waitErr, "core: silent login interrupted")
	}
	if pending := slot.get(); pending != nil {
		return nil, pending
	}
	return a.accountInfoFromSession(), nil
}

// LoginSilentAsync mirrors LoginAsync for the silent flow.
func (a *Authenticator) LoginSilentAsync(ctx context.Context, callback LoginCallback) error {
	if a == nil {
		return fmt.Errorf("core: authenticator is nil")
	}
	if !a.initialized.Load() {
		return a.surfacePreconditionError(ctx, notInitializedError("login_silent_async"))
	}
	if callback == nil {
		return a.surfacePreconditionError(ctx, invalidCallbackError("login_silent_async"))
	}

	a.logDebug(ctx, "starting silent login async", nil)
	a.executors.PerformOnBackground(func() {
		account, err := a.LoginSilent(ctx)
		a.executors.PerformOnForeground(func() {
			callback(account, err)
		})
	})
	return nil
}

// Logout ends the current provider session and blocks until the
// listener confirms. Completion status is not inspected; only an
// explicit provider error fails the operation.
func (a *Authenticator) Logout(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	fields := operationFields()
	defer func() {
		err = a.mapError(err)
		a.observeOperation(ctx, startedAt, "logout", err, fields)
	}()

	if a == nil {
		return fmt.Errorf("core: authenticator is nil")
	}
	if !a.initialized.Load() {
		return notInitializedError("logout")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.logDebug(ctx, "starting logout", fields)

	waiter := NewWaiter()
	slot := &errorSlot{}
	listener := a.operationListener(waiter, slot, func(err error) *goerrors.Error {
		return providerFailureError(err, "core: logout failed")
	}, false)

	a.client.Logout(listener)

	a.logDebug(ctx, "waiting for logout to complete", fields)
	if waitErr := waiter.WaitContext(ctx); waitErr != nil {
		return classifyWaitError(waitErr, "core: logout interrupted")
	}
	return slot.get()
}

// LogoutAsync mirrors LoginAsync for logout; the callback receives only
// the error outcome.
func (a *Authenticator) LogoutAsync(ctx context.Context, callback LogoutCallback) error {
	if a == nil {
		return fmt.Errorf("core: authenticator is nil")
	}
	if !a.initialized.Load() {
		return a.surfacePreconditionError(ctx, notInitializedError("logout_async"))
	}
	if callback == nil {
		return a.surfacePreconditionError(ctx, invalidCallbackError("logout_async"))
	}

	a.logDebug(ctx, "starting logout async", nil)
	a.executors.PerformOnBackground(func() {
		err := a.Logout(ctx)
		a.executors.PerformOnForeground(func() {
			callback(err)
		})
	})
	return nil
}

// AccountInfo reads the provider's current session without taking the
// operation lock. It returns nil before Init and when no live session
// exists. Each call wraps whatever session the provider holds at that
// instant; a concurrent login may complete in between.
func (a *Authenticator) AccountInfo() *AccountInfo {
	if a == nil || !a.initialized.Load() {
		return nil
	}
	return a.accountInfoFromSession()
}

func (a *Authenticator) accountInfoFromSession() *AccountInfo {
	session := a.client.Session()
	if session == nil {
		return nil
	}
	return newAccountInfo(a, session, a.logger)
}

// operationListener builds the single-shot listener shared by the three
// waiting operations: record at most one classified error, then signal.
// Each operation supplies its own provider-error classification.
func (a *Authenticator) operationListener(waiter *Waiter, slot *errorSlot, classify func(error) *goerrors.Error, requireConnected bool) AuthListener {
	return &AuthListenerFuncs{
		Complete: func(status AuthStatus, _ Session, _ any) {
			if requireConnected && status != StatusConnected {
				slot.set(statusError(a.errorFactory, status, "core: provider session did not reach connected state"))
			}
			waiter.Signal()
		},
		Error: func(err error, _ any) {
			slot.set(classify(err))
			waiter.Signal()
		},
	}
}

// loginClassifier detects user cancellation by verbatim match against the
// configured cancellation text; everything else is a failure.
func (a *Authenticator) loginClassifier(failureMessage string) func(error) *goerrors.Error {
	return func(err error) *goerrors.Error {
		return classifyProviderError(err, a.config.cancelledMessage(), failureMessage)
	}
}

func (a *Authenticator) surfacePreconditionError(ctx context.Context, err *goerrors.Error) error {
	mapped := a.mapError(err)
	a.logError(ctx, "precondition failed", map[string]any{"error": mapped.Error()})
	return mapped
}

func operationFields() map[string]any {
	return map[string]any{"attempt_id": uuid.NewString()}
}
