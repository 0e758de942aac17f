package core

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		ClientID: "client-0000",
		Scopes:   []string{"wl.signin", "wl.offline_access", "onedrive.readwrite"},
	}
}

func newTestAuthenticator(t *testing.T, client AuthClient, options ...Option) *Authenticator {
	t.Helper()
	factory := func(Config, *http.Client, UIContext, Logger) (AuthClient, error) {
		return client, nil
	}
	all := append([]Option{WithClientFactory(factory)}, options...)
	auth, err := New(testConfig(), all...)
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	return auth
}

func initAuthenticator(t *testing.T, auth *Authenticator, executors Executors) {
	t.Helper()
	if err := auth.Init(executors, nil, "ui-context", nil); err != nil {
		t.Fatalf("init authenticator: %v", err)
	}
}

type scriptedSession struct {
	token   string
	expired bool
}

func (s scriptedSession) AccessToken() string {
	return s.token
}

func (s scriptedSession) IsExpired() bool {
	return s.expired
}

type clientOutcome struct {
	status  AuthStatus
	session Session
	err     error
	async   bool
	delay   time.Duration
}

// scriptedClient is a local AuthClient fake. Connected completions
// install the outcome session as the live session; logout clears it.
type scriptedClient struct {
	mu sync.Mutex

	login              clientOutcome
	silent             clientOutcome
	silentWillCallback bool
	logout             clientOutcome

	session      Session
	hints        []string
	uiContexts   []UIContext
	loginCalls   int
	silentCalls  int
	logoutCalls  int
	sessionCalls int32

	active    int32
	maxActive int32
}

func (c *scriptedClient) Login(uiContext UIContext, _ []string, _ any, loginHint string, listener AuthListener) {
	c.mu.Lock()
	c.loginCalls++
	c.hints = append(c.hints, loginHint)
	c.uiContexts = append(c.uiContexts, uiContext)
	outcome := c.login
	c.mu.Unlock()

	current := atomic.AddInt32(&c.active, 1)
	for {
		max := atomic.LoadInt32(&c.maxActive)
		if current <= max || atomic.CompareAndSwapInt32(&c.maxActive, max, current) {
			break
		}
	}

	c.deliver(outcome, listener, false, func() {
		atomic.AddInt32(&c.active, -1)
	})
}

func (c *scriptedClient) LoginSilent(listener AuthListener) bool {
	c.mu.Lock()
	c.silentCalls++
	will := c.silentWillCallback
	outcome := c.silent
	c.mu.Unlock()

	if !will {
		return false
	}
	c.deliver(outcome, listener, false, nil)
	return true
}

func (c *scriptedClient) Logout(listener AuthListener) {
	c.mu.Lock()
	c.logoutCalls++
	outcome := c.logout
	c.mu.Unlock()

	c.deliver(outcome, listener, true, nil)
}

func (c *scriptedClient) Session() Session {
	atomic.AddInt32(&c.sessionCalls, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *scriptedClient) deliver(outcome clientOutcome, listener AuthListener, isLogout bool, done func()) {
	fire := func() {
		if outcome.delay > 0 {
			time.Sleep(outcome.delay)
		}
		if outcome.err != nil {
			listener.OnAuthError(outcome.err, nil)
		} else {
			c.mu.Lock()
			switch {
			case isLogout:
				c.session = nil
			case outcome.status == StatusConnected:
				c.session = outcome.session
			}
			c.mu.Unlock()
			listener.OnAuthComplete(outcome.status, outcome.session, nil)
		}
		if done != nil {
			done()
		}
	}
	if outcome.async {
		go fire()
		return
	}
	fire()
}

func (c *scriptedClient) maxActiveLogins() int32 {
	return atomic.LoadInt32(&c.maxActive)
}

// inlineExecutors runs tasks on the calling goroutine while counting
// dispatches; enough for exercising the orchestrator's call shapes.
type inlineExecutors struct {
	background int32
	foreground int32
}

func (e *inlineExecutors) PerformOnBackground(task func()) {
	atomic.AddInt32(&e.background, 1)
	if task != nil {
		task()
	}
}

func (e *inlineExecutors) PerformOnForeground(task func()) {
	atomic.AddInt32(&e.foreground, 1)
	if task != nil {
		task()
	}
}

func (e *inlineExecutors) backgroundDispatches() int32 {
	return atomic.LoadInt32(&e.background)
}

func (e *inlineExecutors) foregroundDispatches() int32 {
	return atomic.LoadInt32(&e.foreground)
}

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type capturedLog struct {
	level string
	msg   string
}

type captureLogger struct {
	mu      *sync.Mutex
	records *[]capturedLog
}

func newCaptureLogger() *captureLogger {
	records := []capturedLog{}
	return &captureLogger{mu: &sync.Mutex{}, records: &records}
}

func (l *captureLogger) append(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.records = append(*l.records, capturedLog{level: level, msg: msg})
}

func (l *captureLogger) Trace(msg string, _ ...any) { l.append("trace", msg) }
func (l *captureLogger) Debug(msg string, _ ...any) { l.append("debug", msg) }
func (l *captureLogger) Info(msg string, _ ...any)  { l.append("info", msg) }
func (l *captureLogger) Warn(msg string, _ ...any)  { l.append("warn", msg) }
func (l *captureLogger) Error(msg string, _ ...any) { l.append("error", msg) }
func (l *captureLogger) Fatal(msg string, _ ...any) { l.append("fatal", msg) }
func (l *captureLogger) WithContext(context.Context) Logger {
	return l
}

func (l *captureLogger) logs() []capturedLog {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]capturedLog(nil), *l.records...)
}

func (l *captureLogger) hasLevel(level string) bool {
	for _, record := range l.logs() {
		if record.level == level {
			return true
		}
	}
	return false
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

type capturedCounter struct {
	name  string
	value int64
	tags  map[string]string
}

type capturedHistogram struct {
	name  string
	value float64
	tags  map[string]string
}

type captureMetricsRecorder struct {
	mu         sync.Mutex
	counters   []capturedCounter
	histograms []capturedHistogram
}

func (m *captureMetricsRecorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, capturedCounter{name: name, value: value, tags: cloneTags(tags)})
}

func (m *captureMetricsRecorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms = append(m.histograms, capturedHistogram{name: name, value: value, tags: cloneTags(tags)})
}

func (m *captureMetricsRecorder) counterSnapshot() []capturedCounter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]capturedCounter(nil), m.counters...)
}

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}
