package devkit

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/goliatone/go-msauth/core"
)

// ValidateAuthClientConformance drives one silent attempt and checks the
// client honors the listener contract: a false return means the listener
// is never invoked, a true return means exactly one callback.
func ValidateAuthClientConformance(ctx context.Context, client core.AuthClient) error {
	if client == nil {
		return fmt.Errorf("devkit: auth client is required")
	}

	var calls int32
	waiter := core.NewWaiter()
	listener := &core.AuthListenerFuncs{
		Complete: func(core.AuthStatus, core.Session, any) {
			atomic.AddInt32(&calls, 1)
			waiter.Signal()
		},
		Error: func(error, any) {
			atomic.AddInt32(&calls, 1)
			waiter.Signal()
		},
	}

	willCallback := client.LoginSilent(listener)
	if !willCallback {
		if got := atomic.LoadInt32(&calls); got != 0 {
			return fmt.Errorf("devkit: fast-fail must not invoke the listener, got %d callbacks", got)
		}
		return nil
	}

	if err := waiter.WaitContext(ctx); err != nil {
		return fmt.Errorf("devkit: silent attempt never called back: %w", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		return fmt.Errorf("devkit: exactly one listener callback expected, got %d", got)
	}
	return nil
}

// ValidateExecutorsConformance checks that both scheduling capabilities
// actually run submitted tasks.
func ValidateExecutorsConformance(ctx context.Context, executors core.Executors) error {
	if executors == nil {
		return fmt.Errorf("devkit: executors are required")
	}

	background := core.NewWaiter()
	executors.PerformOnBackground(background.Signal)
	if err := background.WaitContext(ctx); err != nil {
		return fmt.Errorf("devkit: background task never ran: %w", err)
	}

	foreground := core.NewWaiter()
	executors.PerformOnForeground(foreground.Signal)
	if err := foreground.WaitContext(ctx); err != nil {
		return fmt.Errorf("devkit: foreground task never ran: %w", err)
	}
	return nil
}
