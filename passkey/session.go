// SPDX-License-Identifier: ice License 1.0

package passkey

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/credentials/terror"
)

func newExecutionContext(queueSize int) (*executionContext, error) {
	if queueSize < 0 {
		return nil, terror.New(ErrRuntime, map[string]any{"reason": "negative queue size", "queueSize": queueSize})
	}
	ctx, cancel := context.WithCancel(context.Background())
	ec := &executionContext{
		ctx:     ctx,
		cancel:  cancel,
		tasks:   make(chan task, queueSize),
		stopped: make(chan struct{}),
		mx:      new(sync.RWMutex),
	}
	go ec.loop()

	return ec, nil
}

// loop is the only goroutine that ever runs tasks, so they execute one at a time in arrival order.
func (ec *executionContext) loop() {
	defer close(ec.stopped)
	for t := range ec.tasks {
		t(ec.ctx)
	}
}

// run blocks until fn has been executed on the execution context.
func (ec *executionContext) run(fn task) error {
	done := make(chan struct{})
	var panicked any
	ec.mx.RLock()
	if ec.closed {
		ec.mx.RUnlock()

		return terror.New(ErrRuntime, map[string]any{"reason": "execution context closed"})
	}
	ec.tasks <- func(ctx context.Context) {
		defer close(done)
		defer func() {
			panicked = recover()
		}()
		fn(ctx)
	}
	ec.mx.RUnlock()
	<-done
	if panicked != nil {
		return terror.Wrap(ErrRuntime, errors.Errorf("%v", panicked), map[string]any{"reason": "task panicked"})
	}

	return nil
}

// close lets the already queued tasks finish, then stops the loop.
func (ec *executionContext) close() error {
	ec.mx.Lock()
	if ec.closed {
		ec.mx.Unlock()

		return terror.New(ErrRuntime, map[string]any{"reason": "execution context already closed"})
	}
	ec.closed = true
	close(ec.tasks)
	ec.mx.Unlock()
	<-ec.stopped
	ec.cancel()

	return nil
}
