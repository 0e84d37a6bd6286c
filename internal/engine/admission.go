package engine

import (
	"context"
	"time"
)

// slot returns (creating if needed) the admission slot for model.
func (e *Engine) slot(model string) *modelSlot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.slots[model]
	if !ok {
		s = &modelSlot{
			model:   model,
			genCh:   make(chan struct{}, 1),
			queueCh: make(chan struct{}, e.maxQueueDepth),
		}
		e.slots[model] = s
	}
	return s
}

// beginGeneration reserves a queue slot and then the single in-flight slot.
// Returns a release func to be deferred.
func (e *Engine) beginGeneration(ctx context.Context, model string) (func(), error) {
	s := e.slot(model)

	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}

	// Try to reserve a queue slot with timeout
	timer := time.NewTimer(e.maxWait)
	defer timer.Stop()
	select {
	case s.queueCh <- struct{}{}:
		// reserved queue slot
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, tooBusyError{model: model}
	}

	// Wait to acquire the single in-flight slot
	acquired := false
	defer func() {
		if !acquired {
			<-s.queueCh
		}
	}()
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}
	timer2 := time.NewTimer(e.maxWait)
	defer timer2.Stop()
	select {
	case s.genCh <- struct{}{}:
		acquired = true
		e.mu.Lock()
		s.lastUsed = time.Now()
		e.mu.Unlock()
		return func() { <-s.genCh; <-s.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer2.C:
		return func() {}, tooBusyError{model: model}
	}
}
