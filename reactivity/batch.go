package reactivity

import (
	"runtime/debug"
	"time"
)

// StartBatch opens a batch. Notifications are queued until the outermost
// EndBatch.
func (s *System) StartBatch() {
	s.batchDepth++
}

// EndBatch closes a batch. The outermost call drains the queue until it is
// empty, including effects queued by the drain itself, and returns the first
// error any triggered effect produced.
func (s *System) EndBatch() error {
	if s.batchDepth == 0 {
		s.warn("EndBatch called without a matching StartBatch")
		return nil
	}
	if s.batchDepth > 1 {
		s.batchDepth--
		return nil
	}

	var start time.Time
	if s.instrument != nil {
		start = time.Now()
	}

	triggered := 0
	for s.batchHead != nil || s.batchedComputed != nil {
		for c := s.batchedComputed; c != nil; {
			next := c.nextInBatch
			c.nextInBatch = nil
			c.flags &^= FlagNotified
			c = next
		}
		s.batchedComputed = nil

		e := s.batchHead
		s.batchHead, s.batchTail = nil, nil
		for e != nil {
			next := e.nextInBatch
			e.nextInBatch = nil
			e.flags &^= FlagNotified
			if e.flags&FlagActive != 0 {
				triggered++
				if err := s.runTrigger(e); err != nil && s.batchErr == nil {
					s.batchErr = err
				}
			}
			e = next
		}
	}

	s.batchDepth--
	err := s.batchErr
	s.batchErr = nil

	if s.instrument != nil && (triggered > 0 || err != nil) {
		s.instrument.BatchFlushed(triggered, time.Since(start), err)
	}
	return err
}

// Batch runs fn inside a batch. fn's error wins over a drain error.
func (s *System) Batch(fn func() error) (err error) {
	s.StartBatch()
	defer func() {
		if endErr := s.EndBatch(); err == nil {
			err = endErr
		}
	}()
	return fn()
}

// BatchDepth is the current batch nesting depth.
func (s *System) BatchDepth() int {
	return s.batchDepth
}

func (s *System) runTrigger(e *ReactiveEffect) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return e.Trigger()
}
