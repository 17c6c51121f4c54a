// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"time"
)

const (
	// DefaultProgressInterval is the time between progress steps.
	DefaultProgressInterval = 200 * time.Millisecond

	// ProgressStep is the percentage added per step.
	ProgressStep = 10

	// ProgressMax caps the bar.
	ProgressMax = 100
)

// progressAnimator steps the shared progress value while any request is in
// flight. One animator serves all overlapping requests.
type progressAnimator struct {
	stop chan struct{}
	done chan struct{}
}

// startProgress launches the animator. Callers hold reqMu.
func (s *Session) startProgress() *progressAnimator {
	a := &progressAnimator{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(a.done)
		ticker := time.NewTicker(s.progressInterval)
		defer ticker.Stop()

		value := 0
		for {
			select {
			case <-a.stop:
				return
			case <-ticker.C:
				value = min(value+ProgressStep, ProgressMax)
				s.setProgress(value)
				if value >= ProgressMax {
					// Hold at the cap until the last request ends.
					<-a.stop
					return
				}
			}
		}
	}()
	return a
}

// halt stops the animator and waits for its last step.
func (a *progressAnimator) halt() {
	close(a.stop)
	<-a.done
}

func (s *Session) setProgress(value int) {
	s.progress.Store(int32(value))
	s.emit(Event{Kind: EventProgress, Progress: value, Loading: s.Loading()})
}

// beginRequest counts a request in. The first one starts the progress bar.
func (s *Session) beginRequest() {
	s.reqMu.Lock()
	if s.inFlight.Add(1) == 1 && s.Features().Progress {
		s.animator = s.startProgress()
	}
	s.reqMu.Unlock()
	s.emit(Event{Kind: EventLoading, Loading: true, Progress: s.Progress()})
}

// endRequest counts a request out. The last one stops the bar and resets
// it to 0 before loading turns off.
func (s *Session) endRequest() {
	s.reqMu.Lock()
	left := s.inFlight.Add(-1)
	if left == 0 && s.animator != nil {
		s.animator.halt()
		s.animator = nil
		s.setProgress(0)
	}
	s.reqMu.Unlock()
	s.emit(Event{Kind: EventLoading, Loading: left > 0, Progress: s.Progress()})
}
