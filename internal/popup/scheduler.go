// Package popup schedules promotional popups: one active at a time, dismissed
// ids remembered for the life of the process.
package popup

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/notify"
)

type popupAPI interface {
	Popups(ctx context.Context) ([]domain.Popup, error)
}

// Scheduler fetches the popup list once, shows a random not-yet-dismissed
// popup, and auto-dismisses it after the popup's display duration (or the
// configured default). Dismissals, timed or explicit, are never undone within
// the session; they are not persisted across restarts.
type Scheduler struct {
	mu        sync.Mutex
	popups    []domain.Popup
	dismissed map[string]struct{}
	current   *domain.Popup
	timer     *time.Timer

	client          popupAPI
	bus             *notify.Bus
	logger          *log.Logger
	defaultDuration time.Duration
	pick            func(n int) int
}

func NewScheduler(client popupAPI, bus *notify.Bus, logger *log.Logger, defaultDuration time.Duration) *Scheduler {
	return &Scheduler{
		dismissed:       make(map[string]struct{}),
		client:          client,
		bus:             bus,
		logger:          logger,
		defaultDuration: defaultDuration,
		pick:            rand.Intn,
	}
}

// Start fetches the popup list and shows the first pick. A fetch failure is
// logged and dropped; there are no retries.
func (s *Scheduler) Start(ctx context.Context) {
	s.Refresh(ctx)
}

// Refresh re-fetches the popup list. Previously dismissed popups stay
// dismissed even when the fetched list still contains them.
func (s *Scheduler) Refresh(ctx context.Context) {
	popups, err := s.client.Popups(ctx)
	if err != nil {
		s.logger.Printf("fetch popups: %v", err)
		return
	}
	s.mu.Lock()
	s.popups = popups
	s.mu.Unlock()
	s.showNext()
}

// Current returns the active popup, or nil when none is showing.
func (s *Scheduler) Current() *domain.Popup {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

// Dismiss hides the popup with the given id and marks it never-again for this
// session. Dismissing an id that is not current still records it.
func (s *Scheduler) Dismiss(id string) {
	s.mu.Lock()
	s.dismissed[id] = struct{}{}
	wasCurrent := s.current != nil && s.current.ID == id
	if wasCurrent {
		s.current = nil
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
	}
	s.mu.Unlock()

	if wasCurrent {
		s.bus.PopupDismissed(id)
	}
}

// Stop cancels the pending auto-dismiss timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.current = nil
}

func (s *Scheduler) showNext() {
	s.mu.Lock()
	if s.current != nil {
		s.mu.Unlock()
		return
	}
	available := make([]domain.Popup, 0, len(s.popups))
	for _, p := range s.popups {
		if _, ok := s.dismissed[p.ID]; ok {
			continue
		}
		available = append(available, p)
	}
	if len(available) == 0 {
		s.mu.Unlock()
		return
	}
	chosen := available[s.pick(len(available))]
	s.current = &chosen

	duration := s.defaultDuration
	if chosen.DisplayDuration > 0 {
		duration = time.Duration(chosen.DisplayDuration) * time.Millisecond
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(duration, func() {
		s.Dismiss(chosen.ID)
	})
	s.mu.Unlock()

	s.bus.PopupShown(chosen)
}
