package popup

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/notify"
)

type stubPopupAPI struct {
	popups []domain.Popup
	err    error
	calls  int
}

func (s *stubPopupAPI) Popups(_ context.Context) ([]domain.Popup, error) {
	s.calls++
	return s.popups, s.err
}

func newScheduler(t *testing.T, client popupAPI) *Scheduler {
	t.Helper()
	s := NewScheduler(client, notify.New(nil), log.New(io.Discard, "", 0), time.Hour)
	t.Cleanup(s.Stop)
	return s
}

func TestStartShowsAPopup(t *testing.T) {
	client := &stubPopupAPI{popups: []domain.Popup{
		{ID: "pop1", Title: "Festive Sale"},
		{ID: "pop2", Title: "New Arrivals"},
	}}
	s := newScheduler(t, client)
	s.Start(context.Background())

	current := s.Current()
	if current == nil {
		t.Fatal("expected an active popup")
	}
	if current.ID != "pop1" && current.ID != "pop2" {
		t.Fatalf("unexpected popup: %+v", current)
	}
}

func TestFetchFailureLeavesNoPopup(t *testing.T) {
	s := newScheduler(t, &stubPopupAPI{err: errors.New("upstream down")})
	s.Start(context.Background())
	if s.Current() != nil {
		t.Fatal("expected no popup after fetch failure")
	}
}

func TestDismissedPopupNeverReshown(t *testing.T) {
	client := &stubPopupAPI{popups: []domain.Popup{
		{ID: "pop1"},
		{ID: "pop2"},
	}}
	s := newScheduler(t, client)
	ctx := context.Background()
	s.Start(ctx)

	s.Dismiss("pop1")
	s.Dismiss("pop2")
	if s.Current() != nil {
		t.Fatal("expected no popup after dismissing both")
	}

	// Re-fetching the same list must not resurrect dismissed popups.
	s.Refresh(ctx)
	if s.Current() != nil {
		t.Fatalf("dismissed popup re-shown: %+v", s.Current())
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", client.calls)
	}
}

func TestRefreshPicksAmongUndismissed(t *testing.T) {
	client := &stubPopupAPI{popups: []domain.Popup{
		{ID: "pop1"},
		{ID: "pop2"},
	}}
	s := newScheduler(t, client)
	ctx := context.Background()
	s.Start(ctx)

	first := s.Current()
	s.Dismiss(first.ID)
	s.Refresh(ctx)

	second := s.Current()
	if second == nil {
		t.Fatal("expected the remaining popup to show")
	}
	if second.ID == first.ID {
		t.Fatalf("dismissed popup %s shown again", first.ID)
	}
}

func TestAutoDismissAfterDuration(t *testing.T) {
	client := &stubPopupAPI{popups: []domain.Popup{
		{ID: "pop1", DisplayDuration: 10}, // ms
	}}
	s := newScheduler(t, client)

	dismissed := make(chan string, 1)
	bus := notify.New(nil)
	s.bus = bus
	if err := bus.OnPopupDismissed(func(id string) { dismissed <- id }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	s.Start(context.Background())

	select {
	case id := <-dismissed:
		if id != "pop1" {
			t.Fatalf("unexpected dismissal: %s", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("popup was not auto-dismissed")
	}
	if s.Current() != nil {
		t.Fatal("expected no active popup after auto-dismiss")
	}
}

func TestOnlyOnePopupActive(t *testing.T) {
	client := &stubPopupAPI{popups: []domain.Popup{
		{ID: "pop1"},
		{ID: "pop2"},
	}}
	s := newScheduler(t, client)
	ctx := context.Background()
	s.Start(ctx)

	active := s.Current()
	// A second refresh while a popup is active must not replace it.
	s.Refresh(ctx)
	if got := s.Current(); got == nil || got.ID != active.ID {
		t.Fatalf("active popup replaced: was %+v, now %+v", active, got)
	}
}

func TestDismissNonCurrentStillRecorded(t *testing.T) {
	client := &stubPopupAPI{popups: []domain.Popup{{ID: "pop1"}, {ID: "pop2"}}}
	s := newScheduler(t, client)
	s.pick = func(int) int { return 0 }
	ctx := context.Background()
	s.Start(ctx)

	// pop1 is current; dismissing pop2 keeps pop1 showing but burns pop2.
	s.Dismiss("pop2")
	if got := s.Current(); got == nil || got.ID != "pop1" {
		t.Fatalf("expected pop1 to stay active, got %+v", got)
	}
	s.Dismiss("pop1")
	s.Refresh(ctx)
	if s.Current() != nil {
		t.Fatalf("expected nothing to show, got %+v", s.Current())
	}
}
