// Package notify carries user-facing acknowledgments and state-change events
// between the state holders and whatever presentation is attached.
package notify

import (
	"log"

	evbus "github.com/asaskevich/EventBus"

	"storefront/internal/domain"
)

const (
	topicNotice         = "ui:notice"
	topicCartChanged    = "cart:changed"
	topicPopupShown     = "popup:shown"
	topicPopupDismissed = "popup:dismissed"
)

// Level classifies a Notice for presentation (toast styling).
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient, user-facing message ("Added to cart!").
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Bus is the storefront's event bus. All publishes are synchronous; handlers
// run on the publishing goroutine.
type Bus struct {
	bus evbus.Bus
}

// New builds a Bus. When logger is non-nil every notice is also logged, so the
// acknowledgments remain visible without a UI attached.
func New(logger *log.Logger) *Bus {
	b := &Bus{bus: evbus.New()}
	if logger != nil {
		_ = b.OnNotice(func(n Notice) {
			logger.Printf("notice [%s] %s", n.Level, n.Message)
		})
	}
	return b
}

// Success publishes a success-level notice.
func (b *Bus) Success(message string) {
	b.bus.Publish(topicNotice, Notice{Level: LevelSuccess, Message: message})
}

// Error publishes an error-level notice.
func (b *Bus) Error(message string) {
	b.bus.Publish(topicNotice, Notice{Level: LevelError, Message: message})
}

// CartChanged announces the cart's new contents after a mutation.
func (b *Bus) CartChanged(items []domain.LineItem) {
	b.bus.Publish(topicCartChanged, items)
}

// PopupShown announces that the scheduler made a popup the active one.
func (b *Bus) PopupShown(p domain.Popup) {
	b.bus.Publish(topicPopupShown, p)
}

// PopupDismissed announces a popup dismissal, timed or explicit.
func (b *Bus) PopupDismissed(id string) {
	b.bus.Publish(topicPopupDismissed, id)
}

func (b *Bus) OnNotice(fn func(Notice)) error {
	return b.bus.Subscribe(topicNotice, fn)
}

func (b *Bus) OnCartChanged(fn func([]domain.LineItem)) error {
	return b.bus.Subscribe(topicCartChanged, fn)
}

func (b *Bus) OnPopupShown(fn func(domain.Popup)) error {
	return b.bus.Subscribe(topicPopupShown, fn)
}

func (b *Bus) OnPopupDismissed(fn func(string)) error {
	return b.bus.Subscribe(topicPopupDismissed, fn)
}
