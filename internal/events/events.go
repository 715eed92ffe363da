// Package events carries user-facing notices (upstream outages, fallback
// content) from the engines to whoever displays or logs them.
package events

import (
	"context"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a non-blocking message meant for the site visitor.
type Notice struct {
	Level   Level     `json:"level"`
	Source  string    `json:"source"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Publisher interface {
	PublishNotice(ctx context.Context, n Notice)
	SubscribeNotices() <-chan Notice
}

type inMemory struct{ ch chan Notice }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan Notice, buffer)}
}

// PublishNotice drops the notice when no one keeps up with the channel.
func (m *inMemory) PublishNotice(_ context.Context, n Notice) {
	if n.At.IsZero() {
		n.At = time.Now()
	}
	select {
	case m.ch <- n:
	default:
	}
}

func (m *inMemory) SubscribeNotices() <-chan Notice { return m.ch }

// Discard is a Publisher that drops everything.
var Discard Publisher = discard{}

type discard struct{}

func (discard) PublishNotice(context.Context, Notice) {}
func (discard) SubscribeNotices() <-chan Notice      { return nil }
