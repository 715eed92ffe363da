package events

import (
	"context"
	"log/slog"
)

// NoticeLogger consumes notices and writes them to the log.
type NoticeLogger struct {
	Pub    Publisher
	Logger *slog.Logger
}

func (l *NoticeLogger) Run(ctx context.Context) {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	sub := l.Pub.SubscribeNotices()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-sub:
			if !ok {
				return
			}
			lvl := slog.LevelInfo
			switch n.Level {
			case LevelWarning:
				lvl = slog.LevelWarn
			case LevelError:
				lvl = slog.LevelError
			}
			log.Log(ctx, lvl, "notice", slog.String("source", n.Source), slog.String("message", n.Message), slog.Time("at", n.At))
		}
	}
}
