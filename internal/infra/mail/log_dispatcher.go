package mail

import (
	"context"

	"taskapp/internal/logging"
)

// 開発用。送らずに宛先と件名だけログに出す（本文はリンクを含むので出さない）
type LogDispatcher struct {
	log logging.Logger
}

func NewLogDispatcher(log logging.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Send(ctx context.Context, msg Message) error {
	d.log.Info(ctx, "mail not sent (log driver)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
