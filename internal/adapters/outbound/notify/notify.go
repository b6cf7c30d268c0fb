// Package notify delivers wizard notices to the user and the log.
package notify

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/tui"
	"github.com/ordercraft/ordercraft/internal/domain"
)

// Log writes notices to a zap logger at a matching level.
type Log struct {
	logger *zap.Logger
}

// NewLog returns a Log notifier backed by logger.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

// Notify logs message at the level matching the notice.
func (n *Log) Notify(level domain.NoticeLevel, message string) {
	switch level {
	case domain.NoticeError:
		n.logger.Error("notice", zap.String("message", message))
	case domain.NoticeWarning:
		n.logger.Warn("notice", zap.String("message", message))
	default:
		n.logger.Info("notice", zap.String("message", message), zap.String("level", string(level)))
	}
}

// Writer renders notices for a terminal.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter returns a Writer that prints to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify renders message as a styled line.
func (n *Writer) Notify(level domain.NoticeLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = io.WriteString(n.out, tui.RenderNotice(level, message))
}

var (
	_ domain.Notifier = (*Log)(nil)
	_ domain.Notifier = (*Writer)(nil)
	_ domain.Notifier = Multi(nil)
)

// Multi fans a notice out to several notifiers.
type Multi []domain.Notifier

// Notify forwards the notice to every notifier in order.
func (m Multi) Notify(level domain.NoticeLevel, message string) {
	for _, n := range m {
		n.Notify(level, message)
	}
}
