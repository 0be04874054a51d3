package ui

import (
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ToastLevel is the severity of a toast.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 3 * time.Second

// Toast is a transient message shown under the list.
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// Toaster keeps the most recent toast for the TUI and logs every message.
// It satisfies catalog.Notifier and may be called from any goroutine.
type Toaster struct {
	mu    sync.Mutex
	log   *zap.SugaredLogger
	ttl   time.Duration
	now   func() time.Time
	toast *Toast
}

func NewToaster(log *zap.SugaredLogger) *Toaster {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Toaster{log: log, ttl: DefaultToastTTL, now: time.Now}
}

func (t *Toaster) Success(msg string) {
	t.log.Infow("Toast", zap.String("level", "success"), zap.String("message", msg))
	t.push(ToastSuccess, msg)
}

func (t *Toaster) Error(msg string) {
	t.log.Errorw("Toast", zap.String("level", "error"), zap.String("message", msg))
	t.push(ToastError, msg)
}

func (t *Toaster) Info(msg string) {
	t.log.Infow("Toast", zap.String("level", "info"), zap.String("message", msg))
	t.push(ToastInfo, msg)
}

func (t *Toaster) push(level ToastLevel, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toast = &Toast{Level: level, Message: msg, Expires: t.now().Add(t.ttl)}
}

// Current returns the visible toast, if any.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.toast == nil || !t.now().Before(t.toast.Expires) {
		t.toast = nil
		return Toast{}, false
	}
	return *t.toast, true
}

// View renders the current toast or an empty string.
func (t *Toaster) View() string {
	toast, ok := t.Current()
	if !ok {
		return ""
	}
	color := colorAccent
	switch toast.Level {
	case ToastSuccess:
		color = colorSuccess
	case ToastError:
		color = colorError
	}
	return lipgloss.NewStyle().Foreground(color).Render(toast.Message)
}
