package feed

import (
	"sync"
	"time"

	"github.com/belgahub/hub/internal/database/types"
)

// Toast is a transient representation of a freshly delivered
// notification. It dismisses itself after the configured duration or
// when the user dismisses it, whichever comes first.
type Toast struct {
	Notification *types.Notification

	timer     *time.Timer
	once      sync.Once
	onDismiss func(*Toast)
}

func newToast(notification *types.Notification, duration time.Duration, onDismiss func(*Toast)) *Toast {
	toast := &Toast{
		Notification: notification,
		onDismiss:    onDismiss,
	}
	toast.timer = time.AfterFunc(duration, toast.Dismiss)

	return toast
}

// Dismiss removes the toast. Safe to call concurrently with the
// auto-dismiss timer; only the first call takes effect.
func (t *Toast) Dismiss() {
	t.once.Do(func() {
		t.timer.Stop()

		if t.onDismiss != nil {
			t.onDismiss(t)
		}
	})
}
