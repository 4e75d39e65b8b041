// Package notify sends a desktop notification when an interval completes,
// using the org.freedesktop.Notifications D-Bus interface. A missing
// session bus or notification daemon is never an error; the notification is
// simply dropped.
package notify

import (
	"log/slog"

	godbus "github.com/godbus/dbus/v5"

	"tomatone/internal/timer"
)

const (
	dbusName      = "org.freedesktop.Notifications"
	dbusPath      = "/org/freedesktop/Notifications"
	dbusNotify    = "org.freedesktop.Notifications.Notify"
	urgencyNormal = byte(1)
)

// Notifier sends interval-completion notifications.
type Notifier struct {
	logger        *slog.Logger
	enabled       bool
	expireTimeout int32
}

// NewNotifier creates a notifier. When enabled is false all calls are
// no-ops.
func NewNotifier(enabled bool, expireTimeoutMs int, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:        logger,
		enabled:       enabled,
		expireTimeout: int32(expireTimeoutMs),
	}
}

// IntervalComplete announces a finished interval on the session bus.
func (n *Notifier) IntervalComplete(mode timer.Mode) {
	var summary, body string
	switch mode {
	case timer.ModeWork:
		summary = "Pomodoro complete"
		body = "Time for a break."
	case timer.ModeBreak:
		summary = "Break over"
		body = "Back to work."
	}
	n.send(summary, body)
}

// send performs the D-Bus Notify call. Failures are logged at debug level
// and otherwise ignored.
func (n *Notifier) send(summary, body string) {
	if !n.enabled {
		return
	}

	conn, err := godbus.SessionBus()
	if err != nil {
		n.logger.Debug("no session bus, skipping notification", "error", err)
		return
	}

	obj := conn.Object(dbusName, godbus.ObjectPath(dbusPath))
	call := obj.Call(dbusNotify, 0,
		"tomatone",          // app_name
		uint32(0),           // replaces_id
		"alarm-symbolic",    // app_icon
		summary,             // summary
		body,                // body
		[]string{},          // actions
		map[string]godbus.Variant{
			"urgency":   godbus.MakeVariant(urgencyNormal),
			"transient": godbus.MakeVariant(true),
		},
		n.expireTimeout, // expire_timeout
	)
	if call.Err != nil {
		n.logger.Debug("notification failed", "error", call.Err)
	}
}
