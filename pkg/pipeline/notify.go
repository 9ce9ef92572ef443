package pipeline

import "log/slog"

// Notifier receives the single transient, user-visible notification emitted
// for every failed network call. Implementations should be cheap and must
// not call back into the request pipeline.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// NewLogNotifier returns a Notifier that surfaces failure messages through
// the given logger at warn level. It is the default when no UI is attached.
func NewLogNotifier(logger *slog.Logger) Notifier {
	return NotifierFunc(func(msg string) {
		logger.Warn("request failed", "message", msg)
	})
}

// Navigator performs the hard navigation issued on forced logout. Unlike an
// in-app route transition, a Reset is expected to discard all in-memory UI
// state tied to the old session before landing on the target view.
type Navigator interface {
	Reset(view string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(view string)

func (f NavigatorFunc) Reset(view string) { f(view) }

// NewLogNavigator returns a Navigator that only records the reset; headless
// consumers (tests, one-shot CLI runs) have no view stack to tear down.
func NewLogNavigator(logger *slog.Logger) Navigator {
	return NavigatorFunc(func(view string) {
		logger.Info("hard navigation", "view", view)
	})
}
