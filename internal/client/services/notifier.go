package services

// Notifier delivers user-facing messages that have no direct caller to
// return to (background sync results, operation confirmations). The CLI
// installs a printing implementation.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// NopNotifier discards all messages.
var NopNotifier = NotifierFunc(func(string) {})
