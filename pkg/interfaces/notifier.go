package interfaces

// NotificationLevel classifies operator-facing notifications.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notifier surfaces human readable messages to the operator.
type Notifier interface {
	Notify(level NotificationLevel, title, message string) string
}
