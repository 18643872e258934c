package service

import "time"

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
)

const DefaultNotificationDuration = 4000 * time.Millisecond

type Notification struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// Notifier is the port every user-visible message goes through.
type Notifier interface {
	Notify(n Notification)
}

func notifySuccess(n Notifier, msg string) {
	n.Notify(Notification{Message: msg, Type: NotificationSuccess})
}

func notifyError(n Notifier, msg string) {
	n.Notify(Notification{Message: msg, Type: NotificationError})
}

func notifyInfo(n Notifier, msg string) {
	n.Notify(Notification{Message: msg, Type: NotificationInfo})
}

func notifyWarning(n Notifier, msg string) {
	n.Notify(Notification{Message: msg, Type: NotificationWarning})
}
