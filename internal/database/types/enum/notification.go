package enum

// NotificationType categorizes feed entries so the renderer can pick
// an icon and accent color for each item.
type NotificationType string

const (
	NotificationTypeInfo        NotificationType = "info"
	NotificationTypeSuccess     NotificationType = "success"
	NotificationTypeWarning     NotificationType = "warning"
	NotificationTypeError       NotificationType = "error"
	NotificationTypePartnership NotificationType = "partnership"
	NotificationTypeMessage     NotificationType = "message"
	NotificationTypeLead        NotificationType = "lead"
	NotificationTypeView        NotificationType = "view"
	NotificationTypeSoftware    NotificationType = "software"
)

// Valid reports whether the notification type is a known value.
func (n NotificationType) Valid() bool {
	switch n {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning,
		NotificationTypeError, NotificationTypePartnership, NotificationTypeMessage,
		NotificationTypeLead, NotificationTypeView, NotificationTypeSoftware:
		return true
	default:
		return false
	}
}
