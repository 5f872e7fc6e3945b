package notification

// NotificationSystem represents a delivery channel (e.g., email).
type NotificationSystem string

// NoticeType represents a kind of notification (e.g., "email_otp").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// EmailOtpNotice carries the one-time passcode for email verification.
	EmailOtpNotice NoticeType = "email_otp"
)

// NotificationData holds the per-message payload.
type NotificationData struct {
	To   string            // Recipient identifier (e.g., email address)
	Data map[string]string // Template data
}

// NoticeTemplate defines the content rendered for a notice.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// Notifier sends a notification rendered from a template.
type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
