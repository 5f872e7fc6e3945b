package notification

// MockNotifier records sent notifications for tests. Set FailSend to
// simulate a delivery failure.
type MockNotifier struct {
	SentNotifications []NotificationData
	FailSend          error
}

func (m *MockNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	if m.FailSend != nil {
		return m.FailSend
	}
	m.SentNotifications = append(m.SentNotifications, notification)
	return nil
}
