package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SendNotificationRequest struct {
	Text             string `json:"text"`
	ReceiverID       string `json:"receiver_id"`
	Name             string `json:"name,omitempty"`
	Image            string `json:"image,omitempty"`
	BroadcastToAdmin bool   `json:"broadcast_to_admin,omitempty"`
}

type NotificationView struct {
	NotificationID string `json:"notification_id"`
	ReceiverID     string `json:"receiver_id,omitempty"`
	Text           string `json:"text"`
	Name           string `json:"name,omitempty"`
	Image          string `json:"image,omitempty"`
	Type           string `json:"type"`
	Read           bool   `json:"read"`
	CreatedAt      string `json:"created_at"`
}

type NotificationResponse struct {
	Notification NotificationView `json:"notification"`
}

type FeedResponse struct {
	Notifications []NotificationView `json:"notifications"`
	Unread        int                `json:"unread"`
}

type AdminFeedResponse struct {
	Notifications []NotificationView `json:"notifications"`
}

type MarkReadResponse struct {
	Marked int `json:"marked"`
}
