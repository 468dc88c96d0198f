package services

import (
	"log"
	"time"

	"localbookr-server/database"
	"localbookr-server/models"
	ws "localbookr-server/websocket"
)

var notificationHub *ws.Hub

// SetNotificationHub wires the websocket hub used for live notification
// push. Optional: without it, clients pick notifications up on their next
// poll.
func SetNotificationHub(hub *ws.Hub) {
	notificationHub = hub
}

// Notify writes a notification row for a user and pushes it over the
// websocket when they are connected. Best-effort by contract: failures are
// logged and swallowed, they never affect the operation that triggered them.
func Notify(userID uint, message string, notificationType models.NotificationType) {
	notification := models.Notification{
		UserID:  userID,
		Message: message,
		Type:    notificationType,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("⚠️ Failed to create notification for user %d: %v", userID, err)
		return
	}

	if notificationHub != nil {
		notificationHub.SendToUser(userID, &ws.Message{
			Type: "notification",
			Data: map[string]interface{}{
				"id":         notification.ID,
				"message":    notification.Message,
				"type":       notification.Type,
				"is_read":    notification.IsRead,
				"created_at": notification.CreatedAt,
			},
			Timestamp: time.Now(),
		})
	}
}
