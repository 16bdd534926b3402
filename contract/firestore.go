package contract

import "time"

const (
	UsersCollection    = "users"
	ChatsCollection    = "chats"
	MembersCollection  = "members"
	MessagesCollection = "messages"

	MessageStatusSent = "sent"
	MessageTypeText   = "text"
)

// FirestoreUser is the read view of a users document. Tools wrote the photo
// under photoUrl, photoURL and avatarUrl over time; Photo holds whichever is set.
type FirestoreUser struct {
	ID            string
	DisplayName   string
	Email         string
	Photo         string
	StatusMessage string
	LastSeen      time.Time
}

type FirestoreMessage struct {
	ID       string
	SenderID string
	Text     string
	SentAt   time.Time
	Status   string
	Type     string
}

var photoFields = []string{"photoUrl", "photoURL", "avatarUrl"}

func UserFromData(id string, data map[string]any) FirestoreUser {
	u := FirestoreUser{
		ID:            id,
		DisplayName:   stringField(data, "displayName"),
		Email:         stringField(data, "email"),
		StatusMessage: stringField(data, "statusMessage"),
		LastSeen:      timeField(data, "lastSeen"),
	}
	for _, field := range photoFields {
		if photo := stringField(data, field); photo != "" {
			u.Photo = photo
			break
		}
	}
	return u
}

// MessageFromData reads a messages document. Legacy messages carry
// "timestamp" instead of "sentAt".
func MessageFromData(id string, data map[string]any) FirestoreMessage {
	sentAt := timeField(data, "sentAt")
	if sentAt.IsZero() {
		sentAt = timeField(data, "timestamp")
	}
	return FirestoreMessage{
		ID:       id,
		SenderID: stringField(data, "senderId"),
		Text:     stringField(data, "text"),
		SentAt:   sentAt,
		Status:   stringField(data, "status"),
		Type:     stringField(data, "type"),
	}
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func timeField(data map[string]any, key string) time.Time {
	t, _ := data[key].(time.Time)
	return t
}
