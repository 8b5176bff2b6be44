// Package chat holds the conversation entities persisted for signed-in users.
package chat

import "time"

// Sender values for Message.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one turn of a conversation.
type Message struct {
	ID        string    `json:"id" bson:"id"`
	Sender    string    `json:"sender" bson:"sender"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Conversation embeds its messages, mirroring the document-store layout.
// Liked is the append-only set of liked message texts: liking the same text
// twice has no additional effect.
type Conversation struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Title     string    `json:"title" bson:"title"`
	Messages  []Message `json:"messages" bson:"messages"`
	Liked     []string  `json:"liked" bson:"liked"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// HasLiked reports whether text is already in the liked set.
func (c Conversation) HasLiked(text string) bool {
	for _, liked := range c.Liked {
		if liked == text {
			return true
		}
	}
	return false
}
