// Package entity defines the domain entities for the notifications feature.
package entity

import (
	"encoding/json"
	"time"
)

// Kind identifies what user action produced a notification entry.
type Kind string

const (
	// KindLike is produced when an actor likes a post.
	KindLike Kind = "like"
	// KindComment is produced when an actor comments on a post.
	KindComment Kind = "comment"
	// KindMention is produced when an actor mentions a user.
	KindMention Kind = "mention"
)

// NotificationAggregate is the single per-recipient record holding all of
// a user's accumulated notification entries. At most one aggregate exists
// per user; it is created lazily on the first notification event and its
// entry sequence is append-only.
type NotificationAggregate struct {
	ID          uint                `gorm:"primaryKey" json:"-"`
	RecipientID uint                `gorm:"uniqueIndex;not null" json:"user"`
	Entries     []NotificationEntry `gorm:"foreignKey:AggregateID" json:"notifications"`
	CreatedAt   time.Time           `json:"-"`
}

// NotificationEntry is one notification event with its kind-specific
// payload. Entries are immutable once appended and implicitly ordered by
// append time.
type NotificationEntry struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	AggregateID uint            `gorm:"index;not null" json:"-"`
	Kind        Kind            `gorm:"size:16;not null" json:"type"`
	Data        json.RawMessage `gorm:"type:text" json:"data"`
	CreatedAt   time.Time       `json:"appendedAt"`
}

// LikePayload is the entry payload for a like notification.
type LikePayload struct {
	PostID  uint `json:"postId"`
	LikedBy uint `json:"likedBy"`
}

// CommentPayload is the entry payload for a comment notification.
type CommentPayload struct {
	PostID      uint   `json:"postId"`
	CommentedBy uint   `json:"commentedBy"`
	Comment     string `json:"comment"`
}
