// Package entity defines the domain entities for the posts feature.
package entity

import "time"

// Post is a piece of user content with its comments and like set.
// It is owned by its author; likes and comments are mutated by any
// authenticated user.
type Post struct {
	// ID is the unique identifier for the post.
	ID uint `gorm:"primaryKey" json:"id"`

	// UserID is the id of the authoring user.
	UserID uint `gorm:"index;not null" json:"user"`

	// Content is the text body of the post.
	Content string `gorm:"type:text;not null" json:"post"`

	// ImageURL and VideoURL are optional media references.
	ImageURL string `gorm:"size:512" json:"imageUrl,omitempty"`
	VideoURL string `gorm:"size:512" json:"videoUrl,omitempty"`

	// Comments is the ordered, append-only comment list.
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`

	// Likes is the set of user ids that currently like the post.
	// Backed by the post_likes table; populated by the repository.
	Likes []uint `gorm:"-" json:"likes"`

	// CreatedAt is the timestamp when the post was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the post was last updated.
	UpdatedAt time.Time `json:"-"`
}

// Comment is a single entry in a post's comment list.
// Immutable once appended.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"postId"`
	UserID    uint      `gorm:"not null" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostLike is one row of a post's like set.
// The composite unique index makes membership toggles atomic: a duplicate
// like becomes a no-op insert instead of a duplicate entry.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PostID    uint      `gorm:"index:idx_post_like_pair,unique;not null" json:"postId"`
	UserID    uint      `gorm:"index:idx_post_like_pair,unique;not null" json:"user"`
	CreatedAt time.Time `json:"-"`
}

// TableName pins the join table name used by the toggle statements.
func (PostLike) TableName() string { return "post_likes" }
