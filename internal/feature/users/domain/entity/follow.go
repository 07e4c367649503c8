// Package entity defines the users feature's domain entities.
package entity

import "time"

// Follow is a directed edge in the follow graph.
// The composite unique index makes duplicate edges impossible at the
// storage layer, so concurrent follow requests collapse into one row.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followee"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName overrides the default table name.
func (Follow) TableName() string {
	return "follows"
}
