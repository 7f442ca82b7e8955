package models

import "time"

// Comment is a reply left on a post. Deleting the post or the comment
// author removes the comment.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author"`
}
