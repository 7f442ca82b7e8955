package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog entry created by a user. PubDate may be set in the
// future to schedule delayed visibility. Deleting the post's category
// or location clears the reference; deleting the author removes the
// post and its comments.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time `gorm:"index;not null" json:"pub_date"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	LocationID  *uint     `gorm:"index" json:"location_id"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	Image       string    `gorm:"size:512" json:"image"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author"`
	Location *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"location,omitempty"`
	Category *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Comments []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	// CommentCount is filled at read time by AnnotateCommentCounts,
	// never persisted.
	CommentCount int64 `gorm:"-" json:"comment_count"`
}

// BeforeCreate defaults the publication date to the creation time when
// the caller did not schedule one.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}
