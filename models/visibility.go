package models

import (
	"time"

	"gorm.io/gorm"
)

// VisibleAt reports whether the post is publicly visible at the given
// time: published, not scheduled for the future, and not hidden by an
// unpublished category. Category must be preloaded for the check to
// see it; a post without a category is not hidden by one.
func (p *Post) VisibleAt(now time.Time) bool {
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	return p.Category == nil || p.Category.IsPublished
}

// FilterVisible returns the publicly visible subset of posts,
// preserving relative order.
func FilterVisible(posts []Post, now time.Time) []Post {
	visible := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.VisibleAt(now) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Visible is a query scope equivalent to VisibleAt, used by every
// public listing. The category check is a subquery so the scope stays
// safe to combine with Count and Preload.
func Visible(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IS NULL OR EXISTS (SELECT 1 FROM categories WHERE categories.id = posts.category_id AND categories.is_published = ?)", true)
	}
}

// ByNewest orders posts newest first, the ordering of all listing pages.
func ByNewest(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC")
}
