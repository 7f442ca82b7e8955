package models

import "gorm.io/gorm"

// AnnotateCommentCounts fills CommentCount on each post in place with a
// single grouped query. Applied after visibility filtering on every
// listing page; detail pages load comments directly and skip it.
func AnnotateCommentCounts(db *gorm.DB, posts []Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	type countRow struct {
		PostID uint
		Total  int64
	}
	var rows []countRow
	err := db.Model(&Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.Total
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}
