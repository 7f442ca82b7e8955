package models

// Authored is implemented by records owned by a single author.
type Authored interface {
	OwnerID() uint
}

func (p *Post) OwnerID() uint    { return p.AuthorID }
func (c *Comment) OwnerID() uint { return c.AuthorID }

// CanMutate reports whether the user may edit or delete the resource.
// Only the author may; there is no moderator override for user content.
func CanMutate(userID uint, resource Authored) bool {
	return resource.OwnerID() == userID
}
