package entity

import "time"

// Post is a published article. AuthorID is set once at creation from the
// session claim and never reassigned. Cover holds a URL path (local storage)
// or an absolute URL (object storage); it may be empty.
// AuthorName is populated from the users table on reads and is not stored
// on the posts row.
type Post struct {
	ID         string
	Title      string
	Summary    string
	Content    string
	AuthorID   string
	AuthorName string
	Cover      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
