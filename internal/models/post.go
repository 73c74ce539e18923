package models

import "time"

// Like marks a user's like on a post. A post holds at most one Like per
// user.
type Like struct {
	UserID int64 `json:"user"`
}

// Comment is a single comment on a post, carrying a denormalized
// snapshot of the author's name and avatar.
type Comment struct {
	ID     string    `json:"id"`
	UserID int64     `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is a user-authored text post. Name and Avatar are a snapshot of
// the author taken at creation time.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}
