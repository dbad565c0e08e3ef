package model

import "time"

// Post is a user-authored diary entry with an optional image and a
// visibility flag.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	Hashtag   string    `json:"hashtag"`
	Image     string    `json:"image"`
	Visible   bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
