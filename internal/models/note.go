package models

import "time"

// Note is owned by exactly one user; AuthorID is never taken from client input.
type Note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  int       `json:"author"`
}
