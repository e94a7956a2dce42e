package domain

import "time"

// Comment is a visitor comment on a record.
// Comments are created once and never edited or deleted.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"user"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	LikeCount int       `json:"likes"`
	Timestamp time.Time `json:"timestamp"`
	Pinned    bool      `json:"isPinned,omitempty"`
}
