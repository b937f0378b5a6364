package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID    `json:"id"`
	AuthorID  uuid.UUID    `json:"author_id"`
	Content   string       `json:"content"`
	Tags      []string     `json:"tags,omitempty"`
	ImageURLs []string     `json:"image_urls,omitempty"`
	Preview   *LinkPreview `json:"preview,omitempty"` // Open Graph preview of the first link
	LikeCount int          `json:"like_count"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

type PostComment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
