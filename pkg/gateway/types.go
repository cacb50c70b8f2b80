package gateway

import (
	"github.com/venturemark/blogworker/pkg/block"
)

type Post struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Date        *string      `json:"date"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
	Cover       *string      `json:"cover"`
	Slug        string       `json:"slug"`
	Blocks      block.Blocks `json:"blocks,omitempty"`
}

type PostList struct {
	Posts      []Post  `json:"posts"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Rendered is a post's metadata together with the markup of its block tree.
type Rendered struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Date  *string `json:"date"`
	Cover *string `json:"cover"`
	Slug  string  `json:"slug"`
	HTML  string  `json:"html"`
}
