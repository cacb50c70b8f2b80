package notion

import (
	"github.com/venturemark/blogworker/pkg/block"
)

type Page struct {
	Object     string              `json:"object"`
	ID         string              `json:"id"`
	Cover      *block.Media        `json:"cover"`
	Properties map[string]Property `json:"properties"`
}

type PageList struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type BlockList struct {
	Results    block.Blocks `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

// Property is the union of the page property shapes this worker reads.
type Property struct {
	Type        string           `json:"type"`
	Title       []block.RichText `json:"title,omitempty"`
	RichText    []block.RichText `json:"rich_text,omitempty"`
	Date        *Date            `json:"date,omitempty"`
	MultiSelect []Option         `json:"multi_select,omitempty"`
	URL         *string          `json:"url,omitempty"`
	Checkbox    bool             `json:"checkbox,omitempty"`
}

type Date struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

type Option struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Query struct {
	Filter      interface{} `json:"filter,omitempty"`
	Sorts       []Sort      `json:"sorts,omitempty"`
	PageSize    int         `json:"page_size,omitempty"`
	StartCursor string      `json:"start_cursor,omitempty"`
}

type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type apiError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
