package sanitize

import (
	"github.com/venturemark/blogworker/pkg/gateway"
)

// Fragment is the response body of a rendered post.
type Fragment struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Cover *string `json:"cover"`
	Slug  string  `json:"slug"`
	HTML  string  `json:"html"`
}

func NewFragment(r *gateway.Rendered) Fragment {
	return Fragment{
		ID:    r.ID,
		Title: r.Title,
		Cover: r.Cover,
		Slug:  r.Slug,
		HTML:  HTML(r.HTML),
	}
}
