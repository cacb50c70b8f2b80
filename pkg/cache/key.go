package cache

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/xh3b4sd/tracer"
)

const (
	ContentTypeJSON = "application/json; charset=utf-8"
)

// ListKey is the cache key of one listing page. Only the parameters that
// change the upstream query are part of it.
func ListKey(cursor string, pageSize int) string {
	v := url.Values{}
	v.Set("page_size", strconv.Itoa(pageSize))
	if cursor != "" {
		v.Set("start_cursor", cursor)
	}

	return "/posts?" + v.Encode()
}

// PostKey is the cache key of the JSON post.
func PostKey(slug string) string {
	return "/posts/" + url.PathEscape(slug)
}

// HTMLKey is the cache key of a post's rendered fragment.
func HTMLKey(slug string) string {
	return PostKey(slug) + "/html"
}

// ScheduledKey marks a post whose prefetch is already queued.
func ScheduledKey(slug string) string {
	return "/scheduled" + PostKey(slug)
}

func NewJSONEntry(v interface{}) (Entry, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Entry{}, tracer.Mask(err)
	}

	return Entry{Body: string(b), ContentType: ContentTypeJSON}, nil
}
