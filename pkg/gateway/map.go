package gateway

import (
	"github.com/venturemark/blogworker/pkg/block"
	"github.com/venturemark/blogworker/pkg/notion"
)

const untitled = "Untitled"

func mapPage(p notion.Page) Post {
	props := p.Properties

	post := Post{
		ID:          p.ID,
		Title:       block.PlainText(props[propertyTitle].Title),
		Description: block.PlainText(props[propertyDescription].RichText),
		Tags:        []string{},
		Slug:        block.PlainText(props[propertySlug].RichText),
	}

	if post.Title == "" {
		post.Title = untitled
	}
	if post.Slug == "" {
		post.Slug = p.ID
	}

	if d := props[propertyDate].Date; d != nil && d.Start != "" {
		s := d.Start
		post.Date = &s
	}

	for _, o := range props[propertyTags].MultiSelect {
		post.Tags = append(post.Tags, o.Name)
	}

	if u := props[propertyCover].URL; u != nil && *u != "" {
		s := *u
		post.Cover = &s
	} else if p.Cover != nil && p.Cover.URL() != "" {
		s := p.Cover.URL()
		post.Cover = &s
	}

	return post
}
