package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"
	"golang.org/x/sync/errgroup"

	"github.com/venturemark/blogworker/pkg/block"
	"github.com/venturemark/blogworker/pkg/notion"
)

const (
	DefaultMaxDepth = 3
	DefaultPageSize = 12
	MaxPageSize     = 100

	childrenPageSize = 100
)

const (
	propertyCover       = "Cover"
	propertyDate        = "Date"
	propertyDescription = "Description"
	propertyPublished   = "Published"
	propertySlug        = "Slug"
	propertyTags        = "Tags"
	propertyTitle       = "Title"
)

// Interface is what the HTTP server and the prefetch handler need from the
// gateway.
type Interface interface {
	ListPosts(ctx context.Context, cursor string, pageSize int) (*PostList, error)
	GetPost(ctx context.Context, slugOrID string) (*Post, error)
	RenderPost(ctx context.Context, slugOrID string) (*Rendered, error)
}

type Config struct {
	Logger logger.Interface
	Notion notion.Interface

	DatabaseID string
	MaxDepth   int
}

type Gateway struct {
	logger logger.Interface
	notion notion.Interface

	databaseID string
	maxDepth   int
}

func New(config Config) (*Gateway, error) {
	if config.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Notion == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Notion must not be empty", config)
	}

	if config.DatabaseID == "" {
		return nil, tracer.Maskf(invalidConfigError, "%T.DatabaseID must not be empty", config)
	}
	if config.MaxDepth < 0 {
		return nil, tracer.Maskf(invalidConfigError, "%T.MaxDepth must not be negative", config)
	}

	g := &Gateway{
		logger: config.Logger,
		notion: config.Notion,

		databaseID: config.DatabaseID,
		maxDepth:   config.MaxDepth,
	}

	return g, nil
}

// ListPosts returns one page of published posts, newest first.
func (g *Gateway) ListPosts(ctx context.Context, cursor string, pageSize int) (*PostList, error) {
	pageSize = PageSize(pageSize)

	q := notion.Query{
		Filter:      publishedFilter(),
		Sorts:       []notion.Sort{{Property: propertyDate, Direction: "descending"}},
		PageSize:    pageSize,
		StartCursor: cursor,
	}

	l, err := g.notion.QueryDatabase(ctx, g.databaseID, q)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	res := &PostList{
		Posts:   []Post{},
		HasMore: l.HasMore,
	}

	for _, p := range l.Results {
		res.Posts = append(res.Posts, mapPage(p))
	}

	if l.NextCursor != "" {
		c := l.NextCursor
		res.NextCursor = &c
	}

	g.logger.Log(ctx, "level", "debug", "message", fmt.Sprintf("listed %d posts", len(res.Posts)), "more", strconv.FormatBool(res.HasMore))

	return res, nil
}

// GetPost resolves a slug or page id to a post including its block tree.
func (g *Gateway) GetPost(ctx context.Context, slugOrID string) (*Post, error) {
	var err error

	var pid string
	{
		pid, err = g.resolve(ctx, slugOrID)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var page *notion.Page
	var blocks block.Blocks
	{
		eg, ctx := errgroup.WithContext(ctx)

		eg.Go(func() error {
			p, err := g.notion.RetrievePage(ctx, pid)
			if notion.IsNotFound(err) {
				return tracer.Maskf(notFoundError, "%s", slugOrID)
			} else if err != nil {
				return tracer.Mask(err)
			}

			page = p

			return nil
		})

		eg.Go(func() error {
			b, err := g.FetchBlocks(ctx, pid, 0)
			if notion.IsNotFound(err) {
				return tracer.Maskf(notFoundError, "%s", slugOrID)
			} else if err != nil {
				return tracer.Mask(err)
			}

			blocks = b

			return nil
		})

		err = eg.Wait()
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	post := mapPage(*page)
	post.Blocks = blocks

	g.logger.Log(ctx, "level", "debug", "message", "fetched post", "post", post.ID, "blocks", strconv.Itoa(len(blocks)))

	return &post, nil
}

// RenderPost fetches a post and renders its block tree.
func (g *Gateway) RenderPost(ctx context.Context, slugOrID string) (*Rendered, error) {
	p, err := g.GetPost(ctx, slugOrID)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return NewRendered(p), nil
}

// NewRendered renders the block tree of an already fetched post.
func NewRendered(p *Post) *Rendered {
	return &Rendered{
		ID:    p.ID,
		Title: p.Title,
		Date:  p.Date,
		Cover: p.Cover,
		Slug:  p.Slug,
		HTML:  block.Render(p.Blocks),
	}
}

// FetchBlocks pages through the children of the given block and attaches
// nested children eagerly. Nothing is fetched below the configured depth.
func (g *Gateway) FetchBlocks(ctx context.Context, id string, depth int) (block.Blocks, error) {
	if depth > g.maxDepth {
		return block.Blocks{}, nil
	}

	all := block.Blocks{}

	var cursor string
	for {
		l, err := g.notion.ListChildren(ctx, id, cursor, childrenPageSize)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		for i := range l.Results {
			if !l.Results[i].HasChildren {
				continue
			}

			c, err := g.FetchBlocks(ctx, l.Results[i].ID, depth+1)
			if err != nil {
				return nil, tracer.Mask(err)
			}

			l.Results[i].Children = c
		}

		all = append(all, l.Results...)

		if !l.HasMore || l.NextCursor == "" {
			break
		}

		cursor = l.NextCursor
	}

	return all, nil
}

func (g *Gateway) resolve(ctx context.Context, slugOrID string) (string, error) {
	if isID(slugOrID) {
		return slugOrID, nil
	}

	q := notion.Query{
		Filter: map[string]interface{}{
			"and": []interface{}{
				map[string]interface{}{
					"property":  propertySlug,
					"rich_text": map[string]interface{}{"equals": slugOrID},
				},
				publishedFilter(),
			},
		},
		PageSize: 1,
	}

	l, err := g.notion.QueryDatabase(ctx, g.databaseID, q)
	if err != nil {
		return "", tracer.Mask(err)
	}

	if len(l.Results) == 0 {
		return "", tracer.Maskf(notFoundError, "%s", slugOrID)
	}

	return l.Results[0].ID, nil
}

// PageSize applies the listing default and upper bound to a requested page
// size.
func PageSize(n int) int {
	if n < 1 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}

	return n
}

func publishedFilter() map[string]interface{} {
	return map[string]interface{}{
		"property": propertyPublished,
		"checkbox": map[string]interface{}{"equals": true},
	}
}

// isID reports whether s is a page id in its dashed or undashed form.
func isID(s string) bool {
	if len(s) != 32 && len(s) != 36 {
		return false
	}

	_, err := uuid.Parse(s)
	return err == nil
}
