package list

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/nleeper/goment"
	"github.com/spf13/cobra"
	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/gateway"
	"github.com/venturemark/blogworker/pkg/notion"
)

type runner struct {
	flag   *flag
	logger logger.Interface
}

func (r *runner) Run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	err := r.flag.Validate()
	if err != nil {
		return tracer.Mask(err)
	}

	err = r.run(ctx, cmd, args)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}

func (r *runner) run(ctx context.Context, cmd *cobra.Command, args []string) error {
	var err error

	var notionClient notion.Interface
	{
		c := notion.ClientConfig{
			Timeout: 10 * time.Second,
			Token:   r.flag.Token,
		}

		notionClient, err = notion.NewClient(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var newGateway gateway.Interface
	{
		c := gateway.Config{
			Logger: r.logger,
			Notion: notionClient,

			DatabaseID: r.flag.DatabaseID,
			MaxDepth:   gateway.DefaultMaxDepth,
		}

		newGateway, err = gateway.New(c)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var l *gateway.PostList
	{
		l, err = newGateway.ListPosts(ctx, r.flag.Cursor, r.flag.PageSize)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	err = write(cmd.OutOrStdout(), l, time.Now())
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}

func write(w io.Writer, l *gateway.PostList, now time.Time) error {
	t := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, p := range l.Posts {
		_, err := fmt.Fprintf(t, "%s\t%s\t%s\n", p.Slug, published(p.Date, now), p.Title)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	if l.NextCursor != nil {
		_, err := fmt.Fprintf(t, "\nnext cursor: %s\n", *l.NextCursor)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	err := t.Flush()
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}

// published renders the post date relative to now, e.g. "3 days ago".
func published(date *string, now time.Time) string {
	if date == nil {
		return "-"
	}

	d, err := time.Parse("2006-01-02", *date)
	if err != nil {
		d, err = time.Parse(time.RFC3339, *date)
		if err != nil {
			return *date
		}
	}

	g, err := goment.New(d)
	if err != nil {
		return *date
	}

	n, err := goment.New(now)
	if err != nil {
		return *date
	}

	return g.From(n)
}
