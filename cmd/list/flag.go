package list

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/gateway"
)

type flag struct {
	Cursor     string
	DatabaseID string
	PageSize   int
	Token      string
}

func (f *flag) Init(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Cursor, "cursor", "c", "", "The cursor of the page to list.")
	cmd.Flags().StringVarP(&f.DatabaseID, "notion-database-id", "", os.Getenv("NOTION_DATABASE_ID"), "The notion database holding the posts, defaults to $NOTION_DATABASE_ID.")
	cmd.Flags().IntVarP(&f.PageSize, "page-size", "n", gateway.DefaultPageSize, "The number of posts to list.")
	cmd.Flags().StringVarP(&f.Token, "notion-token", "", os.Getenv("NOTION_API_TOKEN"), "The notion integration token, defaults to $NOTION_API_TOKEN.")
}

func (f *flag) Validate() error {
	if f.DatabaseID == "" {
		return tracer.Maskf(invalidFlagError, "--notion-database-id must not be empty")
	}
	if f.PageSize < 1 || f.PageSize > gateway.MaxPageSize {
		return tracer.Maskf(invalidFlagError, "--page-size must be between 1 and %d", gateway.MaxPageSize)
	}
	if f.Token == "" {
		return tracer.Maskf(invalidFlagError, "--notion-token must not be empty")
	}

	return nil
}
