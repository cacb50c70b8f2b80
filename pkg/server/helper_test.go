package server

import (
	"context"
	"encoding/json"

	"github.com/venturemark/blogworker/pkg/block"
	"github.com/venturemark/blogworker/pkg/notion"
)

type emptyNotion struct{}

func (emptyNotion) QueryDatabase(ctx context.Context, databaseID string, q notion.Query) (*notion.PageList, error) {
	return &notion.PageList{}, nil
}

func (emptyNotion) RetrievePage(ctx context.Context, pageID string) (*notion.Page, error) {
	return &notion.Page{Object: "page", ID: pageID}, nil
}

func (emptyNotion) ListChildren(ctx context.Context, blockID string, cursor string, pageSize int) (*notion.BlockList, error) {
	return &notion.BlockList{}, nil
}

func gatewayBlocks(s string) block.Blocks {
	var b block.Blocks

	err := json.Unmarshal([]byte(s), &b)
	if err != nil {
		panic(err)
	}

	return b
}
