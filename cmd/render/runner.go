package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/pkg/block"
	"github.com/venturemark/blogworker/pkg/sanitize"
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

	var b []byte
	{
		if r.flag.Input == "-" {
			b, err = io.ReadAll(cmd.InOrStdin())
		} else {
			b, err = os.ReadFile(r.flag.Input)
		}
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var blocks block.Blocks
	{
		blocks, err = decode(b)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var h string
	{
		h = block.Render(blocks)

		if r.flag.Sanitize {
			h = sanitize.HTML(h)
		}
	}

	r.logger.Log(ctx, "level", "debug", "message", fmt.Sprintf("rendered %d blocks", len(blocks)))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), h)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}

// decode accepts a bare list of blocks as well as a children response
// wrapping them under results.
func decode(b []byte) (block.Blocks, error) {
	b = bytes.TrimSpace(b)

	if len(b) != 0 && b[0] == '{' {
		var l struct {
			Results block.Blocks `json:"results"`
		}

		err := json.Unmarshal(b, &l)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		return l.Results, nil
	}

	var l block.Blocks

	err := json.Unmarshal(b, &l)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return l, nil
}
