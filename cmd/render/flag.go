package render

import (
	"github.com/spf13/cobra"
	"github.com/xh3b4sd/tracer"
)

type flag struct {
	Input    string
	Sanitize bool
}

func (f *flag) Init(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Input, "input", "i", "-", "The JSON file to read blocks from, - for stdin.")
	cmd.Flags().BoolVarP(&f.Sanitize, "sanitize", "s", false, "Whether to pass the markup through the sanitizer.")
}

func (f *flag) Validate() error {
	if f.Input == "" {
		return tracer.Maskf(invalidFlagError, "--input must not be empty")
	}

	return nil
}
