package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"
)

const (
	name  = "version"
	short = "Print version information of this command line tool."
	long  = "Print version information of this command line tool."
)

// Set via -ldflags at build time.
var (
	gitSHA = "n/a"
	source = "https://github.com/venturemark/blogworker"
)

type Config struct {
	Logger logger.Interface
}

func New(config Config) (*cobra.Command, error) {
	if config.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	c := &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit    %s\n", gitSHA)
			fmt.Fprintf(cmd.OutOrStdout(), "Go Version    %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "Go Arch       %s\n", runtime.GOARCH)
			fmt.Fprintf(cmd.OutOrStdout(), "Go OS         %s\n", runtime.GOOS)
			fmt.Fprintf(cmd.OutOrStdout(), "Source        %s\n", source)

			return nil
		},
	}

	return c, nil
}
