package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/cmd/daemon"
	"github.com/venturemark/blogworker/cmd/list"
	"github.com/venturemark/blogworker/cmd/render"
	"github.com/venturemark/blogworker/cmd/version"
)

const (
	name  = "blogworker"
	short = "Serve blog posts from a notion database as JSON and HTML."
	long  = "Serve blog posts from a notion database as JSON and HTML. The daemon\n" +
		"exposes the HTTP gateway and warms its response cache in the background."
)

type Config struct {
	Logger logger.Interface
}

type Command struct {
	*cobra.Command
}

func New(config Config) (*Command, error) {
	if config.Logger == nil {
		return nil, tracer.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	var err error

	var daemonCmd *cobra.Command
	{
		daemonCmd, err = daemon.New(daemon.Config{Logger: config.Logger})
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var listCmd *cobra.Command
	{
		listCmd, err = list.New(list.Config{Logger: config.Logger})
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var renderCmd *cobra.Command
	{
		renderCmd, err = render.New(render.Config{Logger: config.Logger})
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var versionCmd *cobra.Command
	{
		versionCmd, err = version.New(version.Config{Logger: config.Logger})
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var c *cobra.Command
	{
		c = &cobra.Command{
			Use:   name,
			Short: short,
			Long:  long,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cmd.Help()
			},
			// The command errors are logged by the caller.
			SilenceErrors: true,
			SilenceUsage:  true,
		}

		c.AddCommand(daemonCmd)
		c.AddCommand(listCmd)
		c.AddCommand(renderCmd)
		c.AddCommand(versionCmd)
	}

	return &Command{Command: c}, nil
}
