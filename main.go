package main

import (
	"fmt"
	"os"

	"github.com/xh3b4sd/logger"
	"github.com/xh3b4sd/tracer"

	"github.com/venturemark/blogworker/cmd"
)

func main() {
	err := mainE()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%#v\n", err)
		os.Exit(1)
	}
}

func mainE() error {
	var err error

	var l logger.Interface
	{
		l, err = logger.New(logger.Config{})
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var c *cmd.Command
	{
		c, err = cmd.New(cmd.Config{
			Logger: l,
		})
		if err != nil {
			return tracer.Mask(err)
		}
	}

	err = c.Execute()
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}
