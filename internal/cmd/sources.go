package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/eventia/eventia/events"
)

var ShowSourcesCmd = cli.Command{
	Name:   "sources",
	Usage:  "Prints the valid event sources",
	Action: showSources,
}

func showSources(c *cli.Context) error {
	for _, src := range events.DefaultSources {
		fmt.Printf("%s\n", src)
	}
	return nil
}
