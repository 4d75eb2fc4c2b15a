package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/eventia/eventia/events"
)

var ListCmd = cli.Command{
	Name:  "list",
	Usage: "Lists already saved events",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "source",
			Usage: "Which sources to list",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
	},
	Action: listEvents,
}

func listEvents(c *cli.Context) error {
	debug := c.Bool("debug") || c.GlobalBool("debug")
	st := openStorage(c, debug)

	sources := make([]events.Source, 0)
	for _, s := range c.StringSlice("source") {
		if !events.ValidSource(s) {
			return fmt.Errorf("invalid source %s", s)
		}
		sources = append(sources, events.Source(s))
	}

	evs, err := st.LoadEvents(sources...)
	if err != nil {
		return fmt.Errorf("unable to load events: %w", err)
	}
	if len(evs) == 0 {
		fmt.Printf("nothing found")
		return nil
	}
	for _, ev := range evs {
		info("%s", ev)
		if ev.Description != "" {
			info("  %s", ev.Description)
		}
	}
	return nil
}
