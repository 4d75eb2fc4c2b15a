package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/eventia/eventia/events"
)

var CreateCmd = cli.Command{
	Name:  "create",
	Usage: "Creates a user event and pushes it to the events backend",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "title",
			Usage: "Event title",
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Event description",
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "Event classification",
			Value: events.DefaultCategory,
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Start date, eg 2025-06-01 or 2025-06-01 19:00",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "End date",
		},
		&cli.StringFlag{
			Name:  "location",
			Usage: "Human readable location",
		},
	},
	Action: createEvent,
}

func createEvent(c *cli.Context) error {
	if c.String("title") == "" || c.String("start") == "" {
		return fmt.Errorf("both --title and --start are required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	debug := c.GlobalBool("debug")
	st := openStorage(c, debug)
	ctl := buildController(cfg, st, debug)

	draft := events.Draft{
		Title:       c.String("title"),
		Description: c.String("description"),
		Type:        c.String("type"),
		StartDate:   c.String("start"),
		EndDate:     c.String("end"),
		Location:    c.String("location"),
	}
	created, err := ctl.CreateUserEvent(context.Background(), draft)
	if err != nil {
		return fmt.Errorf("unable to create event: %w", err)
	}
	info("created %s", created)
	return st.SaveEvent(created)
}
