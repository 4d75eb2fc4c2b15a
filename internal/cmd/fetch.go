package cmd

import (
	"context"

	"github.com/urfave/cli"

	"github.com/eventia/eventia/refresh"
)

var FetchCmd = cli.Command{
	Name:  "fetch",
	Usage: "Fetches events from every configured source",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Don't persist events",
		},
		&cli.StringFlag{
			Name:  "location",
			Usage: "Free-text location to search around, overrides the stored default",
		},
		&cli.Float64Flag{
			Name:  "lat",
			Usage: "Latitude to search around",
		},
		&cli.Float64Flag{
			Name:  "lng",
			Usage: "Longitude to search around",
		},
		&cli.IntFlag{
			Name:  "radius",
			Usage: "Search radius in km",
		},
		&cli.StringFlag{
			Name:  "classification",
			Usage: "Classification filter (Music, Sports, Arts, ...)",
		},
		&cli.StringFlag{
			Name:  "keyword",
			Usage: "Keyword filter",
		},
	},
	Action: fetchEvents,
}

func fetchEvents(c *cli.Context) error {
	debug := c.Bool("debug") || c.GlobalBool("debug")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	st := openStorage(c, debug)
	ctl := buildController(cfg, st, debug)

	q := querySettings(st, cfg).Query(c.String("classification"), c.String("keyword"))
	if c.IsSet("lat") && c.IsSet("lng") {
		q.Latitude, q.Longitude, q.HasCoords = c.Float64("lat"), c.Float64("lng"), true
	}
	if radius := c.Int("radius"); radius > 0 {
		q.RadiusKm = radius
	}

	ctx := context.Background()
	var res refresh.Result
	if address := c.String("location"); address != "" {
		res, err = ctl.RefreshAddress(ctx, address, q, true)
		if err != nil {
			return err
		}
	} else {
		res = ctl.Refresh(ctx, q, true)
	}

	for _, w := range res.Warnings {
		errFn("warning: %s", w)
	}
	for _, ev := range res.Events {
		info("%s", ev)
		if debug && ev.Description != "" {
			info("  %s", ev.Description)
		}
	}
	if len(res.Events) == 0 {
		info("no events found for %s", q)
	}

	if !c.Bool("dry-run") {
		if err := st.SaveEvents(res.Events); err != nil {
			errFn("Error saving events: %s", err)
		}
	}
	return nil
}
