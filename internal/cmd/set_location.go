package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/eventia/eventia/geo"
)

var SetLocationCmd = cli.Command{
	Name:  "set-location",
	Usage: "Geocodes an address and stores it as the default search location",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "Free-text address to resolve",
		},
		&cli.IntFlag{
			Name:  "radius",
			Usage: "Search radius in km",
		},
	},
	Action: setLocation,
}

func setLocation(c *cli.Context) error {
	address := c.String("address")
	if address == "" {
		return fmt.Errorf("--address is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	debug := c.GlobalBool("debug")
	st := openStorage(c, debug)

	resolver := geo.New(geo.Config{
		APIKey:  cfg.Geocode.APIKey,
		BaseURL: cfg.Geocode.BaseURL,
		Cache:   st,
	})
	place, err := resolver.Resolve(context.Background(), address)
	if err != nil {
		return fmt.Errorf("unable to resolve %q: %w", address, err)
	}

	settings, err := st.LoadSettings()
	if err != nil {
		errFn("unable to load settings, starting from defaults: %s", err)
	}
	settings.Latitude = place.Latitude
	settings.Longitude = place.Longitude
	settings.LocationName = place.Name
	if radius := c.Int("radius"); radius > 0 {
		settings.RadiusKm = radius
	}
	if err := st.SaveSettings(settings); err != nil {
		return fmt.Errorf("unable to save settings: %w", err)
	}
	info("default location set to %s (%g,%g), radius %dkm",
		settings.LocationName, settings.Latitude, settings.Longitude, settings.RadiusKm)
	return nil
}
