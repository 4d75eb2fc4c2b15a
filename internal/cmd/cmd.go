package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/eventia/eventia/api"
	"github.com/eventia/eventia/events"
	"github.com/eventia/eventia/events/eventia"
	"github.com/eventia/eventia/events/ticketmaster"
	"github.com/eventia/eventia/geo"
	"github.com/eventia/eventia/internal/config"
	"github.com/eventia/eventia/refresh"
	"github.com/eventia/eventia/storage"
	"github.com/eventia/eventia/storage/boltdb"
)

const (
	AppName    = "eventia"
	AppVersion = "(unknown)"
)

func MkDirIfNotExists(p string) error {
	fi, err := os.Stat(p)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(p, os.ModeDir|os.ModePerm|0700)
	}
	if err != nil {
		return err
	}
	fi, err = os.Stat(p)
	if err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("path exists, and is not a folder %s", p)
	}
	return nil
}

func DataPath() string {
	homeDir, _ := os.UserHomeDir()
	xdgDataPath := filepath.Join(homeDir, ".local", "share")
	appPath := filepath.Join(xdgDataPath, AppName)

	if _, err := os.Stat(appPath); err != nil && errors.Is(err, os.ErrNotExist) {
		err := MkDirIfNotExists(appPath)
		if err != nil {
			log.Fatalf("Error: %s", err.Error())
		}
	}
	return appPath
}

func ConfigPath() string {
	xdgConfigPath, _ := os.UserConfigDir()
	return filepath.Join(xdgConfigPath, AppName+".yml")
}

var info = func(s string, args ...interface{}) {
	fmt.Printf(s+"\n", args...)
}

var errFn = func(s string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, s+"\n", args...)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	// .env is optional, it only carries API keys in development
	_ = godotenv.Load()

	path := c.GlobalString("config")
	if path == "" {
		path = ConfigPath()
	}
	return config.Load(path)
}

func storagePath(c *cli.Context) string {
	return filepath.Join(c.GlobalString("path"), boltdb.DefaultFile)
}

func openStorage(c *cli.Context, debug bool) *boltdb.Repo {
	var logFn, errLogFn boltdb.LoggerFn
	if debug {
		logFn = info
	}
	errLogFn = errFn
	return boltdb.New(boltdb.Config{
		Path:  storagePath(c),
		LogFn: logFn,
		ErrFn: errLogFn,
	})
}

// querySettings loads the persisted search context, falling back to the
// configured default location and radius when nothing has been stored yet.
func querySettings(st *boltdb.Repo, cfg *config.Config) storage.Settings {
	settings, err := st.LoadSettings()
	if err != nil {
		errFn("unable to load settings: %s", err)
	}
	if !settings.HasLocation() {
		settings.Latitude = cfg.DefaultLocation.Latitude
		settings.Longitude = cfg.DefaultLocation.Longitude
		settings.LocationName = cfg.DefaultLocation.Name
		if cfg.RadiusKm > 0 {
			settings.RadiusKm = cfg.RadiusKm
		}
	}
	return settings
}

// configSettings exposes the seeded settings through the SettingsStore
// interface, so the HTTP handlers see the configured defaults too.
type configSettings struct {
	st  *boltdb.Repo
	cfg *config.Config
}

func (s configSettings) LoadSettings() (storage.Settings, error) {
	return querySettings(s.st, s.cfg), nil
}

func (s configSettings) SaveSettings(v storage.Settings) error {
	return s.st.SaveSettings(v)
}

func withMetrics(m *api.Metrics) refresh.Option {
	return refresh.WithObservers(m.OnCycle, m.OnFailure)
}

// buildController assembles the refresh controller with every configured
// source adapter, the geocoder, and the shared HTTP client.
func buildController(cfg *config.Config, st *boltdb.Repo, debug bool, opts ...refresh.Option) *refresh.Controller {
	httpClient := resty.New()

	tm := ticketmaster.New(ticketmaster.Config{
		APIKey:   cfg.Ticketmaster.APIKey,
		BaseURL:  cfg.Ticketmaster.BaseURL,
		PageSize: cfg.Ticketmaster.PageSize,
		Client:   httpClient,
	})
	usr := eventia.New(eventia.Config{
		BaseURL: cfg.Eventia.BaseURL,
		Client:  httpClient,
	})
	resolver := geo.New(geo.Config{
		APIKey:  cfg.Geocode.APIKey,
		BaseURL: cfg.Geocode.BaseURL,
		Client:  httpClient,
		Cache:   st,
	})

	ctlOpts := []refresh.Option{
		refresh.WithCreator(usr),
		refresh.WithResolver(resolver),
		refresh.WithLogFns(errFn, errFn),
	}
	if debug {
		ctlOpts[2] = refresh.WithLogFns(info, errFn)
	}
	ctlOpts = append(ctlOpts, opts...)

	return refresh.New([]events.Fetcher{usr, tm}, ctlOpts...)
}
