package cmd

import (
	"context"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/lw"
	w "git.sr.ht/~mariusor/wrapper"

	"github.com/eventia/eventia/api"
	"github.com/eventia/eventia/refresh"
)

var Server = cli.Command{
	Name:  "start",
	Usage: "Starts the event aggregation server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
		&cli.StringFlag{
			Name:  "listen",
			Usage: "Address to listen on, overrides the configured one",
		},
	},
	Action: serverStart,
}

var wait = 100 * time.Millisecond

func serverStart(c *cli.Context) error {
	debug := c.Bool("debug") || c.GlobalBool("debug")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	listen := cfg.Listen
	if l := c.String("listen"); l != "" {
		listen = l
	}

	logger := lw.Dev()

	st := openStorage(c, debug)
	metrics := api.NewMetrics()
	ctl := buildController(cfg, st, debug,
		withMetrics(metrics),
		refresh.WithLogFns(logger.Infof, logger.Errorf))

	// background refresh keeps the published list warm for the stored
	// default location
	backgroundRefresh := func() {
		settings := querySettings(st, cfg)
		if !settings.HasLocation() {
			return
		}
		res := ctl.Refresh(context.Background(), settings.Query("", ""), true)
		for _, warn := range res.Warnings {
			logger.Errorf("background refresh: %s", warn)
		}
		if err := st.SaveEvents(res.Events); err != nil {
			logger.Errorf("background refresh: unable to persist events: %s", err)
		}
		metrics.EventsServed.Set(float64(len(res.Events)))
	}

	sched := cron.New()
	if cfg.RefreshCron != "" {
		if _, err := sched.AddFunc(cfg.RefreshCron, backgroundRefresh); err != nil {
			return err
		}
	}

	info("Listening on %s", listen)

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	// Get start/stop functions for the http server
	srvRun, srvStop := w.HttpServer(w.Handler(api.Routes(ctl, configSettings{st: st, cfg: cfg}, metrics, AppVersion)), w.OnTCP(listen))
	w.RegisterSignalHandlers(w.SignalHandlers{
		syscall.SIGHUP: func(_ chan int) {
			info("SIGHUP received, invalidating cached refresh state")
			ctl.Invalidate()
		},
		syscall.SIGINT: func(exit chan int) {
			info("SIGINT received, stopping")
			exit <- 0
		},
		syscall.SIGTERM: func(exit chan int) {
			info("SIGITERM received, force stopping")
			exit <- 0
		},
		syscall.SIGQUIT: func(exit chan int) {
			info("SIGQUIT received, force stopping with core-dump")
			exit <- 0
		},
	}).Exec(func() error {
		sched.Start()
		defer sched.Stop()

		go backgroundRefresh()

		if err := srvRun(); err != nil {
			errFn("Error: %s", err)
			return err
		}
		var err error
		// Doesn't block if no connections, but will otherwise wait until the timeout deadline.
		go func(e error) {
			if err = srvStop(ctx); err != nil {
				errFn("Error: %s", err)
			}
		}(err)
		return err
	})

	return nil
}
