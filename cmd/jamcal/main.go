package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"jamcal/internal/api"
	"jamcal/internal/cache"
	"jamcal/internal/config"
	"jamcal/internal/ics"
	appLog "jamcal/internal/log"
	"jamcal/internal/model"
	"jamcal/internal/schedule"
	"jamcal/internal/webutil"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	once       bool
	out        string
	dump       bool
	verbose    bool
}

// app bundles everything a refresh cycle needs.
type app struct {
	conf   *config.Config
	loc    *time.Location
	client *api.Client
	store  *cache.Store
	opts   api.SessionOptions
	dump   bool
}

func main() {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load()

	flags := parseFlags()
	if flags.verbose {
		appLog.SetLevel(appLog.LevelDebug)
	}

	appLog.Info("jamcal starting", "version", "0.1.0")

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if root := os.Getenv("JAMCAL_API_ROOT"); root != "" {
		conf.APIRoot = root
	}
	if flags.out != "" {
		conf.ICSPath = flags.out
	}
	if err := requireAPIRoot(conf); err != nil {
		appLog.Error("invalid config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	loc, err := conf.Location()
	if err != nil {
		appLog.Error("failed to resolve timezone", err, "timezone", conf.Timezone)
		os.Exit(1)
	}

	appLog.Info("effective config",
		"api_root", conf.APIRoot,
		"timezone", conf.Timezone,
		"refresh", conf.RefreshCron,
		"horizon_days", conf.HorizonDays,
		"ics_path", conf.ICSPath,
		"cache_path", conf.CachePath,
		"once", flags.once,
	)

	a := &app{
		conf:   conf,
		loc:    loc,
		client: api.NewClient(conf.APIRoot),
		opts:   filterOptions(conf.Filter),
		dump:   flags.dump,
	}

	if conf.CachePath != "" {
		store, err := cache.Open(conf.CachePath)
		if err != nil {
			// Operate without a snapshot fallback rather than refusing to run.
			appLog.Error("failed to open snapshot cache, continuing without it", err, "cache_path", conf.CachePath)
		} else {
			a.store = store
			defer store.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if flags.once {
		if err := a.refresh(ctx); err != nil {
			appLog.Error("refresh failed", err)
			os.Exit(1)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(conf.RefreshCron, func() {
		if err := a.refresh(ctx); err != nil {
			appLog.Error("scheduled refresh failed", err)
		}
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}

	// Run one refresh immediately, then hand over to the scheduler.
	if err := a.refresh(ctx); err != nil {
		appLog.Error("initial refresh failed", err)
	}
	c.Start()

	<-ctx.Done()
	stopAndDrain(c)
	appLog.Info("jamcal exiting")
}

// requireAPIRoot rejects a config without an API root; there is no sensible
// default host to fall back to.
func requireAPIRoot(conf *config.Config) error {
	if conf.APIRoot == "" {
		return errors.New("no API root configured: set api_root in the config file or JAMCAL_API_ROOT")
	}
	return nil
}

// stopAndDrain stops the scheduler and waits for any refresh still in
// flight, so shutdown never abandons a cycle mid-write.
func stopAndDrain(c *cron.Cron) {
	<-c.Stop().Done()
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "./jamcal.yaml", "Path to config file")
	flag.BoolVar(&cfg.once, "once", false, "Run one fetch+export cycle and exit")
	flag.StringVar(&cfg.out, "out", "", "ICS output path (overrides config if set)")
	flag.BoolVar(&cfg.dump, "dump", false, "Print the fetched session listing to stdout")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

// refresh fetches the session listing (falling back to the last snapshot on
// failure), optionally prints it, and rewrites the calendar file.
func (a *app) refresh(ctx context.Context) error {
	// The configured timeout bounds only the fetch. The snapshot read must
	// stay on the parent context: after a slow-API timeout the fetch
	// context is already done, and reading the fallback through it would
	// fail with the very deadline the cache is meant to cover for.
	fetchCtx := ctx
	if a.conf.FetchTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, time.Duration(a.conf.FetchTimeoutSeconds)*time.Second)
		defer cancel()
	}

	query := a.opts.Query()

	sessions, err := a.client.Sessions(fetchCtx, a.opts)
	if err != nil {
		if a.store == nil {
			return err
		}
		body, fetchedAt, cerr := a.store.Get(ctx, query)
		if cerr != nil {
			// No usable snapshot; surface the fetch error, not the cache miss.
			return err
		}
		if uerr := json.Unmarshal(body, &sessions); uerr != nil {
			return uerr
		}
		appLog.Error("fetch failed, using cached snapshot", err, "fetched_at", fetchedAt.Format(time.RFC3339))
	} else if a.store != nil {
		if body, merr := json.Marshal(sessions); merr == nil {
			if perr := a.store.Put(ctx, query, body); perr != nil {
				appLog.Error("snapshot save failed", perr)
			}
		}
	}

	appLog.Info("sessions loaded", "count", len(sessions.Features), "query", query)

	if a.dump {
		a.printListing(sessions)
	}

	now := time.Now()
	cal := ics.BuildCalendar(sessions, ics.CalendarOptions{
		Name:       a.conf.CalendarName,
		Location:   a.loc,
		RangeStart: now,
		RangeEnd:   now.AddDate(0, 0, a.conf.HorizonDays),
	})
	if err := ics.WriteFile(a.conf.ICSPath, cal); err != nil {
		return err
	}
	appLog.Info("calendar written", "path", a.conf.ICSPath)
	return nil
}

func (a *app) printListing(fc model.SessionWithVenueFeatureCollection) {
	for _, f := range fc.Features {
		p := f.Properties
		when, err := schedule.DescribeSession(p.StartTimeUTC, p.DurationMinutes, p.Interval, a.loc)
		if err != nil {
			when = p.Interval.String()
		}
		fmt.Printf("%s @ %s: %s [%s]\n", p.SessionName, p.VenueName, when, detailPath(p))
	}
}

// detailPath builds the readable path segments used by the web UI,
// "<name-slug>-<id>" per venue and session.
func detailPath(p model.SessionWithVenueProperties) string {
	venueSlug := webutil.Slugify(p.VenueName)
	if p.VenueID != nil {
		venueSlug = fmt.Sprintf("%s-%d", venueSlug, *p.VenueID)
	}
	sessionSlug := webutil.Slugify(p.SessionName)
	if p.SessionID != nil {
		sessionSlug = fmt.Sprintf("%s-%d", sessionSlug, *p.SessionID)
	}
	return "/" + venueSlug + "/" + sessionSlug
}

// filterOptions converts the configured default filter into query options.
func filterOptions(f config.FilterConfig) api.SessionOptions {
	opts := api.SessionOptions{Genre: model.Genre(f.Genre)}
	for _, b := range f.Backline {
		if b != "" {
			opts.Backline = append(opts.Backline, model.Backline(b))
		}
	}
	return opts
}
