package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/fittracker/internal/client/client"
	"github.com/dmitrijs2005/fittracker/internal/client/config"
	"github.com/dmitrijs2005/fittracker/internal/client/repositories"
	"github.com/dmitrijs2005/fittracker/internal/client/session"
	"github.com/dmitrijs2005/fittracker/internal/client/viewstate"
	"github.com/dmitrijs2005/fittracker/internal/logging"
	"github.com/dmitrijs2005/fittracker/internal/observability"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	session viewstate.Session

	auth    *viewstate.AuthHolder
	goal    *viewstate.GoalHolder
	history *viewstate.HistoryHolder
	record  *viewstate.RecordHolder
	profile *viewstate.ProfileHolder

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	store    io.Closer
	registry *prometheus.Registry
	cancel   []func()
}

// NewApp opens the session store, builds the backend gateway and wires the
// view state holders on top of them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	store, err := session.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error opening session store", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout,
		client.WithLogger(logger),
		client.WithMetrics(observability.NewGatewayMetrics(reg)),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	a := newApp(c, store, api, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.store = store
	a.registry = reg
	return a, nil
}

func newApp(c *config.Config, s viewstate.Session, api client.Client, logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		logger:  logger,
		session: s,
		auth:    viewstate.NewAuthHolder(repositories.NewAuthRepository(api), s, logger),
		goal:    viewstate.NewGoalHolder(repositories.NewGoalRepository(api), s, logger),
		history: viewstate.NewHistoryHolder(repositories.NewActivityRepository(api), s, logger),
		record:  viewstate.NewRecordHolder(repositories.NewActivityRepository(api), s, logger),
		profile: viewstate.NewProfileHolder(repositories.NewProfileRepository(api), s, logger),
		reader:  reader,
		out:     out,
		now:     time.Now,
	}
	a.subscribe()
	return a
}

// subscribe routes holder notifications to the terminal.
func (a *App) subscribe() {
	for _, errs := range []*viewstate.Observable[string]{
		&a.goal.Errors, &a.history.Errors, &a.record.Errors, &a.profile.Errors,
	} {
		a.cancel = append(a.cancel, errs.Subscribe(a.notify))
	}
	a.cancel = append(a.cancel,
		a.record.Added.Subscribe(func(ok bool) {
			if ok {
				a.notify("Activity added")
			}
		}),
		a.profile.Prompt.Subscribe(func(show bool) {
			if show {
				a.notify("Your profile is missing weight or height. Run 'editprofile' to complete it.")
			}
		}),
	)
}

func (a *App) notify(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(a.out, noticeStyle.Render("* "+msg))
}

// Run starts the optional metrics listener, shows the home screen when a
// session exists and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.config.MetricsAddr != "" && a.registry != nil {
		srv := a.serveMetrics()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn(ctx, "metrics server shutdown", "error", err)
			}
		}()
	}

	fmt.Fprintln(a.out, titleStyle.Render("fittracker"))
	if a.isLoggedIn(ctx) {
		report(a.out, a.Home(ctx))
	} else {
		fmt.Fprintln(a.out, guestHelp)
	}

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader, a.out)
}

func (a *App) serveMetrics() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: a.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		a.logger.Info(context.Background(), "metrics listener started", "addr", a.config.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(context.Background(), "metrics listener failed", "error", err)
		}
	}()
	return srv
}

// Close stops the holders and releases the session store.
func (a *App) Close() {
	for _, cancel := range a.cancel {
		cancel()
	}
	a.cancel = nil

	a.auth.Close()
	a.goal.Close()
	a.history.Close()
	a.record.Close()
	a.profile.Close()

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn(context.Background(), "close session store", "error", err)
		}
		a.store = nil
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	id, err := a.session.UserID(ctx)
	if err != nil {
		a.logger.Error(ctx, "read session", "error", err)
		return false
	}
	return id > 0
}

func (a *App) status(ctx context.Context) string {
	id, err := a.session.UserID(ctx)
	if err != nil || id <= 0 {
		return "guest"
	}
	return fmt.Sprintf("user #%d", id)
}
