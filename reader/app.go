package reader

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/alovak/cardflow-swipe/internal/middleware"
	"github.com/alovak/cardflow-swipe/reader/iso8583"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// App is the main application, it contains all the components of the reader service
// and is responsible for starting and stopping them.
type App struct {
	srv        *http.Server
	wg         *sync.WaitGroup
	Addr       string
	logger     *slog.Logger
	iso8583Cli io.Closer
	config     *Config
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "reader"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	ConfigureExpiry(a.config, a.logger)
	svc := NewService(a.logger, a.config)

	if a.config.ISO8583Addr != "" {
		client := iso8583.NewClient(a.logger, a.config.ISO8583Addr, a.config.SendTimeout)
		if err := client.Connect(); err != nil {
			return fmt.Errorf("connecting iso8583 client: %w", err)
		}
		a.iso8583Cli = client
		svc.SetAuthorizer(client)
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(middleware.NewStructuredLogger(a.logger))

	NewAPI(svc).AppendRoutes(router)
	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler: router,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	if a.srv != nil {
		a.srv.Shutdown(context.Background())
	}

	if a.iso8583Cli != nil {
		if err := a.iso8583Cli.Close(); err != nil {
			a.logger.Error("closing iso8583 client", "err", err)
		}
	}

	a.wg.Wait()

	a.logger.Info("app stopped")
}
