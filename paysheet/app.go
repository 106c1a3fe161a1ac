package paysheet

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/nbulatovi/ElectriciansNow/internal/middleware"
	"github.com/nbulatovi/ElectriciansNow/internal/square"
	"golang.org/x/exp/slog"
)

// App wires the workflow together and runs its HTTP server. It is the
// composition root: capability probe, processor client, service and routes
// are all assembled in Start.
type App struct {
	srv    *http.Server
	wg     *sync.WaitGroup
	Addr   string
	logger *slog.Logger
	config *Config

	// Sheet may be set before Start by a host that carries a real native
	// payment-sheet binding; when nil the capability probe runs instead.
	Sheet Sheet
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "paysheet"))

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

	sheet := a.Sheet
	if sheet == nil {
		sheet = DetectSheet()
	}
	a.logger.Info("probed native payment sheet", slog.Bool("available", sheet.Available()))

	processor := square.New(
		a.config.ProcessorBaseURL,
		a.config.ProcessorAccessToken,
		a.config.ProcessorLocationID,
		nil,
	)

	service := NewService(a.logger, a.config, sheet, processor)

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(a.logger))

	api := NewAPI(service)
	api.AppendRoutes(router)

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

	a.srv.Shutdown(context.Background())

	a.wg.Wait()

	a.logger.Info("app stopped")
}
