package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/lectoraapp/lectora/internal/api"
	"github.com/lectoraapp/lectora/internal/config"
	"github.com/lectoraapp/lectora/internal/logger"
	"github.com/lectoraapp/lectora/internal/scheduler"
	"github.com/lectoraapp/lectora/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer h.handler.Close()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Prefs:           do.MustInvoke[*service.PrefsService](i),
		Library:         do.MustInvoke[*service.LibraryService](i),
		Streak:          do.MustInvoke[*service.StreakService](i),
		Recommendations: do.MustInvoke[*service.RecommendationService](i),
		Books:           do.MustInvoke[*service.BookService](i),
		Profile:         do.MustInvoke[*service.ProfileService](i),
	}

	handler := api.NewServer(storeHandle.Prefs, services, api.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		RequestRPS:   cfg.Server.RequestRPS,
		RequestBurst: cfg.Server.RequestBurst,
	}, log.Component("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}

// ProvideWarmupScheduler provides and starts the daily recommendation warmup.
func ProvideWarmupScheduler(i do.Injector) (*scheduler.WarmupScheduler, error) {
	cfg := do.MustInvoke[*config.Config](i)
	recs := do.MustInvoke[*service.RecommendationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}
	s := scheduler.NewWarmupScheduler(recs, cfg.Recommendations.WarmupSchedule, loc, log.Component("scheduler"))
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}
