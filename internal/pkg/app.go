package pkg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/app/config"
	"marketplace/internal/app/handler"
	"marketplace/internal/app/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

type Application struct {
	Config    *config.Config
	Router    *gin.Engine
	Handler   *handler.Handler
	Scheduler *scheduler.Scheduler
	closers   []func() error
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler, s *scheduler.Scheduler) *Application {
	return &Application{
		Config:    c,
		Router:    r,
		Handler:   h,
		Scheduler: s,
	}
}

// OnShutdown registers fn to run after the server stopped, in reverse order.
func (a *Application) OnShutdown(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router)

	if err := a.Scheduler.Start(a.Config.Scheduler.InvoiceRetrySpec); err != nil {
		logrus.Fatal(err)
	}

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	srv := &http.Server{Addr: serverAddress, Handler: a.Router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Starting server on %s", serverAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server shutdown: %v", err)
	}
	a.Scheduler.Stop()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logrus.Errorf("shutdown: %v", err)
		}
	}

	logrus.Info("Server down")
}
