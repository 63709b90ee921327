package cli

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/epeers/fundsight/docs"
	"github.com/epeers/fundsight/internal/handlers"
	"github.com/epeers/fundsight/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the FundSight web front" }
func (*serveCmd) Usage() string {
	return `fundsight serve [-port <port>]

  Serves the dashboard pages, the JSON API under /api/v1 and the API
  documentation under /swagger/.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Port to listen on. Defaults to $PORT or 8080.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) error {
		router, err := newRouter(a)
		if err != nil {
			return err
		}

		log.Infof("Using FundSight API at %s", a.client.BaseURL())

		port := a.cfg.Port
		if c.port != "" {
			port = c.port
		}
		return listenAndServe(router, ":"+port)
	})
}

// newRouter builds the gin engine with the middleware stack, the app
// routes and the swagger UI.
func newRouter(a *app) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := handlers.RegisterRoutes(router, a.store, a.format); err != nil {
		return nil, err
	}
	return router, nil
}

func listenAndServe(handler http.Handler, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("Server exited")
	return nil
}
