package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v1 "github.com/medialens/collector/api/v1"
	"github.com/medialens/collector/internal/handlers"
	"github.com/medialens/collector/internal/server"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the agent with its operator API",
		Long: `Serve runs the agent until interrupted. The operator API listens on
server.port and exposes configuration inspection, reload and collection
endpoints under /api/v1. SIGHUP reloads the configuration in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}
}

func runServe(ctx context.Context, v *viper.Viper) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, v)
	if err != nil {
		return err
	}
	defer a.Close()

	port, err := a.cfg.GetInt("server.port", 8000)
	if err != nil {
		return err
	}
	mode := cast.ToString(a.cfg.Get("server.mode", "dev"))

	handler := handlers.New(uuid.New(), version, a.cfg, a.resolver, a.collection)
	srv := server.NewServer(mode, port, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, handler)
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := srv.Start(ctx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		// Fresh context: the signal context is already done.
		return srv.Stop(context.Background())
	})

	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-hup:
				if err := a.cfg.Reload(ctx); err != nil {
					zap.S().Named("agent").Errorw("configuration reload failed", "error", err)
					continue
				}
				zap.S().Named("agent").Infow("configuration reloaded")
			}
		}
	})

	return g.Wait()
}
