package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"catering/configs"
	"catering/routes"
	"catering/rules"
	"catering/services"
	"catering/ws"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		if err := a.cfg.CheckSecret(a.log); err != nil {
			return err
		}
		if err := configs.SeedAdmin(a.db, a.cfg, a.log); err != nil {
			return fmt.Errorf("seed admin failed: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		clock := rules.SystemClock{Location: a.cfg.Location()}
		hub := ws.NewRulesHub(clock, a.cfg.RefreshInterval, a.log)
		go hub.Run(ctx)

		env := &services.RuleEnv{
			Store: a.store,
			Clock: clock,
			Eval:  rules.Evaluator{StrictRulesEditor: a.cfg.StrictRulesEditor},
			Log:   a.log,
		}

		r := gin.New()
		r.Use(gin.Recovery())
		routes.RegisterRoutes(r, routes.Deps{DB: a.db, Config: a.cfg, Env: env, Hub: hub, Log: a.log})

		srv := &http.Server{
			Addr:              ":" + a.cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			a.log.Info().Str("addr", srv.Addr).Bool("demoMode", a.cfg.DemoMode).Msg("server running")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port")
	serveCmd.Flags().Bool("demo", false, "fill missing menu fields with seed values")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("demo_mode", serveCmd.Flags().Lookup("demo"))
}
