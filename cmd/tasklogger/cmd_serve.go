package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tasklogger/internal/agent"
	"tasklogger/internal/api/v1"
	"tasklogger/internal/server"
)

// backendCheckTimeout bounds the startup sheets check.
const backendCheckTimeout = 15 * time.Second

// serve runs the HTTP server and, alongside it, a one-shot check that the
// sheets backend answers. A failed check is logged and the server keeps
// running; a server error cancels the check.
func serve(ctx context.Context, log *zap.Logger, run func(context.Context) error, titles func(context.Context) ([]string, error)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return run(gctx)
	})
	g.Go(func() error {
		checkCtx, cancel := context.WithTimeout(gctx, backendCheckTimeout)
		defer cancel()

		names, err := titles(checkCtx)
		switch {
		case err != nil && gctx.Err() != nil:
			// shutting down
		case err != nil:
			log.Warn("sheets backend unreachable", zap.Error(err))
		default:
			log.Info("sheets backend ready", zap.Strings("sheets", names))
		}
		return nil
	})
	return g.Wait()
}

func (a *app) serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on [server] port.

--port only applies when config.toml does not set server.port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if port > 0 && !a.info.PortSpecified {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sess, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			deps := v1.Deps{
				Dispatcher: sess.dispatcher,
				Backend:    cfg.Sheets.Backend,
				Target:     sess.target,
			}
			if sess.store != nil {
				deps.History = sess.store
			}
			if cfg.Agent.APIKey != "" {
				ag, err := agent.NewGemini(ctx, cfg.Agent.APIKey, cfg.Agent.Model, sess.dispatcher, a.log)
				if err != nil {
					a.log.Warn("agent disabled", zap.Error(err))
				} else {
					deps.Agent = ag
					deps.AgentModel = ag.Model()
				}
			}

			srv := server.NewServer(cfg, v1.NewHandler(deps), a.log)
			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			fmt.Fprintf(cmd.OutOrStdout(), "%s http://localhost:%d/api/status\n", labelStyle.Render("listening"), cfg.Server.Port)

			run := func(ctx context.Context) error { return srv.Run(ctx, addr) }
			return serve(ctx, a.log, run, sess.backend.SheetTitles)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port")
	return cmd
}
