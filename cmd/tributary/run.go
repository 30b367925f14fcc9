package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tributary-dev/tributary/cmd/api/server"
	_ "github.com/tributary-dev/tributary/components/search"
	_ "github.com/tributary-dev/tributary/components/tabular"
	_ "github.com/tributary-dev/tributary/components/textgen"
	_ "github.com/tributary-dev/tributary/components/textinput"
	_ "github.com/tributary-dev/tributary/components/webscrape"
	"github.com/tributary-dev/tributary/config"
	"github.com/tributary-dev/tributary/engine"
	"github.com/tributary-dev/tributary/model"
)

// newRunCmd executes one workflow JSON file and prints the result.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <workflow.json>",
		Short: "Execute a workflow file once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var wf model.Workflow
			if err := json.Unmarshal(b, &wf); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))
			exec := engine.NewExecutor(cfg.Settings())
			result, err := engine.New(exec, log).Run(cmd.Context(), wf)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// newServeCmd starts the HTTP API in the foreground.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the workflow API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
			slog.SetDefault(log)

			srv := &http.Server{Addr: cfg.ListenAddr, Handler: server.New(cfg, log).NewRouter()}
			go func() {
				log.Info("starting API server", "addr", cfg.ListenAddr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("server error", "err", err)
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case <-cmd.Context().Done():
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}
