package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iov-one/heirloom/cmd/heirloomd/app"
	"github.com/iov-one/heirloom/errors"
	"github.com/iov-one/heirloom/history"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	"github.com/tendermint/tendermint/libs/log"
)

const historyFile = "history.sqlite"

func startCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().String(flagMetrics, "localhost:9464", "address of the prometheus endpoint, empty disables it")
	cmd.Flags().Bool(flagHistory, true, "record delivered transactions in the history database")
	return cmd
}

// serve runs the ABCI server until ctx is cancelled.
func serve(ctx context.Context, cfg *Config, logger log.Logger) error {
	if err := os.MkdirAll(cfg.Home, 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var hist *history.Store
	if cfg.History {
		var err error
		hist, err = history.Open(filepath.Join(cfg.Home, historyFile))
		if err != nil {
			return errors.Wrap(err, "open history")
		}
		defer hist.Close()
	}

	kv, err := app.CommitKVStore(cfg.Home)
	if err != nil {
		return err
	}
	defer kv.Close()

	registry := prometheus.NewRegistry()
	application := app.GenerateApp(app.Options{
		Store:   kv,
		Debug:   cfg.Debug,
		Logger:  logger,
		Metrics: registry,
		History: hist,
	})

	logger.Info("Starting ABCI app", "bind", cfg.Bind)
	svr, err := server.NewServer(cfg.Bind, "socket", application)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "creating listener: %v", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer svr.Stop()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metrics := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metrics.Shutdown(shutdownCtx)
		}()
		logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
	}

	<-ctx.Done()
	logger.Info("Shutting down")
	return nil
}
