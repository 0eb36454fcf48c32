// Command ignitekv-server runs the ignitekv TCP front end over either the
// native log-structured engine or the bbolt-backed alternative, selected
// per data directory by the `engine` selector file.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/wealrain/ignitekv/internal/engineselect"
	"github.com/wealrain/ignitekv/internal/kvengine"
	"github.com/wealrain/ignitekv/internal/metrics"
	"github.com/wealrain/ignitekv/internal/server"
	"github.com/wealrain/ignitekv/pkg/logger"
	"github.com/wealrain/ignitekv/pkg/options"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr        string
		dataDir     string
		engineKind  string
		poolKind    string
		threads     int
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:          "ignitekv-server",
		Short:        "Run the ignitekv key-value server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if threads <= 0 {
				threads = runtime.NumCPU()
			}

			log, err := logger.New(logger.Options{})
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			opts := options.NewDefaultOptions()
			opts.DataDir = dataDir
			opts.ListenAddr = addr
			opts.Engine = options.EngineKind(engineKind)
			opts.PoolKind = options.PoolKind(poolKind)
			opts.PoolSize = threads

			// Registered with the default registry, which is the one
			// ServeMetrics exposes.
			m := metrics.New(prometheus.DefaultRegisterer)

			log.Infow("ignitekv-server starting", "addr", addr, "engine", opts.Engine, "pool", opts.PoolKind, "threads", threads)

			eng, err := engineselect.Open(context.Background(), &opts, log, m)
			if err != nil {
				log.Errorw("failed to open engine", "error", err)
				return err
			}
			defer closeWriter(eng, log)

			srv, err := server.New(&server.Config{Engine: eng, Options: &opts, Logger: log, Metrics: m})
			if err != nil {
				return err
			}
			defer srv.Close() //nolint:errcheck

			if metricsAddr != "" {
				go func() {
					if err := srv.ServeMetrics(metricsAddr); err != nil {
						log.Errorw("metrics listener stopped", "error", err)
					}
				}()
			}

			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", options.DefaultListenAddr, "listening address (IP:PORT)")
	cmd.Flags().StringVar(&dataDir, "data-dir", options.DefaultDataDir, "directory storing segment and selector files")
	cmd.Flags().StringVar(&engineKind, "engine", "", "storage engine (kvs or sled); defaults to the one already recorded for data-dir, else kvs")
	cmd.Flags().StringVar(&poolKind, "pool", string(options.DefaultPoolKind), "worker pool implementation (naive, shared-queue, work-stealing)")
	cmd.Flags().IntVar(&threads, "threads", 0, "worker pool size; defaults to the number of CPUs")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "optional address to serve Prometheus metrics on")

	return cmd
}

// closeWriter flushes and closes the active segment writer on engines that
// expose one (the native log-structured backend, behind its engineselect
// adapter); bbolt-backed engines have no equivalent and are unaffected.
func closeWriter(e kvengine.Engine, log *zap.SugaredLogger) {
	writerCloser, ok := e.(interface{ CloseWriter() error })
	if !ok {
		return
	}
	if err := writerCloser.CloseWriter(); err != nil {
		log.Warnw("failed to close active segment writer", "error", err)
	}
}
