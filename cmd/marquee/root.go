package main

import (
	"context"
	"fmt"
	"io"

	"github.com/phanxgames/marquee"
	"github.com/phanxgames/marquee/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// options holds the persistent flags.
type options struct {
	configPath  string
	debug       bool
	logFile     string
	metricsAddr string
}

// app is what every subcommand needs: a configured engine, its page tree and
// the optional metrics recorder.
type app struct {
	engine   *marquee.Engine
	tree     *marquee.Region
	log      *zap.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "marquee",
		Short:         "scroll-driven landing page choreography",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file path (yaml)")
	pf.BoolVar(&opts.debug, "debug", false, "debug logging and teardown leak checks")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(
		newTUICmd(opts),
		newWindowCmd(opts),
		newReplayCmd(opts),
		newTraceCmd(opts),
	)
	return root
}

// newLogger builds a zap logger. Without a log file, interactive hosts stay
// silent so log lines do not tear the screen.
func newLogger(opts *options, interactive bool) (*zap.Logger, error) {
	if opts.logFile == "" && interactive {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if opts.debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if opts.logFile != "" {
		cfg.OutputPaths = []string{opts.logFile}
		cfg.ErrorOutputPaths = []string{opts.logFile}
	} else {
		cfg.OutputPaths = []string{"stderr"}
	}
	return cfg.Build()
}

func newApp(opts *options, interactive bool) (*app, error) {
	cfg := marquee.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = marquee.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}
	log, err := newLogger(opts, interactive)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	a := &app{log: log, registry: prometheus.NewRegistry()}
	a.recorder = metrics.NewRecorder(a.registry)
	a.engine, err = marquee.NewEngine(cfg,
		marquee.WithLogger(log),
		marquee.WithDebug(opts.debug),
		marquee.WithEventSink(a.recorder),
	)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	a.tree = marquee.BuildLandingPage(cfg)
	return a, nil
}

// observe feeds the current frame's counts to the recorder.
func (a *app) observe() {
	a.recorder.Observe(a.engine.Stats())
}

// serve runs host on the calling goroutine (windowing toolkits need the main
// thread) and the metrics server alongside it when addr is set. Both share one
// context: a failing metrics server stops the host and its error is returned.
func (a *app) serve(ctx context.Context, addr string, host func(context.Context) error) error {
	defer func() { _ = a.log.Sync() }()
	if addr == "" {
		return host(ctx)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return metrics.Serve(gctx, addr, metrics.NewRouter(a.registry, a.recorder))
	})
	a.log.Info("serving metrics", zap.String("addr", addr))

	err := host(gctx)
	cancel()
	if werr := g.Wait(); err == nil {
		err = werr
	}
	return err
}
