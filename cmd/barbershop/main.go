// This package implements the barbershop command, one run of the sleeping
// barber with a waiting room of the given capacity.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	barbershop "github.com/maansthoernvik/barbershop/pkg"
	"github.com/maansthoernvik/barbershop/pkg/env"
	"github.com/maansthoernvik/barbershop/pkg/shop"
	"github.com/maansthoernvik/barbershop/pkg/version"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const USAGE = `Opens a barbershop with one barber and a waiting room with <capacity> chairs.
A fixed number of customers show up at random times, customers finding the
waiting room full leave without a haircut.`

func main() {
	configureLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "barbershop <capacity>",
		Short:   "Runs the sleeping barber",
		Long:    USAGE,
		Version: version.String(),
		Args: cobra.MatchAll(cobra.ExactArgs(1), func(_ *cobra.Command, args []string) error {
			_, err := parseCapacity(args[0])
			return err
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := parseCapacity(args[0])
			if err != nil {
				return err
			}
			return run(cmd.Context(), capacity)
		},
	}
}

func parseCapacity(arg string) (int, error) {
	capacity, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Wrapf(shop.ErrInvalidCapacity, "%q is not a number", arg)
	}
	if capacity < 1 || capacity > shop.MaxCustomers {
		return 0, errors.Wrapf(
			shop.ErrInvalidCapacity,
			"it must be between 1 and %d, got %d", shop.MaxCustomers, capacity,
		)
	}

	return capacity, nil
}

func run(ctx context.Context, capacity int) error {
	if version.Version != "?" {
		log.Info().
			Str("version", version.Version).
			Str("commit", version.Commit).
			Str("built", version.Built).
			Msg("starting barbershop")
	} else {
		log.Info().Msg("starting barbershop")
	}

	b, err := barbershop.New(&barbershop.BarbershopOptions{
		Capacity: capacity,
		Timing:   timingFromEnv(),
	})
	if err != nil {
		return err
	}

	srv := startMetricsServer()
	report, err := b.Start(ctx)
	stopMetricsServer(srv)
	if err != nil {
		return err
	}

	if report.WasInterrupted {
		log.Info().Msg("run interrupted, shop cleaned up")
	}

	return nil
}

func timingFromEnv() shop.Timing {
	maxArrivalDelay, err := env.GetOptionalDuration(env.BARBERSHOP_MAX_ARRIVAL_DELAY, env.BARBERSHOP_MAX_ARRIVAL_DELAY_DEFAULT)
	if err != nil {
		log.Warn().Err(err).Dur("default", maxArrivalDelay).Msg("using default arrival delay")
	}
	maxServiceTime, err := env.GetOptionalDuration(env.BARBERSHOP_MAX_SERVICE_TIME, env.BARBERSHOP_MAX_SERVICE_TIME_DEFAULT)
	if err != nil {
		log.Warn().Err(err).Dur("default", maxServiceTime).Msg("using default service time")
	}
	seed, err := env.GetOptionalInteger(env.BARBERSHOP_SEED, env.BARBERSHOP_SEED_DEFAULT)
	if err != nil {
		log.Warn().Err(err).Msg("seeding from the clock")
	}

	return shop.NewRandomTiming(int64(seed), maxArrivalDelay, maxServiceTime)
}

// Returns nil unless Prometheus metrics are enabled.
func startMetricsServer() *http.Server {
	if metrics, _ := env.GetOptionalBool(env.BARBERSHOP_METRICS, env.BARBERSHOP_METRICS_DEFAULT); !metrics {
		return nil
	}

	port, _ := env.GetOptionalUint16(env.BARBERSHOP_METRICS_PORT, env.BARBERSHOP_METRICS_PORT_DEFAULT)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		log.Info().Str("address", srv.Addr).Msg("starting metrics server")
		// A metrics failure does not stop the run.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failure")
		} else {
			log.Info().Msg("stopped metrics server")
		}
	}()

	return srv
}

func stopMetricsServer(srv *http.Server) {
	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error shutting down metrics server")
	}
}

func configureLogging() {
	logLevel, _ := env.GetOptionalString(env.BARBERSHOP_LOG_LEVEL, env.BARBERSHOP_LOG_LEVEL_DEFAULT)
	zerolog.SetGlobalLevel(translateToZerologLevel(logLevel))
	if console, _ := env.GetOptionalBool(env.BARBERSHOP_LOG_OUTPUT_CONSOLE, env.BARBERSHOP_LOG_OUTPUT_CONSOLE_DEFAULT); console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func translateToZerologLevel(level string) zerolog.Level {
	switch level {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "FATAL":
		return zerolog.FatalLevel
	case "PANIC":
		return zerolog.PanicLevel
	}

	log.Warn().Str("level", level).Msg("unable to decode log level")
	return zerolog.InfoLevel
}
