// Package adapter parses adapter command configuration and runs a scenario
// against a robot, a tank and a robot adapter.
package adapter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/louisbranch/adapter.pattern/internal/enemy"
	entrypoint "github.com/louisbranch/adapter.pattern/internal/platform/cmd"
	apperrors "github.com/louisbranch/adapter.pattern/internal/platform/errors"
	"github.com/louisbranch/adapter.pattern/internal/platform/i18n/catalog"
	"github.com/louisbranch/adapter.pattern/internal/random"
	"github.com/louisbranch/adapter.pattern/internal/scenario"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Config holds adapter command configuration.
type Config struct {
	Seed     int64  `env:"ADAPTER_SEED"`
	Locale   string `env:"ADAPTER_LOCALE"        envDefault:"en-US"`
	Scenario string `env:"ADAPTER_SCENARIO_FILE"`
	Verbose  bool   `env:"ADAPTER_VERBOSE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducible rolls (0 = random)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for reports (en-US, pt-BR)")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file (default: built-in demo)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log scenario steps to stderr")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the configured scenario, writing reports to out and logs to
// errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	locale, ok := catalog.Default().Resolve(cfg.Locale)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeLocaleUnsupported,
			fmt.Sprintf("unsupported locale %q", cfg.Locale),
			map[string]string{"Locale": cfg.Locale})
	}

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceAdapter, entrypoint.RunOptions{ErrOut: errOut}, func(ctx context.Context) error {
		logger := log.New(errOut, "", 0)

		rng, seed, err := random.NewSeededRNG(cfg.Seed)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			logger.Printf("seed: %d", seed)
		}

		script, err := loadScenario(cfg.Scenario)
		if err != nil {
			return err
		}

		printer := catalog.NewPrinter(locale)
		cast, err := scenario.NewCast(enemy.Deps{Out: out, Printer: printer, Rand: rng})
		if err != nil {
			return err
		}
		runner, err := scenario.NewRunner(cast, scenario.Config{
			Out:     out,
			Locale:  locale,
			Logger:  logger,
			Verbose: cfg.Verbose,
		})
		if err != nil {
			return err
		}
		return runner.Run(ctx, script)
	})
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Demo(), nil
	}
	return scenario.LoadFile(path)
}

// Describe renders err as the single line shown to the user on failure. The
// line is read back from the error's gRPC status: its code, its localized
// message detail and the internal detail.
func Describe(err error, locale string) string {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		domainErr = apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
	st := status.Convert(domainErr.ToGRPCStatus(locale, apperrors.LocalizedMessage(err, locale)))

	message := st.Message()
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok {
			message = localized.GetMessage()
		}
	}
	return fmt.Sprintf("Error [%s]: %s (%v)", st.Code(), message, err)
}
