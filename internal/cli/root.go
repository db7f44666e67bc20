// internal/cli/root.go
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foldlab-core/folding"
	"foldlab-core/folding/nussinov"
	"foldlab/internal/config"
	"foldlab/internal/logging"
)

// Version is reported by --version.
var Version = "dev"

// app is the state shared by every subcommand of one invocation.
type app struct {
	stdout, stderr io.Writer

	v        *viper.Viper
	cfgFile  string
	cfg      config.Config
	log      zerolog.Logger
	registry *folding.Registry
}

// Run executes one foldlab invocation and returns the exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, v: viper.New()}
	root := a.rootCmd()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.ExecuteContext(ctx), stderr)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foldlab",
		Short: "Fold RNA designs and check them against puzzle constraints",
		Long: `foldlab folds RNA sequences with a base-pair maximization engine, scores
structures, and evaluates designs against puzzle files (target shapes,
anti-shapes and mutation budgets).`,
		Version:                    Version,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.foldlab.yaml)")
	pf.StringP("engine", "e", "Basic", "folding engine (see 'foldlab engines')")
	pf.IntP("threads", "t", 0, "worker threads (0 = all CPUs)")
	pf.Int("max-length", 2000, "reject records longer than N (0 = unlimited)")
	pf.StringP("output", "o", "text", "output format: text | json | jsonl")
	pf.Bool("sort", false, "sort fold output by input position")
	pf.Bool("header", true, "print the header row in text output")
	pf.String("db", "foldlab.db", "design store (SQLite file)")
	pf.String("log-level", "info", "log level: debug | info | warn | error")
	pf.String("log-format", "text", "log format: text | json")
	pf.BoolP("quiet", "q", false, "only log warnings and errors")
	pf.Int("unsatisfied-exit-code", ExitNoResult, "exit code when a puzzle is unsatisfied or nothing folds")
	pf.Int("cache-size", 4096, "remember folds of up to N distinct sequences per run (0 = off)")

	for key, flag := range map[string]string{
		config.KeyEngine:              "engine",
		config.KeyThreads:             "threads",
		config.KeyMaxLength:           "max-length",
		config.KeyOutput:              "output",
		config.KeySort:                "sort",
		config.KeyHeader:              "header",
		config.KeyDB:                  "db",
		config.KeyLogLevel:            "log-level",
		config.KeyLogFormat:           "log-format",
		config.KeyQuiet:               "quiet",
		config.KeyUnsatisfiedExitCode: "unsatisfied-exit-code",
		config.KeyCacheSize:           "cache-size",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		a.foldCmd(),
		a.scoreCmd(),
		a.evalCmd(),
		a.enginesCmd(),
		a.designCmd(),
	)
	return root
}

// setup resolves configuration (flags > env > config file > defaults),
// builds the logger and registers the engines.
func (a *app) setup(cmd *cobra.Command) error {
	config.SetDefaults(a.v)
	a.v.SetEnvPrefix(config.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return usageErr(errors.Wrap(err, "read config"))
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		// the default file is optional
		if path := filepath.Join(home, ".foldlab.yaml"); fileExists(path) {
			a.v.SetConfigFile(path)
			if err := a.v.ReadInConfig(); err != nil {
				return usageErr(errors.Wrap(err, "read config"))
			}
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return usageErr(err)
	}
	a.cfg = cfg

	log, err := logging.New(a.stderr, cfg.LogLevel, cfg.LogFormat, cfg.Quiet)
	if err != nil {
		return usageErr(err)
	}
	a.log = log.With().Str("cmd", cmd.Name()).Logger()
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("file", used).Msg("config loaded")
	}

	a.registry = folding.NewRegistry()
	nussinov.Register(a.registry, nussinov.WithLogger(a.log))
	return nil
}

// folder creates the configured engine.
func (a *app) folder(ctx context.Context) (folding.Folder, error) {
	f, err := a.registry.Create(ctx, a.cfg.Engine)
	if err != nil {
		return nil, usageErr(err)
	}
	return f, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
