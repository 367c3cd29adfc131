package main

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mp-generator/internal/config"
	"mp-generator/internal/platform"
)

// Version information (set via ldflags during build).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// envPrefix prefixes environment overrides, e.g. MPGEN_CONFIG.
const envPrefix = "MPGEN"

// app carries what commands share. Tests swap fs and the writers.
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	logger zerolog.Logger
}

func newApp(out, errOut io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &app{
		fs:     afero.NewOsFs(),
		v:      v,
		out:    out,
		errOut: errOut,
		logger: zerolog.Nop(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mp-generator",
		Short: "Turn a web build into a mini-program project",
		Long: `mp-generator converts the output of a web-style build into the file layout of a
mini-program: page files per entry, code-split packages with their private
assets, app manifests, the runtime config and sandboxed chunk scripts.

Get started:
  mp-generator build --config miniprogram.yaml --metafile meta.json --dist dist --out miniprogram
  mp-generator routes --config miniprogram.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			a.initLogger()

			return platform.Enable()
		},
	}

	root.PersistentFlags().StringP("config", "c", "miniprogram.config.yaml", "options file (YAML or JSON)")
	root.PersistentFlags().Bool("debug", false, "enable debug output")

	root.AddCommand(a.buildCmd(), a.routesCmd(), a.inspectCmd(), a.versionCmd())

	return root
}

func (a *app) initLogger() {
	level := zerolog.InfoLevel
	if a.v.GetBool("debug") {
		level = zerolog.DebugLevel
	}

	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

func (a *app) loadOptions() (*config.Options, error) {
	return config.LoadFile(a.fs, a.v.GetString("config"))
}
