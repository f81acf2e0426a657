// Package cli provides the command-line interface for base16gen.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/base16gen/internal/colour"
	"github.com/jmylchreest/base16gen/internal/version"
)

// envPrefix prefixes environment variables that set flag defaults,
// e.g. BASE16GEN_VARIANT=light.
const envPrefix = "BASE16GEN"

// globalOptions holds the persistent flags and what is derived from them.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configFile string
	color      string

	logger     hclog.Logger
	colourMode colour.ColourMode
}

// NewRootCmd builds the base16gen command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "base16gen",
		Short: "Generate base16 colour themes from images",
		Long: `base16gen extracts a colour palette from an image, maps it onto the
sixteen base16 slots and renders a base16-shell script and a Vim colour scheme.

Flags can also be set in a config file ($XDG_CONFIG_HOME/base16gen/config.yaml,
or --config) or through BASE16GEN_<FLAG> environment variables, for example
BASE16GEN_VARIANT=light or BASE16GEN_OUTPUT_DIR=~/themes.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/base16gen/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", string(colour.ColourAuto), "colour output (auto, always, never)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newTemplatesCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))

	return rootCmd
}

// Execute runs the root command and exits non-zero on error: 2 when some
// theme files could not be written, 1 for any other failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// setup applies config file and environment values to flags the user did
// not set, then builds the logger.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	if err := applyConfig(cmd, o.configFile); err != nil {
		return err
	}

	if o.verbose && o.quiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}

	mode, err := colour.ParseColourMode(o.color)
	if err != nil {
		return err
	}
	o.colourMode = mode

	level := hclog.Info
	switch {
	case o.verbose:
		level = hclog.Debug
	case o.quiet:
		level = hclog.Error
	}
	logColour := hclog.AutoColor
	if mode == colour.ColourNever {
		logColour = hclog.ColorOff
	}
	o.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "base16gen",
		Level:  level,
		Output: cmd.ErrOrStderr(),
		Color:  logColour,
	})
	if path := o.configFile; path != "" {
		o.logger.Debug("using config file", "path", path)
	}
	return nil
}

// applyConfig reads the config file and BASE16GEN_* environment variables
// and sets every flag of cmd that was not given on the command line.
func applyConfig(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(dir, "base16gen"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var applyErr error
	apply := func(f *pflag.Flag) {
		if applyErr != nil || f.Changed || f.Name == "config" || f.Name == "help" || f.Name == "version" {
			return
		}
		if !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			applyErr = fmt.Errorf("invalid value for %s from config: %w", f.Name, err)
		}
	}
	cmd.Flags().VisitAll(apply)
	return applyErr
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
