package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andybodemer/snapraw"
	"github.com/andybodemer/snapraw/internal/config"
	"github.com/andybodemer/snapraw/internal/logging"
)

// appContext carries the loaded configuration and logger into every
// command.
type appContext struct {
	cfg *config.Config
	log *slog.Logger
}

// decoderOptions maps the configured decoder limits to library options.
func (app *appContext) decoderOptions() snapraw.Options {
	return snapraw.Options{
		ScanWindow:    app.cfg.ScanWindow(),
		MaxDirEntries: uint32(app.cfg.Decoder.MaxDirEntries),
		Warnf: func(format string, args ...any) {
			app.log.Warn("decode problem", "detail", fmt.Sprintf(format, args...))
		},
	}
}

func newRootCommand() *cobra.Command {
	app := &appContext{}
	var (
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "snapraw",
		Short:         "Read capture metadata from RAW camera files and import them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			log, err := logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: os.Stderr,
			})
			if err != nil {
				return err
			}
			app.cfg = cfg
			app.log = log
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newShowCommand(app),
		newDateCommand(app),
		newExtractCommand(app),
		newImportCommand(app),
		newDestinationsCommand(app),
		newConfigCommand(),
	)
	return root
}
