package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"image-binarizer/internal/app"
	"image-binarizer/internal/logger"
	"image-binarizer/internal/pipeline"
)

func Execute() {
	cmd := newRootCmd(os.Stdout, os.Stderr, pipeline.DefaultConfig())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer, cfg pipeline.Config) *cobra.Command {
	var debug bool
	var logFormat string
	var noManifest bool

	cmd := &cobra.Command{
		Use:          app.AppName,
		Short:        "Split, chart, and binarize the fixed photo set",
		Version:      app.AppVersion,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			jsonLogs, err := logger.ParseFormat(logFormat)
			if err != nil {
				return err
			}

			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			log := logger.New(logger.Options{Writer: stderr, Level: level, JSON: jsonLogs})

			cfg.WriteManifest = !noManifest

			application, err := app.NewApplication(cfg, stdout, log)
			if err != nil {
				return err
			}

			summary, err := application.Run()
			if err != nil {
				log.Error("CLI", err, map[string]interface{}{"completed_roles": summary.Completed()})
				return err
			}
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console|json")
	cmd.Flags().BoolVar(&noManifest, "no-manifest", false, "Do not write manifest.yaml under the output root")
	return cmd
}
