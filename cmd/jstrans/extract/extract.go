package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meza/js-translations/internal/config"
	"github.com/meza/js-translations/internal/constants"
	pipeline "github.com/meza/js-translations/internal/extract"
	"github.com/meza/js-translations/internal/fileutils"
	"github.com/meza/js-translations/internal/i18n"
	"github.com/meza/js-translations/internal/loader"
	"github.com/meza/js-translations/internal/logger"
	"github.com/meza/js-translations/internal/output"
	"github.com/meza/js-translations/internal/perf"
	"github.com/meza/js-translations/internal/tui"
)

type extractOptions struct {
	configPath  string
	bundle      string
	destination string
	namespace   string
}

type extractDeps struct {
	fs       afero.Fs
	logger   *logger.Logger
	registry *loader.Registry
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: i18n.T("cmd.extract.short"),
		Long:  i18n.T("cmd.extract.long"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			region := perf.StartRegion("app.command.extract")
			defer func() {
				region.SetDetail("success", err == nil)
				region.End()
			}()

			options := extractOptions{}
			if options.configPath, err = cmd.Flags().GetString("config"); err != nil {
				return err
			}
			quiet, err := cmd.Flags().GetBool("quiet")
			if err != nil {
				return err
			}
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return err
			}
			if options.bundle, err = cmd.Flags().GetString("bundle"); err != nil {
				return err
			}
			if options.destination, err = cmd.Flags().GetString("destination"); err != nil {
				return err
			}
			if options.namespace, err = cmd.Flags().GetString("namespace"); err != nil {
				return err
			}

			deps := extractDeps{
				fs:       fileutils.InitFilesystem(),
				logger:   logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet, debug),
				registry: loader.DefaultRegistry(),
			}
			return runExtract(cmd.Context(), cmd, options, deps)
		},
	}

	cmd.Flags().StringP("bundle", "B", constants.DefaultBundle, i18n.T("cmd.extract.flag.bundle"))
	cmd.Flags().StringP("destination", "D", "", i18n.T("cmd.extract.flag.destination"))
	cmd.Flags().StringP("namespace", "N", "", i18n.T("cmd.extract.flag.namespace"))

	return cmd
}

func runExtract(ctx context.Context, cmd *cobra.Command, options extractOptions, deps extractDeps) error {
	store, err := config.Load(deps.fs, options.configPath)
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(store, strings.ToLower(options.bundle), config.Overrides{
		Destination: options.destination,
		Namespace:   options.namespace,
	}, deps.registry.Extensions())
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, pipeline.Deps{
		FS:       deps.fs,
		Logger:   deps.logger,
		Registry: deps.registry,
	}, cfg)

	var writeErr *output.WriteError
	if errors.As(err, &writeErr) {
		stderr := cmd.ErrOrStderr()
		deps.logger.Warn(tui.WarningIcon(stderr) + " " + i18n.T("extract.write_failed", i18n.Tvars{
			Data: &i18n.TData{"destination": writeErr.Path, "error": writeErr.Err.Error()},
		}))
		return err
	}
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	deps.logger.Log(tui.SuccessIcon(stdout)+" "+i18n.T("extract.done", i18n.Tvars{
		Count: result.Files,
		Data: &i18n.TData{
			"files":       result.Files,
			"destination": result.Destination,
			"locales":     len(result.Locales),
		},
	}), false)
	if result.Skipped > 0 {
		deps.logger.Log(tui.Paint(stdout, tui.MutedStyle, i18n.T("extract.skipped", i18n.Tvars{
			Count: result.Skipped,
			Data:  &i18n.TData{"skipped": result.Skipped},
		})), false)
	}
	return nil
}
