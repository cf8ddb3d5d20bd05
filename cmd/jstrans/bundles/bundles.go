package bundles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meza/js-translations/internal/config"
	"github.com/meza/js-translations/internal/fileutils"
	"github.com/meza/js-translations/internal/i18n"
	"github.com/meza/js-translations/internal/logger"
	"github.com/meza/js-translations/internal/tui"
)

type bundlesDeps struct {
	fs     afero.Fs
	logger *logger.Logger
}

func Command() *cobra.Command {
	return &cobra.Command{
		Use:     "bundles",
		Aliases: []string{"ls"},
		Short:   i18n.T("cmd.bundles.short"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
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

			deps := bundlesDeps{
				fs:     fileutils.InitFilesystem(),
				logger: logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet, debug),
			}
			return runBundles(cmd, configPath, deps)
		},
	}
}

func runBundles(cmd *cobra.Command, configPath string, deps bundlesDeps) error {
	store, err := config.Load(deps.fs, configPath)
	if err != nil {
		return err
	}

	names := store.Names()
	if len(names) == 0 {
		deps.logger.Log(i18n.T("cmd.bundles.none"), true)
		return nil
	}

	meta := store.Metadata()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		bundle, _ := store.Bundle(name)
		rows = append(rows, []string{name, meta.ResolvePath(bundle.Path), meta.ResolvePath(bundle.Destination)})
	}

	deps.logger.Log(renderTable(cmd, rows), true)
	return nil
}

func renderTable(cmd *cobra.Command, rows [][]string) string {
	out := cmd.OutOrStdout()
	colorize := tui.IsTerminalWriter(out)

	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(
			i18n.T("cmd.bundles.header.name"),
			i18n.T("cmd.bundles.header.path"),
			i18n.T("cmd.bundles.header.destination"),
		).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow && colorize {
				return tui.HeaderStyle.PaddingRight(2)
			}
			return style
		}).
		String()
}
