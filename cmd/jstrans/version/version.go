package version

import (
	"github.com/spf13/cobra"

	"github.com/meza/js-translations/internal/environment"
	"github.com/meza/js-translations/internal/i18n"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("cmd.version.short"),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(environment.AppVersion())
		},
	}
}
