// Package jstrans wires the jstrans command line.
package jstrans

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	xterm "github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/meza/js-translations/cmd/jstrans/bundles"
	"github.com/meza/js-translations/cmd/jstrans/extract"
	"github.com/meza/js-translations/cmd/jstrans/version"
	"github.com/meza/js-translations/internal/constants"
	"github.com/meza/js-translations/internal/environment"
	"github.com/meza/js-translations/internal/i18n"
	"github.com/meza/js-translations/internal/output"
	"github.com/meza/js-translations/internal/tui"
)

// Exit codes of the jstrans binary.
const (
	ExitOK           = 0
	ExitWriteFailed  = 1
	ExitInvalidInput = 2
)

func Command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.CommandName,
		Short:         i18n.T("cmd.root.short"),
		Long:          i18n.T("cmd.root.long"),
		Version:       environment.AppVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cobra.MousetrapHelpText = ""

	flags := rootCmd.PersistentFlags()
	flags.String("config", environment.ConfigPath(), i18n.T("cmd.root.flag.config"))
	flags.BoolP("quiet", "q", false, i18n.T("cmd.root.flag.quiet"))
	flags.Bool("debug", false, i18n.T("cmd.root.flag.debug"))

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + "\n" + i18n.T("cmd.help.more", i18n.Tvars{
		Data: &i18n.TData{"url": environment.HelpURL()},
	}) + "\n")
	rootCmd.AddCommand(extract.Command())
	rootCmd.AddCommand(bundles.Command())
	rootCmd.AddCommand(version.Command())

	translateDefaultHelpFacilities(rootCmd)
	fixFlagUsageAlignment(rootCmd)

	return rootCmd
}

func translateDefaultHelpFacilities(rootCmd *cobra.Command) {
	subcommands := rootCmd.Commands()
	allCommands := make([]*cobra.Command, 0, len(subcommands)+1)
	allCommands = append(allCommands, rootCmd)
	allCommands = append(allCommands, subcommands...)

	for _, cmd := range allCommands {
		cmd.InitDefaultHelpFlag()
		cmd.Flags().Lookup("help").Usage = i18n.T("cmd.help.template", i18n.Tvars{
			Data: &i18n.TData{"command": cmd.Name()},
		})
	}

	rootCmd.InitDefaultHelpCmd()
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	if err != nil {
		return
	}

	helpCmd.Short = i18n.T("cmd.help.usage.short")
	helpCmd.Long = i18n.T("cmd.help.usage.long", i18n.Tvars{
		Data: &i18n.TData{"appName": rootCmd.Name()},
	})
	helpCmd.Run = func(c *cobra.Command, args []string) {
		cmd, _, err := c.Root().Find(args)
		if cmd == nil || err != nil {
			c.PrintErrln(i18n.T("cmd.help.error", i18n.Tvars{
				Data: &i18n.TData{"topic": fmt.Sprintf("%#q", args)},
			}) + "\n")
			cobra.CheckErr(c.Root().Usage())
			return
		}
		cmd.InitDefaultHelpFlag()
		cmd.InitDefaultVersionFlag()
		cobra.CheckErr(cmd.Help())
	}
}

func fixFlagUsageAlignment(rootCmd *cobra.Command) {
	width, _, err := xterm.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		width = 80
	}
	usageTemplate := rootCmd.UsageTemplate()
	usageTemplate = strings.ReplaceAll(usageTemplate, ".FlagUsages", fmt.Sprintf(".FlagUsagesWrapped %d", width))
	rootCmd.SetUsageTemplate(usageTemplate)
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := Command()
	cmd.SetArgs(args)
	return exitCode(cmd, cmd.ExecuteContext(ctx))
}

// exitCode maps err to an exit status and reports it. A failed write was
// already reported as a warning by the command.
func exitCode(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitOK
	}

	var writeErr *output.WriteError
	if errors.As(err, &writeErr) {
		return ExitWriteFailed
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, tui.ErrorIcon(stderr)+" "+i18n.T("cmd.error", i18n.Tvars{
		Data: &i18n.TData{"error": err.Error()},
	}))
	return ExitInvalidInput
}
