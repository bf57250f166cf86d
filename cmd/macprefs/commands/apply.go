package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/macprefs/pkg/command"
	"github.com/arthur-debert/macprefs/pkg/config"
	"github.com/arthur-debert/macprefs/pkg/paths"
	"github.com/arthur-debert/macprefs/pkg/prefs"
	"github.com/arthur-debert/macprefs/pkg/store"
	"github.com/arthur-debert/macprefs/pkg/style"
	"github.com/spf13/cobra"
)

func newApplyCmd(flags *globalFlags) *cobra.Command {
	var changedExitCode int
	var noRestart bool

	cmd := &cobra.Command{
		Use:   "apply [path]",
		Short: MsgApplyShort,
		Long:  MsgApplyLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := paths.New()
			cfg, err := config.Load(p)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			path := paths.ExpandHome(cfg.Defaults.Dir)
			if len(args) > 0 {
				path = paths.ExpandHome(args[0])
			} else if _, err := os.Stat(path); os.IsNotExist(err) {
				cmd.Printf(MsgNoDocuments, path)
				return nil
			}

			docs, loadErrs := prefs.Load(path)

			runner := command.NewExecRunner()
			applier := prefs.New(prefs.Options{
				Store:              store.NewExecDefaults(runner),
				Processes:          store.NewKillallProcesses(runner),
				DryRun:             flags.dryRun,
				Verbosity:          flags.verbosity,
				Out:                cmd.OutOrStdout(),
				RestartPrefsDaemon: cfg.Defaults.RestartPrefsDaemon && !noRestart,
			})

			result := applier.Apply(docs)
			result.Errors = append(result.Errors, loadErrs...)

			printApplySummary(cmd, flags, result)

			if result.Failed() {
				return &ExitError{Code: 1, Message: fmt.Sprintf(MsgErrRunFailed, len(result.Errors))}
			}
			if changedExitCode != 0 && result.ChangesMade() {
				return &ExitError{Code: changedExitCode}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&changedExitCode, "changed-exit-code", "e", 0, MsgFlagChangedExit)
	cmd.Flags().BoolVar(&noRestart, "no-restart", false, MsgFlagNoRestart)

	return cmd
}

func printApplySummary(cmd *cobra.Command, flags *globalFlags, result *prefs.Result) {
	summary := fmt.Sprintf(MsgApplySummary, result.Changed, result.Skipped)
	if len(result.Restarted) > 0 {
		summary += fmt.Sprintf(MsgRestartedItem, strings.Join(result.Restarted, ", "))
	}
	if len(result.Errors) > 0 {
		summary += style.Error(fmt.Sprintf(MsgErrorCount, len(result.Errors)))
	}
	cmd.Println(summary)

	for _, err := range result.Errors {
		cmd.PrintErrln(style.Error(style.ErrorIndicator), err)
	}
	if flags.dryRun {
		cmd.Println(style.DryRun(MsgDryRunNotice))
	}
}
