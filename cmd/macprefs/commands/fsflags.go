package commands

import (
	"fmt"
	"os"

	"github.com/arthur-debert/macprefs/pkg/config"
	"github.com/arthur-debert/macprefs/pkg/fsflags"
	"github.com/arthur-debert/macprefs/pkg/paths"
	"github.com/arthur-debert/macprefs/pkg/style"
	"github.com/spf13/cobra"
)

func newFSFlagsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fsflags [config]",
		Short: MsgFSFlagsShort,
		Long:  MsgFSFlagsLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := paths.New()
			cfg, err := config.Load(p)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			path := paths.ExpandHome(cfg.FSFlags.Config)
			if len(args) > 0 {
				path = paths.ExpandHome(args[0])
			} else if _, err := os.Stat(path); os.IsNotExist(err) {
				cmd.Printf(MsgNoFlagsConfig, path)
				return nil
			}

			flagsCfg, err := fsflags.LoadConfig(path)
			if err != nil {
				return err
			}

			applier := fsflags.New(fsflags.Options{
				Flagger:   fsflags.NewOSFlagger(),
				DryRun:    flags.dryRun,
				Verbosity: flags.verbosity,
				Out:       cmd.OutOrStdout(),
			})

			result := applier.Apply(flagsCfg)

			summary := fmt.Sprintf(MsgFlagsSummary, result.Changed, result.Skipped)
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

			if result.Failed() {
				return &ExitError{Code: 1, Message: fmt.Sprintf(MsgErrRunFailed, len(result.Errors))}
			}
			return nil
		},
	}
}
