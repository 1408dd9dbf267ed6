package cli

import (
	"github.com/initium-labs/initium/internal/config"
	"github.com/initium-labs/initium/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project folders, assembly definitions and audio mixer",
	Long: `Run the initializer against the project given with --project.

The stages run in order: base folders, scripts folders, assembly definitions,
audio folders, audio mixer. Existing files and folders are left untouched and a
failing stage does not stop the next one.

A custom mixer template can be set with:
  initium settings set mixer_template <path>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := sess.InitializeProject(projectDir, config.MixerTemplate())
		if forceSave && !sess.AutoSave {
			if _, err := sess.Save(); err != nil {
				return err
			}
		}
		printResult(cmd, res)
		return nil
	},
}

func printResult(cmd *cobra.Command, res *scaffold.Result) {
	out := cmd.OutOrStdout()
	printHeader(out, "Initializing "+res.Root)
	for _, p := range res.Created {
		printOK(out, "created %s", p)
	}
	for _, p := range res.Skipped {
		printInfo(out, "  exists  %s", p)
	}
	for _, w := range res.Warnings {
		printWarn(out, "%s", w)
	}
	for _, e := range res.Errors {
		printFail(out, "%s", e)
	}
	if len(res.Created) == 0 && len(res.Errors) == 0 {
		printInfo(out, "Nothing to do.")
	}
}
