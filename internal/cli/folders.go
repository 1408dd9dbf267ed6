package cli

import (
	"github.com/initium-labs/initium/internal/setup"
	"github.com/spf13/cobra"
)

func init() {
	foldersCmd.AddCommand(foldersListCmd)
	foldersCmd.AddCommand(newFolderToggleCmd("include", "Create the named folders on init", true))
	foldersCmd.AddCommand(newFolderToggleCmd("exclude", "Skip the named folders on init", false))
	rootCmd.AddCommand(foldersCmd)
}

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Choose which scripts and audio folders are created",
}

var foldersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts and audio folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		printEntries(out, "Scripts folders", sess.Config.ScriptsFolders)
		printEntries(out, "Audio folders", sess.Config.AudioFolders)
		return nil
	},
}

func newFolderToggleCmd(use, short string, include bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <scripts|audio> <name>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := setup.ParseFolderRole(args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if err := sess.Toggle(role, name, include); err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), "%sd %s folder %s", use, role, name)
			}
			return commit(cmd)
		},
	}
}
