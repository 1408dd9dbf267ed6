package cli

import (
	"os"

	"github.com/initium-labs/initium/internal/setup"
	"github.com/spf13/cobra"
)

func init() {
	filesCmd.AddCommand(setCommands(setup.RolePackageFile, "file", "Package files", checkPackageFile)...)
	rootCmd.AddCommand(filesCmd)
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Manage the local package files to import",
	Long: `Manage the .unitypackage (or .tgz) files that fetch imports into Assets.
Paths are stored as given; a file that is missing at fetch time is reported
and skipped.`,
}

// checkPackageFile only warns: the file may be put in place before fetch.
func checkPackageFile(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); err != nil {
		printWarn(cmd.ErrOrStderr(), "Package file not found: %s", path)
	}
	return nil
}
