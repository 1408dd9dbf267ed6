package cli

import (
	"fmt"

	"github.com/initium-labs/initium/internal/store"
	"github.com/spf13/cobra"
)

var (
	showFormat   string
	importDryRun bool
)

func init() {
	configShowCmd.Flags().StringVar(&showFormat, "format", "json", "Output format (json, yaml, toml)")
	configImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would change without importing")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configImportCmd)
	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configDiffCmd)
	configCmd.AddCommand(configNamespaceCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the setup configuration",
	Long: `Show, save, reset, import and export the setup configuration: the base
namespace, the scripts and audio folders, the registry packages and the
package files.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := store.ParseFormat(showFormat)
		if err != nil {
			return err
		}
		data, err := store.Encode(sess.Config, format)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}

		out := cmd.OutOrStdout()
		if sess.File() != "" {
			printInfo(out, "Config file: %s", sess.File())
		} else {
			notice, err := sess.Notice()
			if err != nil {
				return err
			}
			printInfo(out, "%s", notice)
		}
		fmt.Fprint(out, string(data))
		return nil
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the configuration now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := sess.Save()
		if err != nil {
			return fmt.Errorf("%s: %w", status, err)
		}
		printOK(cmd.OutOrStdout(), "%s", status)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the saved configuration and return to the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := sess.Reset()
		if err != nil {
			return fmt.Errorf("resetting config: %w", err)
		}
		printOK(cmd.OutOrStdout(), "%s", status)
		return nil
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the configuration with a config file",
	Long: `Replace the configuration with the content of a json, yaml or toml file. The
file is validated first; an invalid file leaves the configuration untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		if importDryRun {
			incoming, _, err := store.LoadFromFile(path)
			if err != nil {
				return err
			}
			printDiff(cmd, store.Diff(sess.Config, incoming))
			return nil
		}

		status, err := sess.ImportFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", status, err)
		}
		printOK(out, "%s", status)
		return commit(cmd)
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the configuration to a config file",
	Long:  `Write the configuration to a file. The format follows the extension (.json, .yaml, .yml, .toml).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := sess.ExportFile(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", status, err)
		}
		printOK(cmd.OutOrStdout(), "%s", status)
		return nil
	},
}

var configDiffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Compare the configuration with a config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		incoming, _, err := store.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		printDiff(cmd, store.Diff(sess.Config, incoming))
		return nil
	},
}

var configNamespaceCmd = &cobra.Command{
	Use:   "namespace [name]",
	Short: "Show or set the base namespace",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, sess.Config.BaseNamespace)
			return nil
		}
		if err := sess.SetNamespace(args[0]); err != nil {
			return err
		}
		printOK(out, "Base namespace set to %s", args[0])
		return commit(cmd)
	},
}

func printDiff(cmd *cobra.Command, diff string) {
	out := cmd.OutOrStdout()
	if diff == "" {
		printInfo(out, "No differences.")
		return
	}
	fmt.Fprint(out, diff)
}
