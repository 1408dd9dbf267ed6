package cli

import (
	"fmt"

	"github.com/initium-labs/initium/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	settingsCmd.AddCommand(settingsAutoSaveCmd)
	settingsCmd.AddCommand(settingsLoggingCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage toggles and user settings",
	Long: `Toggle auto-save and logging, or read and write the user settings stored
at ~/.initium/config.yaml (registry_url, prefs_backend, mixer_template).`,
}

var settingsAutoSaveCmd = &cobra.Command{
	Use:   "autosave [on|off]",
	Short: "Show or change auto-save",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args, "Auto-save", func() bool { return sess.AutoSave }, sess.SetAutoSave)
	},
}

var settingsLoggingCmd = &cobra.Command{
	Use:   "logging [on|off]",
	Short: "Show or change logging",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(cmd, args, "Logging", sess.Logger.Enabled, sess.SetLogging)
	},
}

func runToggle(cmd *cobra.Command, args []string, label string, get func() bool, set func(bool) error) error {
	out := cmd.OutOrStdout()
	if len(args) == 1 {
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		if err := set(on); err != nil {
			return fmt.Errorf("changing %s: %w", label, err)
		}
	}
	state := "off"
	if get() {
		state = "on"
	}
	if len(args) == 1 {
		printOK(out, "%s is %s.", label, state)
	} else {
		fmt.Fprintf(out, "%s is %s.\n", label, state)
	}
	return nil
}

var settingsSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Set a user setting",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{noSession: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:         "get <key>",
	Short:       "Get a user setting",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noSession: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
