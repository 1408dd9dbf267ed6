package cli

import (
	"fmt"

	"github.com/initium-labs/initium/internal/branding"
	"github.com/initium-labs/initium/internal/config"
	"github.com/initium-labs/initium/internal/logging"
	"github.com/initium-labs/initium/internal/session"
	"github.com/initium-labs/initium/internal/store"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectDir string
	fromFile   string
	forceSave  bool

	sess *session.Session
)

// noSession marks commands that run without opening the preferences store.
const noSession = "no-session"

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds the folder layout, assembly definitions and audio mixer of a
Unity project and brings in its package dependencies.

The setup configuration lives in the preferences store, or in a config file
given with --from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			printWarn(cmd.ErrOrStderr(), "Ignoring user settings: %v", err)
		}
		if cmd.Annotations[noSession] != "" {
			return nil
		}
		return openSession(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", ".", "Unity project directory")
	rootCmd.PersistentFlags().StringVar(&fromFile, "from", "", "Operate on a config file instead of the stored config")
	rootCmd.PersistentFlags().BoolVar(&forceSave, "save", false, "Save changes even when auto-save is off")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	defer closeSession()

	err := rootCmd.Execute()
	if err != nil {
		printFail(rootCmd.ErrOrStderr(), "%v", err)
	}
	return err
}

func openSession(cmd *cobra.Command) error {
	root, err := store.PrefsRoot()
	if err != nil {
		return fmt.Errorf("resolving preferences directory: %w", err)
	}
	prefs, err := store.OpenPrefs(config.PrefsBackend(), root)
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}

	logger := logging.New(cmd.ErrOrStderr(), branding.CLIName())
	s, err := session.Open(prefs, logger)
	if err != nil {
		prefs.Close()
		return fmt.Errorf("restoring session: %w", err)
	}
	if fromFile != "" {
		if err := s.BindFile(fromFile); err != nil {
			s.Close()
			return fmt.Errorf("reading %s: %w", fromFile, err)
		}
	}
	sess = s
	return nil
}

func closeSession() {
	if sess != nil {
		_ = sess.Close()
		sess = nil
	}
}

// commit saves the session after a mutation when auto-save is on or --save
// was given, and reports where it went.
func commit(cmd *cobra.Command) error {
	status, err := sess.Commit(forceSave)
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if status != "" {
		printInfo(cmd.OutOrStdout(), "%s", status)
	}
	return nil
}
