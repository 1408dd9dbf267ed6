package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/initium-labs/initium/internal/config"
	"github.com/initium-labs/initium/internal/registry"
	"github.com/spf13/cobra"
)

var fetchTimeout time.Duration

func init() {
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 5*time.Minute, "Stop waiting for package adds after this long (0 waits forever)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Add the selected packages and import the selected package files",
	Long: `Add every included registry package to the project, then import every included
package file. Registry adds are issued together and polled until each one
completes; a failed add does not stop the others.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if fetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, fetchTimeout)
			defer cancel()
		}

		fetcher := &registry.Fetcher{
			Service: newRegistryClient(),
			Logger:  sess.Logger,
		}
		report, err := fetcher.FetchDependencies(ctx, sess.Config)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return err
		}
		printReport(cmd, report)
		if err != nil {
			printWarn(cmd.OutOrStdout(), "%s", stopMessage(err, fetchTimeout, len(report.Pending)))
		}
		return nil
	},
}

// stopMessage explains why fetch stopped waiting before every add finished.
func stopMessage(err error, timeout time.Duration, pending int) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("Stopped waiting after %s; %d package(s) still in progress.", timeout, pending)
	}
	return fmt.Sprintf("Interrupted; %d package(s) still in progress.", pending)
}

func newRegistryClient() *registry.HTTPClient {
	return registry.NewHTTPClient(config.RegistryURL(), projectDir)
}

func printReport(cmd *cobra.Command, report *registry.Report) {
	out := cmd.OutOrStdout()
	for _, info := range report.Added {
		printOK(out, "added %s@%s", info.Name, info.Version)
	}
	for _, path := range report.Imported {
		printOK(out, "imported %s", path)
	}
	for _, id := range report.Pending {
		printWarn(out, "still adding %s", id)
	}
	for _, err := range report.Errors {
		printFail(out, "%v", err)
	}
	if len(report.Added)+len(report.Imported)+len(report.Pending)+len(report.Errors) == 0 {
		printInfo(out, "Nothing selected to fetch.")
	}
}
