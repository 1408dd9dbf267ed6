package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/initium-labs/initium/internal/config"
	"github.com/initium-labs/initium/internal/registry"
	"github.com/initium-labs/initium/internal/setup"
	"github.com/spf13/cobra"
)

var (
	availableRefresh bool
	availableJSON    bool
	installedJSON    bool
)

func init() {
	packagesCmd.AddCommand(setCommands(setup.RolePackage, "package", "Packages", checkIdentifier)...)

	availableCmd.Flags().BoolVar(&availableRefresh, "refresh", false, "Query the registry even if the cache is fresh")
	availableCmd.Flags().BoolVar(&availableJSON, "json", false, "Output in JSON format")
	installedCmd.Flags().BoolVar(&installedJSON, "json", false, "Output in JSON format")

	packagesCmd.AddCommand(packagesSetCmd)
	packagesCmd.AddCommand(removeSelectedCmd)
	packagesCmd.AddCommand(packagesClearCmd)
	packagesCmd.AddCommand(availableCmd)
	packagesCmd.AddCommand(installedCmd)
	rootCmd.AddCommand(packagesCmd)
}

var packagesCmd = &cobra.Command{
	Use:     "packages",
	Aliases: []string{"pkg"},
	Short:   "Manage the registry packages to fetch",
	Long: `Manage the registry packages added by fetch.

A package is a registry name (com.unity.textmeshpro), optionally with a
version constraint (com.unity.textmeshpro@^3.0), or a Git URL
(https://github.com/org/repo.git, or name@https://...).`,
}

func checkIdentifier(cmd *cobra.Command, name string) error {
	return registry.Validate(name)
}

var packagesSetCmd = &cobra.Command{
	Use:   "set <package>...",
	Short: "Replace the package list with the given packages, all selected",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			if err := checkIdentifier(cmd, name); err != nil {
				return err
			}
		}
		status, err := sess.SetPackages(args)
		if err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		printOK(cmd.OutOrStdout(), "Package list replaced (%d).", sess.Config.Packages.Len())
		if status != "" {
			printInfo(cmd.OutOrStdout(), "%s", status)
			return nil
		}
		if forceSave {
			return commit(cmd)
		}
		return nil
	},
}

var removeSelectedCmd = &cobra.Command{
	Use:   "remove-selected",
	Short: "Remove every selected package",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed := sess.RemoveSelectedPackages()
		for _, e := range removed {
			printOK(cmd.OutOrStdout(), "removed %s", e.Name)
		}
		if len(removed) == 0 {
			printInfo(cmd.OutOrStdout(), "No selected packages.")
			return nil
		}
		return commit(cmd)
	},
}

var packagesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess.ClearPackages()
		printOK(cmd.OutOrStdout(), "Package list cleared.")
		return commit(cmd)
	},
}

var availableCmd = &cobra.Command{
	Use:   "available [query]",
	Short: "List registry packages, grouped into bundles",
	Long: `List the packages the registry offers. Results are cached in the config
directory for a day; --refresh queries the registry again. Packages already
in the list are marked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		pkgs, cached, err := newRegistryClient().Available(cmd.Context(), config.Dir(), query, availableRefresh)
		if err != nil && pkgs == nil {
			return fmt.Errorf("querying registry: %w", err)
		}
		if err != nil {
			printWarn(cmd.ErrOrStderr(), "Could not cache results: %v", err)
		}

		if availableJSON {
			return printJSON(cmd.OutOrStdout(), pkgs)
		}
		if len(pkgs) == 0 {
			printInfo(cmd.OutOrStdout(), "No packages found.")
			return nil
		}
		if cached {
			printInfo(cmd.OutOrStdout(), "(cached results; use --refresh to update)")
		}
		printAvailable(cmd.OutOrStdout(), pkgs)
		return nil
	},
}

func printAvailable(out io.Writer, pkgs []registry.PackageInfo) {
	names := make([]string, 0, len(pkgs))
	versions := map[string]string{}
	for _, p := range pkgs {
		names = append(names, p.Name)
		versions[p.Name] = p.Version
	}

	line := func(indent, name string) {
		mark := dimStyle.Render("[ ]")
		if sess.Config.Packages.ContainsName(name) {
			mark = okStyle.Render("[x]")
		}
		fmt.Fprintf(out, "%s%s %s %s\n", indent, mark, name, dimStyle.Render(versions[name]))
	}

	flat, bundles := registry.Bundles(names)
	for _, name := range flat {
		line("", name)
	}
	for _, b := range bundles {
		printHeader(out, fmt.Sprintf("%s (%d)", b.Name, len(b.Packages)))
		for _, name := range b.Packages {
			line("  ", name)
		}
	}
}

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "List the packages recorded in the project manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := newRegistryClient().List(cmd.Context())
		<-req.Done()
		if registry.IsFailure(req.Status()) {
			return fmt.Errorf("listing packages: %s", req.Failure().Message)
		}

		pkgs := req.Result()
		if installedJSON {
			return printJSON(cmd.OutOrStdout(), pkgs)
		}
		if len(pkgs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No packages installed yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tSOURCE")
		for _, p := range pkgs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Version, p.Source)
		}
		return w.Flush()
	},
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
