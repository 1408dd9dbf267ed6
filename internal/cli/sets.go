package cli

import (
	"github.com/initium-labs/initium/internal/setup"
	"github.com/spf13/cobra"
)

// setCommands builds the list/add/remove/include/exclude subcommands shared
// by the package and package-file sets. check, when set, vets each name
// before it is added.
func setCommands(role setup.Role, noun, title string, check func(cmd *cobra.Command, name string) error) []*cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List the " + noun + "s",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := sess.Set(role)
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), title, set.Entries())
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <" + noun + ">...",
		Short: "Add " + noun + "s, selected",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if check != nil {
				for _, name := range args {
					if err := check(cmd, name); err != nil {
						return err
					}
				}
			}
			n, err := sess.Add(role, args...)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "Added %d %s(s).", n, noun)
			return commit(cmd)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <" + noun + ">...",
		Short: "Remove " + noun + "s whether selected or not",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := sess.Remove(role, args...)
			if err != nil {
				return err
			}
			if n == 0 {
				printWarn(cmd.OutOrStdout(), "No matching %s.", noun)
				return nil
			}
			printOK(cmd.OutOrStdout(), "Removed %d %s(s).", n, noun)
			return commit(cmd)
		},
	}

	return []*cobra.Command{
		list,
		add,
		remove,
		toggleCommand(role, noun, "include", true),
		toggleCommand(role, noun, "exclude", false),
	}
}

func toggleCommand(role setup.Role, noun, use string, include bool) *cobra.Command {
	short := "Select " + noun + "s for fetch"
	if !include {
		short = "Deselect " + noun + "s"
	}
	return &cobra.Command{
		Use:   use + " <" + noun + ">...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := sess.Toggle(role, name, include); err != nil {
					return err
				}
				printOK(cmd.OutOrStdout(), "%sd %s", use, name)
			}
			return commit(cmd)
		},
	}
}
