package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErr("usage: todo %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usageErr("usage: todo %s", usage)
		}
		return nil
	}
}

func (a *app) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args:  minArgs(1, "add <text...>"),
		RunE: func(_ *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return usageErr("add: empty text")
			}
			a.store.Create(text)
			return a.commit("added")
		},
	}
}

func (a *app) doneCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "done <ref>",
		Aliases: []string{"toggle"},
		Short:   "Toggle done for an item (1-based index or id)",
		Args:    exactArgs(1, "done <ref>"),
		RunE: func(_ *cobra.Command, args []string) error {
			it, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			a.store.Toggle(it.ID)
			if it.Done {
				return a.commit("reopened")
			}
			return a.commit("done")
		},
	}
}

func (a *app) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <ref>",
		Short: "Remove an item (1-based index or id)",
		Args:  exactArgs(1, "rm <ref>"),
		RunE: func(_ *cobra.Command, args []string) error {
			it, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			a.store.Remove(it.ID)
			return a.commit("removed")
		},
	}
}

func (a *app) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace the text of an item; blank text keeps the old one",
		Args:  minArgs(2, "edit <ref> <text...>"),
		RunE: func(_ *cobra.Command, args []string) error {
			it, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			a.store.Edit(it.ID, text)
			if strings.TrimSpace(text) == "" {
				return a.commit("kept previous text")
			}
			return a.commit("edited")
		},
	}
}

func (a *app) clearDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-done",
		Short: "Remove every done item",
		Args:  exactArgs(0, "clear-done"),
		RunE: func(*cobra.Command, []string) error {
			a.store.ClearDone()
			return a.commit("cleared done items")
		},
	}
}

func (a *app) clearAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-all",
		Short: "Remove every item",
		Args:  exactArgs(0, "clear-all"),
		RunE: func(*cobra.Command, []string) error {
			a.store.ClearAll()
			return a.commit("cleared all items")
		},
	}
}

func (a *app) markAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-all",
		Short: "Mark every item done",
		Args:  exactArgs(0, "mark-all"),
		RunE: func(*cobra.Command, []string) error {
			a.store.MarkAllDone()
			return a.commit("marked all done")
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	var (
		filter string
		group  bool
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List items",
		Args:  exactArgs(0, "ls [--filter all|open|done] [--group]"),
		RunE: func(*cobra.Command, []string) error {
			f, ok := model.ParseFilter(filter)
			if !ok {
				return usageErr("ls: unknown filter %q (want all, open or done)", filter)
			}
			a.store.SetFilter(f)
			a.printList(group)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "show all, open or done items")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group output by pending/done")
	return cmd
}

func (a *app) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print open and done counts",
		Args:  exactArgs(0, "stats"),
		RunE: func(*cobra.Command, []string) error {
			open, done := a.store.Stats()
			fmt.Fprintln(a.opt.Stdout, ui.Summary(a.theme, open, done))
			return nil
		},
	}
}

func (a *app) uiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive list",
		Args:  exactArgs(0, "ui"),
		RunE: func(*cobra.Command, []string) error {
			err := tui.Run(a.store, a.theme, logging.Component(a.log, "tui"),
				tea.WithInput(a.opt.Stdin), tea.WithOutput(a.opt.Stdout))
			if err != nil {
				return failure("tui: %v", err)
			}
			if err := a.store.PersistErr(); err != nil {
				return failure("save: %v", err)
			}
			return nil
		},
	}
}

// resolve maps a user reference onto the current collection: an exact id,
// a unique id prefix of at least 4 characters, or a 1-based index as
// printed by `todo ls`.
func (a *app) resolve(ref string) (model.Item, error) {
	items := a.store.Items()
	for _, it := range items {
		if it.ID == ref {
			return it, nil
		}
	}
	if len(ref) >= 4 {
		var matches []model.Item
		for _, it := range items {
			if strings.HasPrefix(it.ID, ref) {
				matches = append(matches, it)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			return model.Item{}, usageErr("ambiguous id prefix %q matches %d items", ref, len(matches))
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return model.Item{}, &exitError{
				code: 2,
				msg:  fmt.Sprintf("index out of range: have %d, got %d", len(items), n),
				hint: "run `todo ls` to see valid indexes",
			}
		}
		return items[n-1], nil
	}
	return model.Item{}, &exitError{
		code: 2,
		msg:  fmt.Sprintf("no item matches %q", ref),
		hint: "run `todo ls` to see valid indexes",
	}
}
