package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/worktravel/internal/config"
	"github.com/Makepad-fr/worktravel/internal/model"
	"github.com/Makepad-fr/worktravel/internal/store"
	"github.com/Makepad-fr/worktravel/internal/tasks"
	"github.com/Makepad-fr/worktravel/internal/tui"
	"github.com/Makepad-fr/worktravel/internal/ui"
)

// IO are the streams commands read and write.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run executes args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, streams IO) int {
	root := NewRootCmd(streams)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(streams.Err, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		ui.Hint(streams.Err, "Hint: run `worktravel --help` for usage")
		return 2
	}
	return 1
}

// NewRootCmd builds the command tree. With no subcommand it opens the TUI.
func NewRootCmd(streams IO) *cobra.Command {
	var o config.Overrides

	root := &cobra.Command{
		Use:           "worktravel",
		Short:         "Two to-do lists, Work and Travel, kept on this machine",
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), o, streams)
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&o.ConfigPath, "config", "", "config file (TOML, or YAML by extension)")
	pf.StringVar(&o.DataDir, "data-dir", "", "directory holding the task store")
	pf.StringVar(&o.Backend, "backend", "", "store backend: "+strings.Join(store.Backends(), ", "))
	pf.StringVar(&o.Theme, "theme", "", "color theme: "+strings.Join(ui.ThemeNames(), ", "))
	pf.StringVar(&o.LogLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive screen",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI(cmd.Context(), o, streams)
			},
		},
		newListCmd(&o, streams),
		newAddCmd(&o, streams),
		newEditCmd(&o, streams),
		newDoneCmd(&o, streams, "done", true),
		newDoneCmd(&o, streams, "undone", false),
		newRemoveCmd(&o, streams),
		newModeCmd(&o, streams),
	)
	return root
}

func runTUI(ctx context.Context, o config.Overrides, streams IO) error {
	a, err := openApp(ctx, o, streams.Err, true)
	if err != nil {
		return err
	}
	defer a.close()
	return tui.Run(ctx, a.ctl, tui.Options{Theme: a.cfg.Theme})
}

// withApp opens the app for a one-shot command and closes it afterwards,
// which waits for the command's writes to land.
func withApp(cmd *cobra.Command, o *config.Overrides, streams IO, fn func(*app) error) error {
	a, err := openApp(cmd.Context(), *o, streams.Err, false)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// -------------- subcommand impls ----------------

func newListCmd(o *config.Overrides, streams IO) *cobra.Command {
	var all, group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks of the current mode",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, streams, func(a *app) error {
				renderList(streams.Out, a.ctl, all, group)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "show both Work and Travel")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group by pending/done")
	return cmd
}

func newAddCmd(o *config.Overrides, streams IO) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the current mode",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, streams, func(a *app) error {
				id, ok := a.ctl.AddTask(strings.Join(args, " "))
				if !ok {
					return usagef("add: empty text")
				}
				ui.OK(streams.Out, fmt.Sprintf("added %s to %s", id, a.ctl.Mode().Label()))
				return nil
			})
		},
	}
}

func newEditCmd(o *config.Overrides, streams IO) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id|index> <text...>",
		Short: "Replace the text of a task",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, streams, func(a *app) error {
				id, err := resolve(a.ctl, args[0])
				if err != nil {
					return err
				}
				a.ctl.BeginEdit(id)
				if !a.ctl.CommitEdit(id, strings.Join(args[1:], " ")) {
					a.ctl.CancelEdit()
					return usagef("edit: empty text")
				}
				ui.OK(streams.Out, "edited")
				return nil
			})
		},
	}
}

func newDoneCmd(o *config.Overrides, streams IO, use string, complete bool) *cobra.Command {
	short := "Mark a task complete"
	if !complete {
		short = "Mark a task incomplete"
	}
	return &cobra.Command{
		Use:   use + " <id|index>",
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, streams, func(a *app) error {
				id, err := resolve(a.ctl, args[0])
				if err != nil {
					return err
				}
				a.ctl.ToggleComplete(id, complete)
				ui.OK(streams.Out, "marked "+use)
				return nil
			})
		},
	}
}

func newRemoveCmd(o *config.Overrides, streams IO) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id|index>",
		Aliases: []string{"delete"},
		Short:   "Delete a task after confirmation",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, streams, func(a *app) error {
				id, err := resolve(a.ctl, args[0])
				if err != nil {
					return err
				}
				var confirm tasks.Confirmer = promptConfirmer{in: bufio.NewReader(streams.In), out: streams.Out}
				if yes {
					confirm = tasks.ConfirmFunc(func(tasks.Prompt) bool { return true })
				}
				if !a.ctl.DeleteTask(id, confirm) {
					ui.Hint(streams.Out, "kept")
					return nil
				}
				ui.OK(streams.Out, "removed")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newModeCmd(o *config.Overrides, streams IO) *cobra.Command {
	return &cobra.Command{
		Use:       "mode [work|travel]",
		Short:     "Print or switch the current mode",
		Args:      usageArgs(cobra.MaximumNArgs(1)),
		ValidArgs: []string{"work", "travel"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, o, streams, func(a *app) error {
				if len(args) == 0 {
					fmt.Fprintln(streams.Out, a.ctl.Mode().Label())
					return nil
				}
				m, err := model.ParseMode(args[0])
				if err != nil {
					return usageError{err}
				}
				a.ctl.SetMode(m)
				ui.OK(streams.Out, "mode "+m.Label())
				return nil
			})
		},
	}
}

// usageArgs reports argument count mistakes as usage errors.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// promptConfirmer asks the delete question on the terminal. Anything but
// an explicit yes cancels.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(pr tasks.Prompt) bool {
	fmt.Fprintf(p.out, "%s: %q\n%s [y = %s / N = %s] ", pr.Title, pr.Entry.Task.Text, pr.Message, pr.ConfirmLabel, pr.CancelLabel)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// resolve accepts a task ID, or a 1-based index into the visible list as
// printed by `ls`.
func resolve(ctl *tasks.Controller, ref string) (model.ID, error) {
	if _, ok := ctl.Task(model.ID(ref)); ok {
		return model.ID(ref), nil
	}
	visible := ctl.VisibleTasks()
	n, err := strconv.Atoi(ref)
	if err != nil {
		return "", usagef("no task %q", ref)
	}
	if n < 1 || n > len(visible) {
		return "", usagef("index out of range: have %d, got %d", len(visible), n)
	}
	return visible[n-1].ID, nil
}
