package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"taskdesk/internal/model"
	"taskdesk/internal/repository"
	"taskdesk/internal/service"
	"taskdesk/internal/viewstate"

	"github.com/spf13/cobra"
)

const browseHelp = `commands:
  employees | tasks       switch page
  search <term>           filter the current page (debounced)
  status <All|Todo|In Progress|Done>
  refresh                 reload now
  show                    print the current page
  edit <id>               load the edit form for a record
  delete <id>             delete a record and reload
  help | quit`

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse employees and tasks interactively against an in-process store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			store := repository.NewStore()
			if cfg.SeedDemoData {
				if err := repository.Seed(cmd.Context(), store); err != nil {
					return err
				}
			}
			svc := service.NewFromStore(store, service.WithDelay(service.FixedDelay(cfg.SimulatedLatency)))

			b := newBrowser(svc, cfg.SearchDebounce, cmd.OutOrStdout())
			defer b.close()
			return b.run(cmd.Context(), cmd.InOrStdin())
		},
	}
	addStoreFlags(cmd)
	cmd.Flags().Duration("debounce", viewstate.DefaultDebounce, "quiet period before a search runs (overrides SEARCH_DEBOUNCE)")
	return cmd
}

type page int

const (
	pageTasks page = iota
	pageEmployees
)

type browser struct {
	svc       *service.Service
	employees *viewstate.EmployeeList
	tasks     *viewstate.TaskList
	page      page
	out       io.Writer
}

func newBrowser(svc *service.Service, debounce time.Duration, out io.Writer) *browser {
	return &browser{
		svc:       svc,
		employees: viewstate.NewEmployeeList(svc, debounce),
		tasks:     viewstate.NewTaskList(svc, debounce),
		out:       out,
	}
}

func (b *browser) close() {
	b.employees.Close()
	b.tasks.Close()
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := b.tasks.Refresh(ctx); err != nil {
		return err
	}
	b.show()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}
		quit, err := b.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(b.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (b *browser) exec(ctx context.Context, line string) (quit bool, err error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "":
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(b.out, browseHelp)
	case "tasks":
		b.page = pageTasks
		return false, b.refresh(ctx)
	case "employees":
		b.page = pageEmployees
		return false, b.refresh(ctx)
	case "search":
		if b.page == pageTasks {
			b.tasks.SetSearch(arg)
		} else {
			b.employees.SetSearch(arg)
		}
	case "status":
		if b.page != pageTasks {
			return false, errors.New("status only applies to tasks")
		}
		status, err := model.ParseStatusFilter(arg)
		if err != nil {
			return false, err
		}
		b.tasks.SetStatus(status)
	case "refresh":
		return false, b.refresh(ctx)
	case "show":
		b.show()
	case "edit":
		id, err := parseRecordID(arg)
		if err != nil {
			return false, err
		}
		return false, b.edit(ctx, id)
	case "delete":
		id, err := parseRecordID(arg)
		if err != nil {
			return false, err
		}
		return false, b.delete(ctx, id)
	default:
		return false, fmt.Errorf("unknown command %q (try help)", verb)
	}
	return false, nil
}

func (b *browser) refresh(ctx context.Context) error {
	var err error
	if b.page == pageTasks {
		err = b.tasks.Refresh(ctx)
	} else {
		err = b.employees.Refresh(ctx)
	}
	if err != nil {
		return err
	}
	b.show()
	return nil
}

func (b *browser) delete(ctx context.Context, id int64) error {
	var (
		deletion model.Deletion
		err      error
	)
	if b.page == pageTasks {
		deletion, err = b.tasks.Delete(ctx, id)
	} else {
		deletion, err = b.employees.Delete(ctx, id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(b.out, deletion.Message)
	if deletion.CascadedTasks > 0 {
		fmt.Fprintf(b.out, "%d assigned task(s) removed\n", deletion.CascadedTasks)
	}
	b.show()
	return nil
}

func (b *browser) edit(ctx context.Context, id int64) error {
	if b.page == pageEmployees {
		e, err := viewstate.LoadEmployeeForm(ctx, b.svc, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(b.out, "employee #%d\n  name:  %s\n  email: %s\n  role:  %s\n", e.ID, e.Name, e.Email, e.Role)
		return nil
	}

	form, err := viewstate.LoadTaskForm(ctx, b.svc, id)
	if err != nil {
		return err
	}
	t := form.Task
	fmt.Fprintf(b.out, "task #%d\n  title:       %s\n  description: %s\n  status:      %s\n", t.ID, t.Title, t.Description, t.Status)
	fmt.Fprintln(b.out, "  assignee options:")
	for _, e := range form.Employees {
		marker := " "
		if t.EmployeeID != nil && *t.EmployeeID == e.ID {
			marker = "*"
		}
		fmt.Fprintf(b.out, "   %s %d %s\n", marker, e.ID, e.Name)
	}
	return nil
}

func (b *browser) show() {
	w := tabwriter.NewWriter(b.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if b.page == pageTasks {
		state := b.tasks.State()
		if printStatus(w, state.Loading, state.Err, len(state.Items)) {
			return
		}
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tASSIGNEE")
		for _, t := range state.Items {
			assignee := "-"
			if t.Employee != nil {
				assignee = t.Employee.Name
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, assignee)
		}
		return
	}

	state := b.employees.State()
	if printStatus(w, state.Loading, state.Err, len(state.Items)) {
		return
	}
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
	for _, e := range state.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Name, e.Email, e.Role)
	}
}

// printStatus prints the loading, error or empty banner and reports whether it did.
func printStatus(w io.Writer, loading bool, err error, n int) bool {
	switch {
	case loading:
		fmt.Fprintln(w, "loading...")
	case err != nil:
		fmt.Fprintf(w, "error: %v\n", err)
	case n == 0:
		fmt.Fprintln(w, "no results")
	default:
		return false
	}
	return true
}

func parseRecordID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
