// Package shell drives a form controller from text commands. Each command
// name maps to one controller operation through an explicit dispatch table.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/form"
	"github.com/jonathan/docorator/internal/observability"
	"github.com/jonathan/docorator/internal/types"
)

// errQuit ends the command loop.
var errQuit = errors.New("quit")

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args []string) error
}

// Dispatcher routes command lines to controller operations.
type Dispatcher struct {
	c        *form.Controller
	out      io.Writer
	printer  *observability.Printer
	commands map[string]command
}

// NewDispatcher builds the dispatch table for c. Output goes to out.
func NewDispatcher(c *form.Controller, out io.Writer) *Dispatcher {
	d := &Dispatcher{c: c, out: out, printer: observability.NewPrinter(out)}
	d.commands = map[string]command{
		"kind":    {"kind <resume|sop|letter|contract|report>", "switch document type", d.kind},
		"mode":    {"mode <manual|guided>", "switch authoring mode", d.mode},
		"context": {"context <text>", "set the guided-mode context", d.setContext},
		"set":     {"set <field> <value>", "set a scalar field", d.set},
		"add":     {"add <list> [text | key=value ...]", "add an entry (no arguments commits the pending input)", d.add},
		"edit":    {"edit <list> <index|id>", "move an entry into its input group for editing", d.edit},
		"rm":      {"rm <list> <index|id>", "remove an entry", d.remove},
		"ls":      {"ls [list]", "list entries", d.listEntries},
		"show":    {"show", "show the draft", d.show},
		"payload": {"payload", "print the request payload", d.payload},
		"submit":  {"submit", "generate the document", d.submit},
		"load":    {"load <doc-id|url>", "load a generated document for editing", d.load},
		"help":    {"help", "show commands", d.help},
		"quit":    {"quit", "leave the shell", func(context.Context, []string) error { return errQuit }},
	}
	d.commands["exit"] = d.commands["quit"]
	return d
}

// Dispatch runs a single command line. It reports quit=true when the line
// asks to leave.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (bool, error) {
	args, err := splitArgs(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	cmd, ok := d.commands[args[0]]
	if !ok {
		return false, fmt.Errorf("unknown command %q (try help)", args[0])
	}
	err = cmd.run(ctx, args[1:])
	if errors.Is(err, errQuit) {
		return true, nil
	}
	return false, err
}

// Run reads commands from in until EOF or quit. Command errors are printed
// and do not stop the loop.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(d.out, "> ")
	for scanner.Scan() {
		quit, err := d.Dispatch(ctx, scanner.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintf(d.out, "error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(d.out, "> ")
	}
	return scanner.Err()
}

func (d *Dispatcher) kind(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(d.commands["kind"])
	}
	kind, err := types.ParseDocType(args[0])
	if err != nil {
		return err
	}
	return d.c.SetDocumentKind(kind)
}

func (d *Dispatcher) mode(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(d.commands["mode"])
	}
	mode, err := types.ParseMode(args[0])
	if err != nil {
		return err
	}
	d.c.SetMode(mode)
	return nil
}

func (d *Dispatcher) setContext(_ context.Context, args []string) error {
	d.c.SetAIContext(strings.Join(args, " "))
	return nil
}

func (d *Dispatcher) set(_ context.Context, args []string) error {
	if len(args) < 1 {
		return usageError(d.commands["set"])
	}
	return d.c.SetField(args[0], strings.Join(args[1:], " "))
}

func (d *Dispatcher) add(_ context.Context, args []string) error {
	if len(args) < 1 {
		return usageError(d.commands["add"])
	}
	list, err := draft.ParseListName(args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		entry, err := d.entryFromArgs(list, args[1:])
		if err != nil {
			return err
		}
		if err := d.c.SetInput(list, entry); err != nil {
			return err
		}
	}
	return d.c.Commit(list)
}

// entryFromArgs overlays the arguments on the list's pending input group, so
// an entry taken out with edit can be changed one field at a time.
func (d *Dispatcher) entryFromArgs(list draft.ListName, args []string) (any, error) {
	if list == draft.ListSkills || list == draft.ListAchievements {
		return strings.Join(args, " "), nil
	}

	kv, err := keyValues(args)
	if err != nil {
		return nil, err
	}
	in := d.c.Inputs()
	override := func(dst *string, keys ...string) {
		for _, k := range keys {
			if _, ok := kv[k]; ok {
				*dst = last(kv, k)
			}
		}
	}

	switch list {
	case draft.ListExperience:
		e := in.Experience
		override(&e.Title, "title")
		override(&e.Company, "company")
		override(&e.Period, "period")
		if bullets, ok := kv["bullet"]; ok {
			e.Bullets = strings.Join(bullets, "\n")
		}
		return e, nil
	case draft.ListProjects:
		p := in.Project
		override(&p.Name, "name")
		override(&p.TechStack, "stack", "tech_stack")
		override(&p.Description, "desc", "description")
		return p, nil
	case draft.ListEducation:
		e := in.Education
		override(&e.Degree, "degree")
		override(&e.Institute, "institute")
		override(&e.Year, "year")
		override(&e.Grade, "grade")
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", draft.ErrUnknownList, list)
}

// resolve maps an index from the current render, or an entry id, to an id.
func (d *Dispatcher) resolve(list draft.ListName, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("expected an index or id, got %q", ref)
	}
	items, err := d.c.RenderList(list)
	if err != nil {
		return uuid.Nil, err
	}
	if idx < 0 || idx >= len(items) {
		return uuid.Nil, fmt.Errorf("%w: index %d out of range (0-%d)", draft.ErrEntryNotFound, idx, len(items)-1)
	}
	return items[idx].ID, nil
}

func (d *Dispatcher) listRef(args []string, cmd command) (draft.ListName, uuid.UUID, error) {
	if len(args) != 2 {
		return "", uuid.Nil, usageError(cmd)
	}
	list, err := draft.ParseListName(args[0])
	if err != nil {
		return "", uuid.Nil, err
	}
	id, err := d.resolve(list, args[1])
	return list, id, err
}

func (d *Dispatcher) edit(_ context.Context, args []string) error {
	list, id, err := d.listRef(args, d.commands["edit"])
	if err != nil {
		return err
	}
	return d.c.EditListEntry(list, id)
}

func (d *Dispatcher) remove(_ context.Context, args []string) error {
	list, id, err := d.listRef(args, d.commands["rm"])
	if err != nil {
		return err
	}
	return d.c.RemoveListEntry(list, id)
}

func (d *Dispatcher) listEntries(_ context.Context, args []string) error {
	lists := draft.AllLists()
	if len(args) > 0 {
		l, err := draft.ParseListName(args[0])
		if err != nil {
			return err
		}
		lists = []draft.ListName{l}
	}
	for _, l := range lists {
		items, err := d.c.RenderList(l)
		if err != nil {
			return err
		}
		d.printer.PrintList(l, items)
	}
	return nil
}

func (d *Dispatcher) show(_ context.Context, _ []string) error {
	d.printer.PrintDraft(d.c.Draft(), d.c.Mode())
	return nil
}

func (d *Dispatcher) payload(_ context.Context, _ []string) error {
	data, err := json.MarshalIndent(d.c.BuildPayload(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(d.out, string(data))
	return err
}

func (d *Dispatcher) submit(ctx context.Context, _ []string) error {
	_, err := d.c.Submit(ctx)
	return err
}

func (d *Dispatcher) load(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(d.commands["load"])
	}
	id := args[0]
	if strings.Contains(id, "?") {
		requested, _, err := form.EditRequest(id)
		if err != nil {
			return err
		}
		if requested == "" {
			return fmt.Errorf("URL has no %s parameter", form.EditParam)
		}
		id = requested
	}
	return d.c.LoadDraftForEdit(ctx, id)
}

//nolint:errcheck // writing to the terminal; errors are not recoverable
func (d *Dispatcher) help(_ context.Context, _ []string) error {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		if name != "exit" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := d.commands[name]
		fmt.Fprintf(d.out, "  %-45s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintln(d.out, "  lists: skills, experience, projects, education, achievements")
	fmt.Fprintln(d.out, "  experience keys: title company period bullet (repeatable)")
	fmt.Fprintln(d.out, "  project keys: name stack desc   education keys: degree institute year grade")
	return nil
}

func usageError(cmd command) error {
	return fmt.Errorf("usage: %s", cmd.usage)
}
