package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/jonathan/docorator/internal/api"
	"github.com/jonathan/docorator/internal/config"
	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/form"
	"github.com/jonathan/docorator/internal/observability"
	"github.com/jonathan/docorator/internal/session"
	"github.com/jonathan/docorator/internal/shell"
	"github.com/spf13/cobra"
)

// app bundles the collaborators every command needs.
type app struct {
	cfg     *config.Config
	store   *session.FileStore
	session *session.Manager
	client  *api.Client
	out     io.Writer
	printer *observability.Printer
}

func newApp(cmd *cobra.Command) (*app, error) {
	out := cmd.OutOrStdout()
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout()}
	store := session.NewFileStore(cfg.ConfigDir)
	mgr := session.NewManager(store, loginNavigator(cmd.ErrOrStderr()), httpClient)
	client, err := api.NewClient(cfg.APIBaseURL, mgr, httpClient)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		store:   store,
		session: mgr,
		client:  client,
		out:     out,
		printer: observability.NewPrinter(out),
	}, nil
}

// controller creates a form controller writing artifacts to dir.
func (a *app) controller(dir string) (*form.Controller, *shell.TextView) {
	if dir == "" {
		dir = a.cfg.ArtifactDir
	}
	view := shell.NewTextView(a.out)
	return form.New(a.client, a.session, form.Options{ArtifactDir: dir, View: view}), view
}

// loginNavigator is the CLI's login surface: it tells the user how to sign in.
func loginNavigator(w io.Writer) session.Navigator {
	return session.NavigatorFunc(func(reason session.Reason) {
		switch reason {
		case session.ReasonExpired:
			_, _ = fmt.Fprintln(w, "Your session has expired. Run `docorator login` to sign in again.")
		case session.ReasonLogout:
			_, _ = fmt.Fprintln(w, "Logged out.")
		default:
			_, _ = fmt.Fprintln(w, "Not logged in. Run `docorator login` first.")
		}
	})
}

// draftFile is the on-disk form of a draft. It has the same shape as a
// stored document's input data, so an exported document can be fed back to
// generate.
type draftFile struct {
	DocType   string                     `json:"doc_type"`
	InputData map[string]json.RawMessage `json:"input_data"`
}

func readDraftFile(path string) (*draft.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}
	var f draftFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse draft JSON: %w", err)
	}
	if f.InputData == nil {
		f.InputData = map[string]json.RawMessage{}
	}
	d, err := draft.FromInputData(f.DocType, f.InputData)
	if err != nil {
		return nil, fmt.Errorf("invalid draft file %s: %w", path, err)
	}
	return d, nil
}

func writeDraftFile(path string, d *draft.Draft) error {
	input := make(map[string]json.RawMessage)
	for k, v := range d.InputData() {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal field %s: %w", k, err)
		}
		input[k] = raw
	}
	data, err := json.MarshalIndent(draftFile{DocType: string(d.Kind()), InputData: input}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write draft file: %w", err)
	}
	return nil
}
