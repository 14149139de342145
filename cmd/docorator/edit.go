package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/docorator/internal/form"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <doc-id | url>",
	Short: "Load a generated document's input for editing",
	Long: `Fetches the input data saved with a generated document and shows the draft.
The argument is a document id or a page URL carrying the edit_doc_id
parameter. With --out the draft is written to a file that generate accepts.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editOutput string

func init() {
	editCmd.Flags().StringVarP(&editOutput, "out", "o", "", "Write the draft to this file")
	rootCmd.AddCommand(editCmd)
}

// documentRef turns a document id or an edit URL into a document id.
func documentRef(arg string) (string, error) {
	if !strings.Contains(arg, "?") {
		return arg, nil
	}
	id, _, err := form.EditRequest(arg)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("URL has no %s parameter", form.EditParam)
	}
	return id, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := documentRef(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	c, view := a.controller("")
	view.Quiet = true

	if err := c.LoadDraftForEdit(context.Background(), id); err != nil {
		return err
	}
	a.printer.PrintDraft(c.Draft(), c.Mode())

	if editOutput != "" {
		if err := writeDraftFile(editOutput, c.Draft()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.out, "Draft written to %s\n", editOutput)
	}
	return nil
}
