package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/docorator/internal/form"
	"github.com/jonathan/docorator/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a draft or payload file against the request schema",
	Long: `Validates a draft file by building the request it would produce. With
--payload the file is taken to be a raw request body instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var validatePayload bool

func init() {
	validateCmd.Flags().BoolVar(&validatePayload, "payload", false, "Treat the file as a request payload")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var err error
	if validatePayload {
		err = schemas.ValidatePayloadFile(args[0])
	} else {
		d, rerr := readDraftFile(args[0])
		if rerr != nil {
			return rerr
		}
		c := form.New(nil, nil, form.Options{})
		c.Restore(d)
		err = schemas.ValidatePayload(c.BuildPayload())
	}

	if err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("validation failed: %w", err)
		}
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", args[0])
	return nil
}
