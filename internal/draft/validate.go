package draft

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var requiredMessages = map[ListName]string{
	ListExperience: "Job Title and Company are required.",
	ListProjects:   "Project Name is required.",
	ListEducation:  "Degree is required.",
}

// ValidateEntry checks the required fields of a structured list entry.
// Strings are expected to be trimmed already.
func ValidateEntry(list ListName, entry any) error {
	err := validate.Struct(entry)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{
		List:    list,
		Fields:  fields,
		Message: requiredMessages[list],
	}
}
