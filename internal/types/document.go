// Package types provides type definitions for structured data exchanged with the document-generation API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// DocType identifies the category of document being authored.
// Values match the backend's template names.
type DocType string

// Supported document types.
const (
	DocTypeResume   DocType = "resume"
	DocTypeSOP      DocType = "sop"
	DocTypeLetter   DocType = "letter"
	DocTypeContract DocType = "contract"
	DocTypeReport   DocType = "report"
)

// AllDocTypes returns every supported document type in display order.
func AllDocTypes() []DocType {
	return []DocType{DocTypeResume, DocTypeSOP, DocTypeLetter, DocTypeContract, DocTypeReport}
}

// ParseDocType converts user input into a DocType.
// "statement_of_purpose" is accepted as an alias for "sop".
func ParseDocType(s string) (DocType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "statement_of_purpose" {
		return DocTypeSOP, nil
	}
	for _, dt := range AllDocTypes() {
		if string(dt) == v {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

// BaseFields are the contact fields collected for every document type.
var BaseFields = []string{"name", "email", "phone", "location"}

var docTypeFields = map[DocType][]string{
	DocTypeResume: {"summary"},
	DocTypeSOP: {
		"intro", "academic_background", "research_experience",
		"why_program", "career_goals", "conclusion",
	},
	DocTypeLetter: {
		"sender_name", "sender_address", "receiver_name", "receiver_address",
		"receiver_salutation", "subject", "date", "body",
	},
	DocTypeContract: {
		"party_a", "party_b", "date_a", "date_b", "scope", "responsibilities",
		"payment_terms", "confidentiality_clause", "termination_clause",
	},
	DocTypeReport: {
		"title", "author", "date", "executive_summary", "objectives",
		"methodology", "findings", "recommendations", "conclusion",
	},
}

// Fields returns the kind-specific scalar field names for the document type,
// excluding BaseFields.
func (d DocType) Fields() []string {
	return append([]string(nil), docTypeFields[d]...)
}

// HasField reports whether name is a kind-specific scalar field of d.
func (d DocType) HasField(name string) bool {
	for _, f := range docTypeFields[d] {
		if f == name {
			return true
		}
	}
	return false
}

// HasLists reports whether the document type carries list collections.
func (d DocType) HasLists() bool {
	return d == DocTypeResume
}

// Label returns a human-readable name for the document type.
func (d DocType) Label() string {
	switch d {
	case DocTypeResume:
		return "Resume"
	case DocTypeSOP:
		return "Statement of Purpose"
	case DocTypeLetter:
		return "Letter"
	case DocTypeContract:
		return "Contract"
	case DocTypeReport:
		return "Report"
	default:
		return string(d)
	}
}

// IsBaseField reports whether name is one of BaseFields.
func IsBaseField(name string) bool {
	for _, f := range BaseFields {
		if f == name {
			return true
		}
	}
	return false
}

// Mode is the authoring mode of the form.
type Mode string

const (
	// ModeManual sends fields verbatim.
	ModeManual Mode = "manual"
	// ModeGuided sends fields as rough notes for the backend to rewrite.
	ModeGuided Mode = "guided"
)

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeManual:
		return ModeManual, nil
	case ModeGuided:
		return ModeGuided, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want manual or guided)", s)
	}
}

// Title returns the banner title shown for the mode.
func (m Mode) Title() string {
	if m == ModeGuided {
		return "AI Assisted Creation"
	}
	return "Manual Creation"
}

// Description returns the banner description shown for the mode.
func (m Mode) Description() string {
	if m == ModeGuided {
		return "Provide rough notes/points for each section, and AI will rewrite and format them professionally."
	}
	return "Fill in the details yourself. Exact output."
}
