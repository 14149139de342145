//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Payload is the request body of POST /generate.
type Payload struct {
	DocType    DocType        `json:"doc_type"`
	UseGemini  bool           `json:"use_gemini"`
	AIContext  *string        `json:"ai_context"`
	Fields     map[string]any `json:"fields"`
	ReturnDocx bool           `json:"return_docx"`
}

// Resume list keys inside Payload.Fields.
const (
	FieldSkills         = "skills"
	FieldExperienceList = "experience_list"
	FieldEducation      = "education"
	FieldProjects       = "projects"
	FieldAchievements   = "achievements"
)

// DocumentRecord is a previously generated document as returned by the dashboard endpoints.
type DocumentRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	Filename  string `json:"filename,omitempty"`
	FilePath  string `json:"file_path,omitempty"`
	DocType   string `json:"doc_type"`
	CreatedAt string `json:"created_at,omitempty"`
	// InputData holds the fields submitted when the document was generated.
	// Nil for documents generated before input retention existed.
	InputData map[string]json.RawMessage `json:"input_data,omitempty"`
}

// ErrorResponse is the JSON error body returned by the API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
