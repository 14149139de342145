package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/docorator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resumePayload() types.Payload {
	return types.Payload{
		DocType: types.DocTypeResume,
		Fields: map[string]any{
			"name":            "Ada",
			"summary":         "Engineer",
			"skills":          []string{"Go"},
			"experience_list": []types.Experience{{Title: "Dev", Company: "Acme", Bullets: []string{}}},
			"education":       []types.Education{},
			"projects":        []types.Project{},
			"achievements":    []string{},
		},
	}
}

func TestValidatePayload_Resume(t *testing.T) {
	assert.NoError(t, ValidatePayload(resumePayload()))
}

func TestValidatePayload_ResumeMissingList(t *testing.T) {
	p := resumePayload()
	delete(p.Fields, "achievements")

	err := ValidatePayload(p)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "achievements")
}

func TestValidatePayload_ExperienceRequiresCompany(t *testing.T) {
	p := resumePayload()
	p.Fields["experience_list"] = []types.Experience{{Title: "Dev"}}

	err := ValidatePayload(p)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidatePayload_LetterRejectsResumeLists(t *testing.T) {
	p := types.Payload{
		DocType: types.DocTypeLetter,
		Fields:  map[string]any{"body": "hello", "skills": []string{}},
	}
	assert.Error(t, ValidatePayload(p))

	delete(p.Fields, "skills")
	assert.NoError(t, ValidatePayload(p))
}

func TestValidatePayload_UnknownDocType(t *testing.T) {
	p := types.Payload{DocType: "invoice", Fields: map[string]any{}}
	err := ValidatePayload(p)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidatePayload_GuidedContext(t *testing.T) {
	ctx := "senior backend role"
	p := types.Payload{DocType: types.DocTypeReport, UseGemini: true, AIContext: &ctx, Fields: map[string]any{}}
	assert.NoError(t, ValidatePayload(p))
}

func TestValidatePayloadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{
		"doc_type": "contract", "use_gemini": false, "ai_context": null,
		"fields": {"scope": "x"}, "return_docx": false
	}`), 0644))
	assert.NoError(t, ValidatePayloadFile(good))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"doc_type": "contract"}`), 0644))
	var verr *ValidationError
	require.ErrorAs(t, ValidatePayloadFile(bad), &verr)

	err := ValidatePayloadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_MalformedSchema(t *testing.T) {
	err := ValidateJSONString("{ not json", `{}`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}
