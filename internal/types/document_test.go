//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocType(t *testing.T) {
	tests := []struct {
		input   string
		want    DocType
		wantErr bool
	}{
		{input: "resume", want: DocTypeResume},
		{input: " Letter ", want: DocTypeLetter},
		{input: "statement_of_purpose", want: DocTypeSOP},
		{input: "sop", want: DocTypeSOP},
		{input: "contract", want: DocTypeContract},
		{input: "report", want: DocTypeReport},
		{input: "invoice", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDocType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocType_Fields(t *testing.T) {
	assert.Equal(t, []string{"summary"}, DocTypeResume.Fields())
	assert.Contains(t, DocTypeLetter.Fields(), "sender_name")
	assert.Contains(t, DocTypeLetter.Fields(), "body")
	assert.Contains(t, DocTypeContract.Fields(), "scope")
	assert.Contains(t, DocTypeContract.Fields(), "payment_terms")
	assert.NotContains(t, DocTypeResume.Fields(), "intro")

	// Returned slice is a copy
	f := DocTypeReport.Fields()
	f[0] = "mutated"
	assert.Equal(t, "title", DocTypeReport.Fields()[0])
}

func TestDocType_HasField(t *testing.T) {
	assert.True(t, DocTypeSOP.HasField("why_program"))
	assert.False(t, DocTypeSOP.HasField("summary"))
	assert.False(t, DocTypeSOP.HasField("name"), "base fields are not kind fields")
	assert.True(t, IsBaseField("name"))
	assert.False(t, IsBaseField("summary"))
}

func TestDocType_HasLists(t *testing.T) {
	for _, dt := range AllDocTypes() {
		assert.Equal(t, dt == DocTypeResume, dt.HasLists(), string(dt))
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Guided")
	require.NoError(t, err)
	assert.Equal(t, ModeGuided, m)

	m, err = ParseMode("manual")
	require.NoError(t, err)
	assert.Equal(t, ModeManual, m)

	_, err = ParseMode("auto")
	assert.Error(t, err)

	assert.Equal(t, "AI Assisted Creation", ModeGuided.Title())
	assert.Equal(t, "Manual Creation", ModeManual.Title())
}

func TestDocumentRecord_InputDataAbsent(t *testing.T) {
	var rec DocumentRecord
	err := json.Unmarshal([]byte(`{"id":"abc","doc_type":"letter"}`), &rec)
	require.NoError(t, err)
	assert.Nil(t, rec.InputData)

	err = json.Unmarshal([]byte(`{"id":"abc","doc_type":"letter","input_data":null}`), &rec)
	require.NoError(t, err)
	assert.Nil(t, rec.InputData)
}

func TestPayload_JSONShape(t *testing.T) {
	p := Payload{
		DocType: DocTypeLetter,
		Fields:  map[string]any{"body": "hello"},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"doc_type":"letter"`)
	assert.Contains(t, s, `"use_gemini":false`)
	assert.Contains(t, s, `"ai_context":null`)
	assert.Contains(t, s, `"return_docx":false`)
}
