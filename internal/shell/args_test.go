package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty", "   ", nil},
		{"words", "set name  Ada", []string{"set", "name", "Ada"}},
		{"quoted", `set name "Ada Lovelace"`, []string{"set", "name", "Ada Lovelace"}},
		{"quoted value in pair", `add projects name="Docs site" stack=Go`, []string{"add", "projects", "name=Docs site", "stack=Go"}},
		{"escaped quote", `context say \"hi\"`, []string{"context", "say", `"hi"`}},
		{"empty quotes", `set phone ""`, []string{"set", "phone", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitArgs_UnterminatedQuote(t *testing.T) {
	_, err := splitArgs(`set name "Ada`)
	assert.Error(t, err)
}

func TestKeyValues(t *testing.T) {
	kv, err := keyValues([]string{"title=Engineer", "bullet=a", "bullet=b=c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b=c"}, kv["bullet"])
	assert.Equal(t, "Engineer", last(kv, "title"))
	assert.Equal(t, "", last(kv, "missing"))

	_, err = keyValues([]string{"novalue"})
	assert.Error(t, err)
	_, err = keyValues([]string{"=x"})
	assert.Error(t, err)
}
