package slots

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPrintSlotsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSlots(&buf, []string{"slack", "load", "slack"}, "table"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 12, "header, ten built-ins and one user slot")
	assert.Contains(t, lines[1], "load")
	assert.Contains(t, lines[1], "builtin")
	assert.Contains(t, lines[11], "10")
	assert.Contains(t, lines[11], "slack")
	assert.Contains(t, lines[11], "user")
}

func TestPrintSlotsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printSlots(&buf, []string{"a", "b"}, "yaml"))

	var entries []slotEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 12)
	assert.Equal(t, slotEntry{Index: 11, Name: "b"}, entries[11])
	assert.True(t, entries[0].Builtin)
}

func TestPrintSlotsInvalidFormat(t *testing.T) {
	assert.Error(t, printSlots(&bytes.Buffer{}, nil, "xml"))
}
