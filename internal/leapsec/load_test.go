package leapsec

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_YAMLAndCUEAgree(t *testing.T) {
	fromYAML, err := LoadFile(filepath.Join("testdata", "short.yaml"))
	require.NoError(t, err)
	fromCUE, err := LoadFile(filepath.Join("testdata", "short.cue"))
	require.NoError(t, err)

	assert.Equal(t, "short", fromYAML.Name())
	assert.Equal(t, fromYAML.Name(), fromCUE.Name())
	assert.Equal(t, fromYAML.BaseOffset(), fromCUE.BaseOffset())
	assert.Equal(t, fromYAML.Transitions(), fromCUE.Transitions())
	assert.Equal(t, []Transition{{Day: 41498, Offset: 11}, {Day: 41682, Offset: 12}}, fromYAML.Transitions())
}

func TestLoadFile_NegativeLeapSecond(t *testing.T) {
	table, err := LoadFile(filepath.Join("testdata", "negative.yaml"))
	require.NoError(t, err)
	tr := table.Transitions()
	require.Len(t, tr, 1)
	assert.Equal(t, int64(86399), table.SecondsInDay(tr[0].Day))
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		file    string
		wantMsg string
	}{
		{"unordered.yaml", "is not after"},
		{"jump.yaml", "offset changes by 2"},
		{"bad_date.yaml", "validate"},
		{"unknown_field.cue", "validate"},
		{"table.txt", "unsupported extension"},
		{"missing.yaml", "read leap second table"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadFile(filepath.Join("testdata", tt.file))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseYAML_MissingName(t *testing.T) {
	_, err := ParseYAML("inline.yaml", []byte("base_offset: 10\n"))
	require.Error(t, err)
}

func TestParseYAML_NoLeapSeconds(t *testing.T) {
	table, err := ParseYAML("inline.yaml", []byte("name: flat\nbase_offset: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, int64(0), table.TAIOffset(50000))
}

func TestParseCUE_SyntaxError(t *testing.T) {
	_, err := ParseCUE("inline.cue", []byte("name: {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile inline.cue")
}
