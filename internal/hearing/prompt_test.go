package hearing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptSourceDefaultsToBuiltIn(t *testing.T) {
	source := NewPromptSource()
	assert.Equal(t, SystemPrompt, source.Current())
}

func TestPromptSourceOverride(t *testing.T) {
	source := NewPromptSource()

	source.SetOverride("カスタムの指示です。")
	assert.Equal(t, "カスタムの指示です。", source.Current())

	source.Reset()
	assert.Equal(t, SystemPrompt, source.Current())
}

func TestPromptSourceWhitespaceOverrideClears(t *testing.T) {
	source := NewPromptSource()

	source.SetOverride("カスタム")
	source.SetOverride("   \n\t")
	assert.Equal(t, SystemPrompt, source.Current())
}

func TestPromptSourceLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("ファイルからの指示\n"), 0644))

	source := NewPromptSource()
	require.NoError(t, source.LoadFile(path))
	assert.Equal(t, "ファイルからの指示", source.Current())
}

func TestPromptSourceLoadFileMissing(t *testing.T) {
	source := NewPromptSource()
	err := source.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.Equal(t, SystemPrompt, source.Current())
}
