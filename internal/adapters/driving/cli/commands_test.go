package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graphidx/internal/adapters/driven/config/file"
	"github.com/custodia-labs/graphidx/internal/core/domain"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"index", "init", "pipelines", "workflows", "storage", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestPipelinesCmd_ListsPipelines(t *testing.T) {
	out, err := execute(t, "pipelines")
	require.NoError(t, err)

	assert.Contains(t, out, "standard: load_input_documents, create_base_text_units, create_final_documents")
	assert.Contains(t, out, "text: load_input_documents, create_base_text_units, create_final_documents\n")
	assert.Less(t, strings.Index(out, "standard:"), strings.Index(out, "text:"))
}

func TestWorkflowsCmd_ListsRegistered(t *testing.T) {
	out, err := execute(t, "workflows")
	require.NoError(t, err)
	assert.Equal(t, "create_base_text_units\ncreate_final_documents\nload_input_documents\n", out)
}

func TestStorageCmd_ListsTypes(t *testing.T) {
	out, err := execute(t, "storage")
	require.NoError(t, err)
	assert.Equal(t, "file\nmemory\nsqlite\n", out)
}

func TestInitCmd_WritesDefaults(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "init", "--root", root)
	require.NoError(t, err)

	path := filepath.Join(root, "settings.toml")
	assert.Contains(t, out, "Wrote "+path)
	assert.DirExists(t, filepath.Join(root, "input"))

	cfg, err := file.Load(path)
	require.NoError(t, err)
	assert.Equal(t, file.Default(root).Chunks, cfg.Chunks)
	assert.Equal(t, filepath.Join(root, "output"), cfg.Output.BaseDir)
}

func TestInitCmd_YAML(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "init", "--root", root, "--format", "yaml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "settings.yaml"))
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("# keep\n"), 0600))

	_, err := execute(t, "init", "--root", root)
	require.Error(t, err)

	_, err = execute(t, "init", "--root", root, "--force")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "# keep\n", string(data))
}

func TestInitCmd_UnsupportedFormat(t *testing.T) {
	_, err := execute(t, "init", "--root", t.TempDir(), "--format", "ini")
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestInitThenIndex(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "init", "--root", root)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "input", "notes.txt"), []byte("hello world"), 0600))

	out, err := execute(t, "index", "--root", root, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "documents:  1")
}
