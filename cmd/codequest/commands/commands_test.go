package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cqtesting "github.com/garunski/codequest/pkg/codequest/testing"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type cliEnv struct {
	dirs cqtesting.Dirs
	data string
}

func newCLIEnv(t *testing.T, images ...string) *cliEnv {
	t.Helper()
	return &cliEnv{
		dirs: cqtesting.NewDirs(t, images...),
		data: filepath.Join(t.TempDir(), "data"),
	}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

func (e *cliEnv) runContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(append([]string{
		"--manifests", e.dirs.Manifests,
		"--images", e.dirs.Images,
		"--data", e.data,
	}, args...))
	err := root.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(nil)

	err := root.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Usage:")
	assert.Contains(t, buf.String(), "codequest")
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	env := newCLIEnv(t)
	_, _, err := env.run(t, "--unknown-flag", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestAddCommand(t *testing.T) {
	env := newCLIEnv(t, "loop.png")

	out, _, err := env.run(t, "add", "3", "loop.png")
	require.NoError(t, err)
	assert.Contains(t, out, "Added loop.png to topic 3")
	assert.Equal(t, "loop.png\n", cqtesting.ReadManifest(t, env.dirs.Manifests, 3))

	out, _, err = env.run(t, "add", "3", "loop.png")
	require.NoError(t, err)
	assert.Contains(t, out, "loop.png is already listed in topic 3")
	assert.Equal(t, "loop.png\n", cqtesting.ReadManifest(t, env.dirs.Manifests, 3))
}

func TestAddCommand_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantTitle string
	}{
		{"missing image", []string{"add", "0", "ghost.png"}, "Image not found"},
		{"topic out of range", []string{"add", "12", "loop.png"}, "Invalid topic"},
		{"topic not a number", []string{"add", "first", "loop.png"}, "Invalid topic"},
		{"topic count flag", []string{"--topics", "2", "add", "2", "loop.png"}, "Invalid topic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t, "loop.png")
			_, errOut, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantTitle, err.Error())
			assert.Contains(t, errOut, tt.wantTitle)
			assert.NoFileExists(t, filepath.Join(env.dirs.Manifests, "text0.txt"))
		})
	}
}

func TestDeleteCommand(t *testing.T) {
	env := newCLIEnv(t, "a.png", "b.png", "c.png")
	cqtesting.WriteManifest(t, env.dirs.Manifests, 1, "a.png\nb.png\nc.png\nb.png\n")

	out, _, err := env.run(t, "delete", "1", "b.png")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed b.png from topic 1 (2 line(s))")
	assert.Equal(t, "a.png\nc.png\n", cqtesting.ReadManifest(t, env.dirs.Manifests, 1))

	_, errOut, err := env.run(t, "rm", "1", "b.png")
	require.Error(t, err)
	assert.Equal(t, "Image not listed", err.Error())
	assert.Contains(t, errOut, "codequest topics 1")
	assert.Equal(t, "a.png\nc.png\n", cqtesting.ReadManifest(t, env.dirs.Manifests, 1))
}

func TestTopicsCommand(t *testing.T) {
	env := newCLIEnv(t, "a.png", "b.png")
	cqtesting.WriteManifest(t, env.dirs.Manifests, 6, "a.png\nmissing.png\nb.png\n")

	out, _, err := env.run(t, "--topics", "8", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Topic 0 (0 images)")
	assert.Contains(t, out, "Topic 6 (2 images)\n  a.png\n  missing.png (unavailable)\n  b.png\n")
	assert.Contains(t, out, "Topic 7 (0 images)")
	assert.NotContains(t, out, "Topic 8")

	out, _, err = env.run(t, "topics", "6")
	require.NoError(t, err)
	assert.Equal(t, "Topic 6 (2 images)\n  a.png\n  missing.png (unavailable)\n  b.png\n", out)
}

func TestExistsCommand(t *testing.T) {
	env := newCLIEnv(t, "loop.png")

	out, _, err := env.run(t, "exists", "loop.png")
	require.NoError(t, err)
	assert.Contains(t, out, "loop.png exists")

	out, _, err = env.run(t, "exists", "ghost.png")
	require.NoError(t, err)
	assert.Contains(t, out, "ghost.png does not exist")
}

func TestConfigFile_FlagsOverride(t *testing.T) {
	env := newCLIEnv(t, "loop.png")
	cfgPath := filepath.Join(t.TempDir(), "codequest.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("topicCount: 2\nimageDir: /nowhere\n"), 0644))

	// --images from the test env wins over the file; topicCount comes from the file
	_, _, err := env.run(t, "--config", cfgPath, "add", "1", "loop.png")
	require.NoError(t, err)

	_, _, err = env.run(t, "--config", cfgPath, "add", "2", "loop.png")
	require.Error(t, err)
	assert.Equal(t, "Invalid topic", err.Error())
}

func TestConfigFile_Missing(t *testing.T) {
	env := newCLIEnv(t)
	_, errOut, err := env.run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "topics")
	require.Error(t, err)
	assert.Equal(t, "Invalid configuration", err.Error())
	assert.Contains(t, errOut, "nope.yaml")
}

func TestServeCommand_StopsWithContext(t *testing.T) {
	env := newCLIEnv(t, "loop.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := env.runContext(t, ctx, "serve", "--port", "0", "--no-watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Serving 12 topics")
}
