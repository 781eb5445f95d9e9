package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/dfmreport/internal/batch"
)

func copyFixture(t *testing.T, name, dst string) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtures, name))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, data, 0o600))
}

func TestBatch_RunReportResumeReset(t *testing.T) {
	root := t.TempDir()
	models := filepath.Join(root, "models")
	target := filepath.Join(models, "results")
	state := filepath.Join(root, "state")

	copyFixture(t, "machining.yaml", filepath.Join(models, "bracket.yaml"))
	copyFixture(t, "sheet_metal.yaml", filepath.Join(models, "parts", "enclosure.yaml"))
	broken := filepath.Join(models, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("parts: 3\n"), 0o600))

	common := []string{"-p", "sheet_metal", "-e", target, "--state-dir", state}

	out, err := execute(t, append([]string{"batch", "run", "--dir", models}, common...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)
	assert.Contains(t, out, "FAIL: "+broken+" (exit 101)")
	assert.Contains(t, out, "PASS: "+filepath.Join(models, "parts", "enclosure.yaml"))
	assert.FileExists(t, filepath.Join(target, "parts", "enclosure", "process_data.json"))
	assert.FileExists(t, filepath.Join(target, "parts", "enclosure", "enclosure_unfolded.yaml"))

	out, err = execute(t, "batch", "report", "--json", "--state-dir", state)
	require.NoError(t, err)
	var last batch.LastRun
	require.NoError(t, json.Unmarshal([]byte(out), &last))
	assert.Equal(t, "fail", last.Status)
	assert.Len(t, last.Jobs, 3, "exported results are not picked up as models")
	assert.Equal(t, []string{broken}, last.Failed)

	copyFixture(t, "machining.yaml", broken)
	out, err = execute(t, append([]string{"batch", "resume", "--dir", models}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS: "+broken)
	assert.NotContains(t, out, "enclosure.yaml")

	out, err = execute(t, "batch", "report", "--state-dir", state)
	require.NoError(t, err)
	assert.Contains(t, out, "# Last run: pass\n")

	_, err = execute(t, "batch", "reset", "--state-dir", state)
	require.NoError(t, err)
	assert.NoDirExists(t, state)

	out, err = execute(t, "batch", "report", "--json", "--state-dir", state)
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestBatch_RunFiles(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "bracket.yaml")
	copyFixture(t, "machining.yaml", src)

	out, err := execute(t, "batch", "run", src,
		"-p", "wall_thickness", "-e", filepath.Join(root, "out"), "--state-dir", filepath.Join(root, "state"))
	require.NoError(t, err)
	assert.Contains(t, out, "JOB: "+src)
	assert.Contains(t, out, "PASS: "+src)
}

func TestBatch_InvalidProcess(t *testing.T) {
	_, err := execute(t, "batch", "run", "-p", "casting", "-e", t.TempDir(), "--state-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "casting")
}

func TestBatch_RunParallel(t *testing.T) {
	root := t.TempDir()
	models := filepath.Join(root, "models")
	for _, name := range []string{"a.yaml", "b.yaml", "c.yaml"} {
		copyFixture(t, "sheet_metal.yaml", filepath.Join(models, name))
	}

	out, err := execute(t, "batch", "run", "--dir", models, "-j", "3",
		"-p", "sheet_metal", "-e", filepath.Join(root, "out"), "--state-dir", filepath.Join(root, "state"))
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c"} {
		assert.Contains(t, out, "PASS: "+filepath.Join(models, name+".yaml"))
		assert.FileExists(t, filepath.Join(root, "out", name, "process_data.json"))
	}
}

func TestBatch_Watch(t *testing.T) {
	root := t.TempDir()
	models := filepath.Join(root, "models")
	require.NoError(t, os.MkdirAll(models, 0o755))
	target := filepath.Join(models, "results")

	cfgPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\nbatch:\n  watch_debounce: 20ms\n"), 0o600))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "batch", "watch", "--dir", models,
		"-p", "wall_thickness", "-e", target, "--state-dir", filepath.Join(root, "state")})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	time.Sleep(200 * time.Millisecond)
	copyFixture(t, "machining.yaml", filepath.Join(models, "bracket.yaml"))

	report := filepath.Join(target, "bracket", "process_data.json")
	assert.Eventually(t, func() bool {
		_, err := os.Stat(report)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, out.String(), "Watching "+models)
	assert.Contains(t, out.String(), "PASS: "+filepath.Join(models, "bracket.yaml"))
}
