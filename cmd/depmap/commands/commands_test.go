package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/depmap/internal/observability"
	"github.com/Sumatoshi-tech/depmap/pkg/fileset"
	"github.com/Sumatoshi-tech/depmap/pkg/report"
)

var errNoRepo = errors.New("not a repository")

func noRepo(string) (string, error) { return "", errNoRepo }

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}

	return root
}

func sampleTree(t *testing.T) string {
	t.Helper()

	return writeTree(t, map[string]string{
		"app/main.py":  "from . import utils\nimport os\nimport requests\n",
		"app/utils.py": "import json\n",
		"web/index.js": "import x from './lib';\n",
		"web/lib.js":   "module.exports = {};\n",
	})
}

// stubInit returns an init func recording spans into an in-memory exporter.
func stubInit(t *testing.T, captured *observability.Config) (observabilityInit, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() { require.NoError(t, tp.Shutdown(context.Background())) })

	return func(cfg observability.Config) (observability.Providers, error) {
		if captured != nil {
			*captured = cfg
		}

		return observability.Providers{
			Tracer:   tp.Tracer("depmap"),
			Shutdown: func(_ context.Context) error { return nil },
		}, nil
	}, exporter
}

// withVanished lists the tree and adds a file that disappears before it is read.
func withVanished(name string) fileLister {
	return func(ctx context.Context, root string, opts fileset.Options) ([]string, error) {
		files, err := fileset.List(ctx, root, opts)
		if err != nil {
			return nil, err
		}

		return append(files, name), nil
	}
}

func spanNames(exporter *tracetest.InMemoryExporter) []string {
	var names []string
	for _, s := range exporter.GetSpans() {
		names = append(names, s.Name)
	}

	return names
}

func TestScanCommand_WritesArtifacts(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	out := t.TempDir()
	initFn, exporter := stubInit(t, nil)

	var stdout bytes.Buffer

	cmd := newScanCommandWithDeps(&GlobalOptions{}, initFn, noRepo, fileset.List)
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{root, "-o", out, "--no-color"})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(out, "dependencies.json"))
	require.NoError(t, err)
	require.NoError(t, report.Check(data))
	assert.Contains(t, string(data), `"source": "app/main.py"`)
	assert.Contains(t, string(data), `"requests"`)

	md, err := os.ReadFile(filepath.Join(out, "dependencies.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Dependency Graph")

	assert.NoFileExists(t, filepath.Join(out, "dependencies.yaml"))
	assert.Contains(t, stdout.String(), "dependencies.json")
	assert.Contains(t, spanNames(exporter), "depmap.scan")
	assert.Contains(t, spanNames(exporter), "depmap.graph.build")
}

func TestScanCommand_ExtraFormats(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	out := t.TempDir()
	initFn, _ := stubInit(t, nil)

	cmd := newScanCommandWithDeps(&GlobalOptions{Quiet: true}, initFn, noRepo, fileset.List)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{root, "-o", out, "--format", "yaml,html"})

	require.NoError(t, cmd.Execute())

	for _, name := range []string{"dependencies.json", "dependencies.md", "dependencies.yaml", "dependencies.html"} {
		assert.FileExists(t, filepath.Join(out, name))
	}
}

func TestScanCommand_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	out := filepath.Join(t.TempDir(), "never")
	initFn, _ := stubInit(t, nil)

	var stdout bytes.Buffer

	cmd := newScanCommandWithDeps(&GlobalOptions{}, initFn, noRepo, fileset.List)
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{root, "-o", out, "--dry-run"})

	require.NoError(t, cmd.Execute())

	assert.NoDirExists(t, out)
	assert.Contains(t, stdout.String(), "[DRY RUN] Would write dependencies.json")
	assert.Contains(t, stdout.String(), "Nodes: 4, Edges: 2")
}

func TestScanCommand_ReadErrorWritesArtifactsAndFails(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	out := t.TempDir()
	initFn, _ := stubInit(t, nil)

	var stdout bytes.Buffer

	cmd := newScanCommandWithDeps(&GlobalOptions{Quiet: true}, initFn, noRepo, withVanished("app/vanished.py"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{root, "-o", out, "--no-color"})

	err := cmd.Execute()
	require.ErrorIs(t, err, ErrScanFailed)
	assert.Contains(t, err.Error(), "with 1 error(s)")

	data, readErr := os.ReadFile(filepath.Join(out, "dependencies.json"))
	require.NoError(t, readErr)
	require.NoError(t, report.Check(data))
	assert.Contains(t, string(data), `"path": "app/vanished.py"`)

	md, readErr := os.ReadFile(filepath.Join(out, "dependencies.md"))
	require.NoError(t, readErr)
	assert.Contains(t, string(md), "## Errors")
	assert.Contains(t, string(md), "- Error scanning app/vanished.py: ")

	assert.Contains(t, stdout.String(), "1 error(s) occurred during dependency analysis")
}

func TestScanCommand_UnreadableFileFails(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}

	root := sampleTree(t)
	locked := filepath.Join(root, "app", "locked.py")
	require.NoError(t, os.WriteFile(locked, []byte("import os\n"), 0o600))
	require.NoError(t, os.Chmod(locked, 0o000))

	out := t.TempDir()
	initFn, _ := stubInit(t, nil)

	cmd := newScanCommandWithDeps(&GlobalOptions{Quiet: true}, initFn, noRepo, fileset.List)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{root, "-o", out})

	require.ErrorIs(t, cmd.Execute(), ErrScanFailed)
	assert.FileExists(t, filepath.Join(out, "dependencies.json"))

	md, err := os.ReadFile(filepath.Join(out, "dependencies.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "- Error scanning app/locked.py: permission denied")
}

func TestScanCommand_UnknownFormat(t *testing.T) {
	t.Parallel()

	initFn, _ := stubInit(t, nil)

	cmd := newScanCommandWithDeps(&GlobalOptions{}, initFn, noRepo, fileset.List)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir(), "--format", "xml"})

	require.ErrorIs(t, cmd.Execute(), report.ErrUnknownFormat)
}

func TestScanCommand_VerboseSelectsDebugLogging(t *testing.T) {
	t.Parallel()

	var captured observability.Config

	initFn, _ := stubInit(t, &captured)

	cmd := newScanCommandWithDeps(&GlobalOptions{Verbose: true}, initFn, noRepo, fileset.List)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{sampleTree(t), "-o", t.TempDir(), "--dry-run"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, slog.LevelDebug, captured.LogLevel)
	assert.Equal(t, observability.ModeScan, captured.Mode)
}

func TestCheckCommand_DetectsDrift(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	out := t.TempDir()
	initFn, _ := stubInit(t, nil)

	scan := newScanCommandWithDeps(&GlobalOptions{Quiet: true}, initFn, noRepo, fileset.List)
	scan.SetOut(&bytes.Buffer{})
	scan.SetErr(&bytes.Buffer{})
	scan.SetArgs([]string{root, "-o", out})
	require.NoError(t, scan.Execute())

	against := filepath.Join(out, "dependencies.json")

	var clean bytes.Buffer

	check := newCheckCommandWithDeps(&GlobalOptions{}, initFn, noRepo, fileset.List)
	check.SetOut(&clean)
	check.SetErr(&bytes.Buffer{})
	check.SetArgs([]string{root, "--against", against})
	require.NoError(t, check.Execute())
	assert.Contains(t, clean.String(), "is up to date")

	require.NoError(t, os.WriteFile(filepath.Join(root, "app", "extra.py"), []byte("import utils\n"), 0o600))

	var drift bytes.Buffer

	check = newCheckCommandWithDeps(&GlobalOptions{}, initFn, noRepo, fileset.List)
	check.SetOut(&drift)
	check.SetErr(&bytes.Buffer{})
	check.SetArgs([]string{root, "--against", against, "--no-color"})

	err := check.Execute()
	require.ErrorIs(t, err, ErrGraphDrift)
	assert.Contains(t, drift.String(), `"path": "app/extra.py"`)
	assert.Contains(t, drift.String(), "is out of date")
}

func TestCheckCommand_MatchingGraphWithReadErrorsFails(t *testing.T) {
	t.Parallel()

	root := sampleTree(t)
	out := t.TempDir()
	initFn, _ := stubInit(t, nil)
	lister := withVanished("app/vanished.py")

	scan := newScanCommandWithDeps(&GlobalOptions{Quiet: true}, initFn, noRepo, lister)
	scan.SetOut(&bytes.Buffer{})
	scan.SetErr(&bytes.Buffer{})
	scan.SetArgs([]string{root, "-o", out})
	require.ErrorIs(t, scan.Execute(), ErrScanFailed)

	var stdout bytes.Buffer

	check := newCheckCommandWithDeps(&GlobalOptions{}, initFn, noRepo, lister)
	check.SetOut(&stdout)
	check.SetErr(&bytes.Buffer{})
	check.SetArgs([]string{root, "--against", filepath.Join(out, "dependencies.json")})

	err := check.Execute()
	require.ErrorIs(t, err, ErrScanFailed)
	require.NotErrorIs(t, err, ErrGraphDrift)
	assert.Contains(t, stdout.String(), "is up to date")
}

func TestCheckCommand_MissingBaseline(t *testing.T) {
	t.Parallel()

	initFn, _ := stubInit(t, nil)

	cmd := newCheckCommandWithDeps(&GlobalOptions{}, initFn, noRepo, fileset.List)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir(), "--against", filepath.Join(t.TempDir(), "missing.json")})

	require.ErrorIs(t, cmd.Execute(), os.ErrNotExist)
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.json")
	invalid := filepath.Join(dir, "invalid.json")

	require.NoError(t, os.WriteFile(valid,
		[]byte(`{"nodes":[],"edges":[],"external_dependencies_summary":{"stdlib":[],"third-party":[],"stdlib_count":0,"third-party_count":0}}`),
		0o600))
	require.NoError(t, os.WriteFile(invalid, []byte(`{"nodes":1}`), 0o600))

	var stdout bytes.Buffer

	cmd := NewValidateCommand(&GlobalOptions{})
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{valid})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "is a valid dependency graph")

	cmd = NewValidateCommand(&GlobalOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{invalid})
	require.ErrorIs(t, cmd.Execute(), ErrInvalidGraph)
}

func TestLanguagesCommand(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer

	cmd := NewLanguagesCommand(&GlobalOptions{})
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Python")
	assert.Contains(t, stdout.String(), ".rs")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer

	cmd := NewVersionCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "depmap dev")
}

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.DiscardHandler)

	root, err := resolveRoot([]string{"/tmp/explicit"}, noRepo, logger)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit", root)

	root, err = resolveRoot(nil, func(string) (string, error) { return "/repo", nil }, logger)
	require.NoError(t, err)
	assert.Equal(t, "/repo", root)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	root, err = resolveRoot(nil, noRepo, logger)
	require.NoError(t, err)
	assert.Equal(t, cwd, root)
}

func TestOutputExclusion(t *testing.T) {
	t.Parallel()

	excluded, ok := outputExclusion("/repo", "/repo/build/deps")
	assert.True(t, ok)
	assert.Equal(t, "/build/deps", excluded)

	_, ok = outputExclusion("/repo", "/elsewhere")
	assert.False(t, ok)

	_, ok = outputExclusion("/repo", "/repo")
	assert.False(t, ok)
}
