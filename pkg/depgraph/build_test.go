package depgraph_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depmap/pkg/depgraph"
	"github.com/Sumatoshi-tech/depmap/pkg/lang"
)

type fixture map[string]string

func (f fixture) write(t *testing.T) (string, []string) {
	t.Helper()

	root := t.TempDir()
	files := make([]string, 0, len(f))

	for rel, content := range f {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))

		files = append(files, rel)
	}

	slices.Sort(files)

	return root, files
}

func build(t *testing.T, root string, files []string, opts depgraph.Options) *depgraph.Graph {
	t.Helper()

	if opts.Registry == nil {
		opts.Registry = lang.NewRegistry()
	}

	graph, err := depgraph.Build(context.Background(), root, files, opts)
	require.NoError(t, err)

	return graph
}

func node(t *testing.T, g *depgraph.Graph, path string) depgraph.Node {
	t.Helper()

	for _, n := range g.Nodes {
		if n.Path == path {
			return n
		}
	}

	require.Failf(t, "node not found", "%s", path)

	return depgraph.Node{}
}

func TestBuild_PythonRelativeAndStdlib(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"pkg/main.py":  "from . import utils\nimport os\n",
		"pkg/utils.py": "def helper():\n    pass\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{})

	assert.Equal(t, []depgraph.Edge{{Source: "pkg/main.py", Target: "pkg/utils.py"}}, g.Edges)
	assert.Equal(t, []string{"os"}, g.Summary.Stdlib)
	assert.Empty(t, g.Summary.ThirdParty)
	assert.Equal(t, []string{"os"}, node(t, g, "pkg/main.py").Stdlib)
	assert.NotContains(t, g.Summary.ThirdParty, "utils")
	assert.False(t, g.Failed())
}

func TestBuild_JavaScriptMissingRelativeIsDropped(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"src/app.js": "import React from 'react';\nimport x from './missing';\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{})

	assert.Empty(t, g.Edges)
	assert.Equal(t, []string{"react"}, g.Summary.ThirdParty)
	assert.Empty(t, g.Summary.Stdlib)
	assert.Equal(t, 1, g.Stats.References.Discarded)
}

func TestBuild_MissingQuotedIncludeIsThirdParty(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"src/main.c": "#include \"missing.h\"\n#include <stdio.h>\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{})

	assert.Empty(t, g.Edges)
	assert.Equal(t, []string{"missing.h"}, g.Summary.ThirdParty)
	assert.Equal(t, []string{"stdio.h"}, g.Summary.Stdlib)
}

func TestBuild_AngleIncludeNextToSource(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"src/a/main.c":   "#include <helper.h>\n#include <stdlib.h>\n",
		"src/a/helper.h": "int helper(void);\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{})

	assert.Equal(t, []depgraph.Edge{{Source: "src/a/main.c", Target: "src/a/helper.h"}}, g.Edges)
	assert.Empty(t, g.Summary.ThirdParty)
	assert.Equal(t, []string{"stdlib.h"}, g.Summary.Stdlib)
}

func TestBuild_CycleKeepsBothEdges(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"a.py": "import b\n",
		"b.py": "import a\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{})

	assert.Equal(t, []depgraph.Edge{
		{Source: "a.py", Target: "b.py"},
		{Source: "b.py", Target: "a.py"},
	}, g.Edges)
	assert.Equal(t, [][]string{{"a.py", "b.py"}}, g.Cycles())
}

func TestBuild_DeduplicatesEdges(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"main.py":  "import util\nfrom util import a, b\nimport util as u\n",
		"util.py":  "a = b = 1\n",
		"self.py":  "import self\n",
		"other.js": "const x = require('./main.py');\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{})

	assert.Equal(t, []depgraph.Edge{
		{Source: "main.py", Target: "util.py"},
		{Source: "other.js", Target: "main.py"},
	}, g.Edges)
	assert.Equal(t, 5, g.Stats.References.Edges)
}

func TestBuild_ClosureAndNodesForEveryFile(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"README.md":    "# readme\n",
		"lib/a.ts":     "import { b } from './b';\nimport fs from 'node:fs';\n",
		"lib/b.ts":     "export const b = 1;\n",
		"outside.js":   "import c from './generated';\n",
		"generated.js": "module.exports = 1;\n",
	}.write(t)

	// generated.js exists on disk but is not part of the scanned set.
	scanned := slices.DeleteFunc(slices.Clone(files), func(f string) bool { return f == "generated.js" })

	g := build(t, root, scanned, depgraph.Options{})

	paths := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		paths[n.Path] = true
	}

	assert.Len(t, g.Nodes, len(scanned))

	for _, e := range g.Edges {
		assert.True(t, paths[e.Source])
		assert.True(t, paths[e.Target])
	}

	assert.Equal(t, []depgraph.Edge{{Source: "lib/a.ts", Target: "lib/b.ts"}}, g.Edges)
	assert.Equal(t, []string{"node:fs"}, g.Summary.Stdlib)
	assert.Empty(t, node(t, g, "README.md").Stdlib)
}

func TestBuild_HTMLFixture(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"index.html": `<html><head>
<link rel="stylesheet" href="styles/main.css">
<link rel="stylesheet" href="styles/components.css">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/x.css">
</head><body>
<script src="js/utils.js"></script>
<script src="js/app.js"></script>
</body></html>
`,
		"styles/main.css":       "body { margin: 0; }\n",
		"styles/components.css": ".btn { color: red; }\n",
		"js/utils.js":           "export const u = 1;\n",
		"js/app.js":             "import { u } from './utils.js';\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{})

	assert.Equal(t, []depgraph.Edge{
		{Source: "index.html", Target: "js/app.js"},
		{Source: "index.html", Target: "js/utils.js"},
		{Source: "index.html", Target: "styles/components.css"},
		{Source: "index.html", Target: "styles/main.css"},
		{Source: "js/app.js", Target: "js/utils.js"},
	}, g.Edges)
	assert.Empty(t, g.Summary.ThirdParty)
}

func TestBuild_ReadErrorRecordsEmptyNode(t *testing.T) {
	t.Parallel()

	root, files := fixture{"ok.py": "import json\n"}.write(t)
	files = append(files, "vanished.py")

	g := build(t, root, files, depgraph.Options{})

	require.Len(t, g.Errors, 1)
	assert.Equal(t, "vanished.py", g.Errors[0].File)
	assert.NotEmpty(t, g.Errors[0].Message)
	assert.True(t, g.Failed())

	n := node(t, g, "vanished.py")
	assert.Empty(t, n.Stdlib)
	assert.Empty(t, n.ThirdParty)
	assert.Equal(t, []string{"json"}, g.Summary.Stdlib)
}

func TestBuild_SkipsBinaryAndLargeFiles(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"blob.py":  "import os\x00\x00\x00binary",
		"large.py": "import requests\n# padding padding padding padding padding\n",
		"small.py": "import sys\n",
	}.write(t)

	g := build(t, root, files, depgraph.Options{MaxFileSize: 32})

	assert.Equal(t, []string{"sys"}, g.Summary.Stdlib)
	assert.Empty(t, g.Summary.ThirdParty)
	assert.Equal(t, 2, g.Stats.Skipped)
	assert.Len(t, g.Nodes, 3)
}

func TestBuild_DisabledLanguageProducesBareNode(t *testing.T) {
	t.Parallel()

	root, files := fixture{"main.py": "import os\n"}.write(t)

	reg := lang.NewRegistry()
	require.NoError(t, reg.Apply(lang.Settings{Disabled: []string{lang.Python}}))

	g := build(t, root, files, depgraph.Options{Registry: reg})

	require.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Summary.Stdlib)
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	root, files := fixture{
		"a.py":        "import b, c, os, requests\n",
		"b.py":        "import c\nimport json\n",
		"c.py":        "import a\n",
		"web/x.js":    "import y from './y';\nimport lodash from 'lodash';\n",
		"web/y.js":    "const fs = require('fs');\n",
		"src/lib.rs":  "mod util;\nuse serde::Serialize;\n",
		"src/util.rs": "use std::fmt;\n",
	}.write(t)

	first := build(t, root, files, depgraph.Options{Workers: 1})
	second := build(t, root, files, depgraph.Options{Workers: 8})

	first.Stats.Duration, second.Stats.Duration = 0, 0
	assert.Equal(t, first, second)
}

func TestBuild_Cancelled(t *testing.T) {
	t.Parallel()

	root, files := fixture{"a.py": "import os\n"}.write(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := depgraph.Build(ctx, root, files, depgraph.Options{Registry: lang.NewRegistry()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_RequiresRegistry(t *testing.T) {
	t.Parallel()

	_, err := depgraph.Build(context.Background(), t.TempDir(), nil, depgraph.Options{})
	require.ErrorIs(t, err, depgraph.ErrNoRegistry)
}
