package refextract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depmap/pkg/lang"
	"github.com/Sumatoshi-tech/depmap/pkg/refextract"
)

func raws(refs []refextract.Reference) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Raw)
	}

	return out
}

func TestPython(t *testing.T) {
	t.Parallel()

	src := `import os, sys as system
from collections import OrderedDict, defaultdict as dd
from . import utils
from .. import core
from .models import User
from pkg import *
from . import *
# import hidden
"""
import docstring
"""
from typing import (
    List,
    Dict,
)
import a.b.c; import d
x = "import notreal"
`

	got := raws(refextract.Python(src))

	assert.Equal(t, []string{
		"os", "sys",
		"collections.OrderedDict", "collections.defaultdict",
		".utils", "..core", ".models.User",
		"pkg", ".",
		"typing.List", "typing.Dict",
		"a.b.c", "d",
	}, got)
}

func TestPython_BackslashContinuation(t *testing.T) {
	t.Parallel()

	src := "from pkg.sub import alpha, \\\n    beta\n"

	assert.Equal(t, []string{"pkg.sub.alpha", "pkg.sub.beta"}, raws(refextract.Python(src)))
}

func TestJavaScript(t *testing.T) {
	t.Parallel()

	src := "import React from 'react';\n" +
		"import { a, b } from \"./utils\";\n" +
		"import * as ns from '../lib/ns';\n" +
		"import type { T } from './types';\n" +
		"import './side-effect.css';\n" +
		"export { x } from './reexport';\n" +
		"export * from './all';\n" +
		"const fs = require('fs');\n" +
		"const lazy = import('./lazy');\n" +
		"// import hidden from './hidden';\n" +
		"const s = \"import fake from './fake'\";\n" +
		"const t = `require('./tmpl')`;\n"

	assert.Equal(t, []string{
		"react", "./utils", "../lib/ns", "./types", "./side-effect.css",
		"./reexport", "./all",
		"fs",
		"./lazy",
	}, raws(refextract.JavaScript(src)))
}

func TestJavaScript_GroupsByKind(t *testing.T) {
	t.Parallel()

	src := "const a = require('./a');\nimport b from './b';\n"

	assert.Equal(t, []string{"./b", "./a"}, raws(refextract.JavaScript(src)))
}

func TestCInclude(t *testing.T) {
	t.Parallel()

	src := `#include <stdio.h>
#include "utils/helper.h"
  #  import <Foundation/Foundation.h>
// #include "hidden.h"
/* #include "hidden2.h" */
`

	got := refextract.CInclude(src)

	assert.Equal(t, []refextract.Reference{
		{Raw: "stdio.h", Form: refextract.FormAngle},
		{Raw: "utils/helper.h", Form: refextract.FormPlain},
		{Raw: "Foundation/Foundation.h", Form: refextract.FormAngle},
	}, got)
}

func TestRust(t *testing.T) {
	t.Parallel()

	src := `use std::collections::HashMap;
use crate::utils::{helper, Config as Cfg};
pub(crate) use super::parent::*;
mod config;
mod tests {
}
extern crate serde;
// use hidden::thing;
let s = "
use fake::path;
";
`

	got := refextract.Rust(src)

	assert.Equal(t, []refextract.Reference{
		{Raw: "std::collections::HashMap"},
		{Raw: "crate::utils::helper"},
		{Raw: "crate::utils::Config"},
		{Raw: "super::parent"},
		{Raw: "config", Form: refextract.FormModule},
		{Raw: "serde"},
	}, got)
}

func TestRust_NestedGroupCollapsesToPrefix(t *testing.T) {
	t.Parallel()

	src := "use a::{b::{c, d}, e, self};\n"

	assert.Equal(t, []string{"a", "a::e"}, raws(refextract.Rust(src)))
}

func TestGo(t *testing.T) {
	t.Parallel()

	src := `package main

import "fmt"

import (
	"os"
	str "strings"
	_ "embed"
	. "math"
	// "commented/out"
	"github.com/x/y"
)
`

	assert.Equal(t, []string{"fmt", "os", "strings", "embed", "math", "github.com/x/y"},
		raws(refextract.Go(src)))
}

func TestJVM(t *testing.T) {
	t.Parallel()

	src := `package com.example;
import java.util.List;
import java.util.*;
import static org.junit.Assert.assertEquals;
import kotlinx.coroutines.launch as go
import scala.collection.mutable._
import akka.actor.{Actor, Props}
// import hidden.Thing;
`

	assert.Equal(t, []string{
		"java.util.List",
		"java.util",
		"org.junit.Assert.assertEquals",
		"kotlinx.coroutines.launch",
		"scala.collection.mutable",
		"akka.actor",
	}, raws(refextract.JVM(src)))
}

func TestCSharp(t *testing.T) {
	t.Parallel()

	src := `using System;
using System.Collections.Generic;
global using Newtonsoft.Json;
using static System.Math;
using Json = System.Text.Json;
using (var r = new Reader()) {}
`

	assert.Equal(t, []string{
		"System",
		"System.Collections.Generic",
		"Newtonsoft.Json",
		"System.Math",
		"System.Text.Json",
	}, raws(refextract.CSharp(src)))
}

func TestSwift(t *testing.T) {
	t.Parallel()

	src := `import Foundation
@testable import MyApp
import struct Darwin.C.stat
@_exported import UIKit
// import Hidden
`

	assert.Equal(t, []string{"Foundation", "MyApp", "Darwin.C.stat", "UIKit"}, raws(refextract.Swift(src)))
}

func TestAsset_HTML(t *testing.T) {
	t.Parallel()

	src := `<!DOCTYPE html>
<html>
<head>
  <link rel="stylesheet" href="styles/main.css?v=2">
  <link rel="stylesheet" href="https://cdn.example.com/x.css">
  <link rel="icon" href="//example.org/favicon.ico">
  <!-- <script src="old.js"></script> -->
  <style>@import url("styles/components.css");</style>
</head>
<body>
  <a href="#top">Top</a>
  <a href="mailto:me@example.com">Mail</a>
  <img src="data:image/png;base64,AAAA">
  <img src="{{ logo }}">
  <script src="js/utils.js"></script>
  <script src='js/app.js#main'></script>
</body>
</html>
`

	assert.Equal(t, []string{"styles/main.css", "styles/components.css", "js/utils.js", "js/app.js"},
		raws(refextract.Asset(src)))
}

func TestAsset_CSS(t *testing.T) {
	t.Parallel()

	src := `@import "base.css";
@import 'theme.css';
/* @import "hidden.css"; */
.hero { background: url(../img/hero.png); }
.icon { background: url('https://example.com/i.png'); }
`

	assert.Equal(t, []string{"base.css", "theme.css", "../img/hero.png"}, raws(refextract.Asset(src)))
}

func TestSQL(t *testing.T) {
	t.Parallel()

	src := `\i schema/tables.sql
\ir 'views.sql'
@@setup/grants.sql
@ other.sql;
source data/seed.sql;
:r "procs/proc.sql"
-- \i hidden.sql
EXEC sp_executesql 'run/me.sql';
SELECT '@not_a_script';
`

	assert.Equal(t, []string{
		"schema/tables.sql",
		"views.sql",
		"setup/grants.sql",
		"other.sql",
		"data/seed.sql",
		"procs/proc.sql",
		"run/me.sql",
	}, raws(refextract.SQL(src)))
}

func TestRuby(t *testing.T) {
	t.Parallel()

	src := `require 'json'
require "net/http"
require_relative 'lib/helper'
require_relative '../shared/util'
load 'tasks/setup.rb'
# require 'hidden'
YAML.load 'config.yml'
`

	assert.Equal(t, []string{"json", "net/http", "./lib/helper", "../shared/util", "tasks/setup.rb"},
		raws(refextract.Ruby(src)))
}

func TestExtract_Dispatch(t *testing.T) {
	t.Parallel()

	assert.Nil(t, refextract.For(lang.FamilyNone))
	assert.Empty(t, refextract.Extract(lang.FamilyNone, "import os"))

	refs := refextract.Extract(lang.FamilyPython, "import os\n")
	require.Len(t, refs, 1)
	assert.Equal(t, "os", refs[0].Raw)
}
