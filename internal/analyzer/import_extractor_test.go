package analyzer

import (
	"reflect"
	"testing"
)

func TestExtractImports(t *testing.T) {
	content := `
import React from 'react';
import { useState, useEffect } from 'react';
import * as path from './path-utils';
import type { User } from './models/user';
import Default, { helper as h } from '../shared/helpers';
import './side-effect';
export { formatDate } from './date';

const notAnImport = "import { fake } from './nope'";
`

	imports := ExtractImports(content)

	bySource := make(map[string][]string)
	typeOnly := make(map[string]bool)
	for _, imp := range imports {
		bySource[imp.Source] = append(bySource[imp.Source], imp.ImportedNames...)
		if imp.IsTypeOnly {
			typeOnly[imp.Source] = true
		}
	}

	if got := bySource["./path-utils"]; !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("namespace import names = %v, want [*]", got)
	}
	if got := bySource["./models/user"]; !reflect.DeepEqual(got, []string{"User"}) {
		t.Errorf("type import names = %v, want [User]", got)
	}
	if !typeOnly["./models/user"] {
		t.Error("expected ./models/user to be type-only")
	}
	if got := bySource["../shared/helpers"]; !reflect.DeepEqual(got, []string{"Default", "helper"}) {
		t.Errorf("mixed import names = %v, want [Default helper]", got)
	}
	if got := bySource["./date"]; !reflect.DeepEqual(got, []string{"formatDate"}) {
		t.Errorf("re-export names = %v, want [formatDate]", got)
	}
	if _, ok := bySource["./side-effect"]; !ok {
		t.Error("expected side-effect import to be extracted")
	}
	if _, ok := bySource["./nope"]; ok {
		t.Error("string literal inside code must not be extracted as an import")
	}
}

func TestExtractImportsMultiline(t *testing.T) {
	content := `import {
	alpha,
	beta,
	type Gamma,
} from './symbols';
`
	imports := ExtractImports(content)
	if len(imports) != 1 {
		t.Fatalf("extracted %d imports, want 1", len(imports))
	}
	want := []string{"alpha", "beta", "Gamma"}
	if !reflect.DeepEqual(imports[0].ImportedNames, want) {
		t.Errorf("names = %v, want %v", imports[0].ImportedNames, want)
	}
}

func TestImportsSymbolFrom(t *testing.T) {
	content := `
import { Widget } from './widgets';
import { Gadget as G } from '@/lib/gadgets';
`

	if !ImportsSymbolFrom(content, "Widget", "widgets") {
		t.Error("expected Widget import from widgets to be detected")
	}
	if !ImportsSymbolFrom(content, "Gadget", "gadgets") {
		t.Error("aliased import should match the module-side name")
	}
	if ImportsSymbolFrom(content, "Widget", "gadgets") {
		t.Error("symbol must be anchored to its own module basename")
	}
	if ImportsSymbolFrom(content, "Missing", "widgets") {
		t.Error("absent symbol must not match")
	}
}

func TestImportsSymbolFromNamespace(t *testing.T) {
	content := `import * as widgets from './widgets';`
	if !ImportsSymbolFrom(content, "Widget", "widgets") {
		t.Error("namespace import covers every symbol of the module")
	}
}
