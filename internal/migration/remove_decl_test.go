package migration

import (
	"strings"
	"testing"
)

func TestRemoveDeclarationInterface(t *testing.T) {
	content := `export interface User {
  id: string;
  name: string;
}

export interface Account {
  owner: User;
}
`
	got, removed := RemoveDeclaration(content, "User", false)
	if !removed {
		t.Fatal("expected User to be removed")
	}
	if strings.Contains(got, "interface User") {
		t.Errorf("User declaration still present:\n%s", got)
	}
	if !strings.Contains(got, "interface Account") {
		t.Errorf("unrelated declaration was damaged:\n%s", got)
	}
}

func TestRemoveDeclarationTypeAlias(t *testing.T) {
	content := `export type ID = string;
export type Pair = { left: ID; right: ID };
const keep = 1;
`
	got, removed := RemoveDeclaration(content, "Pair", false)
	if !removed {
		t.Fatal("expected Pair to be removed")
	}
	if strings.Contains(got, "Pair") {
		t.Errorf("Pair still present:\n%s", got)
	}
	if !strings.Contains(got, "type ID = string;") || !strings.Contains(got, "const keep = 1;") {
		t.Errorf("surrounding code was damaged:\n%s", got)
	}
}

func TestRemoveDeclarationFunction(t *testing.T) {
	content := `export function formatDate(d: Date): string {
  if (!d) {
    return '';
  }
  return d.toISOString();
}

export function keepMe(): void {}
`
	got, removed := RemoveDeclaration(content, "formatDate", false)
	if !removed {
		t.Fatal("expected formatDate to be removed")
	}
	if strings.Contains(got, "formatDate") {
		t.Errorf("formatDate still present:\n%s", got)
	}
	if !strings.Contains(got, "keepMe") {
		t.Errorf("keepMe was damaged:\n%s", got)
	}
}

func TestRemoveDeclarationArrowFunctionConst(t *testing.T) {
	content := `export const formatDate = (d: Date) => d.toISOString();
export const keep = 1;
`
	got, removed := RemoveDeclaration(content, "formatDate", false)
	if !removed {
		t.Fatal("expected formatDate to be removed")
	}
	if strings.Contains(got, "=>") || strings.Contains(got, "toISOString") {
		t.Errorf("arrow body left dangling after removal:\n%s", got)
	}
	if !strings.Contains(got, "const keep = 1;") {
		t.Errorf("following statement was damaged:\n%s", got)
	}
}

func TestRemoveDeclarationArrowFunctionBlockBody(t *testing.T) {
	content := `export const handler = (e: Event) => {
  dispatch(e);
};
const keep = 1;
`
	got, removed := RemoveDeclaration(content, "handler", false)
	if !removed {
		t.Fatal("expected handler to be removed")
	}
	if strings.Contains(got, "dispatch") {
		t.Errorf("arrow block body left behind:\n%s", got)
	}
	if !strings.Contains(got, "const keep = 1;") {
		t.Errorf("following statement was damaged:\n%s", got)
	}
}

func TestRemoveDeclarationMultilineUnion(t *testing.T) {
	content := `export type Status = 'active' |
  'inactive';
const keep = 1;
`
	got, removed := RemoveDeclaration(content, "Status", false)
	if !removed {
		t.Fatal("expected Status to be removed")
	}
	if strings.Contains(got, "'inactive'") {
		t.Errorf("union tail left behind:\n%s", got)
	}
	if !strings.Contains(got, "const keep = 1;") {
		t.Errorf("following statement was damaged:\n%s", got)
	}
}

func TestRemoveDeclarationLeadingPipeUnion(t *testing.T) {
	content := `export type Mode =
  | 'light'
  | 'dark';
const keep = 1;
`
	got, removed := RemoveDeclaration(content, "Mode", false)
	if !removed {
		t.Fatal("expected Mode to be removed")
	}
	if strings.Contains(got, "'dark'") {
		t.Errorf("union members left behind:\n%s", got)
	}
	if !strings.Contains(got, "const keep = 1;") {
		t.Errorf("following statement was damaged:\n%s", got)
	}
}

func TestRemoveDeclarationDropsJSDoc(t *testing.T) {
	content := `/**
 * A duplicated shape.
 */
export interface Shape {
  kind: string;
}
`
	got, removed := RemoveDeclaration(content, "Shape", false)
	if !removed {
		t.Fatal("expected Shape to be removed")
	}
	if strings.Contains(got, "duplicated shape") {
		t.Errorf("doc comment should be removed with the declaration:\n%s", got)
	}
}

func TestRemoveDeclarationKeepsJSDoc(t *testing.T) {
	content := `/**
 * A duplicated shape.
 */
export interface Shape {
  kind: string;
}
`
	got, removed := RemoveDeclaration(content, "Shape", true)
	if !removed {
		t.Fatal("expected Shape to be removed")
	}
	if !strings.Contains(got, "duplicated shape") {
		t.Errorf("doc comment should survive with keepJSDoc:\n%s", got)
	}
	if strings.Contains(got, "interface Shape") {
		t.Errorf("declaration body should be gone:\n%s", got)
	}
}

func TestRemoveDeclarationExactNameOnly(t *testing.T) {
	content := `export interface User {
  id: string;
}
export interface UserProfile {
  user: User;
}
`
	got, removed := RemoveDeclaration(content, "User", false)
	if !removed {
		t.Fatal("expected User to be removed")
	}
	if !strings.Contains(got, "interface UserProfile") {
		t.Errorf("prefix-named declaration must survive:\n%s", got)
	}
}

func TestRemoveDeclarationMissing(t *testing.T) {
	content := `export const x = 1;`
	got, removed := RemoveDeclaration(content, "Missing", false)
	if removed {
		t.Error("expected no removal for an absent name")
	}
	if got != content {
		t.Error("content must be unchanged when nothing is removed")
	}
}

func TestRemoveDeclarationRegexMetacharName(t *testing.T) {
	// A hostile name must never become a regex operator
	content := `export const x = 1;`
	if _, removed := RemoveDeclaration(content, "x.*", false); removed {
		t.Error("metacharacter name must be treated literally")
	}
}

func TestRemoveDeclarationEnum(t *testing.T) {
	content := `export enum Color {
  Red,
  Green,
}
export const after = true;
`
	got, removed := RemoveDeclaration(content, "Color", false)
	if !removed {
		t.Fatal("expected Color to be removed")
	}
	if strings.Contains(got, "enum Color") {
		t.Errorf("enum still present:\n%s", got)
	}
	if !strings.Contains(got, "const after = true;") {
		t.Errorf("trailing code was damaged:\n%s", got)
	}
}
