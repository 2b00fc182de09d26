package migration

import (
	"os"
	"strings"
	"testing"

	"tsshift/domain"
	"tsshift/internal/resolver"
	"tsshift/internal/testutil"
)

func newTestExecutor(t *testing.T, files map[string]string) (*Executor, string) {
	t.Helper()
	root := testutil.WriteProject(t, files)
	return NewExecutor(root, root, resolver.New(root)), root
}

func TestExecuteMove(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/user.ts": `import { base } from './base';
export const user = base;
`,
		"src/base.ts": `export const base = 1;`,
		"src/app.ts":  `import { user } from './user';`,
	})

	action := domain.MigrationAction{
		ID:              "a1",
		Type:            domain.ActionMove,
		Source:          "src/user.ts",
		Target:          "src/models/user.ts",
		Risk:            domain.RiskRisky,
		AffectedImports: []string{"src/app.ts"},
	}

	result := executor.ExecuteAction(action, nil, false, false)
	if !result.Success {
		t.Fatalf("move failed: %s", result.Message)
	}

	if testutil.FileExists(t, root, "src/user.ts") {
		t.Error("source must be gone after a move")
	}
	moved := testutil.ReadFile(t, root, "src/models/user.ts")
	if !strings.Contains(moved, `from '../base'`) {
		t.Errorf("moved file's own imports not adjusted:\n%s", moved)
	}

	importer := testutil.ReadFile(t, root, "src/app.ts")
	if !strings.Contains(importer, `from './models/user'`) {
		t.Errorf("importer not redirected:\n%s", importer)
	}
}

func TestExecuteMoveNeverOverwrites(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/user.ts":        `export const user = 1;`,
		"src/models/user.ts": `export const existing = true;`,
	})

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionMove,
		Source: "src/user.ts",
		Target: "src/models/user.ts",
	}

	result := executor.ExecuteAction(action, nil, false, false)
	if result.Success {
		t.Fatal("move onto an existing target must fail")
	}
	if !strings.Contains(result.Message, "Cannot overwrite") {
		t.Errorf("message = %q, want a Cannot overwrite failure", result.Message)
	}

	// Target must be byte-identical to before
	if got := testutil.ReadFile(t, root, "src/models/user.ts"); got != `export const existing = true;` {
		t.Errorf("target was modified: %q", got)
	}
	if !testutil.FileExists(t, root, "src/user.ts") {
		t.Error("source must survive a failed move")
	}
}

func TestExecuteMoveMissingSource(t *testing.T) {
	executor, _ := newTestExecutor(t, map[string]string{})

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionMove,
		Source: "src/ghost.ts",
		Target: "src/moved.ts",
	}

	result := executor.ExecuteAction(action, nil, false, false)
	if result.Success {
		t.Fatal("moving a missing source must fail")
	}
	if !strings.Contains(result.Message, "source does not exist") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestExecuteMoveDryRunTouchesNothing(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/user.ts": `export const user = 1;`,
		"src/app.ts":  `import { user } from './user';`,
	})

	action := domain.MigrationAction{
		ID:              "a1",
		Type:            domain.ActionMove,
		Source:          "src/user.ts",
		Target:          "src/models/user.ts",
		AffectedImports: []string{"src/app.ts"},
	}

	result := executor.ExecuteAction(action, nil, true, true)
	if !result.Success {
		t.Fatalf("dry run failed: %s", result.Message)
	}
	if !strings.HasPrefix(result.Message, "Would move") {
		t.Errorf("message = %q", result.Message)
	}

	if !testutil.FileExists(t, root, "src/user.ts") {
		t.Error("dry run moved the source")
	}
	if testutil.FileExists(t, root, "src/models/user.ts") {
		t.Error("dry run created the target")
	}
	if testutil.FileExists(t, root, "src/user.ts.bak") {
		t.Error("dry run wrote a backup")
	}
	if got := testutil.ReadFile(t, root, "src/app.ts"); got != `import { user } from './user';` {
		t.Errorf("dry run modified an importer: %q", got)
	}
}

func TestExecuteMoveTraversalRejected(t *testing.T) {
	executor, _ := newTestExecutor(t, map[string]string{
		"src/user.ts": `export const user = 1;`,
	})

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionMove,
		Source: "src/user.ts",
		Target: "../../etc/passwd",
	}

	result := executor.ExecuteAction(action, nil, false, false)
	if result.Success {
		t.Fatal("traversal target must fail before any filesystem call")
	}
	if !strings.Contains(result.Message, "escapes library root") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestExecuteMoveBackup(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/user.ts": `export const user = 1;`,
	})

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionMove,
		Source: "src/user.ts",
		Target: "src/models/user.ts",
	}

	result := executor.ExecuteAction(action, nil, false, true)
	if !result.Success {
		t.Fatalf("move failed: %s", result.Message)
	}
	if got := testutil.ReadFile(t, root, "src/user.ts.bak"); got != `export const user = 1;` {
		t.Errorf("backup content = %q", got)
	}
}

func TestExecuteMoveDirectory(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/auth/login.ts": `import { token } from '../token';`,
		"src/token.ts":      `export const token = 't';`,
	})

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionMove,
		Source: "src/auth",
		Target: "src/features/auth",
	}

	result := executor.ExecuteAction(action, nil, false, false)
	if !result.Success {
		t.Fatalf("directory move failed: %s", result.Message)
	}
	moved := testutil.ReadFile(t, root, "src/features/auth/login.ts")
	if !strings.Contains(moved, `from '../../token'`) {
		t.Errorf("relative import not adjusted for new depth:\n%s", moved)
	}
	if testutil.FileExists(t, root, "src/auth/login.ts") {
		t.Error("original directory contents must be gone")
	}
}

func TestExecuteMerge(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/utils.ts":     `export const fmt = 1;`,
		"src/lib/utils.ts": `export const fmt = 1;`,
		"src/app.ts":       `import { fmt } from './utils';`,
	})

	action := domain.MigrationAction{
		ID:              "a1",
		Type:            domain.ActionMerge,
		Source:          "src/utils.ts",
		Target:          "src/lib/utils.ts",
		AffectedImports: []string{"src/app.ts"},
	}

	result := executor.ExecuteAction(action, nil, false, false)
	if !result.Success {
		t.Fatalf("merge failed: %s", result.Message)
	}

	// Merge redirects imports but leaves both files in place
	if !testutil.FileExists(t, root, "src/utils.ts") {
		t.Error("merge must not delete the source file")
	}
	importer := testutil.ReadFile(t, root, "src/app.ts")
	if !strings.Contains(importer, `from './lib/utils'`) {
		t.Errorf("importer not redirected:\n%s", importer)
	}
}

func TestExecuteMergeMissingTarget(t *testing.T) {
	executor, _ := newTestExecutor(t, map[string]string{
		"src/utils.ts": `export const fmt = 1;`,
	})

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionMerge,
		Source: "src/utils.ts",
		Target: "src/lib/utils.ts",
	}

	result := executor.ExecuteAction(action, nil, false, false)
	if result.Success {
		t.Fatal("merging into a missing target must fail")
	}
	if !strings.Contains(result.Message, "merge target does not exist") {
		t.Errorf("message = %q, want a target-oriented failure", result.Message)
	}
}

func TestExecuteRemoveType(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/widgets.ts": `export interface Widget {
  id: string;
}
export const other = 1;
`,
		"src/types.ts": `export interface Widget {
  id: string;
}
`,
		"src/app.ts": `import { Widget } from './widgets';`,
	})

	action := domain.MigrationAction{
		ID:              "a1",
		Type:            domain.ActionRemoveType,
		Source:          "src/widgets.ts",
		Target:          "src/types.ts",
		Symbol:          "Widget",
		Risk:            domain.RiskSafe,
		AffectedImports: []string{"src/app.ts"},
	}
	updates := []domain.ImportUpdate{{
		File:      "src/app.ts",
		Symbol:    "Widget",
		OldSource: "src/widgets.ts",
		NewSource: "src/types.ts",
	}}

	result := executor.ExecuteAction(action, updates, false, false)
	if !result.Success {
		t.Fatalf("remove-type failed: %s", result.Message)
	}

	source := testutil.ReadFile(t, root, "src/widgets.ts")
	if strings.Contains(source, "interface Widget") {
		t.Errorf("duplicate declaration still present:\n%s", source)
	}
	if !strings.Contains(source, "const other = 1;") {
		t.Errorf("unrelated code was damaged:\n%s", source)
	}

	importer := testutil.ReadFile(t, root, "src/app.ts")
	if !strings.Contains(importer, `from './types'`) {
		t.Errorf("importer not redirected to canonical source:\n%s", importer)
	}
}

func TestExecuteRemoveTypeWithRename(t *testing.T) {
	executor, root := newTestExecutor(t, map[string]string{
		"src/legacy.ts": `export interface UserDTO {
  id: string;
}
`,
		"src/models/user.ts": `export interface User {
  id: string;
}
`,
		"src/app.ts": `import { UserDTO } from './legacy';
const u: UserDTO = load();
`,
	})

	action := domain.MigrationAction{
		ID:              "a1",
		Type:            domain.ActionRemoveType,
		Source:          "src/legacy.ts",
		Target:          "src/models/user.ts",
		Symbol:          "User",
		OriginalName:    "UserDTO",
		Risk:            domain.RiskMedium,
		AffectedImports: []string{"src/app.ts"},
	}
	updates := []domain.ImportUpdate{{
		File:      "src/app.ts",
		Symbol:    "UserDTO",
		OldSource: "src/legacy.ts",
		NewSource: "src/models/user.ts",
		NewName:   "User",
	}}

	result := executor.ExecuteAction(action, updates, false, false)
	if !result.Success {
		t.Fatalf("remove-type failed: %s", result.Message)
	}

	source := testutil.ReadFile(t, root, "src/legacy.ts")
	if strings.Contains(source, "UserDTO") {
		t.Errorf("original declaration still present:\n%s", source)
	}

	importer := testutil.ReadFile(t, root, "src/app.ts")
	if !strings.Contains(importer, `import { User } from './models/user';`) {
		t.Errorf("import not renamed and redirected:\n%s", importer)
	}
	if !strings.Contains(importer, "const u: UserDTO = load();") {
		t.Errorf("usage outside the import must be untouched:\n%s", importer)
	}
}

func TestExecuteRemoveTypeDryRun(t *testing.T) {
	files := map[string]string{
		"src/widgets.ts": `export interface Widget { id: string; }`,
	}
	executor, root := newTestExecutor(t, files)

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionRemoveType,
		Source: "src/widgets.ts",
		Target: "src/types.ts",
		Symbol: "Widget",
	}

	result := executor.ExecuteAction(action, nil, true, true)
	if !result.Success {
		t.Fatalf("dry run failed: %s", result.Message)
	}
	if got := testutil.ReadFile(t, root, "src/widgets.ts"); got != files["src/widgets.ts"] {
		t.Error("dry run modified the source file")
	}
}

func TestExecuteActionRelativeRoots(t *testing.T) {
	// The CLI defaults both roots to "." and passes them through unchanged,
	// so path validation must work for relative roots too
	root := testutil.WriteProject(t, map[string]string{
		"src/user.ts": `export const user = 1;`,
	})
	prevWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prevWD); err != nil {
			t.Fatal(err)
		}
	})
	executor := NewExecutor(".", ".", resolver.New("."))

	action := domain.MigrationAction{
		ID:     "a1",
		Type:   domain.ActionMove,
		Source: "src/user.ts",
		Target: "src/models/user.ts",
	}

	result := executor.ExecuteAction(action, nil, true, false)
	if !result.Success {
		t.Fatalf("dry-run move under relative roots failed: %s", result.Message)
	}
	if !strings.HasPrefix(result.Message, "Would move") {
		t.Errorf("message = %q", result.Message)
	}
}

func TestExecuteUnknownActionType(t *testing.T) {
	executor, _ := newTestExecutor(t, map[string]string{})

	result := executor.ExecuteAction(domain.MigrationAction{ID: "a1", Type: "explode"}, nil, false, false)
	if result.Success {
		t.Fatal("unknown action type must fail")
	}
	if !strings.Contains(result.Message, "unknown action type") {
		t.Errorf("message = %q", result.Message)
	}
}
