package migration

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tsshift/domain"
	"tsshift/internal/resolver"
)

// Executor applies migration actions to the filesystem. One action at a
// time, strictly in plan order: each action can invalidate the import graph
// that later actions' affected imports were computed against, so nothing
// here runs concurrently.
type Executor struct {
	projectRoot string
	libraryRoot string
	rewriter    *Rewriter
}

// NewExecutor creates an executor confined to libraryRoot. Every path
// derived from an action is validated against it before any filesystem
// call.
func NewExecutor(projectRoot, libraryRoot string, pathResolver *resolver.PathResolver) *Executor {
	return &Executor{
		projectRoot: projectRoot,
		libraryRoot: libraryRoot,
		rewriter:    NewRewriter(projectRoot, pathResolver),
	}
}

// ExecuteAction applies a single action. The returned result always
// describes the outcome; nothing escapes as a panic or plan-level error, so
// one bad action cannot abort a batch.
func (e *Executor) ExecuteAction(action domain.MigrationAction, updates []domain.ImportUpdate, dryRun, backup bool) domain.ExecutionResult {
	result := domain.ExecutionResult{ActionID: action.ID}

	switch action.Type {
	case domain.ActionMove:
		e.executeMove(action, &result, dryRun, backup)
	case domain.ActionMerge:
		e.executeMerge(action, &result, dryRun)
	case domain.ActionRemoveType:
		e.executeRemoveType(action, updates, &result, dryRun, backup)
	default:
		result.Message = fmt.Sprintf("unknown action type: %s", action.Type)
	}

	return result
}

// executeMove relocates a file or directory. The target must not already
// exist: a pre-existing target fails the action, it is never overwritten.
func (e *Executor) executeMove(action domain.MigrationAction, result *domain.ExecutionResult, dryRun, backup bool) {
	sourceAbs, err := validatePath(e.projectRoot, e.libraryRoot, action.Source)
	if err != nil {
		result.Message = err.Error()
		return
	}
	targetAbs, err := validatePath(e.projectRoot, e.libraryRoot, action.Target)
	if err != nil {
		result.Message = err.Error()
		return
	}

	info, err := os.Stat(sourceAbs)
	if err != nil {
		result.Message = domain.NewSourceNotFoundError(action.Source).Error()
		return
	}
	if _, err := os.Stat(targetAbs); err == nil {
		result.Message = domain.NewTargetConflictError(action.Target).Error()
		return
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would move %s to %s and update %d importing files",
			action.Source, action.Target, len(action.AffectedImports))
		return
	}

	if backup {
		if err := e.backupPath(sourceAbs, info.IsDir()); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("backup failed for %s: %v", action.Source, err))
		}
	}

	if info.IsDir() {
		err = e.moveDirectory(sourceAbs, targetAbs)
	} else {
		err = e.moveFile(sourceAbs, targetAbs)
	}
	if err != nil {
		result.Message = fmt.Sprintf("move failed: %v", err)
		return
	}

	updated := e.rewriteAffected(action.AffectedImports, action.Source, action.Target, result)
	result.Success = true
	result.Message = fmt.Sprintf("Moved %s to %s, updated %d/%d importing files",
		action.Source, action.Target, updated, len(action.AffectedImports))
}

// executeMerge leaves files in place and only redirects the affected
// imports to the merge destination
func (e *Executor) executeMerge(action domain.MigrationAction, result *domain.ExecutionResult, dryRun bool) {
	if _, err := validatePath(e.projectRoot, e.libraryRoot, action.Source); err != nil {
		result.Message = err.Error()
		return
	}
	targetAbs, err := validatePath(e.projectRoot, e.libraryRoot, action.Target)
	if err != nil {
		result.Message = err.Error()
		return
	}
	if _, err := os.Stat(targetAbs); err != nil {
		result.Message = domain.NewTargetNotFoundError(action.Target).Error()
		return
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would redirect %d importing files from %s to %s",
			len(action.AffectedImports), action.Source, action.Target)
		return
	}

	updated := e.rewriteAffected(action.AffectedImports, action.Source, action.Target, result)
	result.Success = true
	result.Message = fmt.Sprintf("Merged %s into %s, updated %d/%d importing files",
		action.Source, action.Target, updated, len(action.AffectedImports))
}

// executeRemoveType deletes a duplicate declaration and redirects its
// importers to the canonical location, renaming the symbol when the
// canonicalization included a rename
func (e *Executor) executeRemoveType(action domain.MigrationAction, updates []domain.ImportUpdate, result *domain.ExecutionResult, dryRun, backup bool) {
	sourceAbs, err := validatePath(e.projectRoot, e.libraryRoot, action.Source)
	if err != nil {
		result.Message = err.Error()
		return
	}
	if _, err := os.Stat(sourceAbs); err != nil {
		result.Message = domain.NewSourceNotFoundError(action.Source).Error()
		return
	}

	removedName := action.Symbol
	if action.OriginalName != "" {
		removedName = action.OriginalName
	}

	if dryRun {
		msg := fmt.Sprintf("Would remove %s from %s in favor of %s", removedName, action.Source, action.Target)
		if action.OriginalName != "" {
			msg += fmt.Sprintf(" (renaming to %s)", action.Symbol)
		}
		result.Success = true
		result.Message = fmt.Sprintf("%s and update %d importing files", msg, len(action.AffectedImports))
		return
	}

	if backup {
		if err := e.backupPath(sourceAbs, false); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("backup failed for %s: %v", action.Source, err))
		}
	}

	data, err := os.ReadFile(sourceAbs)
	if err != nil {
		result.Message = fmt.Sprintf("failed to read %s: %v", action.Source, err)
		return
	}
	content, removed := RemoveDeclaration(string(data), removedName, action.PreserveJSDoc)
	if !removed {
		result.Message = fmt.Sprintf("declaration %s not found in %s", removedName, action.Source)
		return
	}
	if err := os.WriteFile(sourceAbs, []byte(content), 0644); err != nil {
		result.Message = fmt.Sprintf("failed to write %s: %v", action.Source, err)
		return
	}

	updated := 0
	for _, u := range updates {
		if u.OldSource != action.Source {
			continue
		}
		if err := e.applyImportUpdate(u); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("import update failed in %s: %v", u.File, err))
			continue
		}
		updated++
	}

	result.Success = true
	result.Message = fmt.Sprintf("Removed %s from %s, updated %d importing files",
		removedName, action.Source, updated)
}

// applyImportUpdate redirects one importer to the canonical source,
// applying the rename first so the new statement carries the new name
func (e *Executor) applyImportUpdate(u domain.ImportUpdate) error {
	if _, err := validatePath(e.projectRoot, e.libraryRoot, u.File); err != nil {
		return err
	}

	absPath := filepath.Join(e.projectRoot, u.File)
	data, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}

	content := string(data)
	if u.NewName != "" && u.NewName != u.Symbol {
		content = RenameImportedSymbol(content, u.Symbol, u.NewName, moduleBasename(u.OldSource))
	}
	content = e.rewriter.RewriteSource(content, u.File, u.OldSource, u.NewSource)

	if content == string(data) {
		return nil
	}
	return os.WriteFile(absPath, []byte(content), 0644)
}

// rewriteAffected updates import statements in every affected file,
// collecting per-file failures as warnings. A failed rewrite never fails
// the owning action: the primary move/merge already succeeded.
func (e *Executor) rewriteAffected(affected []string, oldSource, newSource string, result *domain.ExecutionResult) int {
	updated := 0
	for _, file := range affected {
		if _, err := validatePath(e.projectRoot, e.libraryRoot, file); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			continue
		}
		changed, err := e.rewriter.UpdateImports(file, oldSource, newSource)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("import update failed in %s: %v", file, err))
			continue
		}
		if changed {
			updated++
		}
	}
	return updated
}

// moveFile relocates a single source file, rewriting its relative imports
// for the new directory depth
func (e *Executor) moveFile(sourceAbs, targetAbs string) error {
	data, err := os.ReadFile(sourceAbs)
	if err != nil {
		return err
	}

	content := string(data)
	if isTSPath(sourceAbs) {
		content = RewriteRelativeImports(content, filepath.Dir(sourceAbs), filepath.Dir(targetAbs))
	}

	if err := os.MkdirAll(filepath.Dir(targetAbs), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(targetAbs, []byte(content), 0644); err != nil {
		return err
	}
	return os.Remove(sourceAbs)
}

// moveDirectory copies contained source files depth-first to the new
// location with their internal relative imports rewritten, then deletes
// the original directory
func (e *Executor) moveDirectory(sourceAbs, targetAbs string) error {
	err := filepath.Walk(sourceAbs, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(sourceAbs, path)
		if relErr != nil {
			return relErr
		}
		dest := filepath.Join(targetAbs, rel)

		if info.IsDir() {
			return os.MkdirAll(dest, 0755)
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		content := string(data)
		if isTSPath(path) {
			content = RewriteRelativeImports(content, filepath.Dir(path), filepath.Dir(dest))
		}
		if mkErr := os.MkdirAll(filepath.Dir(dest), 0755); mkErr != nil {
			return mkErr
		}
		return os.WriteFile(dest, []byte(content), info.Mode().Perm())
	})
	if err != nil {
		return err
	}
	return os.RemoveAll(sourceAbs)
}

// backupPath writes a best-effort .bak copy adjacent to the path. Failure
// is reported to the caller as a warning, never as an action failure.
func (e *Executor) backupPath(abs string, isDir bool) error {
	if isDir {
		// Directory backups copy file-by-file under <dir>.bak
		return filepath.Walk(abs, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			rel, relErr := filepath.Rel(abs, path)
			if relErr != nil {
				return relErr
			}
			dest := filepath.Join(abs+".bak", rel)
			if mkErr := os.MkdirAll(filepath.Dir(dest), 0755); mkErr != nil {
				return mkErr
			}
			return copyFile(path, dest)
		})
	}
	return copyFile(abs, abs+".bak")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func isTSPath(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".ts" || ext == ".tsx"
}
