package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/substation-tools/icdcat/internal/commands"
	"github.com/substation-tools/icdcat/internal/scl"
	"github.com/substation-tools/icdcat/internal/utils"
)

// IgnoreFile lists path patterns to skip during a directory import, using
// gitignore syntax.
const IgnoreFile = ".icdignore"

type ImportExecutor struct {
	now commands.Now
}

func NewImportExecutor(now commands.Now) *ImportExecutor {
	return &ImportExecutor{
		now: now,
	}
}

// Import imports a file or a directory of files into the catalog. A
// directory import continues past per-file failures and reports them
// alongside the successes. Returns an error when nothing was imported
// successfully.
func (p *ImportExecutor) Import(ctx context.Context, filename string) ([]commands.ImportResult, error) {
	cat, err := openCatalog()
	if err != nil {
		return nil, err
	}
	cmd := commands.NewImportCommand(cat, p.now)

	abs, err := filepath.Abs(filename)
	if err != nil {
		Stderrf("Error expanding file name %s: %v", filename, err)
		return nil, err
	}
	stat, err := os.Stat(abs)
	if err != nil {
		Stderrf("Cannot read file or directory %s: %v", filename, err)
		return nil, err
	}

	var results []commands.ImportResult
	if stat.IsDir() {
		results, err = p.importDirectory(ctx, cmd, abs)
	} else {
		results = []commands.ImportResult{p.importFile(ctx, cmd, abs)}
	}
	if err != nil {
		return results, err
	}

	ok := 0
	for _, r := range results {
		if r.IsSuccessful() {
			ok++
			for _, e := range r.Entries {
				fmt.Printf("imported %s as %s\n", r.File, e.Identity)
			}
		} else {
			Stderrf("error importing %s: %v", r.File, r.Err)
		}
	}
	if ok == 0 {
		return results, fmt.Errorf("nothing imported")
	}
	return results, nil
}

func (p *ImportExecutor) importDirectory(ctx context.Context, cmd *commands.ImportCommand, absDirname string) ([]commands.ImportResult, error) {
	ign, _ := ignore.CompileIgnoreFile(filepath.Join(absDirname, IgnoreFile))
	var results []commands.ImportResult
	err := filepath.WalkDir(absDirname, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !scl.AcceptedFile(d.Name()) {
			return nil
		}
		rel := filepath.ToSlash(strings.TrimPrefix(path, absDirname+string(filepath.Separator)))
		if ign != nil && ign.MatchesPath(rel) {
			return nil
		}
		res := p.importFile(ctx, cmd, path)
		results = append(results, res)
		if res.Err != nil && !commands.IsDocumentError(res.Err) {
			// storage failures abort the batch, document errors don't
			return res.Err
		}
		return nil
	})
	return results, err
}

func (p *ImportExecutor) importFile(ctx context.Context, cmd *commands.ImportCommand, filename string) commands.ImportResult {
	_, raw, err := utils.ReadRequiredFile(filename)
	if err != nil {
		return commands.ImportResult{File: filename, Err: err}
	}
	entries, err := cmd.ImportBytes(ctx, raw, filename)
	res := commands.ImportResult{File: filename, Entries: entries, Err: err}
	if err == nil {
		p.archiveSource(filename, raw)
	}
	return res
}

// archiveSource keeps a provenance copy of the imported document next to the
// catalog. Failure to archive never fails the import.
func (p *ImportExecutor) archiveSource(filename string, raw []byte) {
	cat, err := openCatalog()
	if err != nil {
		return
	}
	if _, err := cat.ArchiveSource(filename, raw); err != nil {
		Stderrf("warning: could not archive source %s: %v", filename, err)
	}
}
