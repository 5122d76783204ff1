// Package catalog persists extracted device records, one file per device,
// and maintains the global catalog index with upsert-by-identity semantics.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/substation-tools/icdcat/internal/model"
	"github.com/substation-tools/icdcat/internal/utils"
)

const (
	defaultDirPermissions  = 0775
	defaultFilePermissions = 0664
	indexLockTimeout       = 5 * time.Second
	indexLockRetryDelay    = 13 * time.Millisecond

	RecordExt      = ".json"
	CatalogConfDir = ".icdcat"
	IndexFilename  = "index.json"
	SourcesDir     = "sources"
)

var nowFn = time.Now // mockable for testing

// File is a device catalog backed by a file system directory: one JSON file
// per device record plus a global index under the catalog conf dir.
type File struct {
	root string
}

func NewFile(root string) (*File, error) {
	rootPath, err := utils.ExpandHome(root)
	if err != nil {
		return nil, err
	}
	return &File{root: rootPath}, nil
}

// Upsert persists the full record to its storage unit and then updates the
// catalog index: an entry with the same identity is replaced in place,
// otherwise the new entry is appended. The record is written before the index
// so that a crash in between leaves an orphaned record file, never an index
// row pointing at a missing record.
func (f *File) Upsert(ctx context.Context, rec model.DeviceRecord, unit string) (model.CatalogEntry, error) {
	relPath := unit + RecordExt
	recordPath := filepath.Join(f.root, relPath)
	if err := os.MkdirAll(filepath.Dir(recordPath), defaultDirPermissions); err != nil {
		return model.CatalogEntry{}, fmt.Errorf("could not create catalog root %s: %w", f.root, err)
	}
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return model.CatalogEntry{}, fmt.Errorf("unexpected encoding error: %w", err)
	}
	if err := utils.AtomicWriteFile(recordPath, raw, defaultFilePermissions); err != nil {
		return model.CatalogEntry{}, fmt.Errorf("could not write device record: %w", err)
	}
	slog.Default().Info("saved device record", "identity", rec.Identity, "path", relPath)

	entry := toEntry(rec, relPath)

	unlock, err := f.lockIndex(ctx)
	defer unlock()
	if err != nil {
		return model.CatalogEntry{}, err
	}
	idx, err := f.readIndex()
	if err != nil {
		return model.CatalogEntry{}, err
	}
	replaced := idx.Upsert(&entry)
	if err := f.writeIndex(idx); err != nil {
		return model.CatalogEntry{}, err
	}
	slog.Default().Info("updated catalog index", "identity", entry.Identity, "replaced", replaced)
	return entry, nil
}

func toEntry(rec model.DeviceRecord, relPath string) model.CatalogEntry {
	return model.CatalogEntry{
		Identity:      rec.Identity,
		DeviceType:    rec.DeviceType,
		DeclaredType:  rec.DeclaredType,
		Manufacturer:  rec.Manufacturer,
		VersionLabel:  rec.VersionLabel,
		ConfigVersion: rec.ConfigVersion,
		Filename:      rec.Filename,
		Path:          relPath,
		PackID:        rec.PackID,
		Firmware:      rec.Firmware,
		Counts:        rec.Counts,
		ImportedAt:    rec.ImportedAt,
	}
}

// Get loads the full device record for the identity.
func (f *File) Get(ctx context.Context, identity string) (model.DeviceRecord, error) {
	unlock, err := f.lockIndex(ctx)
	defer unlock()
	if err != nil {
		return model.DeviceRecord{}, err
	}
	idx, err := f.readIndex()
	if err != nil {
		return model.DeviceRecord{}, err
	}
	entry := idx.FindByIdentity(identity)
	if entry == nil {
		return model.DeviceRecord{}, fmt.Errorf("%w: %s", ErrEntryNotFound, identity)
	}
	raw, err := os.ReadFile(filepath.Join(f.root, entry.Path))
	if err != nil {
		return model.DeviceRecord{}, fmt.Errorf("index references unreadable record %s: %w", entry.Path, err)
	}
	var rec model.DeviceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.DeviceRecord{}, fmt.Errorf("corrupt device record %s: %w", entry.Path, err)
	}
	return rec, nil
}

// Delete removes the record file and the index row for the identity.
func (f *File) Delete(ctx context.Context, identity string) error {
	unlock, err := f.lockIndex(ctx)
	defer unlock()
	if err != nil {
		return err
	}
	idx, err := f.readIndex()
	if err != nil {
		return err
	}
	entry := idx.FindByIdentity(identity)
	if entry == nil {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, identity)
	}
	if err := os.Remove(filepath.Join(f.root, entry.Path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove device record: %w", err)
	}
	idx.Delete(identity)
	return f.writeIndex(idx)
}

// List returns the catalog index.
func (f *File) List(ctx context.Context) (model.CatalogIndex, error) {
	unlock, err := f.lockIndex(ctx)
	defer unlock()
	if err != nil {
		return model.CatalogIndex{}, err
	}
	idx, err := f.readIndex()
	if err != nil {
		return model.CatalogIndex{}, err
	}
	return *idx, nil
}

// Rebuild recreates the index from the record files present under the root.
// Summary fields are extracted from the raw JSON without decoding the full
// record, which can be large because of the inlined type table.
func (f *File) Rebuild(ctx context.Context) error {
	if err := f.checkRootValid(); err != nil {
		return err
	}
	unlock, err := f.lockIndex(ctx)
	defer unlock()
	if err != nil {
		return err
	}
	log := slog.Default()
	start := time.Now()
	idx := &model.CatalogIndex{}
	err = filepath.Walk(f.root, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == CatalogConfDir {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(info.Name(), RecordExt) {
			return nil
		}
		entry, err := readEntrySummary(path, f.root)
		if err != nil {
			log.Error("record file excluded from index", "path", path, "error", err)
			return nil
		}
		idx.Upsert(entry)
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortFunc(idx.Entries, func(a, b *model.CatalogEntry) int {
		return strings.Compare(a.Identity, b.Identity)
	})
	if err := f.writeIndex(idx); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("rebuilt index with %d entries in %s", len(idx.Entries), time.Since(start)))
	return nil
}

func readEntrySummary(path, root string) (*model.CatalogEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	identity, err := jsonparser.GetString(raw, "identity")
	if err != nil {
		return nil, fmt.Errorf("record without identity: %w", err)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, err
	}
	entry := &model.CatalogEntry{
		Identity: identity,
		Path:     filepath.ToSlash(rel),
	}
	str := func(key string) string {
		s, _ := jsonparser.GetString(raw, key)
		return s
	}
	count := func(key string) int {
		n, _ := jsonparser.GetInt(raw, key)
		return int(n)
	}
	entry.DeviceType = str("device_type")
	entry.DeclaredType = str("declared_type")
	entry.Manufacturer = str("manufacturer")
	entry.VersionLabel = str("version")
	entry.ConfigVersion = str("config_version")
	entry.Filename = str("filename")
	entry.PackID = str("pack_id")
	entry.Firmware = str("firmware")
	entry.Counts = model.Counts{
		LogicalDevices: count("ld_count"),
		LogicalNodes:   count("ln_count"),
		DataObjects:    count("do_count"),
	}
	if ts := str("imported_at"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.ImportedAt = t
		}
	}
	return entry, nil
}

// ArchiveSource keeps a provenance copy of an imported source file under the
// catalog conf dir. The name is prefixed to avoid clashes between uploads
// with the same basename.
func (f *File) ArchiveSource(filename string, raw []byte) (string, error) {
	dir := filepath.Join(f.root, CatalogConfDir, SourcesDir)
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return "", err
	}
	name := uuid.NewString()[:8] + "_" + filepath.Base(filename)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, defaultFilePermissions); err != nil {
		return "", err
	}
	return path, nil
}

func (f *File) checkRootValid() error {
	stat, err := os.Stat(f.root)
	if err != nil || !stat.IsDir() {
		return fmt.Errorf("%s: %w", f.root, ErrRootInvalid)
	}
	return nil
}

func (f *File) indexFilename() string {
	return filepath.Join(f.root, CatalogConfDir, IndexFilename)
}

// readIndex reads the index file. Must be called after the lock is acquired
// with lockIndex. A missing index file is an empty catalog, not an error.
func (f *File) readIndex() (*model.CatalogIndex, error) {
	data, err := os.ReadFile(f.indexFilename())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &model.CatalogIndex{}, nil
		}
		return nil, fmt.Errorf("could not read catalog index: %w", err)
	}
	var idx model.CatalogIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("corrupt catalog index: %w", err)
	}
	return &idx, nil
}

func (f *File) writeIndex(idx *model.CatalogIndex) error {
	idx.Touch(nowFn())
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("unexpected encoding error: %w", err)
	}
	if err := utils.AtomicWriteFile(f.indexFilename(), raw, defaultFilePermissions); err != nil {
		return fmt.Errorf("could not write catalog index: %w", err)
	}
	return nil
}

type unlockFunc func()

// lockIndex serializes the read-modify-write of the index file across
// processes. Record writes need no such coordination since every device's
// storage unit is independent.
func (f *File) lockIndex(ctx context.Context) (unlockFunc, error) {
	cd := filepath.Join(f.root, CatalogConfDir)
	stat, err := os.Stat(cd)
	if err != nil || !stat.IsDir() {
		err := os.MkdirAll(cd, defaultDirPermissions)
		if err != nil {
			return func() {}, err
		}
	}

	fl := flock.New(f.indexFilename() + ".lock")
	ctx, cancel := context.WithTimeout(ctx, indexLockTimeout)
	unlock := func() {
		cancel()
		_ = fl.Unlock()
	}
	locked, err := fl.TryLockContext(ctx, indexLockRetryDelay)
	if err != nil {
		return unlock, err
	}
	if !locked {
		return unlock, ErrIndexLocked
	}
	return unlock, nil
}
