package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kinbiko/jsonassert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/substation-tools/icdcat/internal/model"
)

func testRecord(identity, name string) model.DeviceRecord {
	return model.DeviceRecord{
		Identity:      identity,
		Name:          name,
		DeviceType:    "Protection",
		Manufacturer:  "Efacec",
		ConfigVersion: "1.47",
		VersionLabel:  name,
		Counts:        model.Counts{LogicalDevices: 1, LogicalNodes: 2, DataObjects: 3},
		Filename:      "samua1.icd",
		ImportedAt:    time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC),
	}
}

func testCatalog(t *testing.T) (*File, string) {
	t.Helper()
	root := t.TempDir()
	cat, err := NewFile(root)
	require.NoError(t, err)
	return cat, root
}

func TestFileUpsert(t *testing.T) {
	cat, root := testCatalog(t)

	fixedNow := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	restore := nowFn
	nowFn = func() time.Time { return fixedNow }
	defer func() { nowFn = restore }()

	entry, err := cat.Upsert(context.Background(), testRecord("ICD_A", "SAMUA1"), "samua1")
	require.NoError(t, err)
	assert.Equal(t, "ICD_A", entry.Identity)
	assert.Equal(t, "samua1.json", entry.Path)

	t.Run("record file and index exist", func(t *testing.T) {
		assert.FileExists(t, filepath.Join(root, "samua1.json"))

		raw, err := os.ReadFile(filepath.Join(root, CatalogConfDir, IndexFilename))
		require.NoError(t, err)
		jsonassert.New(t).Assertf(string(raw), `{
			"entries": [{
				"identity": "ICD_A",
				"device_type": "Protection",
				"manufacturer": "Efacec",
				"version": "SAMUA1",
				"config_version": "1.47",
				"filename": "samua1.icd",
				"path": "samua1.json",
				"ld_count": 1,
				"ln_count": 2,
				"do_count": 3,
				"imported_at": "2024-06-03T09:30:00Z"
			}],
			"last_updated": "2024-06-03T10:00:00Z"
		}`)
	})

	t.Run("same identity replaces, later import wins", func(t *testing.T) {
		rec := testRecord("ICD_A", "SAMUA1")
		rec.Filename = "samua1_v2.icd"
		_, err := cat.Upsert(context.Background(), rec, "samua1")
		require.NoError(t, err)

		idx, err := cat.List(context.Background())
		require.NoError(t, err)
		require.Len(t, idx.Entries, 1)
		assert.Equal(t, "samua1_v2.icd", idx.Entries[0].Filename)
	})

	t.Run("different identity appends", func(t *testing.T) {
		_, err := cat.Upsert(context.Background(), testRecord("ICD_B", "SAMUB1"), "samub1")
		require.NoError(t, err)

		idx, err := cat.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, idx.Entries, 2)
	})
}

func TestFileUpsertConcurrent(t *testing.T) {
	cat, _ := testCatalog(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("ICD_%02d", i)
			_, errs[i] = cat.Upsert(context.Background(), testRecord(id, id), fmt.Sprintf("dev%02d", i))
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		assert.NoError(t, err, "upsert %d", i)
	}

	idx, err := cat.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, idx.Entries, n)
}

func TestFileGet(t *testing.T) {
	cat, _ := testCatalog(t)
	rec := testRecord("ICD_A", "SAMUA1")
	_, err := cat.Upsert(context.Background(), rec, "samua1")
	require.NoError(t, err)

	got, err := cat.Get(context.Background(), "ICD_A")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = cat.Get(context.Background(), "ICD_MISSING")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestFileDelete(t *testing.T) {
	cat, root := testCatalog(t)
	_, err := cat.Upsert(context.Background(), testRecord("ICD_A", "SAMUA1"), "samua1")
	require.NoError(t, err)

	require.NoError(t, cat.Delete(context.Background(), "ICD_A"))
	assert.NoFileExists(t, filepath.Join(root, "samua1.json"))

	idx, err := cat.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, idx.Entries)

	assert.ErrorIs(t, cat.Delete(context.Background(), "ICD_A"), ErrEntryNotFound)
}

func TestFileListEmptyCatalog(t *testing.T) {
	cat, _ := testCatalog(t)
	idx, err := cat.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, idx.Entries)
	assert.Nil(t, idx.LastUpdated)
}

func TestFileRebuild(t *testing.T) {
	cat, root := testCatalog(t)
	_, err := cat.Upsert(context.Background(), testRecord("ICD_B", "SAMUB1"), "samub1")
	require.NoError(t, err)
	_, err = cat.Upsert(context.Background(), testRecord("ICD_A", "SAMUA1"), "nested/samua1")
	require.NoError(t, err)

	// a file the walker must tolerate and skip
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o664))
	// a record without identity gets excluded, not fatal
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.json"), []byte("{}"), 0o664))

	require.NoError(t, os.Remove(filepath.Join(root, CatalogConfDir, IndexFilename)))
	require.NoError(t, cat.Rebuild(context.Background()))

	idx, err := cat.List(context.Background())
	require.NoError(t, err)
	require.Len(t, idx.Entries, 2)
	// rebuilt index is sorted by identity
	assert.Equal(t, "ICD_A", idx.Entries[0].Identity)
	assert.Equal(t, "nested/samua1.json", idx.Entries[0].Path)
	assert.Equal(t, "ICD_B", idx.Entries[1].Identity)
	assert.Equal(t, "Protection", idx.Entries[0].DeviceType)
	assert.Equal(t, 3, idx.Entries[0].Counts.DataObjects)
	assert.Equal(t, testRecord("ICD_A", "x").ImportedAt, idx.Entries[0].ImportedAt)
}

func TestFileRebuildInvalidRoot(t *testing.T) {
	cat, err := NewFile(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.ErrorIs(t, cat.Rebuild(context.Background()), ErrRootInvalid)
}

func TestFileArchiveSource(t *testing.T) {
	cat, root := testCatalog(t)
	path, err := cat.ArchiveSource("upload.icd", []byte("<SCL/>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, CatalogConfDir, SourcesDir), filepath.Dir(path))

	base := filepath.Base(path)
	assert.Len(t, base, len("upload.icd")+9)
	assert.Equal(t, "_upload.icd", base[8:])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<SCL/>", string(raw))

	// same basename archives twice without clashing
	other, err := cat.ArchiveSource("upload.icd", []byte("v2"))
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}

func TestReadIndexCorrupt(t *testing.T) {
	cat, root := testCatalog(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, CatalogConfDir), 0o775))
	require.NoError(t, os.WriteFile(filepath.Join(root, CatalogConfDir, IndexFilename), []byte("not json"), 0o664))

	_, err := cat.List(context.Background())
	assert.ErrorContains(t, err, "corrupt catalog index")
}

func TestRecordJSONRoundtrip(t *testing.T) {
	rec := testRecord("ICD_A", "SAMUA1")
	rec.LogicalDevices = []model.LogicalDevice{{
		Inst:  "LD0",
		Nodes: []model.LogicalNode{{Class: "LLN0", Zero: true}},
	}}
	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	jsonassert.New(t).Assertf(string(raw), `{
		"identity": "ICD_A",
		"name": "SAMUA1",
		"device_type": "Protection",
		"manufacturer": "Efacec",
		"config_version": "1.47",
		"version": "SAMUA1",
		"lds": [{"inst": "LD0", "lns": [{"ln_class": "LLN0", "inst": "", "is_ln0": true}]}],
		"ld_count": 1,
		"ln_count": 2,
		"do_count": 3,
		"filename": "samua1.icd",
		"imported_at": "2024-06-03T09:30:00Z"
	}`)
}
