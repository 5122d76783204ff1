package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/substation-tools/icdcat/internal/catalog"
	"github.com/substation-tools/icdcat/internal/scl"
	"github.com/substation-tools/icdcat/internal/testutils"
)

const singleDevice = `<SCL>
  <Header id="h"/>
  <IED name="SAMUA1" type="Protection" manufacturer="Efacec" configVersion="1.47" desc="SAMUA1">
    <AccessPoint name="P1"><Server>
      <LDevice inst="LD0">
        <LN0 lnClass="LLN0" inst="" lnType="LLN0_t"/>
      </LDevice>
    </Server></AccessPoint>
  </IED>
  <DataTypeTemplates>
    <LNodeType id="LLN0_t" lnClass="LLN0"><DO name="Pos" type="DPC_t"/></LNodeType>
    <DOType id="DPC_t" cdc="DPC"><DA name="stVal" bType="Dbpos" fc="ST"/></DOType>
  </DataTypeTemplates>
</SCL>`

const twoDevices = `<SCL>
  <IED name="DEV_A" type="Protection" manufacturer="M" configVersion="1.0"/>
  <IED name="DEV_B" type="Control" manufacturer="M" configVersion="1.0"/>
</SCL>`

func testImport(t *testing.T) (*ImportCommand, *catalog.File, string) {
	t.Helper()
	root := t.TempDir()
	cat, err := catalog.NewFile(root)
	require.NoError(t, err)
	clk := testutils.NewTestClock(time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC), time.Second)
	return NewImportCommand(cat, clk.Now), cat, root
}

func TestImportBytes(t *testing.T) {
	imp, cat, root := testImport(t)

	entries, err := imp.ImportBytes(context.Background(), []byte(singleDevice), "/upload/samua1.icd")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "ICD_PROTECTION_EFACEC_1_47_SAMUA1", e.Identity)
	assert.Equal(t, "Protection", e.DeviceType)
	assert.Equal(t, "samua1.icd", e.Filename)
	assert.Equal(t, 1, e.Counts.LogicalDevices)
	assert.Equal(t, 1, e.Counts.LogicalNodes)
	assert.Equal(t, 1, e.Counts.DataObjects)
	assert.FileExists(t, filepath.Join(root, "samua1.json"))

	t.Run("reimport is idempotent", func(t *testing.T) {
		again, err := imp.ImportBytes(context.Background(), []byte(singleDevice), "samua1.icd")
		require.NoError(t, err)
		require.Len(t, again, 1)
		assert.Equal(t, e.Identity, again[0].Identity)

		idx, err := cat.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, idx.Entries, 1)
	})
}

func TestImportBytesMultiDevice(t *testing.T) {
	imp, cat, root := testImport(t)

	entries, err := imp.ImportBytes(context.Background(), []byte(twoDevices), "station.xml")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].Identity, entries[1].Identity)

	// one storage unit per device, named file stem plus device name
	assert.FileExists(t, filepath.Join(root, "station_DEV_A.json"))
	assert.FileExists(t, filepath.Join(root, "station_DEV_B.json"))

	idx, err := cat.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, idx.Entries, 2)
}

func TestImportBytesRejections(t *testing.T) {
	imp, cat, _ := testImport(t)

	ts := []struct {
		name, file, raw string
		exp             error
	}{
		{"unsupported extension", "device.scd", singleDevice, scl.ErrUnsupportedFile},
		{"malformed markup", "device.icd", "<SCL><IED></SCL>", scl.ErrMalformedDocument},
		{"no devices", "device.icd", "<SCL><Header id='h'/></SCL>", scl.ErrNoDevicesFound},
	}
	for _, test := range ts {
		t.Run(test.name, func(t *testing.T) {
			entries, err := imp.ImportBytes(context.Background(), []byte(test.raw), test.file)
			assert.ErrorIs(t, err, test.exp)
			assert.Empty(t, entries)
			assert.True(t, IsDocumentError(err))
		})
	}

	// nothing was persisted by any of the rejected documents
	idx, err := cat.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, idx.Entries)
}

func TestStorageUnit(t *testing.T) {
	assert.Equal(t, "samua1", storageUnit("samua1.icd", "SAMUA1", false))
	assert.Equal(t, "my_device", storageUnit("my device.xml", "D", false))
	assert.Equal(t, "station_DEV_A", storageUnit("station.xml", "DEV A", true))
	assert.Equal(t, "unknown", storageUnit(".icd", "", false))
}

func TestIsDocumentError(t *testing.T) {
	assert.True(t, IsDocumentError(fmt.Errorf("wrapped: %w", scl.ErrCyclicTypeReference)))
	assert.False(t, IsDocumentError(errors.New("disk full")))
	assert.False(t, IsDocumentError(os.ErrPermission))
}

func TestImportResultIsSuccessful(t *testing.T) {
	assert.True(t, ImportResult{File: "a.icd"}.IsSuccessful())
	assert.False(t, ImportResult{File: "a.icd", Err: scl.ErrNoDevicesFound}.IsSuccessful())
}
