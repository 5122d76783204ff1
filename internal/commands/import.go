// Package commands contains the reusable import logic shared by the CLI
// commands. Simple catalog lookups go straight to the catalog package.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/substation-tools/icdcat/internal/catalog"
	"github.com/substation-tools/icdcat/internal/model"
	"github.com/substation-tools/icdcat/internal/scl"
	"github.com/substation-tools/icdcat/internal/utils"
)

type Now func() time.Time

type ImportCommand struct {
	now     Now
	catalog *catalog.File
}

func NewImportCommand(c *catalog.File, now Now) *ImportCommand {
	return &ImportCommand{
		now:     now,
		catalog: c,
	}
}

// ImportBytes runs the whole pipeline for one document: load, find devices,
// build the type table, extract and persist each device. It returns one
// catalog entry per device found. A parse failure persists nothing; once
// parsing succeeded, persistence is per-device, so entries persisted before
// an error are returned alongside it.
func (c *ImportCommand) ImportBytes(ctx context.Context, raw []byte, filename string) ([]model.CatalogEntry, error) {
	log := slog.Default()
	if !scl.AcceptedFile(filename) {
		return nil, fmt.Errorf("%w: %s", scl.ErrUnsupportedFile, filename)
	}
	doc, err := scl.Load(raw)
	if err != nil {
		return nil, err
	}
	devices, err := scl.FindDevices(doc)
	if err != nil {
		return nil, err
	}
	table := scl.BuildTypeTable(doc)

	base := filepath.Base(filename)
	multi := len(devices) > 1
	var entries []model.CatalogEntry
	for _, dev := range devices {
		rec, err := scl.ExtractDevice(dev, table, base, c.now())
		if err != nil {
			return entries, err
		}
		entry, err := c.catalog.Upsert(ctx, rec, storageUnit(base, rec.Name, multi))
		if err != nil {
			return entries, fmt.Errorf("storing device %s failed: %w", rec.Identity, err)
		}
		log.Info("imported device", "identity", entry.Identity, "file", base)
		entries = append(entries, entry)
	}
	return entries, nil
}

// storageUnit names the record file after the sanitized source filename.
// Collisions between same-stem uploads are accepted; the device name is
// appended only to keep the units of one multi-device document apart.
func storageUnit(filename, deviceName string, multi bool) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	unit := utils.SanitizeStorageName(stem)
	if multi {
		unit += "_" + utils.SanitizeStorageName(deviceName)
	}
	return unit
}

// IsDocumentError reports whether the error is a per-document rejection, as
// opposed to a storage failure. Batch imports continue past document errors
// and collect them per file.
func IsDocumentError(err error) bool {
	return errors.Is(err, scl.ErrMalformedDocument) ||
		errors.Is(err, scl.ErrNoDevicesFound) ||
		errors.Is(err, scl.ErrCyclicTypeReference) ||
		errors.Is(err, scl.ErrUnsupportedFile)
}

// ImportResult is the outcome of importing one file of a batch.
type ImportResult struct {
	File    string
	Entries []model.CatalogEntry
	Err     error
}

func (r ImportResult) IsSuccessful() bool {
	return r.Err == nil
}
