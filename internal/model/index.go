package model

import (
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// CatalogEntry is the summary projection of a DeviceRecord kept in the
// catalog index, sufficient for listing without loading the full record.
type CatalogEntry struct {
	Identity      string    `json:"identity"`
	DeviceType    string    `json:"device_type"`
	DeclaredType  string    `json:"declared_type,omitempty"`
	Manufacturer  string    `json:"manufacturer"`
	VersionLabel  string    `json:"version"`
	ConfigVersion string    `json:"config_version,omitempty"`
	Filename      string    `json:"filename"`
	Path          string    `json:"path"`
	PackID        string    `json:"pack_id,omitempty"`
	Firmware      string    `json:"firmware,omitempty"`
	Counts
	ImportedAt time.Time `json:"imported_at"`
}

// CatalogIndex is the global catalog of imported devices, unique by identity.
// It is mutated only through the catalog's upsert and delete operations.
type CatalogIndex struct {
	Entries     []*CatalogEntry `json:"entries"`
	LastUpdated *time.Time      `json:"last_updated"`
}

func (idx *CatalogIndex) FindByIdentity(identity string) *CatalogEntry {
	for _, e := range idx.Entries {
		if e.Identity == identity {
			return e
		}
	}
	return nil
}

// Upsert replaces the entry with the same identity in place, preserving its
// position, or appends the entry when the identity is new. Reports whether an
// existing entry was replaced.
func (idx *CatalogIndex) Upsert(entry *CatalogEntry) bool {
	for i, e := range idx.Entries {
		if e.Identity == entry.Identity {
			idx.Entries[i] = entry
			return true
		}
	}
	idx.Entries = append(idx.Entries, entry)
	return false
}

// Delete removes the entry with the given identity. Reports whether an entry
// was removed.
func (idx *CatalogIndex) Delete(identity string) bool {
	n := len(idx.Entries)
	idx.Entries = slices.DeleteFunc(idx.Entries, func(e *CatalogEntry) bool {
		return e.Identity == identity
	})
	return len(idx.Entries) < n
}

// Touch refreshes the last-updated timestamp. Called on every index write.
func (idx *CatalogIndex) Touch(now time.Time) {
	now = now.UTC()
	idx.LastUpdated = &now
}

// DeviceTypes returns the sorted set of resolved device types in the catalog.
func (idx *CatalogIndex) DeviceTypes() []string {
	return idx.distinct(func(e *CatalogEntry) string { return e.DeviceType })
}

// Manufacturers returns the sorted set of manufacturers in the catalog.
func (idx *CatalogIndex) Manufacturers() []string {
	return idx.distinct(func(e *CatalogEntry) string { return e.Manufacturer })
}

func (idx *CatalogIndex) distinct(field func(*CatalogEntry) string) []string {
	var vs []string
	for _, e := range idx.Entries {
		if v := field(e); v != "" && !slices.Contains(vs, v) {
			vs = append(vs, v)
		}
	}
	slices.Sort(vs)
	return vs
}

// VersionsFor returns all entries for a device type and manufacturer, newest
// version first. Version labels compare as semantic versions when both
// parse as such, lexicographically otherwise.
func (idx *CatalogIndex) VersionsFor(deviceType, manufacturer string) []*CatalogEntry {
	var res []*CatalogEntry
	for _, e := range idx.Entries {
		if e.DeviceType == deviceType && e.Manufacturer == manufacturer {
			res = append(res, e)
		}
	}
	slices.SortFunc(res, func(a, b *CatalogEntry) int {
		return compareVersionLabels(b.VersionLabel, a.VersionLabel)
	})
	return res
}

func compareVersionLabels(a, b string) int {
	av, aErr := semver.NewVersion(a)
	bv, bErr := semver.NewVersion(b)
	if aErr == nil && bErr == nil {
		return av.Compare(bv)
	}
	return strings.Compare(a, b)
}
