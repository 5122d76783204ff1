package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/substation-tools/icdcat/internal/model"
)

func listEntries() []*model.CatalogEntry {
	return []*model.CatalogEntry{
		{Identity: "ICD_A", DeviceType: "Protection", Manufacturer: "Efacec", VersionLabel: "1.47", Filename: "samua1.icd"},
		{Identity: "ICD_B", DeviceType: "Control", Manufacturer: "Siemens", VersionLabel: "2.0", Filename: "scu.icd", PackID: "3815"},
		{Identity: "ICD_C", DeviceType: "Protection", Manufacturer: "Siemens", VersionLabel: "3.1", Filename: "prot2.xml"},
	}
}

func identities(entries []*model.CatalogEntry) []string {
	var res []string
	for _, e := range entries {
		res = append(res, e.Identity)
	}
	return res
}

func TestFilterEntries(t *testing.T) {
	all := listEntries()

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Equal(t, all, filterEntries(all, FilterFlags{}))
	})

	t.Run("type filter is case insensitive", func(t *testing.T) {
		got := filterEntries(all, FilterFlags{FilterType: "protection"})
		assert.Equal(t, []string{"ICD_A", "ICD_C"}, identities(got))
	})

	t.Run("comma-separated filter values", func(t *testing.T) {
		got := filterEntries(all, FilterFlags{FilterType: "control, protection"})
		assert.Equal(t, []string{"ICD_A", "ICD_B", "ICD_C"}, identities(got))
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		got := filterEntries(all, FilterFlags{FilterType: "Protection", FilterManufacturer: "Siemens"})
		assert.Equal(t, []string{"ICD_C"}, identities(got))
	})

	t.Run("search spans identity and metadata fields", func(t *testing.T) {
		got := filterEntries(all, FilterFlags{Search: "3815"})
		assert.Equal(t, []string{"ICD_B"}, identities(got))

		got = filterEntries(all, FilterFlags{Search: "SAMUA1"})
		assert.Equal(t, []string{"ICD_A"}, identities(got))
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		assert.Empty(t, filterEntries(all, FilterFlags{Search: "nonexistent"}))
	})
}
