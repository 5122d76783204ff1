package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/substation-tools/icdcat/internal/model"
	"github.com/substation-tools/icdcat/internal/utils"
)

type FilterFlags struct {
	FilterType         string
	FilterManufacturer string
	Search             string
}

const DefaultListSeparator = ","

func (ff *FilterFlags) IsSet() bool {
	return ff.FilterType != "" || ff.FilterManufacturer != "" || ff.Search != ""
}

// List prints the catalog index, optionally narrowed by filters.
func List(ctx context.Context, flags FilterFlags) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	idx, err := cat.List(ctx)
	if err != nil {
		Stderrf("could not list catalog: %v", err)
		return err
	}
	entries := filterEntries(idx.Entries, flags)
	printEntries(entries)
	return nil
}

func filterEntries(entries []*model.CatalogEntry, flags FilterFlags) []*model.CatalogEntry {
	if !flags.IsSet() {
		return entries
	}
	types := splitFilter(flags.FilterType)
	manufacturers := splitFilter(flags.FilterManufacturer)
	var res []*model.CatalogEntry
	for _, e := range entries {
		if !matchesFilter(types, e.DeviceType) {
			continue
		}
		if !matchesFilter(manufacturers, e.Manufacturer) {
			continue
		}
		if !matchesSearch(e, flags.Search) {
			continue
		}
		res = append(res, e)
	}
	return res
}

func splitFilter(flag string) []string {
	if flag == "" {
		return nil
	}
	return strings.Split(flag, DefaultListSeparator)
}

func matchesFilter(acceptedValues []string, value string) bool {
	if len(acceptedValues) == 0 {
		return true
	}
	for _, a := range acceptedValues {
		if utils.ToTrimmedLower(a) == utils.ToTrimmedLower(value) {
			return true
		}
	}
	return false
}

func matchesSearch(e *model.CatalogEntry, query string) bool {
	if query == "" {
		return true
	}
	query = utils.ToTrimmedLower(query)
	for _, v := range []string{e.Identity, e.DeviceType, e.Manufacturer, e.VersionLabel, e.Filename, e.PackID, e.Firmware} {
		if strings.Contains(utils.ToTrimmedLower(v), query) {
			return true
		}
	}
	return false
}

func printEntries(entries []*model.CatalogEntry) {
	table := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(table, "IDENTITY\tTYPE\tMANUFACTURER\tVERSION\tLDs\tLNs\tDOs\tFILE\n")
	for _, e := range entries {
		_, _ = fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.Identity, e.DeviceType, e.Manufacturer, e.VersionLabel,
			e.LogicalDevices, e.LogicalNodes, e.DataObjects, e.Filename)
	}
	_ = table.Flush()
}
