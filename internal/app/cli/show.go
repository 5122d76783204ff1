package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Show prints the full device record for an identity as JSON. The inlined
// type table section is omitted unless includeTypes is set, since it tends to
// dominate the output.
func Show(ctx context.Context, identity string, includeTypes bool) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	rec, err := cat.Get(ctx, identity)
	if err != nil {
		Stderrf("could not fetch %s: %v", identity, err)
		return err
	}
	if !includeTypes {
		rec.Types = nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		Stderrf("could not print %s: %v", identity, err)
		return err
	}
	return nil
}

// ListVersions prints all catalog entries for a device type and
// manufacturer, newest first.
func ListVersions(ctx context.Context, deviceType, manufacturer string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	idx, err := cat.List(ctx)
	if err != nil {
		Stderrf("could not list catalog: %v", err)
		return err
	}
	entries := idx.VersionsFor(deviceType, manufacturer)
	if len(entries) == 0 {
		Stderrf("no entries for type %q and manufacturer %q", deviceType, manufacturer)
		return fmt.Errorf("not found")
	}
	printEntries(entries)
	return nil
}

// ListDeviceTypes prints the distinct resolved device types in the catalog.
func ListDeviceTypes(ctx context.Context) error {
	return printDistinct(ctx, func(types, _ []string) []string { return types })
}

// ListManufacturers prints the distinct manufacturers in the catalog.
func ListManufacturers(ctx context.Context) error {
	return printDistinct(ctx, func(_, manufacturers []string) []string { return manufacturers })
}

func printDistinct(ctx context.Context, pick func(types, manufacturers []string) []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	idx, err := cat.List(ctx)
	if err != nil {
		Stderrf("could not list catalog: %v", err)
		return err
	}
	for _, v := range pick(idx.DeviceTypes(), idx.Manufacturers()) {
		fmt.Println(v)
	}
	return nil
}
