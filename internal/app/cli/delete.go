package cli

import (
	"context"
	"fmt"
)

// Delete removes a device record and its index row by identity.
func Delete(ctx context.Context, identity string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	if err := cat.Delete(ctx, identity); err != nil {
		Stderrf("could not delete %s: %v", identity, err)
		return err
	}
	fmt.Printf("deleted %s\n", identity)
	return nil
}

// Index rebuilds the catalog index from the record files on disk.
func Index(ctx context.Context) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	if err := cat.Rebuild(ctx); err != nil {
		Stderrf("could not rebuild index: %v", err)
		return err
	}
	return nil
}
