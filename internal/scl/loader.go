// Package scl implements loading of IEC 61850 device-description documents
// and extraction of the structural device model: type templates, logical
// devices and nodes, recursively resolved data objects, datasets, control
// blocks, subscriptions and classified vendor Private metadata.
package scl

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/substation-tools/icdcat/internal/model"
	"github.com/substation-tools/icdcat/internal/utils"
)

// AcceptedFile reports whether the filename extension is one of the accepted
// document kinds. The extension is the only format gate before parsing.
func AcceptedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".icd", ".xml":
		return true
	}
	return false
}

// Load parses raw bytes into a navigable document tree. Anything that is not
// well-formed markup with an SCL root element fails with ErrMalformedDocument.
// Unknown elements and attributes are ignored.
func Load(raw []byte) (*model.SCL, error) {
	raw = utils.RemoveBOM(raw)
	var doc model.SCL
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// FindDevices returns the device nodes of the document. A well-formed
// document without any IED element fails with ErrNoDevicesFound, which is
// distinct from a parse failure.
func FindDevices(doc *model.SCL) ([]model.IEDElement, error) {
	if len(doc.IEDs) == 0 {
		return nil, ErrNoDevicesFound
	}
	return doc.IEDs, nil
}
