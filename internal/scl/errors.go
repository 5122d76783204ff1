package scl

import "errors"

var (
	// ErrMalformedDocument means the byte stream is not a well-formed SCL
	// document. Fatal for the import, never retried.
	ErrMalformedDocument = errors.New("malformed SCL document")
	// ErrNoDevicesFound means the document is well-formed but contains no
	// IED element.
	ErrNoDevicesFound = errors.New("no IED found in document")
	// ErrCyclicTypeReference means the object-type graph of the template
	// section contains a cycle, which would otherwise cause unbounded
	// recursion during data-object resolution.
	ErrCyclicTypeReference = errors.New("cyclic type reference in data type templates")
	// ErrUnsupportedFile means the filename extension is not one of the
	// accepted document kinds.
	ErrUnsupportedFile = errors.New("unsupported file extension, expected .icd or .xml")
)
