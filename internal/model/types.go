package model

import "strings"

// BasicType is the canonical form of an SCL bType attribute. Sized string
// types (VisString255, Octet64, ...) normalize to their unsized tag; values
// outside the known set are kept verbatim for forward compatibility.
type BasicType string

const (
	TypeBoolean       BasicType = "BOOLEAN"
	TypeInt8          BasicType = "INT8"
	TypeInt16         BasicType = "INT16"
	TypeInt32         BasicType = "INT32"
	TypeInt64         BasicType = "INT64"
	TypeInt8U         BasicType = "INT8U"
	TypeInt16U        BasicType = "INT16U"
	TypeInt24U        BasicType = "INT24U"
	TypeInt32U        BasicType = "INT32U"
	TypeFloat32       BasicType = "FLOAT32"
	TypeFloat64       BasicType = "FLOAT64"
	TypeVisString     BasicType = "VisString"
	TypeUnicodeString BasicType = "Unicode"
	TypeOctetString   BasicType = "Octet"
	TypeQuality       BasicType = "Quality"
	TypeTimestamp     BasicType = "Timestamp"
	TypeDoublePoint   BasicType = "Dbpos"
	TypeCommand       BasicType = "Tcmd"
	TypeCheck         BasicType = "Check"
	TypeEnum          BasicType = "Enum"
	TypeStruct        BasicType = "Struct"
)

var sizedTypes = []BasicType{TypeVisString, TypeUnicodeString, TypeOctetString}

// NormalizeBasicType canonicalizes a raw bType attribute value.
func NormalizeBasicType(raw string) BasicType {
	raw = strings.TrimSpace(raw)
	for _, t := range sizedTypes {
		if strings.HasPrefix(raw, string(t)) {
			return t
		}
	}
	return BasicType(raw)
}

// Attribute is a data attribute (DA) of an object type, or a sub-attribute
// (BDA) of an attribute type.
type Attribute struct {
	Name    string    `json:"name"`
	BType   BasicType `json:"b_type"`
	FC      string    `json:"fc,omitempty"`
	Desc    string    `json:"desc,omitempty"`
	TypeRef string    `json:"type,omitempty"`
	Dchg    bool      `json:"dchg,omitempty"`
	Qchg    bool      `json:"qchg,omitempty"`
	Dupd    bool      `json:"dupd,omitempty"`
	Default string    `json:"default,omitempty"`
	// DefaultValue is Default converted to a Go value matching BType,
	// when such a conversion applies.
	DefaultValue any `json:"default_value,omitempty"`
}

// ObjectRef is a data-object declaration inside a node type, referencing an
// object type by id.
type ObjectRef struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Transient bool   `json:"transient,omitempty"`
}

type NodeType struct {
	Class   string      `json:"ln_class"`
	Desc    string      `json:"desc,omitempty"`
	Objects []ObjectRef `json:"dos"`
}

// SubObjectRef is a nested data-object declaration inside an object type,
// referencing another object type by id.
type SubObjectRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Desc string `json:"desc,omitempty"`
}

type ObjectType struct {
	CDC        string         `json:"cdc"`
	Desc       string         `json:"desc,omitempty"`
	Attributes []Attribute    `json:"das"`
	SubObjects []SubObjectRef `json:"sdos,omitempty"`
}

type AttributeType struct {
	Desc          string      `json:"desc,omitempty"`
	SubAttributes []Attribute `json:"bdas"`
}

type EnumValue struct {
	Ord   int    `json:"ord"`
	Value string `json:"value"`
	Desc  string `json:"desc,omitempty"`
}

type EnumType struct {
	Desc string `json:"desc,omitempty"`
	// Values are ordered by declared ordinal, not document order.
	Values []EnumValue `json:"values"`
}

// TypeTable holds the four template lookup tables of one document. It is
// built once per document and passed by reference through the extraction
// call chain; it is never mutated afterwards and never shared across
// documents.
type TypeTable struct {
	NodeTypes      map[string]NodeType      `json:"lnode_types"`
	ObjectTypes    map[string]ObjectType    `json:"do_types"`
	AttributeTypes map[string]AttributeType `json:"da_types"`
	EnumTypes      map[string]EnumType      `json:"enum_types"`
}

func NewTypeTable() *TypeTable {
	return &TypeTable{
		NodeTypes:      map[string]NodeType{},
		ObjectTypes:    map[string]ObjectType{},
		AttributeTypes: map[string]AttributeType{},
		EnumTypes:      map[string]EnumType{},
	}
}

// NodeType looks up a node type by template id. A missing id reports
// found=false with a zero value, never an error.
func (t *TypeTable) NodeType(id string) (NodeType, bool) {
	nt, ok := t.NodeTypes[id]
	return nt, ok
}

func (t *TypeTable) ObjectType(id string) (ObjectType, bool) {
	ot, ok := t.ObjectTypes[id]
	return ot, ok
}

func (t *TypeTable) AttributeType(id string) (AttributeType, bool) {
	at, ok := t.AttributeTypes[id]
	return at, ok
}

func (t *TypeTable) EnumType(id string) (EnumType, bool) {
	et, ok := t.EnumTypes[id]
	return et, ok
}
