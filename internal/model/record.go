package model

import "time"

// DataObject is a data object of a logical node with its type reference
// resolved against the document's object-type table. Sub-objects are resolved
// recursively. An object whose type id is missing from the table keeps its
// name but has empty CDC, attributes and sub-objects, so that callers can
// tell "referenced but unresolved" from "not referenced".
type DataObject struct {
	Name       string       `json:"name"`
	CDC        string       `json:"cdc"`
	Desc       string       `json:"desc,omitempty"`
	Transient  bool         `json:"transient,omitempty"`
	Attributes []Attribute  `json:"das,omitempty"`
	SubObjects []DataObject `json:"sdos,omitempty"`
}

type LogicalNode struct {
	Class  string `json:"ln_class"`
	Inst   string `json:"inst"`
	Prefix string `json:"prefix,omitempty"`
	Desc   string `json:"desc,omitempty"`
	// Zero marks the LN0 node, the distinguished per-device node owning
	// datasets and control blocks.
	Zero    bool         `json:"is_ln0,omitempty"`
	Objects []DataObject `json:"dos,omitempty"`
}

// FCDA is one dataset member reference. Member order within a dataset is
// semantically meaningful and preserved from the document.
type FCDA struct {
	LDInst  string `json:"ld_inst,omitempty"`
	Prefix  string `json:"prefix,omitempty"`
	LNClass string `json:"ln_class"`
	LNInst  string `json:"ln_inst,omitempty"`
	DOName  string `json:"do_name,omitempty"`
	DAName  string `json:"da_name,omitempty"`
	FC      string `json:"fc,omitempty"`
	Ix      string `json:"ix,omitempty"`
}

type DataSet struct {
	Name    string `json:"name"`
	Desc    string `json:"desc,omitempty"`
	Members []FCDA `json:"fcdas"`
}

// TriggerOptions of a report control block. Every flag defaults to false
// when the TrgOps element is absent.
type TriggerOptions struct {
	Dchg   bool `json:"dchg"`
	Qchg   bool `json:"qchg"`
	Dupd   bool `json:"dupd"`
	Period bool `json:"period"`
	GI     bool `json:"gi"`
}

type GooseControl struct {
	Name    string `json:"name"`
	Desc    string `json:"desc,omitempty"`
	DataSet string `json:"dat_set,omitempty"`
	AppID   string `json:"app_id,omitempty"`
	ConfRev uint32 `json:"conf_rev,omitempty"`
	Type    string `json:"type,omitempty"`
}

type ReportControl struct {
	Name     string         `json:"name"`
	Desc     string         `json:"desc,omitempty"`
	DataSet  string         `json:"dat_set,omitempty"`
	RptID    string         `json:"rpt_id,omitempty"`
	ConfRev  uint32         `json:"conf_rev,omitempty"`
	Buffered bool           `json:"buffered"`
	BufTime  uint32         `json:"buf_time,omitempty"`
	IntgPd   uint32         `json:"intg_pd,omitempty"`
	Trigger  TriggerOptions `json:"trg_ops"`
}

type SampledValueControl struct {
	Name      string `json:"name"`
	Desc      string `json:"desc,omitempty"`
	DataSet   string `json:"dat_set,omitempty"`
	SmvID     string `json:"smv_id,omitempty"`
	SmpRate   uint32 `json:"smp_rate,omitempty"`
	NofASDU   uint32 `json:"nof_asdu,omitempty"`
	Multicast bool   `json:"multicast"`
}

type ControlBlocks struct {
	Goose        []GooseControl        `json:"goose,omitempty"`
	Report       []ReportControl       `json:"report,omitempty"`
	SampledValue []SampledValueControl `json:"sampled_value,omitempty"`
}

// ExternalRef is an inbound subscription binding declared in an Inputs
// section of any logical node of the logical device.
type ExternalRef struct {
	IEDName     string `json:"ied_name,omitempty"`
	LDInst      string `json:"ld_inst,omitempty"`
	Prefix      string `json:"prefix,omitempty"`
	LNClass     string `json:"ln_class,omitempty"`
	LNInst      string `json:"ln_inst,omitempty"`
	DOName      string `json:"do_name,omitempty"`
	DAName      string `json:"da_name,omitempty"`
	IntAddr     string `json:"int_addr,omitempty"`
	ServiceType string `json:"service_type,omitempty"`
}

type LogicalDevice struct {
	Inst          string          `json:"inst"`
	Desc          string          `json:"desc,omitempty"`
	Nodes         []LogicalNode   `json:"lns"`
	DataSets      []DataSet       `json:"datasets,omitempty"`
	ControlBlocks ControlBlocks   `json:"control_blocks,omitempty"`
	Subscriptions []ExternalRef   `json:"ext_refs,omitempty"`
}

type PrivateCategory string

const (
	CategoryDeviceType  PrivateCategory = "device-type"
	CategoryPackID      PrivateCategory = "pack-id"
	CategoryFirmware    PrivateCategory = "firmware"
	CategoryHardware    PrivateCategory = "hardware"
	CategoryProductCode PrivateCategory = "product-code"
	CategoryConfig      PrivateCategory = "config"
	CategoryStandard    PrivateCategory = "standard"
	CategoryUnknown     PrivateCategory = "unknown"
)

// PackFields are the positional fields of a delimiter-separated pack
// descriptor, e.g. "3815#SCU-ORG#LIGNE#2.2a#1".
type PackFields struct {
	PackNumber string `json:"pack_number"`
	DeviceType string `json:"device_type"`
	Variant    string `json:"variant"`
	Version    string `json:"version"`
	Revision   string `json:"revision,omitempty"`
}

// PrivateElement is one vendor metadata record of a device. Category is the
// exact-table classification; for unrecognized type tags, Guessed is true and
// Category holds the best-guess result of the heuristic rules, possibly
// CategoryUnknown.
type PrivateElement struct {
	Type     string          `json:"type"`
	Raw      string          `json:"raw"`
	Category PrivateCategory `json:"category"`
	Guessed  bool            `json:"guessed,omitempty"`
	Pack     *PackFields     `json:"pack,omitempty"`
	Version  string          `json:"version,omitempty"`
}

// Counts summarizes the size of a device's structural tree. DataObjects
// counts top-level data objects across all logical nodes.
type Counts struct {
	LogicalDevices int `json:"ld_count"`
	LogicalNodes   int `json:"ln_count"`
	DataObjects    int `json:"do_count"`
}

// DeviceRecord is the full extracted model of one device node. It is
// immutable after creation and only ever superseded wholesale by a later
// import with the same identity.
type DeviceRecord struct {
	Identity      string           `json:"identity"`
	Name          string           `json:"name"`
	DeviceType    string           `json:"device_type"`
	DeclaredType  string           `json:"declared_type,omitempty"`
	Manufacturer  string           `json:"manufacturer"`
	ConfigVersion string           `json:"config_version,omitempty"`
	VersionLabel  string           `json:"version"`
	Desc          string           `json:"desc,omitempty"`
	PackID        string           `json:"pack_id,omitempty"`
	Firmware      string           `json:"firmware,omitempty"`
	LogicalDevices []LogicalDevice `json:"lds"`
	Privates      []PrivateElement `json:"privates,omitempty"`
	Types         *TypeTable       `json:"data_type_templates,omitempty"`
	Counts
	Filename   string    `json:"filename"`
	ImportedAt time.Time `json:"imported_at"`
}
