// Package model contains the SCL document model, the extracted device model
// and the catalog index model.
package model

import "encoding/xml"

// SCL is the root element of a device-description document. Only the parts
// needed for extraction are mapped; unknown elements and attributes are
// ignored by the decoder.
type SCL struct {
	XMLName   xml.Name           `xml:"SCL"`
	Header    *Header            `xml:"Header"`
	IEDs      []IEDElement       `xml:"IED"`
	Templates *DataTypeTemplates `xml:"DataTypeTemplates"`
}

type Header struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

type IEDElement struct {
	Name          string             `xml:"name,attr"`
	Type          string             `xml:"type,attr"`
	Manufacturer  string             `xml:"manufacturer,attr"`
	ConfigVersion string             `xml:"configVersion,attr"`
	Desc          string             `xml:"desc,attr"`
	Privates      []PrivateXML       `xml:"Private"`
	AccessPoints  []AccessPointXML   `xml:"AccessPoint"`
	// LDevices holds logical devices declared directly under the IED, for
	// documents that omit the AccessPoint/Server wrapper.
	LDevices []LDeviceElement `xml:"LDevice"`
}

type PrivateXML struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type AccessPointXML struct {
	Name     string       `xml:"name,attr"`
	Privates []PrivateXML `xml:"Private"`
	Server   *ServerXML   `xml:"Server"`
	// LDevices holds logical devices declared directly under the access
	// point, for documents that omit the Server wrapper.
	LDevices []LDeviceElement `xml:"LDevice"`
}

type ServerXML struct {
	Privates []PrivateXML     `xml:"Private"`
	LDevices []LDeviceElement `xml:"LDevice"`
}

type LDeviceElement struct {
	Inst     string       `xml:"inst,attr"`
	Desc     string       `xml:"desc,attr"`
	Privates []PrivateXML `xml:"Private"`
	LN0      *LNElement   `xml:"LN0"`
	LNs      []LNElement  `xml:"LN"`
}

type LNElement struct {
	LnClass  string              `xml:"lnClass,attr"`
	Inst     string              `xml:"inst,attr"`
	Prefix   string              `xml:"prefix,attr"`
	LnType   string              `xml:"lnType,attr"`
	Desc     string              `xml:"desc,attr"`
	DataSets []DataSetElement    `xml:"DataSet"`
	Reports  []ReportControlXML  `xml:"ReportControl"`
	GSEs     []GSEControlXML     `xml:"GSEControl"`
	SVs      []SampledValueXML   `xml:"SampledValueControl"`
	Inputs   []InputsElement     `xml:"Inputs"`
}

type DataSetElement struct {
	Name  string        `xml:"name,attr"`
	Desc  string        `xml:"desc,attr"`
	FCDAs []FCDAElement `xml:"FCDA"`
}

type FCDAElement struct {
	LDInst  string `xml:"ldInst,attr"`
	Prefix  string `xml:"prefix,attr"`
	LNClass string `xml:"lnClass,attr"`
	LNInst  string `xml:"lnInst,attr"`
	DOName  string `xml:"doName,attr"`
	DAName  string `xml:"daName,attr"`
	FC      string `xml:"fc,attr"`
	Ix      string `xml:"ix,attr"`
}

type ReportControlXML struct {
	Name     string        `xml:"name,attr"`
	Desc     string        `xml:"desc,attr"`
	DatSet   string        `xml:"datSet,attr"`
	RptID    string        `xml:"rptID,attr"`
	ConfRev  string        `xml:"confRev,attr"`
	Buffered string        `xml:"buffered,attr"`
	BufTime  string        `xml:"bufTime,attr"`
	IntgPd   string        `xml:"intgPd,attr"`
	TrgOps   *TrgOpsXML    `xml:"TrgOps"`
}

type TrgOpsXML struct {
	Dchg   string `xml:"dchg,attr"`
	Qchg   string `xml:"qchg,attr"`
	Dupd   string `xml:"dupd,attr"`
	Period string `xml:"period,attr"`
	GI     string `xml:"gi,attr"`
}

type GSEControlXML struct {
	Name    string `xml:"name,attr"`
	Desc    string `xml:"desc,attr"`
	DatSet  string `xml:"datSet,attr"`
	AppID   string `xml:"appID,attr"`
	ConfRev string `xml:"confRev,attr"`
	Type    string `xml:"type,attr"`
}

type SampledValueXML struct {
	Name      string `xml:"name,attr"`
	Desc      string `xml:"desc,attr"`
	DatSet    string `xml:"datSet,attr"`
	SmvID     string `xml:"smvID,attr"`
	SmpRate   string `xml:"smpRate,attr"`
	NofASDU   string `xml:"nofASDU,attr"`
	Multicast string `xml:"multicast,attr"`
}

type InputsElement struct {
	ExtRefs []ExtRefElement `xml:"ExtRef"`
}

type ExtRefElement struct {
	IEDName     string `xml:"iedName,attr"`
	LDInst      string `xml:"ldInst,attr"`
	Prefix      string `xml:"prefix,attr"`
	LNClass     string `xml:"lnClass,attr"`
	LNInst      string `xml:"lnInst,attr"`
	DOName      string `xml:"doName,attr"`
	DAName      string `xml:"daName,attr"`
	IntAddr     string `xml:"intAddr,attr"`
	ServiceType string `xml:"serviceType,attr"`
}

// DataTypeTemplates is the reusable type-template section of the document.
type DataTypeTemplates struct {
	LNodeTypes []LNodeTypeElement `xml:"LNodeType"`
	DOTypes    []DOTypeElement    `xml:"DOType"`
	DATypes    []DATypeElement    `xml:"DAType"`
	EnumTypes  []EnumTypeElement  `xml:"EnumType"`
}

type LNodeTypeElement struct {
	ID      string      `xml:"id,attr"`
	LnClass string      `xml:"lnClass,attr"`
	Desc    string      `xml:"desc,attr"`
	DOs     []DOElement `xml:"DO"`
}

type DOElement struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Transient string `xml:"transient,attr"`
}

type DOTypeElement struct {
	ID   string       `xml:"id,attr"`
	CDC  string       `xml:"cdc,attr"`
	Desc string       `xml:"desc,attr"`
	DAs  []DAElement  `xml:"DA"`
	SDOs []SDOElement `xml:"SDO"`
}

type SDOElement struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Desc string `xml:"desc,attr"`
}

// DAElement maps both DA and BDA elements; BDA carries no fc attribute.
type DAElement struct {
	Name  string   `xml:"name,attr"`
	BType string   `xml:"bType,attr"`
	FC    string   `xml:"fc,attr"`
	Desc  string   `xml:"desc,attr"`
	Type  string   `xml:"type,attr"`
	Dchg  string   `xml:"dchg,attr"`
	Qchg  string   `xml:"qchg,attr"`
	Dupd  string   `xml:"dupd,attr"`
	Vals  []string `xml:"Val"`
}

type DATypeElement struct {
	ID   string      `xml:"id,attr"`
	Desc string      `xml:"desc,attr"`
	BDAs []DAElement `xml:"BDA"`
}

type EnumTypeElement struct {
	ID   string           `xml:"id,attr"`
	Desc string           `xml:"desc,attr"`
	Vals []EnumValElement `xml:"EnumVal"`
}

type EnumValElement struct {
	Ord  int    `xml:"ord,attr"`
	Desc string `xml:"desc,attr"`
	Text string `xml:",chardata"`
}
