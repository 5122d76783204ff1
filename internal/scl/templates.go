package scl

import (
	"cmp"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"github.com/substation-tools/icdcat/internal/model"
)

// BuildTypeTable builds the four template lookup tables from the document's
// DataTypeTemplates section. An absent section yields four empty tables.
// Identifiers are unique within their table; a duplicate id keeps the first
// declaration.
func BuildTypeTable(doc *model.SCL) *model.TypeTable {
	table := model.NewTypeTable()
	tpl := doc.Templates
	if tpl == nil {
		return table
	}

	for _, lnt := range tpl.LNodeTypes {
		if _, ok := table.NodeTypes[lnt.ID]; ok {
			continue
		}
		nt := model.NodeType{
			Class:   lnt.LnClass,
			Desc:    lnt.Desc,
			Objects: make([]model.ObjectRef, 0, len(lnt.DOs)),
		}
		for _, do := range lnt.DOs {
			nt.Objects = append(nt.Objects, model.ObjectRef{
				Name:      do.Name,
				Type:      do.Type,
				Transient: sclBool(do.Transient),
			})
		}
		table.NodeTypes[lnt.ID] = nt
	}

	for _, dot := range tpl.DOTypes {
		if _, ok := table.ObjectTypes[dot.ID]; ok {
			continue
		}
		ot := model.ObjectType{
			CDC:        dot.CDC,
			Desc:       dot.Desc,
			Attributes: attributes(dot.DAs),
		}
		for _, sdo := range dot.SDOs {
			ot.SubObjects = append(ot.SubObjects, model.SubObjectRef{
				Name: sdo.Name,
				Type: sdo.Type,
				Desc: sdo.Desc,
			})
		}
		table.ObjectTypes[dot.ID] = ot
	}

	for _, dat := range tpl.DATypes {
		if _, ok := table.AttributeTypes[dat.ID]; ok {
			continue
		}
		table.AttributeTypes[dat.ID] = model.AttributeType{
			Desc:          dat.Desc,
			SubAttributes: attributes(dat.BDAs),
		}
	}

	for _, ent := range tpl.EnumTypes {
		if _, ok := table.EnumTypes[ent.ID]; ok {
			continue
		}
		et := model.EnumType{
			Desc:   ent.Desc,
			Values: make([]model.EnumValue, 0, len(ent.Vals)),
		}
		for _, v := range ent.Vals {
			et.Values = append(et.Values, model.EnumValue{
				Ord:   v.Ord,
				Value: strings.TrimSpace(v.Text),
				Desc:  v.Desc,
			})
		}
		// values are stored ordered by declared ordinal, not document order
		slices.SortStableFunc(et.Values, func(a, b model.EnumValue) int {
			return cmp.Compare(a.Ord, b.Ord)
		})
		table.EnumTypes[ent.ID] = et
	}

	return table
}

func attributes(das []model.DAElement) []model.Attribute {
	res := make([]model.Attribute, 0, len(das))
	for _, da := range das {
		bt := model.NormalizeBasicType(da.BType)
		a := model.Attribute{
			Name:    da.Name,
			BType:   bt,
			FC:      da.FC,
			Desc:    da.Desc,
			TypeRef: da.Type,
			Dchg:    sclBool(da.Dchg),
			Qchg:    sclBool(da.Qchg),
			Dupd:    sclBool(da.Dupd),
		}
		if len(da.Vals) > 0 {
			a.Default = strings.TrimSpace(da.Vals[0])
			a.DefaultValue = typedValue(bt, a.Default)
		}
		res = append(res, a)
	}
	return res
}

// typedValue converts a raw Val text to a Go value matching the basic type.
// String-like and structured types keep the raw text.
func typedValue(bt model.BasicType, raw string) any {
	if raw == "" {
		return nil
	}
	switch bt {
	case model.TypeBoolean:
		return cast.ToBool(raw)
	case model.TypeInt8, model.TypeInt16, model.TypeInt32, model.TypeInt64:
		return cast.ToInt64(raw)
	case model.TypeInt8U, model.TypeInt16U, model.TypeInt24U, model.TypeInt32U:
		return cast.ToUint64(raw)
	case model.TypeFloat32, model.TypeFloat64:
		return cast.ToFloat64(raw)
	default:
		return raw
	}
}

// sclBool parses an SCL boolean attribute, absent meaning false.
func sclBool(s string) bool {
	return cast.ToBool(strings.TrimSpace(s))
}
