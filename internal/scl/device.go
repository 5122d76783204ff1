package scl

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/substation-tools/icdcat/internal/model"
)

// ExtractDevice walks one IED node and produces the full device record:
// classified Private metadata, logical devices with resolved logical nodes,
// datasets, control blocks, subscriptions and counts. The type table must
// belong to the same document as the node.
func ExtractDevice(ied model.IEDElement, table *model.TypeTable, filename string, now time.Time) (model.DeviceRecord, error) {
	log := slog.Default()

	privates := classifyPrivates(ied)
	deviceType := resolveDeviceType(ied, privates)

	var lds []model.LogicalDevice
	for _, ld := range discoverLDevices(ied) {
		extracted, err := extractLDevice(ld, table)
		if err != nil {
			return model.DeviceRecord{}, fmt.Errorf("device %s: %w", ied.Name, err)
		}
		lds = append(lds, extracted)
	}

	versionLabel := firstNonEmpty(ied.Desc, ied.ConfigVersion, "unknown")
	rec := model.DeviceRecord{
		Identity:       model.DeriveIdentity(deviceType, ied.Manufacturer, ied.ConfigVersion, ied.Desc),
		Name:           ied.Name,
		DeviceType:     deviceType,
		DeclaredType:   ied.Type,
		Manufacturer:   ied.Manufacturer,
		ConfigVersion:  ied.ConfigVersion,
		VersionLabel:   versionLabel,
		Desc:           ied.Desc,
		PackID:         firstCategoryValue(privates, model.CategoryPackID),
		Firmware:       firstCategoryValue(privates, model.CategoryFirmware),
		LogicalDevices: lds,
		Privates:       privates,
		Types:          table,
		Counts:         countTree(lds),
		Filename:       filename,
		ImportedAt:     now.UTC(),
	}
	log.Debug("extracted device", "name", rec.Name, "identity", rec.Identity,
		"lds", rec.Counts.LogicalDevices, "lns", rec.Counts.LogicalNodes, "dos", rec.Counts.DataObjects)
	return rec, nil
}

// resolveDeviceType prefers the device-type Private metadata over the
// declared type attribute, falling back to the UNKNOWN sentinel.
func resolveDeviceType(ied model.IEDElement, privates []model.PrivateElement) string {
	if t := firstCategoryValue(privates, model.CategoryDeviceType); t != "" {
		return t
	}
	if t := strings.TrimSpace(ied.Type); t != "" {
		return t
	}
	return model.UnknownDeviceType
}

// classifyPrivates collects Private elements from the whole device subtree,
// not only the IED level. Vendors place them at any scope, and a device-type
// Private under Server or a logical device must still win over the declared
// type attribute.
func classifyPrivates(ied model.IEDElement) []model.PrivateElement {
	var res []model.PrivateElement
	classify := func(ps []model.PrivateXML) {
		for _, p := range ps {
			res = append(res, ClassifyPrivate(p))
		}
	}
	classify(ied.Privates)
	for _, ap := range ied.AccessPoints {
		classify(ap.Privates)
		if ap.Server != nil {
			classify(ap.Server.Privates)
		}
	}
	for _, ld := range discoverLDevices(ied) {
		classify(ld.Privates)
	}
	return res
}

// discoverLDevices collects logical devices anywhere under the device
// subtree: the usual AccessPoint/Server scope, access points without a
// Server wrapper, and LDevice elements directly under the IED.
func discoverLDevices(ied model.IEDElement) []model.LDeviceElement {
	var lds []model.LDeviceElement
	for _, ap := range ied.AccessPoints {
		if ap.Server != nil {
			lds = append(lds, ap.Server.LDevices...)
		}
		lds = append(lds, ap.LDevices...)
	}
	lds = append(lds, ied.LDevices...)
	return lds
}

func extractLDevice(ld model.LDeviceElement, table *model.TypeTable) (model.LogicalDevice, error) {
	res := model.LogicalDevice{
		Inst: ld.Inst,
		Desc: ld.Desc,
	}
	if ld.LN0 != nil {
		ln0, err := resolveLogicalNode(*ld.LN0, true, table)
		if err != nil {
			return model.LogicalDevice{}, err
		}
		res.Nodes = append(res.Nodes, ln0)
		res.DataSets = extractDataSets(*ld.LN0)
		res.ControlBlocks = extractControlBlocks(*ld.LN0)
	}
	for _, ln := range ld.LNs {
		resolved, err := resolveLogicalNode(ln, false, table)
		if err != nil {
			return model.LogicalDevice{}, err
		}
		res.Nodes = append(res.Nodes, resolved)
	}
	res.Subscriptions = extractSubscriptions(ld)
	return res, nil
}

func resolveLogicalNode(ln model.LNElement, zero bool, table *model.TypeTable) (model.LogicalNode, error) {
	class := ln.LnClass
	if class == "" && zero {
		class = "LLN0"
	}
	objects, err := resolveDataObjects(ln.LnType, table)
	if err != nil {
		return model.LogicalNode{}, fmt.Errorf("LN %s%s%s: %w", ln.Prefix, class, ln.Inst, err)
	}
	return model.LogicalNode{
		Class:   class,
		Inst:    ln.Inst,
		Prefix:  ln.Prefix,
		Desc:    ln.Desc,
		Zero:    zero,
		Objects: objects,
	}, nil
}

// resolveDataObjects resolves the data objects declared by a node type. A
// node type id missing from the table yields no objects; a declared object
// whose type id is missing yields a present-but-empty entry.
func resolveDataObjects(nodeTypeID string, table *model.TypeTable) ([]model.DataObject, error) {
	nt, ok := table.NodeType(nodeTypeID)
	if !ok {
		if nodeTypeID != "" {
			slog.Default().Debug("unresolved node type reference", "id", nodeTypeID)
		}
		return nil, nil
	}
	objects := make([]model.DataObject, 0, len(nt.Objects))
	for _, ref := range nt.Objects {
		do, err := resolveObject(ref.Name, ref.Type, "", ref.Transient, table, nil)
		if err != nil {
			return nil, err
		}
		objects = append(objects, do)
	}
	return objects, nil
}

// resolveObject resolves one object reference against the object-type table,
// recursing through sub-object references. The stack holds the object-type
// ids on the current resolution path; revisiting one of them means the
// template graph is cyclic and resolution fails instead of recursing forever.
func resolveObject(name, typeID, desc string, transient bool, table *model.TypeTable, stack []string) (model.DataObject, error) {
	if slices.Contains(stack, typeID) {
		return model.DataObject{}, fmt.Errorf("%w: %s", ErrCyclicTypeReference,
			strings.Join(append(slices.Clone(stack), typeID), " -> "))
	}
	do := model.DataObject{
		Name:      name,
		Desc:      desc,
		Transient: transient,
	}
	ot, ok := table.ObjectType(typeID)
	if !ok {
		// referenced but unresolved: keep the entry with empty CDC,
		// attributes and sub-objects
		slog.Default().Debug("unresolved object type reference", "id", typeID, "object", name)
		return do, nil
	}
	do.CDC = ot.CDC
	if do.Desc == "" {
		do.Desc = ot.Desc
	}
	do.Attributes = slices.Clone(ot.Attributes)
	stack = append(stack, typeID)
	for _, sub := range ot.SubObjects {
		sdo, err := resolveObject(sub.Name, sub.Type, sub.Desc, false, table, stack)
		if err != nil {
			return model.DataObject{}, err
		}
		do.SubObjects = append(do.SubObjects, sdo)
	}
	return do, nil
}

func countTree(lds []model.LogicalDevice) model.Counts {
	c := model.Counts{LogicalDevices: len(lds)}
	for _, ld := range lds {
		c.LogicalNodes += len(ld.Nodes)
		for _, ln := range ld.Nodes {
			c.DataObjects += len(ln.Objects)
		}
	}
	return c
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
