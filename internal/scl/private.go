package scl

import (
	"regexp"
	"strings"

	"github.com/substation-tools/icdcat/internal/model"
)

// exactCategories maps known vendor Private type tags to their category.
// Tags not in this table go through the heuristic rules in classifyUnknown.
var exactCategories = map[string]model.PrivateCategory{
	"COMPAS-IEDType":   model.CategoryDeviceType,
	"COMPAS-ICDHeader": model.CategoryConfig,
	"SCLE_IDPACK":      model.CategoryPackID,
	"SCLE_Firmware":    model.CategoryFirmware,
	"SCLE_Hardware":    model.CategoryHardware,
	"SCLE_OrderCode":   model.CategoryProductCode,
	"IEC61850-Edition": model.CategoryStandard,
}

const packDelimiter = "#"

// versionShaped matches a version-number-shaped substring: digit groups
// separated by dots, optionally ending in a single letter, e.g. "2.2a".
var versionShaped = regexp.MustCompile(`\d+(?:\.\d+)+[A-Za-z]?`)

// ClassifyPrivate classifies one vendor Private element. Classification never
// fails: unrecognized tags fall through ordered heuristic rules and, at
// worst, come out as CategoryUnknown with no optional fields set.
func ClassifyPrivate(p model.PrivateXML) model.PrivateElement {
	raw := strings.TrimSpace(p.Text)
	el := model.PrivateElement{
		Type: p.Type,
		Raw:  raw,
	}
	if cat, ok := exactCategories[p.Type]; ok {
		el.Category = cat
		return el
	}
	return classifyUnknown(el)
}

func classifyUnknown(el model.PrivateElement) model.PrivateElement {
	el.Guessed = true
	el.Category = guessCategory(el.Type)

	if fields := splitPackFields(el.Raw); fields != nil {
		el.Pack = fields
		if el.Category == model.CategoryUnknown {
			el.Category = model.CategoryPackID
		}
	}
	if v := versionShaped.FindString(el.Raw); v != "" {
		el.Version = v
	}
	return el
}

func guessCategory(typeTag string) model.PrivateCategory {
	tag := strings.ToLower(typeTag)
	switch {
	case strings.Contains(tag, "firmware"), strings.Contains(tag, "version"):
		return model.CategoryFirmware
	case strings.Contains(tag, "hardware"):
		return model.CategoryHardware
	case strings.Contains(tag, "idpack"), strings.Contains(tag, "pack"):
		return model.CategoryPackID
	case strings.Contains(tag, "product"), strings.Contains(tag, "order"):
		return model.CategoryProductCode
	}
	return model.CategoryUnknown
}

// splitPackFields interprets a delimiter-separated raw text as positional
// pack fields. Fewer than four fields is not a pack descriptor.
func splitPackFields(raw string) *model.PackFields {
	if !strings.Contains(raw, packDelimiter) {
		return nil
	}
	parts := strings.Split(raw, packDelimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	if len(parts) < 4 {
		return nil
	}
	f := &model.PackFields{
		PackNumber: parts[0],
		DeviceType: parts[1],
		Variant:    parts[2],
		Version:    parts[3],
	}
	if len(parts) > 4 {
		f.Revision = parts[4]
	}
	return f
}

// firstCategoryValue returns the raw value of the first element classified
// into the category, preferring exact classifications over guessed ones.
func firstCategoryValue(privates []model.PrivateElement, cat model.PrivateCategory) string {
	for _, p := range privates {
		if p.Category == cat && !p.Guessed && p.Raw != "" {
			return p.Raw
		}
	}
	for _, p := range privates {
		if p.Category == cat && p.Raw != "" {
			return p.Raw
		}
	}
	return ""
}
