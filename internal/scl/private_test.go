package scl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/substation-tools/icdcat/internal/model"
)

func TestClassifyPrivateExactTags(t *testing.T) {
	ts := map[string]model.PrivateCategory{
		"COMPAS-IEDType":   model.CategoryDeviceType,
		"COMPAS-ICDHeader": model.CategoryConfig,
		"SCLE_IDPACK":      model.CategoryPackID,
		"SCLE_Firmware":    model.CategoryFirmware,
		"SCLE_Hardware":    model.CategoryHardware,
		"SCLE_OrderCode":   model.CategoryProductCode,
		"IEC61850-Edition": model.CategoryStandard,
	}
	for tag, cat := range ts {
		el := ClassifyPrivate(model.PrivateXML{Type: tag, Text: " value "})
		assert.Equal(t, cat, el.Category, "tag %s", tag)
		assert.False(t, el.Guessed, "tag %s", tag)
		assert.Equal(t, "value", el.Raw)
	}
}

func TestClassifyPrivateKeywordGuess(t *testing.T) {
	ts := map[string]model.PrivateCategory{
		"Vendor-FirmwareRev": model.CategoryFirmware,
		"SW_Version":         model.CategoryFirmware,
		"HardwareId":         model.CategoryHardware,
		"Vendor_IdPack":      model.CategoryPackID,
		"ProductName":        model.CategoryProductCode,
		"OrderNumber":        model.CategoryProductCode,
		"SomethingElse":      model.CategoryUnknown,
	}
	for tag, cat := range ts {
		el := ClassifyPrivate(model.PrivateXML{Type: tag, Text: "x"})
		assert.Equal(t, cat, el.Category, "tag %s", tag)
		assert.True(t, el.Guessed, "tag %s", tag)
	}
}

func TestClassifyPrivatePackDescriptor(t *testing.T) {
	el := ClassifyPrivate(model.PrivateXML{
		Type: "Vendor-Extension",
		Text: "3815#SCU-ORG#LIGNE#2.2a#1",
	})
	assert.Equal(t, model.CategoryPackID, el.Category)
	assert.True(t, el.Guessed)
	require.NotNil(t, el.Pack)
	assert.Equal(t, "3815", el.Pack.PackNumber)
	assert.Equal(t, "SCU-ORG", el.Pack.DeviceType)
	assert.Equal(t, "LIGNE", el.Pack.Variant)
	assert.Equal(t, "2.2a", el.Pack.Version)
	assert.Equal(t, "1", el.Pack.Revision)
	assert.Equal(t, "2.2a", el.Version)
}

func TestClassifyPrivateVersionExtraction(t *testing.T) {
	el := ClassifyPrivate(model.PrivateXML{Type: "Anything", Text: "release 4.11.2 build 7"})
	assert.Equal(t, "4.11.2", el.Version)

	el = ClassifyPrivate(model.PrivateXML{Type: "Anything", Text: "no digits here"})
	assert.Empty(t, el.Version)

	// a bare integer is not version shaped
	el = ClassifyPrivate(model.PrivateXML{Type: "Anything", Text: "42"})
	assert.Empty(t, el.Version)
}

func TestSplitPackFields(t *testing.T) {
	t.Run("too few fields", func(t *testing.T) {
		assert.Nil(t, splitPackFields("a#b#c"))
		assert.Nil(t, splitPackFields("no delimiter"))
	})

	t.Run("four fields without revision", func(t *testing.T) {
		f := splitPackFields("100# SCU #BAY#1.0")
		require.NotNil(t, f)
		assert.Equal(t, "SCU", f.DeviceType)
		assert.Empty(t, f.Revision)
	})
}

func TestFirstCategoryValuePrefersExact(t *testing.T) {
	privates := []model.PrivateElement{
		{Category: model.CategoryFirmware, Guessed: true, Raw: "guessed"},
		{Category: model.CategoryFirmware, Raw: "exact"},
	}
	assert.Equal(t, "exact", firstCategoryValue(privates, model.CategoryFirmware))
	assert.Empty(t, firstCategoryValue(privates, model.CategoryHardware))

	onlyGuessed := privates[:1]
	assert.Equal(t, "guessed", firstCategoryValue(onlyGuessed, model.CategoryFirmware))
}
