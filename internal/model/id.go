package model

import (
	"regexp"
	"strings"
)

const (
	IdentityPrefix  = "ICD_"
	UnknownIdentity = IdentityPrefix + "UNKNOWN"
	// UnknownDeviceType is the sentinel used when neither the Private
	// metadata nor the declared type attribute yields a device type.
	UnknownDeviceType = "UNKNOWN"
)

var nonAlnumRuns = regexp.MustCompile(`[^A-Z0-9]+`)

// DeriveIdentity computes the deterministic catalog key of a device from
// exactly these four fields, in this order. Two devices with equal inputs are
// by definition the same catalog entry, regardless of structural content.
func DeriveIdentity(deviceType, manufacturer, configVersion, desc string) string {
	joined := strings.Join([]string{deviceType, manufacturer, configVersion, desc}, "_")
	s := strings.ToUpper(joined)
	s = nonAlnumRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return UnknownIdentity
	}
	return IdentityPrefix + s
}
