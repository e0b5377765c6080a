// Package naming parses the "Display Name (CODE)" directory convention
// used for system folders on both the local library and the device.
package naming

import (
	"fmt"
	"strings"
)

// SystemName is a parsed system directory name.
type SystemName struct {
	DisplayName string // Human-readable platform name, e.g. "Game Boy"
	Code        string // Short platform code, e.g. "GB"
}

// Parse parses a directory name following the "Display Name (CODE)" convention.
// Returns (SystemName, false) for names that don't follow the convention -
// callers are expected to skip those, not error out.
func Parse(dirName string) (SystemName, bool) {
	trimmed := strings.TrimSpace(dirName)
	if !strings.HasSuffix(trimmed, ")") {
		return SystemName{}, false
	}

	open := strings.LastIndex(trimmed, "(")
	if open <= 0 {
		return SystemName{}, false
	}

	display := strings.TrimSpace(trimmed[:open])
	code := strings.TrimSpace(trimmed[open+1 : len(trimmed)-1])

	if display == "" || code == "" {
		return SystemName{}, false
	}

	// Codes with nested parens are not part of the convention
	if strings.ContainsAny(code, "()") {
		return SystemName{}, false
	}

	return SystemName{DisplayName: display, Code: code}, true
}

// Format renders the canonical directory name for a system.
func Format(name SystemName) string {
	return fmt.Sprintf("%s (%s)", name.DisplayName, name.Code)
}

// String returns the canonical directory name.
func (n SystemName) String() string {
	return Format(n)
}
