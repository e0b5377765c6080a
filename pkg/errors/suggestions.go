package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryConnection:
		return g.generateConnectionSuggestions()
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryDeviceSpace:
		return g.generateDeviceSpaceSuggestions()
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryTransfer:
		return g.generateTransferSuggestions()
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateConnectionSuggestions() []string {
	return []string{
		"Check the device is still powered on and connected to the network",
		"Verify the device hasn't gone to sleep mid-transfer",
		"Re-run the sync - already-transferred files will show as existing",
	}
}

func (g *suggestionGenerator) generateDeviceSpaceSuggestions() []string {
	return []string{
		"Free up space on the device's SD card",
		"Remove unused ROMs or media files from the device",
		"Check available space on the device with 'df -h' over SSH",
	}
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the device base path is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists on the device: "+path)
	}

	suggestions = append(suggestions, "Ensure the SD card is mounted on the device")

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure the SSH user has write access to the ROM directories",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s' over SSH", path))
	}

	suggestions = append(suggestions, "Some firmware mounts the SD card read-only until fully booted - try rebooting the device")

	return suggestions
}

func (g *suggestionGenerator) generateTransferSuggestions() []string {
	return []string{
		"Try the operation again - this may be a transient I/O error",
		"Check the device's SD card for corruption",
		"Verify the wireless connection is stable for large transfers",
	}
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Verify the device is reachable and has free space",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible on the device: "+path)
	}

	return suggestions
}
