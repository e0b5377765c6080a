package shared

import "fmt"

const bytesPerUnit = 1024

// FormatBytes formats bytes into human-readable format (e.g., "1.5 MB")
func FormatBytes(bytes int64) string {
	if bytes < bytesPerUnit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(bytesPerUnit), 0
	for n := bytes / bytesPerUnit; n >= bytesPerUnit; n /= bytesPerUnit {
		div *= bytesPerUnit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
