package devicefs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPort is the default SSH port for device connections.
const DefaultPort = 22

// ParsedTarget represents either a local directory target or an SFTP device URL.
type ParsedTarget struct {
	IsRemote bool

	// For local targets
	LocalPath string

	// For SFTP targets
	Host string
	Port int
	User string
	Path string // Remote base path
}

// ParseTarget parses a device target string, detecting whether it's a local
// directory or an SFTP URL.
// SFTP URLs have the format: sftp://user@host:port/path/to/dir
// Port is optional (defaults to 22)
// Examples:
//   - sftp://root@handheld.local/mnt/sdcard/Roms
//   - sftp://deck@192.168.1.40:2222/roms
//   - /media/backup/roms (local directory target)
func ParseTarget(target string) (*ParsedTarget, error) {
	if strings.HasPrefix(target, "sftp://") {
		return parseSFTPTarget(target)
	}

	return &ParsedTarget{
		IsRemote:  false,
		LocalPath: target,
	}, nil
}

// parseSFTPTarget parses an SFTP URL into its components.
func parseSFTPTarget(sftpURL string) (*ParsedTarget, error) {
	u, err := url.Parse(sftpURL) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.Scheme != "sftp" {
		return nil, fmt.Errorf("expected sftp:// scheme, got %s://", u.Scheme) //nolint:err113 // URL validation with actual scheme
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("SFTP URL must include username (sftp://user@host/path)") //nolint:err113,perfsprint // URL validation with format guidance
	}
	user := u.User.Username()

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("SFTP URL must include host") //nolint:err113,perfsprint // URL validation error
	}

	port := DefaultPort
	if portStr := u.Port(); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
		port = p
	}

	// SFTP path convention:
	//   sftp://user@host/path  → relative to home directory (strip leading /)
	//   sftp://user@host//path → absolute path /path (strip one /)
	//   sftp://user@host       → home directory (.)
	remotePath := u.Path
	//nolint:gocritic // if-else chain is clearer than switch for mixed conditions
	if remotePath == "" || remotePath == "/" {
		remotePath = "."
	} else if strings.HasPrefix(remotePath, "//") {
		remotePath = remotePath[1:]
	} else {
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedTarget{
		IsRemote: true,
		Host:     host,
		Port:     port,
		User:     user,
		Path:     remotePath,
	}, nil
}
