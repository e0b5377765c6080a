package devicefs

import (
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// SFTPDevice implements FS over an SSH/SFTP connection to the device.
//
// All engine operations are strictly sequential, so a single SFTP client
// serves every call - the device multiplexes everything over one transport
// session anyway.
type SFTPDevice struct {
	sshClient  *ssh.Client
	sftpClient *sftp.Client
	host       string
	port       int
	user       string
}

// Connect establishes an SSH connection to the device and opens an SFTP session.
// It uses SSH agent and default SSH keys for authentication.
func Connect(host string, port int, user string) (*SFTPDevice, error) {
	authMethods, err := getSSHAuthMethods()
	if err != nil {
		return nil, fmt.Errorf("failed to get SSH auth methods: %w", err)
	}

	if len(authMethods) == 0 {
		return nil, fmt.Errorf("no SSH authentication methods available (tried SSH agent and default keys)") //nolint:err113,perfsprint // Setup guidance for the user
	}

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // Handheld devices rotate host keys on reflash; pinning would lock users out
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	sshClient, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("SSH connection failed: %w", err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("SFTP session creation failed: %w", err)
	}

	return &SFTPDevice{
		sshClient:  sshClient,
		sftpClient: sftpClient,
		host:       host,
		port:       port,
		user:       user,
	}, nil
}

// List returns the entries of a remote directory.
func (d *SFTPDevice) List(dirPath string) ([]Entry, error) {
	infos, err := d.sftpClient.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("list %s: %w", dirPath, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to list remote directory %s: %w", dirPath, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			Name:  info.Name(),
			Size:  info.Size(),
			IsDir: info.IsDir(),
		})
	}

	return entries, nil
}

// EnsureDir creates a remote directory and all necessary parents.
func (d *SFTPDevice) EnsureDir(dirPath string) error {
	err := d.sftpClient.MkdirAll(dirPath)
	if err != nil {
		return fmt.Errorf("failed to create remote directory %s: %w", dirPath, err)
	}

	return nil
}

// WriteFile writes the reader's contents to a remote path, replacing any
// existing file.
func (d *SFTPDevice) WriteFile(filePath string, r io.Reader) error {
	file, err := d.sftpClient.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", filePath, err)
	}

	_, copyErr := io.Copy(file, r)
	closeErr := file.Close()

	if copyErr != nil {
		return fmt.Errorf("failed to write remote file %s: %w", filePath, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close remote file %s: %w", filePath, closeErr)
	}

	return nil
}

// Close closes the SFTP session and SSH connection.
func (d *SFTPDevice) Close() error {
	var firstErr error

	if d.sftpClient != nil {
		if err := d.sftpClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if d.sshClient != nil {
		if err := d.sshClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// Join joins remote path elements with forward slashes.
// Device paths are always slash-separated regardless of the local OS.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// getSSHAuthMethods returns SSH authentication methods in priority order:
// 1. SSH agent
// 2. Default SSH keys
func getSSHAuthMethods() ([]ssh.AuthMethod, error) {
	var authMethods []ssh.AuthMethod

	if agentAuth := trySSHAgent(); agentAuth != nil {
		authMethods = append(authMethods, agentAuth)
	}

	keyAuths, err := tryDefaultSSHKeys()
	if err == nil && len(keyAuths) > 0 {
		authMethods = append(authMethods, keyAuths...)
	}

	return authMethods, nil
}

// trySSHAgent attempts to connect to the SSH agent.
func trySSHAgent() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}

	agentClient := agent.NewClient(conn)

	return ssh.PublicKeysCallback(agentClient.Signers)
}

// tryDefaultSSHKeys tries to load SSH keys from default locations.
func tryDefaultSSHKeys() ([]ssh.AuthMethod, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	sshDir := filepath.Join(homeDir, ".ssh")

	// Default key files to try (in order)
	keyFiles := []string{
		filepath.Join(sshDir, "id_ed25519"),
		filepath.Join(sshDir, "id_rsa"),
		filepath.Join(sshDir, "id_ecdsa"),
	}

	var authMethods []ssh.AuthMethod

	for _, keyPath := range keyFiles {
		if _, err := os.Stat(keyPath); os.IsNotExist(err) {
			continue
		}

		keyData, err := os.ReadFile(keyPath)
		if err != nil {
			continue
		}

		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			// Encrypted keys are skipped (password-protected keys unsupported)
			continue
		}

		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}

	return authMethods, nil
}
