package syncengine

import (
	"fmt"
	"strings"

	"github.com/joe/rom-sync/pkg/localfs"
	"github.com/joe/rom-sync/pkg/naming"
)

// localFile is one file discovered under a system directory.
type localFile struct {
	name    string
	isMedia bool
	size    int64
	handle  localfs.FileHandle
}

// localSystem is one recognized system directory with its candidate files.
type localSystem struct {
	dirName string
	files   []localFile
}

// scanLocalTree discovers system directories one level under the root and
// enumerates their candidate files.
//
// Directories whose names don't follow the "Display Name (CODE)" convention
// are silently skipped - unrelated folders are expected to coexist in the
// chosen root. Dotfiles and filter-excluded names are skipped. A system with
// zero qualifying files is dropped. Returns ErrNoSystems when nothing
// qualifies.
func scanLocalTree(root localfs.Dir, mediaDir string, filter FileFilter) ([]localSystem, error) {
	subdirs, err := root.Subdirs()
	if err != nil {
		return nil, fmt.Errorf("failed to scan local root: %w", err)
	}

	var systems []localSystem

	for _, dir := range subdirs {
		if _, ok := naming.Parse(dir.Name()); !ok {
			continue
		}

		files, err := scanSystemDir(dir, mediaDir, filter)
		if err != nil {
			return nil, err
		}

		if len(files) == 0 {
			continue
		}

		systems = append(systems, localSystem{dirName: dir.Name(), files: files})
	}

	if len(systems) == 0 {
		return nil, ErrNoSystems
	}

	return systems, nil
}

// scanSystemDir enumerates a system directory's root files plus its media
// subfolder, when present.
func scanSystemDir(dir localfs.Dir, mediaDir string, filter FileFilter) ([]localFile, error) {
	files, err := scanFiles(dir, false, filter)
	if err != nil {
		return nil, err
	}

	// The media subfolder is optional; any open failure means "absent"
	media, err := dir.Subdir(mediaDir)
	if err == nil {
		mediaFiles, err := scanFiles(media, true, filter)
		if err != nil {
			return nil, err
		}

		files = append(files, mediaFiles...)
	}

	return files, nil
}

// scanFiles lists one directory's qualifying files with their sizes.
func scanFiles(dir localfs.Dir, isMedia bool, filter FileFilter) ([]localFile, error) {
	handles, err := dir.Files()
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %s: %w", dir.Name(), err)
	}

	var files []localFile

	for _, handle := range handles {
		name := handle.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if filter != nil && !filter.ShouldInclude(name) {
			continue
		}

		size, err := handle.Size()
		if err != nil {
			return nil, fmt.Errorf("failed to size %s: %w", name, err)
		}

		files = append(files, localFile{
			name:    name,
			isMedia: isMedia,
			size:    size,
			handle:  handle,
		})
	}

	return files, nil
}
