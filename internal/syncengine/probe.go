package syncengine

import (
	"github.com/joe/rom-sync/pkg/devicefs"
)

// remoteListing is what the device reports for one system directory:
// name→size for the system root and for its media subfolder.
type remoteListing struct {
	rootSizes  map[string]int64
	mediaSizes map[string]int64
}

// probeSystem queries the device for one system's file listings.
//
// The synchronization key is the directory name itself - the device is
// addressed with the identical dirName used locally. A listing that fails
// (directory absent or unlistable) is folded to zero remote files: a system
// that exists only locally is entirely new.
func probeSystem(device devicefs.FS, basePath, mediaDir, dirName string) remoteListing {
	systemPath := devicefs.Join(basePath, dirName)

	return remoteListing{
		rootSizes:  listSizes(device, systemPath),
		mediaSizes: listSizes(device, devicefs.Join(systemPath, mediaDir)),
	}
}

// listSizes lists one device directory into a name→size map.
// Any listing error yields an empty map.
func listSizes(device devicefs.FS, path string) map[string]int64 {
	sizes := make(map[string]int64)

	entries, err := device.List(path)
	if err != nil {
		return sizes
	}

	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		sizes[entry.Name] = entry.Size
	}

	return sizes
}
