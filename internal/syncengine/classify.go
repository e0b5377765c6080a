package syncengine

// classifyFiles merges scanned local files with the device's name→size
// lookups into classified sync candidates.
//
// A file with a same-named counterpart in its bucket (root vs media) is
// StatusExists and deselected by default - overwriting device content
// requires explicit opt-in. A file with no counterpart is StatusNew and
// selected by default, so "add what's missing" needs no per-file clicking.
func classifyFiles(files []localFile, listing remoteListing) []*File {
	classified := make([]*File, 0, len(files))

	for _, local := range files {
		sizes := listing.rootSizes
		if local.isMedia {
			sizes = listing.mediaSizes
		}

		file := &File{
			Name:      local.name,
			IsMedia:   local.isMedia,
			LocalSize: local.size,
			Source:    local.handle,
		}

		if deviceSize, found := sizes[local.name]; found {
			file.Status = StatusExists
			file.DeviceSize = deviceSize
			file.Selected = false
		} else {
			file.Status = StatusNew
			file.Selected = true
		}

		classified = append(classified, file)
	}

	return classified
}
