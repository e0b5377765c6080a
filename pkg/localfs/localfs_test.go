//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package localfs_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/rom-sync/pkg/localfs"
)

func TestOpenDir_RealDirectory(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.gb"), "aaaa")
	writeFile(t, filepath.Join(root, "b.gb"), "bb")
	g.Expect(os.Mkdir(filepath.Join(root, "nested"), 0o755)).To(Succeed())
	writeFile(t, filepath.Join(root, "nested", "c.gb"), "c")

	dir, err := localfs.OpenDir(root)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(dir.Name()).To(Equal(filepath.Base(root)))

	// Files lists only files, sorted
	files, err := dir.Files()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(names(files)).To(Equal([]string{"a.gb", "b.gb"}))

	size, err := files[0].Size()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(size).To(Equal(int64(4)))

	// Subdirs lists only directories
	subdirs, err := dir.Subdirs()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(subdirs).To(HaveLen(1))
	g.Expect(subdirs[0].Name()).To(Equal("nested"))

	// Subdir opens by name
	nested, err := dir.Subdir("nested")
	g.Expect(err).ShouldNot(HaveOccurred())
	nestedFiles, err := nested.Files()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(names(nestedFiles)).To(Equal([]string{"c.gb"}))
}

func TestOpenDir_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := localfs.OpenDir(filepath.Join(t.TempDir(), "missing"))
	g.Expect(err).Should(HaveOccurred())

	// A file is not a directory
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "file.txt"), "x")
	_, err = localfs.OpenDir(filepath.Join(root, "file.txt"))
	g.Expect(err).Should(HaveOccurred())

	dir, err := localfs.OpenDir(root)
	g.Expect(err).ShouldNot(HaveOccurred())
	_, err = dir.Subdir("nope")
	g.Expect(err).Should(HaveOccurred())
}

func TestFileHandle_LazyRead(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "rom.gb"), "payload")

	dir, err := localfs.OpenDir(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	files, err := dir.Files()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(files).To(HaveLen(1))

	reader, err := files[0].Open()
	g.Expect(err).ShouldNot(HaveOccurred())
	defer reader.Close()

	data, err := io.ReadAll(reader)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("payload"))
}

func TestMockDir_Behavior(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := localfs.NewMockDir("roms")
	gb := root.AddSubdir("Game Boy (GB)")
	gb.AddFile("b.gb", []byte("bb"))
	gb.AddFile("a.gb", []byte("aaaa"))
	gb.AddSubdir(".media").AddFile("a.png", []byte("img"))

	subdirs, err := root.Subdirs()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(subdirs).To(HaveLen(1))

	files, err := gb.Files()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(names(files)).To(Equal([]string{"a.gb", "b.gb"}))

	media, err := gb.Subdir(".media")
	g.Expect(err).ShouldNot(HaveOccurred())
	mediaFiles, err := media.Files()
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(names(mediaFiles)).To(Equal([]string{"a.png"}))

	_, err = gb.Subdir("missing")
	g.Expect(err).Should(HaveOccurred())
}

func TestMockFileHandle_TracksOpens(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle := localfs.NewMockFileHandle("a.gb", []byte("data"))
	g.Expect(handle.OpenCount()).To(Equal(0))

	reader, err := handle.Open()
	g.Expect(err).ShouldNot(HaveOccurred())
	data, err := io.ReadAll(reader)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(string(data)).To(Equal("data"))
	g.Expect(handle.OpenCount()).To(Equal(1))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writeFile %s: %v", path, err)
	}
}

func names(files []localfs.FileHandle) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name())
	}
	return out
}
