package shared_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/rom-sync/internal/tui/shared"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.FormatBytes(0)).Should(Equal("0 B"))
	g.Expect(shared.FormatBytes(500)).Should(Equal("500 B"))
	g.Expect(shared.FormatBytes(1024)).Should(Equal("1.0 KB"))
	g.Expect(shared.FormatBytes(1536)).Should(Equal("1.5 KB"))
	g.Expect(shared.FormatBytes(1024 * 1024)).Should(Equal("1.0 MB"))
	g.Expect(shared.FormatBytes(5 * 1024 * 1024 * 1024)).Should(Equal("5.0 GB"))
}
