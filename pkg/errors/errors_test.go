package errors_test

import (
	stderrors "errors"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/rom-sync/pkg/errors"
)

func TestPatternMatcher_Categories(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := errors.NewPatternMatcher()

	tests := []struct {
		msg      string
		category errors.ErrorCategory
	}{
		{"write /roms/a.gb: permission denied", errors.CategoryPermission},
		{"mkdir /roms: read-only file system", errors.CategoryPermission},
		{"write /roms/a.gb: no space left on device", errors.CategoryDeviceSpace},
		{"stat /roms: no such file or directory", errors.CategoryPath},
		{"ssh: handshake failed", errors.CategoryConnection},
		{"write: broken pipe", errors.CategoryConnection},
		{"copy: short write", errors.CategoryTransfer},
		{"something inexplicable", errors.CategoryUnknown},
	}

	for _, tt := range tests {
		g.Expect(matcher.Match(tt.msg)).To(Equal(tt.category), "message %q", tt.msg)
	}
}

func TestPatternMatcher_ConnectionWinsOverTransfer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := errors.NewPatternMatcher()

	// A dropped session that also reports an i/o error is a connection problem
	category := matcher.Match("i/o error: connection reset by peer")
	g.Expect(category).To(Equal(errors.CategoryConnection))
}

func TestEnricher_EnrichesWithSuggestions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	enricher := errors.NewEnricher()

	err := stderrors.New("write /mnt/sdcard/Roms/a.gb: no space left on device")
	enriched := enricher.Enrich(err, "/mnt/sdcard/Roms/a.gb")

	var actionable errors.ActionableError
	g.Expect(stderrors.As(enriched, &actionable)).To(BeTrue())
	g.Expect(actionable.Category()).To(Equal(errors.CategoryDeviceSpace))
	g.Expect(actionable.AffectedPath()).To(Equal("/mnt/sdcard/Roms/a.gb"))
	g.Expect(actionable.Suggestions()).ToNot(BeEmpty())
}

func TestEnricher_ExtractsPathFromMessage(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	enricher := errors.NewEnricher()

	err := stderrors.New("open /roms/Game: permission denied")
	enriched := enricher.Enrich(err, "")

	var actionable errors.ActionableError
	g.Expect(stderrors.As(enriched, &actionable)).To(BeTrue())
	g.Expect(actionable.AffectedPath()).To(Equal("/roms/Game"))
}

func TestEnricher_PassesThroughActionable(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	enricher := errors.NewEnricher()

	original := errors.NewActionableError("boom", errors.CategoryTransfer, []string{"retry"}, "")
	enriched := enricher.Enrich(original, "/some/path")
	g.Expect(enriched).To(BeIdenticalTo(original))
}

func TestFormatSuggestions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(errors.FormatSuggestions(nil)).To(Equal(""))
	g.Expect(errors.FormatSuggestions(stderrors.New("plain"))).To(Equal(""))

	actionable := errors.NewActionableError("boom", errors.CategoryUnknown, []string{"one", "two"}, "")
	g.Expect(errors.FormatSuggestions(actionable)).To(Equal("  • one\n  • two"))
}
