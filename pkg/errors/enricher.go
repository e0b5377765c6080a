package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with the default pattern matcher and
// suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances
var pathExtractionPattern = regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich takes a standard error and enriches it with a category and actionable
// suggestions. Already-actionable errors are returned unchanged. If
// affectedPath is empty, a path is extracted from the message when possible.
func (e *enricher) Enrich(err error, affectedPath string) error {
	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()

	if affectedPath == "" {
		affectedPath = extractPath(errMsg)
	}

	category := e.matcher.Match(errMsg)
	suggestions := e.generator.Generate(category, affectedPath)

	return NewActionableError(errMsg, category, suggestions, affectedPath)
}

// extractPath pulls a path out of standard Go error message formats like
// "open /path/to/file: permission denied". Returns "" when none is found.
func extractPath(errorMsg string) string {
	if matches := pathExtractionPattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return ""
}
