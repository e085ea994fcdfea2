package recommender

import "strings"

const (
	expectMarker   = "expect("
	callDelimiter  = ")."
	testFuncMarker = "def test_"
)

// Extraction is what gets parsed out of one model response.
type Extraction struct {
	TestCode   string
	Assertions []string
	Identifier string
	Found      bool
}

// Extract parses generated test code. It does not touch any state.
func Extract(raw string) Extraction {
	lines := strings.Split(raw, "\n")

	ex := Extraction{
		TestCode:   strings.TrimSpace(raw),
		Assertions: extractAssertions(lines),
	}
	ex.Identifier, ex.Found = extractIdentifier(lines)
	return ex
}

// extractAssertions keeps, in order, every line calling a method on an expect(...) result.
func extractAssertions(lines []string) []string {
	assertions := []string{}
	for _, line := range lines {
		idx := strings.Index(line, expectMarker)
		if idx < 0 {
			continue
		}
		if !strings.Contains(line[idx+len(expectMarker):], callDelimiter) {
			continue
		}
		assertions = append(assertions, strings.TrimSpace(line))
	}
	return assertions
}

// extractIdentifier returns the name of the first test function, exactly as
// written between the marker and "(". The name may be empty. Later
// definitions are ignored.
func extractIdentifier(lines []string) (string, bool) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, testFuncMarker) {
			continue
		}
		name := strings.TrimPrefix(trimmed, testFuncMarker)
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		return name, true
	}
	return "", false
}
