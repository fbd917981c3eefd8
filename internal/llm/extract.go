package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	controlChars   = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON locates the JSON object a model reply is expected to
// contain (models often wrap it in prose or markdown fences) and
// unmarshals it into v.
//
// The candidate is the greedy first-`{`-to-last-`}` substring. If a
// strict parse fails, exactly one bounded repair pass runs: strip
// ASCII control characters and drop trailing commas before a closing
// brace or bracket. Anything still unparseable is a response-format
// error carrying a prefix of the original text for server-side
// diagnostics.
func ExtractJSON(raw string, v any) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return NewError(KindResponseFormat, fmt.Errorf("no JSON object in model reply: %q", snippet(raw)))
	}

	candidate := raw[start : end+1]
	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return nil
	}

	repaired := controlChars.ReplaceAllString(candidate, "")
	repaired = trailingCommas.ReplaceAllString(repaired, "$1")
	repaired = strings.TrimSpace(repaired)

	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return NewError(KindResponseFormat, fmt.Errorf("model reply not parseable after repair: %w (reply: %q)", err, snippet(raw)))
	}
	return nil
}

// snippet bounds diagnostic output to roughly the first 200 bytes,
// cutting on a rune boundary so multi-byte characters stay intact.
func snippet(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
