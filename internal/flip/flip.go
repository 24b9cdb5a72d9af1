// Package flip toggles C/C++ sources between the wg_ and wg3_ naming
// conventions, both in #include directives and in header guard macros.
package flip

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/netdebug/wgflip/internal/domain"
)

// Rule rewrites a line matched by Pattern. Apply receives the index pair of
// the leftmost match.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Apply   func(line string, loc []int) string
}

// Rules is the ordered rule list; the first rule whose pattern matches wins.
var Rules = []Rule{
	{
		Name:    "include.wg",
		Pattern: regexp.MustCompile(`^#include.*<wg_`),
		Apply:   replaceFirst("<wg_", "<wg3_"),
	},
	{
		Name:    "include.wg3",
		Pattern: regexp.MustCompile(`^#include.*<wg3_`),
		Apply:   replaceFirst("<wg3_", "<wg_"),
	},
	{
		Name:    "guard.wg",
		Pattern: regexp.MustCompile(`WG_\w+_DOT_H`),
		Apply:   replacePrefixAt("WG_", "WG3_"),
	},
	{
		Name:    "guard.wg3",
		Pattern: regexp.MustCompile(`WG3_\w+_DOT_H`),
		Apply:   replacePrefixAt("WG3_", "WG_"),
	},
}

func replaceFirst(old, repl string) func(string, []int) string {
	return func(line string, _ []int) string {
		return strings.Replace(line, old, repl, 1)
	}
}

// replacePrefixAt swaps the prefix of the matched token, not the first
// occurrence of the prefix elsewhere in the line.
func replacePrefixAt(old, repl string) func(string, []int) string {
	return func(line string, loc []int) string {
		start := loc[0]
		return line[:start] + repl + line[start+len(old):]
	}
}

// Line flips a single line. The returned rule is nil when nothing matched,
// in which case the line is returned verbatim.
func Line(line string) (string, *Rule) {
	for i := range Rules {
		r := &Rules[i]
		loc := r.Pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		return r.Apply(line, loc), r
	}
	return line, nil
}

// Lines flips every line and returns a new slice of the same length and order.
func Lines(lines []string) []string {
	return Apply(lines).Lines
}

// Result is the flipped content plus a record of what changed.
type Result struct {
	Lines   []string
	Changes []domain.LineChange
}

// Apply flips lines and records each line a rule fired on.
func Apply(lines []string) Result {
	out := Result{Lines: make([]string, len(lines))}
	for i, l := range lines {
		flipped, r := Line(l)
		out.Lines[i] = flipped
		if r == nil {
			continue
		}
		out.Changes = append(out.Changes, domain.LineChange{
			Index:  i + 1,
			Rule:   r.Name,
			Before: l,
			After:  flipped,
		})
	}
	return out
}

// FileName derives the flip-and-rename target for path. Only the base name is
// rewritten: the first "wg3_" becomes "wg_", otherwise the first "wg_" becomes
// "wg3_". Names with neither are returned unchanged.
func FileName(path string) string {
	dir, base := filepath.Split(path)
	if strings.Contains(base, "wg3_") {
		base = strings.Replace(base, "wg3_", "wg_", 1)
	} else {
		base = strings.Replace(base, "wg_", "wg3_", 1)
	}
	return dir + base
}
