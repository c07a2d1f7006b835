// Package installer assembles Python requirement sets for the anomaly
// detection stack and delegates installation to pip. Dependency resolution,
// version conflicts and rollback are pip's problem; the exit code is
// surfaced unchanged.
package installer

import (
	"embed"
	"fmt"
	"strings"
	"unicode"
)

//go:embed requirements/*.txt
var requirementsFS embed.FS

// extrasOrder fixes both the listing order and the assembly order of "full".
var extrasOrder = []string{"core", "dev", "loggers", "notebooks", "openvino"}

// OptionFull selects the union of every extra.
const OptionFull = "full"

// extras is loaded once from the embedded requirement files. The sets are
// immutable after load.
var extras = loadExtras()

func loadExtras() map[string][]string {
	m := make(map[string][]string, len(extrasOrder))
	for _, name := range extrasOrder {
		data, err := requirementsFS.ReadFile("requirements/" + name + ".txt")
		if err != nil {
			// The embedded files are fixed at compile time; a missing one is
			// a programming error.
			panic(fmt.Sprintf("installer: embedded extra %q: %v", name, err))
		}
		m[name] = parseRequirements(data)
	}
	return m
}

// parseRequirements returns the specifiers of one requirement file in file
// order, skipping blanks and comment lines.
func parseRequirements(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Extras returns the known extra names in fixed order.
func Extras() []string {
	return append([]string(nil), extrasOrder...)
}

// Requirements returns the specifiers of one extra in file order.
func Requirements(extra string) ([]string, bool) {
	reqs, ok := extras[extra]
	if !ok {
		return nil, false
	}
	return append([]string(nil), reqs...), true
}

// Assemble resolves option into requirement specifiers: "full" (or empty)
// is the union of all extras in extras order, a known extra name is that
// set, and anything else is passed through as a literal specifier.
func Assemble(option string) ([]string, error) {
	option = strings.TrimSpace(option)
	if option == "" || option == OptionFull {
		var all []string
		for _, name := range extrasOrder {
			all = append(all, extras[name]...)
		}
		return all, nil
	}
	if reqs, ok := extras[option]; ok {
		return append([]string(nil), reqs...), nil
	}
	if err := validateSpecifier(option); err != nil {
		return nil, err
	}
	return []string{option}, nil
}

// validateSpecifier applies the loosest useful check: a requirement starts
// with an alphanumeric and carries no whitespace. Everything finer grained
// (markers, extras, version sets) is pip's to judge.
func validateSpecifier(spec string) error {
	if spec == "" {
		return fmt.Errorf("empty requirement specifier")
	}
	r := rune(spec[0])
	if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
		return fmt.Errorf("invalid requirement specifier %q", spec)
	}
	if strings.ContainsAny(spec, " \t") {
		return fmt.Errorf("invalid requirement specifier %q: contains whitespace", spec)
	}
	return nil
}

// requirementName extracts the lowercase distribution name of a specifier
// ("torch>=2" -> "torch", "coverage[toml]" -> "coverage").
func requirementName(spec string) string {
	s := strings.TrimSpace(spec)
	for i, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' && r != '.' {
			return strings.ToLower(s[:i])
		}
	}
	return strings.ToLower(s)
}
