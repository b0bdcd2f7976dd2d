package formula

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches ${NAME} tokens.
var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Vars holds substitution values keyed by placeholder name.
type Vars map[string]string

// ParseAssignments builds Vars from KEY=VALUE strings.
func ParseAssignments(assignments []string) (Vars, error) {
	vars := Vars{}
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected KEY=VALUE)", a)
		}
		vars[key] = value
	}
	return vars, nil
}

// VarsFromEnv collects environment entries (in os.Environ form) whose name
// starts with prefix. Names are kept whole, so HOMEBREW_VERSION stays
// HOMEBREW_VERSION. An empty prefix selects nothing.
func VarsFromEnv(environ []string, prefix string) Vars {
	vars := Vars{}
	if prefix == "" {
		return vars
	}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, prefix) {
			vars[key] = value
		}
	}
	return vars
}

// Merge returns a new Vars with other layered over v.
func (v Vars) Merge(other Vars) Vars {
	out := make(Vars, len(v)+len(other))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range other {
		out[k] = val
	}
	return out
}

// HasPlaceholders reports whether s still contains a ${NAME} token.
func HasPlaceholders(s string) bool {
	return placeholderPattern.MatchString(s)
}

// Placeholders returns the distinct placeholder names found in s.
func Placeholders(s string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(s, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// expander substitutes placeholders and remembers which had no value.
type expander struct {
	vars       Vars
	unresolved map[string]bool
}

func (e *expander) expand(s string) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(tok string) string {
		name := tok[2 : len(tok)-1]
		if val, ok := e.vars[name]; ok {
			return val
		}
		e.unresolved[name] = true
		return tok
	})
}

// Materialize substitutes vars into every string of t and returns a new,
// validated Descriptor. The template is not modified. The second result
// lists placeholder names that had no value, sorted.
func Materialize(t *Template, vars Vars) (*Descriptor, []string, error) {
	if t == nil {
		return nil, nil, fmt.Errorf("template is nil")
	}

	e := &expander{vars: vars, unresolved: map[string]bool{}}

	d := &Descriptor{
		Name:        e.expand(t.Name),
		Description: e.expand(t.Description),
		Homepage:    e.expand(t.Homepage),
		Version:     e.expand(t.Version),
		Binary:      e.expand(t.Binary),
		Artifacts:   make([]Artifact, len(t.Artifacts)),
	}

	for i, a := range t.Artifacts {
		sum := e.expand(a.Checksum)
		if !HasPlaceholders(sum) {
			sum = strings.ToLower(sum)
		}
		d.Artifacts[i] = Artifact{
			When:         a.When,
			URL:          e.expand(a.URL),
			Checksum:     sum,
			Algorithm:    a.Algorithm,
			Format:       a.Format,
			SignatureURL: e.expand(a.SignatureURL),
		}
		if d.Artifacts[i].Algorithm == "" {
			d.Artifacts[i].Algorithm = SHA256
		}
	}

	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	unresolved := make([]string, 0, len(e.unresolved))
	for name := range e.unresolved {
		unresolved = append(unresolved, name)
	}
	sort.Strings(unresolved)

	return d, unresolved, nil
}
