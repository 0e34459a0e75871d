package corpora

import "strings"

// Directives collects `//@ key: value` header lines of a case file.
// Repeated keys accumulate in order.
type Directives map[string][]string

// ParseDirectives reads directives from the leading comment lines of text.
// Parsing stops at the first line that is neither blank nor a `//` comment.
func ParseDirectives(text string) Directives {
	d := Directives{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "//") {
			break
		}
		rest, ok := strings.CutPrefix(line, "//@")
		if !ok {
			continue
		}
		key, value, _ := strings.Cut(rest, ":")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		d[key] = append(d[key], strings.TrimSpace(value))
	}
	return d
}

// Get returns the last value of key.
func (d Directives) Get(key string) (string, bool) {
	vs := d[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}
