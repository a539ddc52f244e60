package typescript

import (
	"strings"
)

// Format is the post-pass over the generator's raw output. It reflows
// whitespace only: runs of blank lines collapse to one, trailing spaces
// are trimmed, and the text ends with exactly one newline. The token
// sequence is untouched, so generated identifiers and literals survive
// byte-for-byte.
func Format(src string) string {
	lines := strings.Split(src, "\n")
	var out []string
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	text := strings.Join(out, "\n")
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}
