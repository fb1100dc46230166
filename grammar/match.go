package grammar

import "path"

// Allowed reports whether code passes the skip and allow pattern lists.
// Patterns use shell-style wildcards. Skip is checked first and wins over
// allow; an empty allow list admits everything not skipped.
func Allowed(code string, allow, skip []string) bool {
	if matchAny(code, skip) {
		return false
	}

	if len(allow) == 0 {
		return true
	}

	return matchAny(code, allow)
}

func matchAny(code string, patterns []string) bool {
	for _, pattern := range patterns {
		// Codes never contain separators, so path.Match is a plain
		// fnmatch here. A malformed pattern matches nothing.
		if ok, err := path.Match(pattern, code); err == nil && ok {
			return true
		}
	}

	return false
}
