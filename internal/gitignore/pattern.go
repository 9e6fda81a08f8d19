// Package gitignore parses .gitignore files and decides which paths they exclude.
//
// Rules are evaluated in file order and the last matching rule decides the
// verdict, so a later "!name" re-includes a path excluded by an earlier rule.
// Patterns are matched segment by segment: "*", "?" and "[...]" follow
// path.Match within one segment, and a "**" segment spans zero or more
// segments. A pattern without a leading "/" matches any suffix of the path.
package gitignore

import (
	"errors"
	"path"
	"strings"
)

const (
	commentPrefix      = "#"
	negationPrefix     = "!"
	segmentSeparator   = "/"
	zeroOrMoreSegments = "**"
)

var (
	errEmptyPattern = errors.New("pattern is empty")
)

// Pattern is one compiled .gitignore rule.
type Pattern struct {
	Raw           string
	Glob          string
	Negated       bool
	DirectoryOnly bool
	Anchored      bool
	segments      []string
}

// ParsePattern compiles a single non-comment, non-blank line.
func ParsePattern(line string) (Pattern, error) {
	pattern := Pattern{Raw: line}
	remainder := line

	if strings.HasPrefix(remainder, negationPrefix) {
		pattern.Negated = true
		remainder = strings.TrimPrefix(remainder, negationPrefix)
	}
	if strings.HasPrefix(remainder, segmentSeparator) {
		pattern.Anchored = true
		remainder = strings.TrimLeft(remainder, segmentSeparator)
	}
	if strings.HasSuffix(remainder, segmentSeparator) {
		pattern.DirectoryOnly = true
		remainder = strings.TrimRight(remainder, segmentSeparator)
	}
	pattern.Glob = remainder

	for _, segment := range strings.Split(remainder, segmentSeparator) {
		if segment == "" {
			continue
		}
		if _, matchError := path.Match(segment, ""); matchError != nil {
			return Pattern{}, matchError
		}
		pattern.segments = append(pattern.segments, segment)
	}
	if len(pattern.segments) == 0 {
		return Pattern{}, errEmptyPattern
	}
	return pattern, nil
}

// Matches reports whether the pattern applies to the slash-separated relative path.
// Negation is not applied here; the caller owns the verdict.
func (pattern Pattern) Matches(relativePath string, isDirectory bool) bool {
	if pattern.DirectoryOnly && !isDirectory {
		return false
	}
	pathSegments := splitPath(relativePath)
	if len(pathSegments) == 0 {
		return false
	}
	if pattern.Anchored {
		return matchSegments(pattern.segments, pathSegments)
	}
	for startIndex := range pathSegments {
		if matchSegments(pattern.segments, pathSegments[startIndex:]) {
			return true
		}
	}
	return false
}

func splitPath(relativePath string) []string {
	var pathSegments []string
	for _, segment := range strings.Split(strings.ReplaceAll(relativePath, "\\", segmentSeparator), segmentSeparator) {
		if segment == "" || segment == "." {
			continue
		}
		pathSegments = append(pathSegments, segment)
	}
	return pathSegments
}

// matchSegments requires the whole path to be consumed by the pattern.
func matchSegments(patternSegments, pathSegments []string) bool {
	if len(patternSegments) == 0 {
		return len(pathSegments) == 0
	}
	if patternSegments[0] == zeroOrMoreSegments {
		// a trailing "**" matches everything inside, not the directory itself
		if len(patternSegments) == 1 {
			return len(pathSegments) > 0
		}
		for skipped := 0; skipped <= len(pathSegments); skipped++ {
			if matchSegments(patternSegments[1:], pathSegments[skipped:]) {
				return true
			}
		}
		return false
	}
	if len(pathSegments) == 0 {
		return false
	}
	isMatched, matchError := path.Match(patternSegments[0], pathSegments[0])
	if matchError != nil || !isMatched {
		return false
	}
	return matchSegments(patternSegments[1:], pathSegments[1:])
}
