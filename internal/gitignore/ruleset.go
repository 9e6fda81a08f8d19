package gitignore

import (
	"strings"

	"github.com/temirov/tree/internal/utils"
)

// RuleSet is an ordered list of patterns. Order is significant.
type RuleSet []Pattern

// SkippedLine records a malformed line that was left out of a RuleSet.
type SkippedLine struct {
	Number int
	Text   string
	Err    error
}

// Parse compiles .gitignore lines in order. Blank lines and comments are
// ignored; malformed lines are returned separately and do not abort parsing.
func Parse(lines []string) (RuleSet, []SkippedLine) {
	var ruleSet RuleSet
	var skippedLines []SkippedLine
	for lineIndex, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		pattern, parseError := ParsePattern(trimmedLine)
		if parseError != nil {
			skippedLines = append(skippedLines, SkippedLine{Number: lineIndex + 1, Text: trimmedLine, Err: parseError})
			continue
		}
		ruleSet = append(ruleSet, pattern)
	}
	return ruleSet, skippedLines
}

// Matches reports whether relativePath is excluded. Every rule is consulted
// and the last one that matches decides.
func (ruleSet RuleSet) Matches(relativePath string, isDirectory bool) bool {
	excluded := false
	for _, pattern := range ruleSet {
		if pattern.Matches(relativePath, isDirectory) {
			excluded = !pattern.Negated
		}
	}
	return excluded
}

// IsRootGitDirectory reports whether relativePath names the .git entry directly under the traversal root.
func IsRootGitDirectory(relativePath string) bool {
	return relativePath == utils.GitDirectoryName
}
