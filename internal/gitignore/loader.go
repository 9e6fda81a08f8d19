package gitignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/tree/internal/utils"
)

const (
	errorLoadFormat    = "loading %s: %v"
	errorSkippedFormat = "loading %s: skipped %d malformed line(s)"
)

// LoadError reports a .gitignore that could not be read, or lines that could not be parsed.
// It never aborts a traversal; the caller logs it and continues with the returned rules.
type LoadError struct {
	Path    string
	Err     error
	Skipped []SkippedLine
}

func (loadError *LoadError) Error() string {
	if loadError.Err != nil {
		return fmt.Sprintf(errorLoadFormat, loadError.Path, loadError.Err)
	}
	return fmt.Sprintf(errorSkippedFormat, loadError.Path, len(loadError.Skipped))
}

func (loadError *LoadError) Unwrap() error {
	return loadError.Err
}

// Load reads the .gitignore located directly in directoryPath. Nested
// .gitignore files are not consulted. A missing file yields an empty RuleSet
// and no error; an unreadable file yields an empty RuleSet and a *LoadError.
//
// #nosec G304
func Load(fileSystem afero.Fs, directoryPath string) (RuleSet, error) {
	gitignorePath := filepath.Join(directoryPath, utils.GitIgnoreFileName)
	fileHandle, openFileError := fileSystem.Open(gitignorePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, &LoadError{Path: gitignorePath, Err: openFileError}
	}
	defer fileHandle.Close()

	var lines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, &LoadError{Path: gitignorePath, Err: scanError}
	}

	ruleSet, skippedLines := Parse(lines)
	if len(skippedLines) > 0 {
		return ruleSet, &LoadError{Path: gitignorePath, Skipped: skippedLines}
	}
	return ruleSet, nil
}
