package utils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/tree/internal/utils"
)

func TestRelativePathOrSelf(t *testing.T) {
	rootDirectory := filepath.Join(string(filepath.Separator), "workspace", "project")

	testCases := []struct {
		name     string
		fullPath string
		expected string
	}{
		{name: "root itself", fullPath: rootDirectory, expected: "."},
		{name: "direct child", fullPath: filepath.Join(rootDirectory, "main.go"), expected: "main.go"},
		{name: "nested child", fullPath: filepath.Join(rootDirectory, "internal", "cli", "cli.go"), expected: "internal/cli/cli.go"},
		{name: "trailing separator on root", fullPath: filepath.Join(rootDirectory, "docs") + string(filepath.Separator), expected: "docs"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, utils.RelativePathOrSelf(testCase.fullPath, rootDirectory))
		})
	}
}

func TestIsHiddenName(t *testing.T) {
	assert.True(t, utils.IsHiddenName(".git"))
	assert.True(t, utils.IsHiddenName(".hidden"))
	assert.False(t, utils.IsHiddenName("visible.txt"))
	assert.False(t, utils.IsHiddenName("dir.d"))
}

func TestDeduplicatePathsPreservesFirstOccurrence(t *testing.T) {
	deduplicated := utils.DeduplicatePaths([]string{"b", "a", "b", "c", "a"})
	require.Equal(t, []string{"b", "a", "c"}, deduplicated)
}

func TestNewApplicationLogger(t *testing.T) {
	quietLogger, quietError := utils.NewApplicationLogger(false)
	require.NoError(t, quietError)
	assert.False(t, quietLogger.Core().Enabled(zapcore.DebugLevel))

	verboseLogger, verboseError := utils.NewApplicationLogger(true)
	require.NoError(t, verboseError)
	assert.True(t, verboseLogger.Core().Enabled(zapcore.DebugLevel))
}
