package config_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/tree/internal/config"
)

const (
	testHomeDirectory    = "/home/tester"
	testWorkingDirectory = "/work"
)

func boolPointer(value bool) *bool {
	return &value
}

func intPointer(value int) *int {
	return &value
}

func writeConfig(t *testing.T, fileSystem afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fileSystem, path, []byte(content), 0o600))
}

func globalConfigPath() string {
	return filepath.Join(testHomeDirectory, ".tree", "config.yaml")
}

func localConfigPath() string {
	return filepath.Join(testWorkingDirectory, ".tree.yaml")
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name          string
		globalContent string
		localContent  string
		explicitPath  string
		explicitBody  string
		expected      config.ApplicationConfiguration
	}{
		{
			name:     "no files",
			expected: config.ApplicationConfiguration{},
		},
		{
			name:          "global only",
			globalContent: "all: true\nmax_depth: 3\nformat: json\n",
			expected:      config.ApplicationConfiguration{All: boolPointer(true), MaxDepth: intPointer(3), Format: "json"},
		},
		{
			name:          "local overrides global",
			globalContent: "all: true\nformat: json\ncolor: never\ncopy: true\n",
			localContent:  "all: false\nformat: yaml\ngitignore: true\n",
			expected: config.ApplicationConfiguration{
				All:       boolPointer(false),
				Format:    "yaml",
				Color:     "never",
				Gitignore: boolPointer(true),
				Clipboard: boolPointer(true),
			},
		},
		{
			name:          "explicit path replaces local file",
			globalContent: "dirs_only: true\n",
			localContent:  "format: xml\n",
			explicitPath:  "custom.yaml",
			explicitBody:  "no_indent: true\nfull_path: true\n",
			expected: config.ApplicationConfiguration{
				DirsOnly: boolPointer(true),
				NoIndent: boolPointer(true),
				FullPath: boolPointer(true),
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			fileSystem := afero.NewMemMapFs()
			require.NoError(t, fileSystem.MkdirAll(testWorkingDirectory, 0o755))
			if testCase.globalContent != "" {
				writeConfig(t, fileSystem, globalConfigPath(), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfig(t, fileSystem, localConfigPath(), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeConfig(t, fileSystem, filepath.Join(testWorkingDirectory, testCase.explicitPath), testCase.explicitBody)
			}

			loaded, err := config.LoadApplicationConfiguration(config.LoadOptions{
				FileSystem:       fileSystem,
				WorkingDirectory: testWorkingDirectory,
				HomeDirectory:    testHomeDirectory,
				ExplicitFilePath: testCase.explicitPath,
			})
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, loaded)
		})
	}
}

func TestLoadApplicationConfigurationRequiresExplicitFile(t *testing.T) {
	_, err := config.LoadApplicationConfiguration(config.LoadOptions{
		FileSystem:       afero.NewMemMapFs(),
		WorkingDirectory: testWorkingDirectory,
		HomeDirectory:    testHomeDirectory,
		ExplicitFilePath: "missing.yaml",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	writeConfig(t, fileSystem, localConfigPath(), "all: [unclosed\n")

	_, err := config.LoadApplicationConfiguration(config.LoadOptions{
		FileSystem:       fileSystem,
		WorkingDirectory: testWorkingDirectory,
		HomeDirectory:    testHomeDirectory,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read configuration")
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, fileSystem.MkdirAll(localConfigPath(), 0o755))

	_, err := config.LoadApplicationConfiguration(config.LoadOptions{
		FileSystem:       fileSystem,
		WorkingDirectory: testWorkingDirectory,
		HomeDirectory:    testHomeDirectory,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestMergeKeepsReceiverValuesWhenOverrideIsUnset(t *testing.T) {
	base := config.ApplicationConfiguration{All: boolPointer(true), MaxDepth: intPointer(2), Color: "always"}
	merged := base.Merge(config.ApplicationConfiguration{Format: "json"})

	assert.Equal(t, boolPointer(true), merged.All)
	assert.Equal(t, intPointer(2), merged.MaxDepth)
	assert.Equal(t, "always", merged.Color)
	assert.Equal(t, "json", merged.Format)
}

func TestMergeClonesOverridePointers(t *testing.T) {
	override := config.ApplicationConfiguration{Gitignore: boolPointer(true)}
	merged := config.ApplicationConfiguration{}.Merge(override)

	*merged.Gitignore = false
	assert.True(t, *override.Gitignore)
}

func TestBoolValue(t *testing.T) {
	assert.True(t, config.BoolValue(nil, true))
	assert.False(t, config.BoolValue(boolPointer(false), true))
	assert.True(t, config.BoolValue(boolPointer(true), false))
}
