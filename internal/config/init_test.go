package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	workingDirectory := "/work"
	options := InitOptions{FileSystem: fileSystem, WorkingDirectory: workingDirectory, Target: InitTargetLocal}
	path, err := InitializeConfiguration(options)
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, ".tree.yaml")
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readErr := afero.ReadFile(fileSystem, path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "format: raw") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	homeDirectory := "/home/tester"
	path, err := InitializeConfiguration(InitOptions{FileSystem: fileSystem, HomeDirectory: homeDirectory, Target: InitTargetGlobal, Force: true})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	if path != filepath.Join(homeDirectory, ".tree", "config.yaml") {
		t.Fatalf("expected configuration under home dir, got %s", path)
	}
	if _, statErr := fileSystem.Stat(path); statErr != nil {
		t.Fatalf("expected file to exist at %s: %v", path, statErr)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	workingDirectory := "/work"
	path := filepath.Join(workingDirectory, ".tree.yaml")
	if err := afero.WriteFile(fileSystem, path, []byte("existing"), 0o600); err != nil {
		t.Fatalf("write seed config: %v", err)
	}
	_, err := InitializeConfiguration(InitOptions{FileSystem: fileSystem, WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: false})
	if err == nil {
		t.Fatalf("expected error when configuration already exists")
	}

	if _, forceErr := InitializeConfiguration(InitOptions{FileSystem: fileSystem, WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: true}); forceErr != nil {
		t.Fatalf("expected forced overwrite to succeed: %v", forceErr)
	}
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	_, err := InitializeConfiguration(InitOptions{FileSystem: afero.NewMemMapFs(), WorkingDirectory: "/work", Target: InitTarget("remote")})
	if err == nil {
		t.Fatalf("expected error for unsupported target")
	}
}

func TestDefaultTemplateLoadsAsConfiguration(t *testing.T) {
	fileSystem := afero.NewMemMapFs()
	path, err := InitializeConfiguration(InitOptions{FileSystem: fileSystem, WorkingDirectory: "/work"})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	loaded, loadErr := loadConfigurationFromPath(fileSystem, path, true)
	if loadErr != nil {
		t.Fatalf("load template: %v", loadErr)
	}
	if loaded.Format != "raw" || loaded.Color != "auto" || loaded.MaxDepth == nil || *loaded.MaxDepth != 0 {
		t.Fatalf("unexpected template configuration: %+v", loaded)
	}
}
