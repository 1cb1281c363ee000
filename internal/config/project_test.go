package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultProjectConfig(t *testing.T) {
	cfg := DefaultProjectConfig()

	if cfg == nil {
		t.Fatal("DefaultProjectConfig() returned nil")
	}

	if cfg.Version != "1.0" {
		t.Errorf("Version = %s, want 1.0", cfg.Version)
	}
	if cfg.Client.ClassName != "GsheetClient" {
		t.Errorf("Client.ClassName = %s, want GsheetClient", cfg.Client.ClassName)
	}
	if cfg.Client.GeneratedClass != "Client" {
		t.Errorf("Client.GeneratedClass = %s, want Client", cfg.Client.GeneratedClass)
	}
	if cfg.Rename.Prefix != "sheetsSpreadsheets" {
		t.Errorf("Rename.Prefix = %s, want sheetsSpreadsheets", cfg.Rename.Prefix)
	}
	if cfg.Template.IndentSize != 4 {
		t.Errorf("Template.IndentSize = %d, want 4", cfg.Template.IndentSize)
	}
}

func TestClientConfig_ClassHeader(t *testing.T) {
	cfg := DefaultProjectConfig()

	if got := cfg.Client.ClassHeader(); got != "isolated client class GsheetClient {" {
		t.Errorf("ClassHeader() = %q", got)
	}

	// header keywords are not modified by building the header
	if len(cfg.Client.HeaderKeywords) != 3 {
		t.Errorf("HeaderKeywords = %v", cfg.Client.HeaderKeywords)
	}
}

func TestClientConfig_Scanner(t *testing.T) {
	cfg := DefaultProjectConfig()
	cfg.Client.RemoteMarker = "resource"

	s := cfg.Client.Scanner()
	if !s.IsRemoteStart([]string{"resource", "function"}) {
		t.Error("scanner should use the configured remote marker")
	}
	if !s.IsDocComment([]string{"#", "doc"}) {
		t.Error("scanner should use the configured comment marker")
	}
}

func TestLoadProjectConfig_NoFile(t *testing.T) {
	cfg, err := LoadProjectConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultProjectConfig()) {
		t.Errorf("LoadProjectConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadProjectConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	content := `version: "1.0"
client:
  path: gen/client.bal
  class_name: DriveClient
rename:
  prefix: driveFiles
  name_list: names.txt
`
	if err := os.WriteFile(filepath.Join(dir, ".clientgen.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}

	if cfg.Client.Path != "gen/client.bal" {
		t.Errorf("Client.Path = %s", cfg.Client.Path)
	}
	if cfg.Client.ClassName != "DriveClient" {
		t.Errorf("Client.ClassName = %s", cfg.Client.ClassName)
	}
	if cfg.Rename.Prefix != "driveFiles" {
		t.Errorf("Rename.Prefix = %s", cfg.Rename.Prefix)
	}
	// unspecified fields keep their defaults
	if cfg.Client.GeneratedClass != "Client" {
		t.Errorf("Client.GeneratedClass = %s, want default", cfg.Client.GeneratedClass)
	}
	if cfg.Template.IndentSize != 4 {
		t.Errorf("Template.IndentSize = %d, want default", cfg.Template.IndentSize)
	}
}

func TestLoadProjectConfig_YML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".clientgen.yml"), []byte("template:\n  indent_size: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if cfg.Template.IndentSize != 2 {
		t.Errorf("Template.IndentSize = %d, want 2", cfg.Template.IndentSize)
	}
}

func TestLoadProjectConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".clientgen.yaml"), []byte("client: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadProjectConfig(dir)
	if err == nil {
		t.Fatal("LoadProjectConfig() should fail on invalid YAML")
	}
	if !strings.Contains(err.Error(), ".clientgen.yaml") {
		t.Errorf("error %q should name the config file", err)
	}
}

func TestLoadProjectConfig_PrefersYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".clientgen.yaml"), []byte("template:\n  indent_size: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".clientgen.yml"), []byte("template:\n  indent_size: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if cfg.Template.IndentSize != 2 {
		t.Errorf("Template.IndentSize = %d, want 2 from .clientgen.yaml", cfg.Template.IndentSize)
	}
}

func TestSaveProjectConfig_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	err := SaveProjectConfig(dir, DefaultProjectConfig())
	if err == nil {
		t.Fatal("SaveProjectConfig() should fail for a missing directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should wrap fs.ErrNotExist", err)
	}
}

func TestSaveProjectConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultProjectConfig()
	cfg.Client.Path = "client.bal"
	cfg.Template.Path = "lib.bal"

	if err := SaveProjectConfig(dir, cfg); err != nil {
		t.Fatalf("SaveProjectConfig() error = %v", err)
	}

	loaded, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestProjectConfig_Merge(t *testing.T) {
	cfg := DefaultProjectConfig()
	cfg.Merge(&ProjectConfig{
		Client:   ClientConfig{ClassName: "Other", Path: "c.bal"},
		Rename:   RenameConfig{NameList: "n.txt"},
		Template: TemplateConfig{IndentSize: 8},
	})

	if cfg.Client.ClassName != "Other" {
		t.Errorf("Client.ClassName = %s, want Other", cfg.Client.ClassName)
	}
	if cfg.Client.Path != "c.bal" {
		t.Errorf("Client.Path = %s, want c.bal", cfg.Client.Path)
	}
	if cfg.Rename.NameList != "n.txt" {
		t.Errorf("Rename.NameList = %s, want n.txt", cfg.Rename.NameList)
	}
	if cfg.Rename.Prefix != "sheetsSpreadsheets" {
		t.Errorf("Rename.Prefix = %s, should be unchanged", cfg.Rename.Prefix)
	}
	if cfg.Template.IndentSize != 8 {
		t.Errorf("Template.IndentSize = %d, want 8", cfg.Template.IndentSize)
	}

	cfg.Merge(nil)
}
