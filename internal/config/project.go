package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/QTest-hq/clientgen/internal/macro"
	"github.com/QTest-hq/clientgen/internal/parser"
	"github.com/QTest-hq/clientgen/internal/rename"
	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of the per-project config file
const ProjectFile = ".clientgen.yaml"

// ProjectConfig represents a .clientgen.yaml file in a connector directory
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Generated client layout
	Client ClientConfig `yaml:"client"`

	// Rename pass settings
	Rename RenameConfig `yaml:"rename,omitempty"`

	// Include pass settings
	Template TemplateConfig `yaml:"template,omitempty"`
}

// ClientConfig describes the generated client source
type ClientConfig struct {
	Path      string `yaml:"path,omitempty"`
	TypesPath string `yaml:"types_path,omitempty"`

	// Class name after renaming, and the name the generator emits
	ClassName      string `yaml:"class_name,omitempty"`
	GeneratedClass string `yaml:"generated_class,omitempty"`

	// Tokens before the class name in its header, e.g. isolated client class
	HeaderKeywords []string `yaml:"header_keywords,omitempty"`

	RemoteMarker  string `yaml:"remote_marker,omitempty"`
	CommentMarker string `yaml:"comment_marker,omitempty"`
}

// RenameConfig holds rename pass settings
type RenameConfig struct {
	// Prefix stripped by the generic rename
	Prefix string `yaml:"prefix,omitempty"`

	// Name-list file with function, regex and comment tables
	NameList string `yaml:"name_list,omitempty"`
}

// TemplateConfig holds include pass settings
type TemplateConfig struct {
	Path       string `yaml:"path,omitempty"`
	IndentSize int    `yaml:"indent_size,omitempty"`
}

// DefaultProjectConfig returns the settings for a generated Google Sheets client
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version: "1.0",
		Client: ClientConfig{
			ClassName:      "GsheetClient",
			GeneratedClass: rename.DefaultGeneratedClass,
			HeaderKeywords: slices.Clone(parser.DefaultHeaderKeywords),
			RemoteMarker:   parser.DefaultRemoteMarker,
			CommentMarker:  parser.DefaultCommentMarker,
		},
		Rename: RenameConfig{
			Prefix: rename.DefaultPrefix,
		},
		Template: TemplateConfig{
			IndentSize: macro.DefaultIndentSize,
		},
	}
}

// ClassHeader returns the header line declaring the renamed class
func (c ClientConfig) ClassHeader() string {
	return strings.Join(append(slices.Clone(c.HeaderKeywords), c.ClassName, "{"), " ")
}

// Scanner returns a scanner using the configured markers
func (c ClientConfig) Scanner() *parser.Scanner {
	return &parser.Scanner{
		HeaderKeywords: slices.Clone(c.HeaderKeywords),
		RemoteMarker:   c.RemoteMarker,
		CommentMarker:  c.CommentMarker,
	}
}

// projectFiles are the accepted config names, in lookup order
var projectFiles = []string{ProjectFile, ".clientgen.yml"}

// LoadProjectConfig loads the first of .clientgen.yaml or .clientgen.yml in
// dir over the defaults. Without either file the defaults are returned.
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	cfg := DefaultProjectConfig()

	for _, name := range projectFiles {
		configPath := filepath.Join(dir, name)
		data, err := os.ReadFile(configPath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
		return cfg, nil
	}

	return cfg, nil
}

// SaveProjectConfig writes cfg to dir/.clientgen.yaml
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	configPath := filepath.Join(dir, ProjectFile)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", configPath, err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	return nil
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if other.Client.Path != "" {
		c.Client.Path = other.Client.Path
	}

	if other.Client.TypesPath != "" {
		c.Client.TypesPath = other.Client.TypesPath
	}

	if other.Client.ClassName != "" {
		c.Client.ClassName = other.Client.ClassName
	}

	if other.Client.GeneratedClass != "" {
		c.Client.GeneratedClass = other.Client.GeneratedClass
	}

	if len(other.Client.HeaderKeywords) > 0 {
		c.Client.HeaderKeywords = other.Client.HeaderKeywords
	}

	if other.Rename.Prefix != "" {
		c.Rename.Prefix = other.Rename.Prefix
	}

	if other.Rename.NameList != "" {
		c.Rename.NameList = other.Rename.NameList
	}

	if other.Template.Path != "" {
		c.Template.Path = other.Template.Path
	}

	if other.Template.IndentSize != 0 {
		c.Template.IndentSize = other.Template.IndentSize
	}
}
