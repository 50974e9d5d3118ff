package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/tarotbuild/internal/errors"
)

// DefaultPath is the configuration file looked up when no --config flag is given.
const DefaultPath = "tarotbuild.yaml"

// Config represents the application configuration
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Source SourceConfig `yaml:"source"`
	Output OutputConfig `yaml:"output"`
	Bundle BundleConfig `yaml:"bundle"`
	Verify bool         `yaml:"verify"`

	// baseDir is the directory relative paths are resolved against (the config file's directory).
	baseDir string
	// file is the path the configuration was loaded from, empty for parsed configs.
	file string
}

// SiteConfig holds values rendered into page metadata.
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// SourceConfig names the inputs of a build.
type SourceConfig struct {
	ScriptEntry      string `yaml:"script_entry"`
	StyleEntry       string `yaml:"style_entry"`
	Content          string `yaml:"content"`
	IndexTemplate    string `yaml:"index_template"`
	SpreadTemplate   string `yaml:"spread_template"`
	CategoryTemplate string `yaml:"category_template"`
}

// OutputConfig names the directories a build writes to.
type OutputConfig struct {
	Directory  string `yaml:"directory"`
	Assets     string `yaml:"assets"`
	Spreads    string `yaml:"spreads"`
	Categories string `yaml:"categories"`
	Public     string `yaml:"public"`
	KeepFile   string `yaml:"keep_file"`
}

// BundleConfig tunes the bundler.
type BundleConfig struct {
	Target    string `yaml:"target"`
	AssetBase string `yaml:"asset_base"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	loadEnvFile(filepath.Dir(configPath))

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	// #nosec G304 -- configPath is supplied by the operator.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	absDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to resolve config directory")
	}
	return parse(data, absDir, filepath.Join(absDir, filepath.Base(configPath)))
}

// Parse decodes YAML configuration, expanding environment variables and applying defaults.
// Relative paths resolve against the current working directory.
func Parse(data []byte) (*Config, error) {
	return parse(data, "", "")
}

func parse(data []byte, baseDir, file string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{Verify: true, baseDir: baseDir, file: file}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied, rooted at baseDir.
func Default(baseDir string) *Config {
	cfg := &Config{Verify: true, baseDir: baseDir}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Site.Name == "" {
		c.Site.Name = "Tarot Spreads"
	}
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")

	s := &c.Source
	setDefault(&s.ScriptEntry, "src/main.jsx")
	setDefault(&s.StyleEntry, "src/index.css")
	setDefault(&s.Content, "content/spreads.yaml")
	setDefault(&s.IndexTemplate, "index.template.html")
	setDefault(&s.SpreadTemplate, "spread.template.html")
	setDefault(&s.CategoryTemplate, "category.template.html")

	o := &c.Output
	setDefault(&o.Directory, "dist")
	setDefault(&o.Assets, "assets")
	setDefault(&o.Spreads, "spreads")
	setDefault(&o.Categories, "categories")
	setDefault(&o.Public, ".")
	setDefault(&o.KeepFile, ".gitkeep")

	setDefault(&c.Bundle.Target, "es2020")
	setDefault(&c.Bundle.AssetBase, "index")
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// Validate checks the configuration for values that can never produce a build
// and for output layouts that would clean or overwrite inputs.
func (c *Config) Validate() error {
	if err := c.validateLayout(); err != nil {
		return err
	}
	if err := c.validateOutputDir(); err != nil {
		return err
	}
	if strings.ContainsAny(c.Bundle.AssetBase, `/\`) {
		return errors.ValidationFailed("bundle.asset_base", "must be a bare file name")
	}
	if c.Site.BaseURL != "" && !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return errors.ValidationFailed("site.base_url", "must start with http:// or https://")
	}
	return nil
}

// validateLayout requires the assets, spreads and categories directories to be
// distinct sub-directories of the output directory.
func (c *Config) validateLayout() error {
	layout := []struct {
		field string
		value string
	}{
		{"output.assets", c.Output.Assets},
		{"output.spreads", c.Output.Spreads},
		{"output.categories", c.Output.Categories},
	}
	seen := make(map[string]string, len(layout))
	for _, l := range layout {
		clean := filepath.Clean(l.value)
		if filepath.IsAbs(l.value) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return errors.ValidationFailed(l.field, "must be a relative path inside the output directory")
		}
		if clean == "." {
			return errors.ValidationFailed(l.field, "must be a sub-directory of the output directory")
		}
		if other, ok := seen[clean]; ok {
			return errors.ValidationFailed(l.field, "must differ from "+other)
		}
		seen[clean] = l.field
	}
	return nil
}

// validateOutputDir rejects output directories that are the project directory,
// one of its ancestors, or a directory holding a source file. The cleaner
// removes every file directly inside the output directory.
func (c *Config) validateOutputDir() error {
	p := c.Paths()
	dist := absPath(p.Dist)
	base := absPath(c.Resolve("."))
	if isWithin(base, dist) {
		return errors.ValidationFailed("output.directory", "must not be the project directory or one of its parents").
			WithContext("path", p.Dist)
	}
	for _, src := range []string{p.ScriptEntry, p.StyleEntry, p.Content, p.IndexTemplate, p.SpreadTemplate, p.CategoryTemplate, c.file} {
		if src == "" {
			continue
		}
		abs := absPath(src)
		if isWithin(abs, dist) {
			return errors.ValidationFailed("output.directory", "must not contain source files").
				WithContext("path", p.Dist).
				WithContext("source", src)
		}
		if dir := filepath.Dir(abs); dir == absPath(p.PublicAssets) && hasExt(abs, ".js", ".css") {
			return errors.ValidationFailed("output.public", "public assets directory must not contain source scripts or stylesheets").
				WithContext("source", src)
		}
	}
	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// isWithin reports whether path is root or lies below it.
func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func hasExt(p string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// File returns the path the configuration was loaded from, or "" when it was parsed directly.
func (c *Config) File() string {
	return c.file
}

// BaseDir returns the directory relative paths are resolved against.
func (c *Config) BaseDir() string {
	return c.baseDir
}

// Resolve returns p joined onto the base directory unless it is already absolute.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// Paths is the fully resolved set of directories and files a build touches.
type Paths struct {
	ScriptEntry      string
	StyleEntry       string
	Content          string
	IndexTemplate    string
	SpreadTemplate   string
	CategoryTemplate string

	Dist       string
	DistAssets string
	Spreads    string
	Categories string

	Public       string
	PublicAssets string
	KeepFile     string
}

// Paths resolves every configured path.
func (c *Config) Paths() Paths {
	dist := c.Resolve(c.Output.Directory)
	public := c.Resolve(c.Output.Public)
	return Paths{
		ScriptEntry:      c.Resolve(c.Source.ScriptEntry),
		StyleEntry:       c.Resolve(c.Source.StyleEntry),
		Content:          c.Resolve(c.Source.Content),
		IndexTemplate:    c.Resolve(c.Source.IndexTemplate),
		SpreadTemplate:   c.Resolve(c.Source.SpreadTemplate),
		CategoryTemplate: c.Resolve(c.Source.CategoryTemplate),
		Dist:             dist,
		DistAssets:       filepath.Join(dist, c.Output.Assets),
		Spreads:          filepath.Join(dist, c.Output.Spreads),
		Categories:       filepath.Join(dist, c.Output.Categories),
		Public:           public,
		PublicAssets:     filepath.Join(public, c.Output.Assets),
		KeepFile:         c.Output.KeepFile,
	}
}

// String renders a short human readable summary.
func (c *Config) String() string {
	return fmt.Sprintf("site=%q dist=%s public=%s", c.Site.Name, c.Output.Directory, c.Output.Public)
}
