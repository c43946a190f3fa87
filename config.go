package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fivemoreminix/qsource/pkg/log"
	"github.com/fivemoreminix/qsource/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrUnknownColor is returned for a color name tcell does not know.
var ErrUnknownColor = errors.New("unknown color")

// Config holds all configuration options for qsource.
type Config struct {
	TabSize       int          `mapstructure:"tab_size" yaml:"tab_size"`
	HardTabs      bool         `mapstructure:"hard_tabs" yaml:"hard_tabs"`
	LineNumbers   bool         `mapstructure:"line_numbers" yaml:"line_numbers"`
	LinkifyOnSave bool         `mapstructure:"linkify_on_save" yaml:"linkify_on_save"`
	WatchFiles    bool         `mapstructure:"watch_files" yaml:"watch_files"`
	ImageDir      string       `mapstructure:"image_dir" yaml:"image_dir"`
	LogLevel      string       `mapstructure:"log_level" yaml:"log_level"`
	Colors        ColorsConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorsConfig holds the foreground colors of highlighted HTML. Values are
// color names or "#rrggbb", as understood by tcell.GetColor.
type ColorsConfig struct {
	Entity  string `mapstructure:"entity" yaml:"entity"`
	Tag     string `mapstructure:"tag" yaml:"tag"`
	Comment string `mapstructure:"comment" yaml:"comment"`
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		TabSize:       4,
		HardTabs:      true,
		LineNumbers:   true,
		LinkifyOnSave: false,
		WatchFiles:    true,
		ImageDir:      "",
		LogLevel:      "info",
		Colors: ColorsConfig{
			Entity:  "darkred",
			Tag:     "darkmagenta",
			Comment: "gray",
		},
	}
}

const (
	localConfigName = ".qsource.yaml"
	configHeader    = "# qsource configuration\n# Colors are names or #rrggbb values.\n"
)

// userConfigPath returns the per-user config file under home.
func userConfigPath(home string) string {
	return filepath.Join(home, ".config", "qsource", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("tab_size", d.TabSize)
	v.SetDefault("hard_tabs", d.HardTabs)
	v.SetDefault("line_numbers", d.LineNumbers)
	v.SetDefault("linkify_on_save", d.LinkifyOnSave)
	v.SetDefault("watch_files", d.WatchFiles)
	v.SetDefault("image_dir", d.ImageDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("colors.entity", d.Colors.Entity)
	v.SetDefault("colors.tag", d.Colors.Tag)
	v.SetDefault("colors.comment", d.Colors.Comment)
}

// loadConfig reads the configuration into v. Lookup order: cfgFile if given,
// then ./.qsource.yaml, then the user config under home. When no file exists
// anywhere, a default user config is written. Returns the path of the file
// used, which is empty if none could be read or written.
func loadConfig(v *viper.Viper, cfgFile, home string) (Config, string, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(localConfigName); err == nil {
		v.SetConfigFile(localConfigName)
	} else {
		v.AddConfigPath(filepath.Dir(userConfigPath(home)))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}

		// No config file found - create the default at the requested path
		defaultPath := cfgFile
		if defaultPath == "" {
			defaultPath = userConfigPath(home)
		}

		// If the write fails, just continue with defaults (no config file)
		if writeErr := WriteDefaultConfig(defaultPath); writeErr == nil {
			v.SetConfigFile(defaultPath)
			_ = v.ReadInConfig()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if cfg.TabSize < 1 {
		cfg.TabSize = Defaults().TabSize
	}
	return cfg, v.ConfigFileUsed(), nil
}

// WriteDefaultConfig writes the default configuration as YAML to configPath.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(Defaults()); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := writeFileAtomic(configPath, buf.Bytes(), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return err
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// SaveSetting sets the top-level or dotted key (such as "colors.tag") of the
// YAML file at configPath to value. Comments and other keys are preserved.
func SaveSetting(configPath, key string, value any) error {
	var doc yaml.Node
	data, err := os.ReadFile(configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	mapping := doc.Content[0]
	parts := strings.Split(key, ".")
	for i, part := range parts {
		if mapping.Kind != yaml.MappingNode {
			return fmt.Errorf("setting %s: %q is not a mapping", key, strings.Join(parts[:i], "."))
		}
		child := mappingValue(mapping, part)
		if i == len(parts)-1 {
			if child != nil {
				*child = valueNode
			} else {
				mapping.Content = append(mapping.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: part}, &valueNode)
			}
			break
		}
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode}
			mapping.Content = append(mapping.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: part}, child)
		}
		mapping = child
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeFileAtomic(configPath, buf.Bytes(), 0o600)
}

// mappingValue returns the value node of key in a mapping node, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// writeFileAtomic writes data to a temp file beside path and renames it over
// path, so a failed write never leaves a truncated file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// parseColor returns the tcell color named by s. Empty means the default.
func parseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%w: %s", ErrUnknownColor, strconv.Quote(s))
	}
	return c, nil
}

// Theme returns the default theme with the configured HTML colors applied.
// Unknown colors keep their default and are reported in the returned error.
func (c ColorsConfig) Theme() (ui.Theme, error) {
	theme := make(ui.Theme, len(ui.DefaultTheme))
	for k, v := range ui.DefaultTheme {
		theme[k] = v
	}

	var errs []error
	for key, name := range map[string]string{
		"HTMLEntity":  c.Entity,
		"HTMLTag":     c.Tag,
		"HTMLComment": c.Comment,
	} {
		color, err := parseColor(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if color != tcell.ColorDefault {
			theme[key] = theme[key].Foreground(color)
		}
	}
	return theme, errors.Join(errs...)
}
