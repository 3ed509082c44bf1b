package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    yaml "gopkg.in/yaml.v3"

    "github.com/hyperifyio/opensubs/internal/extract"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
    Site struct {
        Base      string        `yaml:"base" json:"base"`
        Locale    string        `yaml:"locale" json:"locale"`
        UserAgent string        `yaml:"userAgent" json:"userAgent"`
        Timeout   Duration      `yaml:"timeout" json:"timeout"`
        Charset   string        `yaml:"charset" json:"charset"`
    } `yaml:"site" json:"site"`

    Auth struct {
        User     string `yaml:"user" json:"user"`
        Password string `yaml:"password" json:"password"`
    } `yaml:"auth" json:"auth"`

    Languages string `yaml:"languages" json:"languages"`
    RowShape  string `yaml:"rowShape" json:"rowShape"`

    Output struct {
        Format   string `yaml:"format" json:"format"`
        Path     string `yaml:"path" json:"path"`
        Download bool   `yaml:"download" json:"download"`
    } `yaml:"output" json:"output"`

    Verbose bool `yaml:"verbose" json:"verbose"`
}

// Duration reads "30s" style values from YAML and JSON alike. JSON also
// accepts a plain number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
    var s string
    if err := json.Unmarshal(b, &s); err == nil {
        v, err := time.ParseDuration(s)
        if err != nil {
            return err
        }
        *d = Duration(v)
        return nil
    }
    var n int64
    if err := json.Unmarshal(b, &n); err != nil {
        return fmt.Errorf("duration: %w", err)
    }
    *d = Duration(n)
    return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
    var v time.Duration
    if err := value.Decode(&v); err != nil {
        return err
    }
    *d = Duration(v)
    return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset. Flag defaults are empty, so any set value came from
// the command line or the environment and wins over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.BaseURL == "" && fc.Site.Base != "" { cfg.BaseURL = fc.Site.Base }
    if cfg.Locale == "" && fc.Site.Locale != "" { cfg.Locale = fc.Site.Locale }
    if cfg.UserAgent == "" && fc.Site.UserAgent != "" { cfg.UserAgent = fc.Site.UserAgent }
    if cfg.Timeout == 0 && fc.Site.Timeout > 0 { cfg.Timeout = time.Duration(fc.Site.Timeout) }
    if cfg.Charset == "" && fc.Site.Charset != "" { cfg.Charset = fc.Site.Charset }

    if cfg.User == "" && fc.Auth.User != "" { cfg.User = fc.Auth.User }
    if cfg.Password == "" && fc.Auth.Password != "" { cfg.Password = fc.Auth.Password }

    if cfg.Languages == "" && fc.Languages != "" { cfg.Languages = fc.Languages }
    if cfg.RowShape == "" && fc.RowShape != "" { cfg.RowShape = fc.RowShape }

    if cfg.Format == "" && fc.Output.Format != "" { cfg.Format = fc.Output.Format }
    if cfg.OutputPath == "" && fc.Output.Path != "" { cfg.OutputPath = fc.Output.Path }
    if !cfg.Download && fc.Output.Download { cfg.Download = true }
    if !cfg.Verbose && fc.Verbose { cfg.Verbose = true }
}

// ValidateConfig performs minimal validation before any request is made.
func ValidateConfig(cfg Config) error {
    if strings.TrimSpace(cfg.Mask) == "" && strings.TrimSpace(cfg.PageURL) == "" && strings.TrimSpace(cfg.HTMLPath) == "" {
        return errors.New("config: a search mask is required (or -page / -html)")
    }
    if cfg.Season < 0 || cfg.Episode < 0 {
        return errors.New("config: negative season/episode is not allowed")
    }
    if cfg.Episode > 0 && cfg.Season == 0 {
        return errors.New("config: episode requires a season")
    }
    if cfg.Timeout < 0 {
        return errors.New("config: negative timeout is not allowed")
    }
    if _, err := parseFormat(cfg.Format); err != nil {
        return fmt.Errorf("config: %w", err)
    }
    if _, err := extract.ParseRowShape(cfg.RowShape); err != nil {
        return fmt.Errorf("config: %w", err)
    }
    return nil
}
