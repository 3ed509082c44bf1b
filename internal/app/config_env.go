package app

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    setString := func(dst *string, envKey string) {
        if *dst == "" { *dst = os.Getenv(envKey) }
    }
    setString(&cfg.BaseURL, "OPENSUBS_BASE_URL")
    setString(&cfg.Locale, "OPENSUBS_LOCALE")
    setString(&cfg.Languages, "OPENSUBS_LANGS")
    setString(&cfg.User, "OPENSUBS_USER")
    setString(&cfg.Password, "OPENSUBS_PASSWORD")
    setString(&cfg.UserAgent, "OPENSUBS_USER_AGENT")
    setString(&cfg.Format, "OPENSUBS_FORMAT")

    if cfg.Timeout == 0 {
        if d, ok := envDuration("OPENSUBS_TIMEOUT"); ok {
            cfg.Timeout = d
        }
    }

    if !cfg.Verbose {
        if v, ok := envBool("VERBOSE"); ok && v {
            cfg.Verbose = true
        }
    }
}

// envDuration accepts a Go duration ("45s") or plain seconds ("45").
func envDuration(key string) (time.Duration, bool) {
    s := strings.TrimSpace(os.Getenv(key))
    if s == "" { return 0, false }
    if d, err := time.ParseDuration(s); err == nil && d > 0 {
        return d, true
    }
    if n, err := strconv.Atoi(s); err == nil && n > 0 {
        return time.Duration(n) * time.Second, true
    }
    return 0, false
}

func envBool(key string) (bool, bool) {
    switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
    case "1", "true", "yes", "on":
        return true, true
    case "0", "false", "no", "off":
        return false, true
    }
    return false, false
}
