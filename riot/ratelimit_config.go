package riot

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type rateLimitFile struct {
	RiotRateLimit rateLimitSection `toml:"riot_rate_limit"`
}

type rateLimitSection struct {
	Defaults  []rateLimitWindowTOML `toml:"defaults"`
	Endpoints []rateLimitRuleTOML   `toml:"endpoints"`
}

type rateLimitWindowTOML struct {
	Requests int    `toml:"requests"`
	Window   string `toml:"window"`
	Burst    int    `toml:"burst"`
}

type rateLimitRuleTOML struct {
	Path   string                `toml:"path"`
	Limits []rateLimitWindowTOML `toml:"limits"`
}

// LoadRateLimitConfig reads limiter windows from a TOML file. A blank path or
// a missing file returns loaded=false and no error.
func LoadRateLimitConfig(path string) (cfg RateLimitConfig, loaded bool, err error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return RateLimitConfig{}, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RateLimitConfig{}, false, nil
		}
		return RateLimitConfig{}, false, fmt.Errorf("read rate limit config %q: %w", path, err)
	}

	cfg, err = ParseRateLimitConfig(string(data))
	if err != nil {
		return RateLimitConfig{}, false, fmt.Errorf("rate limit config %q: %w", path, err)
	}
	return cfg, true, nil
}

func ParseRateLimitConfig(data string) (RateLimitConfig, error) {
	var file rateLimitFile
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return RateLimitConfig{}, fmt.Errorf("parse: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		slices.Sort(keys)
		return RateLimitConfig{}, fmt.Errorf("parse: unknown keys: %s", strings.Join(keys, ", "))
	}

	defaults, err := tomlWindows(file.RiotRateLimit.Defaults, "defaults")
	if err != nil {
		return RateLimitConfig{}, err
	}
	cfg := RateLimitConfig{Defaults: defaults, Endpoints: map[string][]RateLimitWindow{}}
	for _, rule := range file.RiotRateLimit.Endpoints {
		prefix, err := rulePrefix(rule.Path)
		if err != nil {
			return RateLimitConfig{}, err
		}
		windows, err := tomlWindows(rule.Limits, fmt.Sprintf("endpoint %q", prefix))
		if err != nil {
			return RateLimitConfig{}, err
		}
		if len(windows) > 0 {
			cfg.Endpoints[prefix] = windows
		}
	}
	return cfg, nil
}

func tomlWindows(windows []rateLimitWindowTOML, scope string) ([]RateLimitWindow, error) {
	out := make([]RateLimitWindow, 0, len(windows))
	for idx, window := range windows {
		duration, err := time.ParseDuration(strings.TrimSpace(window.Window))
		if err != nil {
			return nil, fmt.Errorf("%s window[%d]: parse duration %q: %w", scope, idx, window.Window, err)
		}
		out = append(out, RateLimitWindow{Requests: window.Requests, Window: duration, Burst: window.Burst})
	}
	return out, nil
}

// rulePrefix turns "/observer-mode/rest/*" into "/observer-mode/rest".
// Template placeholders cut the prefix at the first "{".
func rulePrefix(path string) (string, error) {
	prefix := strings.TrimSpace(path)
	if idx := strings.Index(prefix, "{"); idx >= 0 {
		prefix = prefix[:idx]
	}
	prefix = strings.TrimSuffix(prefix, "*")
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if prefix == "/" {
		return "", fmt.Errorf("endpoint path %q is too broad", path)
	}
	return prefix, nil
}
