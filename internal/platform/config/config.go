package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// NewEnv returns a viper instance reading PREFIX_KEY environment variables
// and, when path is not empty, a config file whose keys match the env names
// without the prefix.
func NewEnv(prefix string, path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return v, nil
}

// Duration reads key as a Go duration ("10s") or a whole number of seconds,
// falling back to def on anything else.
func Duration(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}

	d, err := time.ParseDuration(raw)
	if err == nil {
		return d
	}

	if secs, secsErr := strconv.Atoi(raw); secsErr == nil {
		return time.Duration(secs) * time.Second
	}

	return def
}

func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
