package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/avides/gitlab-release/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default or unset.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the winning value of a key and what it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
	Secret   bool
}

// Resolve reports, for every key, which source won under the precedence
// flag > env > config > default and which lower-precedence values it shadowed.
func (l *Loader) Resolve() []ResolvedValue {
	values := make([]ResolvedValue, 0, len(bindings))

	for _, b := range bindings {
		rv := ResolvedValue{
			Key:      b.Key,
			Source:   SourceDefault,
			Shadowed: make(map[ConfigSource]string),
			Secret:   b.Secret,
		}

		type candidate struct {
			source ConfigSource
			value  string
		}
		var found []candidate

		if f, ok := l.flags[b.Key]; ok && f.Changed {
			found = append(found, candidate{SourceFlag, f.Value.String()})
		}
		for _, name := range b.Env {
			if val, ok := os.LookupEnv(name); ok && val != "" {
				found = append(found, candidate{SourceEnv, val})
				break
			}
		}
		if l.loaded && l.file.IsSet(b.Key) {
			found = append(found, candidate{SourceConfig, fmt.Sprint(l.file.Get(b.Key))})
		}

		if len(found) > 0 {
			rv.Source = found[0].source
			rv.Value = found[0].value
			for _, c := range found[1:] {
				rv.Shadowed[c.source] = c.value
			}
		} else if l.v.IsSet(b.Key) {
			rv.Value = fmt.Sprint(l.v.Get(b.Key))
		}

		values = append(values, rv)
	}

	return values
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) GITLAB_RELEASE_CONFIG env, (3) ~/.gitlab-release/config.yaml
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(ConfigEnvVar)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case flagValue != "":
		result.ConfigPath = flagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
// Secret values are masked.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", display(v, v.Value),
			"source", v.Source,
		)

		sources := make([]string, 0, len(v.Shadowed))
		for s := range v.Shadowed {
			sources = append(sources, string(s))
		}
		sort.Strings(sources)
		for _, s := range sources {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", s,
				"shadowed_value", display(v, v.Shadowed[ConfigSource(s)]),
			)
		}
	}
}

func display(v ResolvedValue, value string) string {
	if v.Secret && value != "" {
		return "****"
	}
	return value
}
