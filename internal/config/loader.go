package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	oerrors "github.com/avides/gitlab-release/internal/errors"
)

// Environment variable prefix for gitlab-release configuration.
const envPrefix = "GITLAB_RELEASE"

// binding ties a config key to its environment variables, in precedence order.
type binding struct {
	Key    string
	Env    []string
	Secret bool
}

// bindings lists every configurable key.
var bindings = []binding{
	{Key: "host", Env: []string{"GITLAB_RELEASE_HOST"}},
	{Key: "accessToken", Env: []string{"GITLAB_RELEASE_ACCESS_TOKEN", "GITLAB_ACCESS_TOKEN"}, Secret: true},
	{Key: "repositoryNamespace", Env: []string{"GITLAB_RELEASE_NAMESPACE"}},
	{Key: "scmUrl", Env: []string{"GITLAB_RELEASE_SCM_URL"}},
	{Key: "repositoryName", Env: []string{"GITLAB_RELEASE_REPOSITORY"}},
	{Key: "projectVersion", Env: []string{"GITLAB_RELEASE_PROJECT_VERSION"}},
	{Key: "preReleaseDesired", Env: []string{"GITLAB_RELEASE_PRE_RELEASE"}},
	{Key: "branchName", Env: []string{"GITLAB_RELEASE_BRANCH"}},
	{Key: "log.timestamps", Env: []string{"GITLAB_RELEASE_LOG_TIMESTAMPS"}},
	{Key: "http.timeout", Env: []string{"GITLAB_RELEASE_HTTP_TIMEOUT"}},
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	// v merges flags, env, file and defaults.
	v *viper.Viper

	// file only holds the config file contents.
	file *viper.Viper

	flags  map[string]*pflag.Flag
	path   string
	loaded bool
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, b := range bindings {
		_ = v.BindEnv(append([]string{b.Key}, b.Env...)...)
	}

	v.SetDefault("host", DefaultHost)
	v.SetDefault("http.timeout", DefaultTimeout.String())

	return &Loader{
		v:     v,
		file:  viper.New(),
		flags: make(map[string]*pflag.Flag),
	}
}

// BindFlag makes flag the highest-precedence source of key. Nil flags are ignored.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("binding flag --%s: %w", flag.Name, err)
	}
	l.flags[key] = flag
	return nil
}

// Load reads the config file at path. A missing file is only an error when
// required is set; otherwise env vars, flags and defaults still apply.
func (l *Loader) Load(path string, required bool) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}
	l.path = expanded

	for _, v := range []*viper.Viper{l.v, l.file} {
		v.SetConfigFile(expanded)
		v.SetConfigType("yaml")
	}

	if err := l.v.ReadInConfig(); err != nil {
		if isNotExist(err) {
			if required {
				return oerrors.NewNotFoundError("config file not found", expanded,
					"run 'gitlab-release config init' or point --config at an existing file")
			}
			return nil
		}
		return oerrors.WrapCause(oerrors.ErrValidation, err, fmt.Sprintf("reading config file %s", expanded))
	}
	if err := l.file.ReadInConfig(); err != nil {
		return oerrors.WrapCause(oerrors.ErrValidation, err, fmt.Sprintf("reading config file %s", expanded))
	}

	l.loaded = true
	return nil
}

// Path returns the expanded config file path of the last Load.
func (l *Loader) Path() string {
	return l.path
}

// Loaded reports whether a config file was read.
func (l *Loader) Loaded() bool {
	return l.loaded
}

// Config returns the merged configuration with defaults applied.
func (l *Loader) Config() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, oerrors.WrapCause(oerrors.ErrValidation, err, "decoding configuration")
	}
	return cfg.WithDefaults(), nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
