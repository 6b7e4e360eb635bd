// Package config layers command-line flags over environment variables and an
// optional YAML configuration file, and validates the resulting feed settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lepinkainen/blog-rss/pkg/filesystem"
)

const (
	// DefaultFile is the configuration file read when --config is not given.
	DefaultFile = "blog-rss.yaml"

	// EnvPrefix prefixes every environment variable, e.g. BLOG_RSS_BLOG_PATH.
	EnvPrefix = "BLOG_RSS"
)

// Flags that must never be taken from the config file or environment.
var unresolvedFlags = map[string]bool{
	"help":   true,
	"config": true,
}

// File is the --config flag. Before kong resolves the remaining flags it loads
// the named file (missing is fine) and registers it, together with the
// environment, as a resolver.
type File string

// BeforeResolve is called by kong for both explicit and defaulted values.
func (f File) BeforeResolve(ctx *kong.Context, trace *kong.Path) error {
	path := f
	if v, ok := ctx.FlagValue(trace.Flag).(File); ok {
		path = v
	}

	v, err := Load(string(path))
	if err != nil {
		return err
	}

	ctx.AddResolver(Resolver(v))
	return nil
}

// Load reads the YAML configuration file at path and binds BLOG_RSS_* environment
// variables. A missing file is not an error; environment values still apply.
func Load(path string) (*viper.Viper, error) {
	if path == "" {
		path = DefaultFile
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	path = findConfigFile(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No configuration file, using flags and environment", "path", path)
			return v, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	slog.Debug("Loaded configuration file", "path", v.ConfigFileUsed())
	return v, nil
}

// findConfigFile resolves a relative path against the working directory first,
// then the directory of the executable.
func findConfigFile(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	if _, err := os.Stat(path); err == nil {
		return path
	}

	if execPath, err := filesystem.GetDefaultPath(path); err == nil {
		if _, err := os.Stat(execPath); err == nil {
			return execPath
		}
	}

	return path
}

// Key maps a flag name to its configuration key: "blog-path" -> "blog_path".
func Key(flagName string) string {
	return strings.ReplaceAll(flagName, "-", "_")
}

// Resolver exposes v to kong. Values are returned as strings so kong's own
// decoders handle every flag type.
func Resolver(v *viper.Viper) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if unresolvedFlags[flag.Name] {
			return nil, nil
		}

		key := Key(flag.Name)
		if !v.IsSet(key) {
			return nil, nil
		}

		value := v.Get(key)
		if value == nil {
			return nil, nil
		}

		slog.Debug("Resolved flag from configuration", "flag", flag.Name)
		return fmt.Sprint(value), nil
	})
}

// LoadDotEnv loads variables from a .env file without overriding the
// environment. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}

	slog.Debug("Loaded environment file", "path", path)
	return nil
}
