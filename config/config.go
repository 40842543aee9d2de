// Package config persists the watched repository set as a YAML file in
// the user's configuration directory. The search engine never reads
// this package; it only consumes the search.Set snapshot produced
// here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/grepo-cli/grepo/internal/search"
)

// DefaultBasePath is where watched repositories are expected to live
// when no base path has been configured.
const DefaultBasePath = "/repos"

const (
	appDirName     = "grepo"
	configFileName = "config.yaml"

	basePathKey = "base_path"
	reposKey    = "repos"
)

// File is the persisted grepo configuration.
type File struct {
	BasePath string   `mapstructure:"base_path"`
	Repos    []string `mapstructure:"repos"`
}

// Default returns the configuration used before anything is saved.
func Default() File {
	return File{BasePath: DefaultBasePath}
}

// DefaultPath returns the standard location of the config file,
// e.g. ~/.config/grepo/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, configFileName), nil
}

// Load reads the configuration at path. A missing file is not an
// error; defaults are returned instead.
func Load(path string) (File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(basePathKey, DefaultBasePath)
	v.SetDefault(reposKey, []string{})

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if f.BasePath == "" {
		f.BasePath = DefaultBasePath
	}
	return f, nil
}

// Save writes the configuration to path, creating parent directories
// as needed.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set(basePathKey, f.BasePath)
	v.Set(reposKey, f.Repos)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Set returns the watched repository set snapshot for the engine.
func (f File) Set() search.Set {
	return search.Set{BasePath: f.BasePath, Repos: f.Repos}
}

// AddRepos appends names not already watched, preserving order, and
// returns the names that were actually added.
func (f *File) AddRepos(names []string) []string {
	watched := make(map[string]struct{}, len(f.Repos))
	for _, repo := range f.Repos {
		watched[repo] = struct{}{}
	}

	var added []string
	for _, name := range names {
		if _, ok := watched[name]; ok {
			continue
		}
		watched[name] = struct{}{}
		f.Repos = append(f.Repos, name)
		added = append(added, name)
	}
	return added
}

// RemoveRepos removes names from the watched list and returns the
// names that were not watched in the first place.
func (f *File) RemoveRepos(names []string) []string {
	var missing []string
	for _, name := range names {
		index := -1
		for i, repo := range f.Repos {
			if repo == name {
				index = i
				break
			}
		}
		if index < 0 {
			missing = append(missing, name)
			continue
		}
		f.Repos = append(f.Repos[:index], f.Repos[index+1:]...)
	}
	return missing
}
