// Package config loads the optional aigforge.yaml pass-pipeline
// configuration file: default limits for the cut, rewrite, refactor and
// resubstitution passes. The CLI keeps the loaded values on each session,
// but no pass option is set from them: a pass runs with its flag's value or,
// when that is 0, with the pass's own built-in default.
package config

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/aigforge/aigforge/pkg/aig/resub"
)

// Config is the pass-pipeline configuration: every field has a built-in
// default (see Defaults) that a config file may override. No pass reads
// these fields.
type Config struct {
	CutSizeMax int            `yaml:"cut_size_max"`
	Rewrite    RewriteConfig  `yaml:"rewrite"`
	Refactor   RefactorConfig `yaml:"refactor"`
	Resub      ResubConfig    `yaml:"resub"`
}

type RewriteConfig struct {
	CutsMax int `yaml:"cuts_max"`
}

type RefactorConfig struct {
	LeafMax int `yaml:"leaf_max"`
}

type ResubConfig struct {
	StepsMax int `yaml:"steps_max"`
}

// Defaults returns the built-in configuration, used whenever no config
// file is given.
func Defaults() Config {
	return Config{
		CutSizeMax: 6,
		Rewrite:    RewriteConfig{CutsMax: 8},
		Refactor:   RefactorConfig{LeafMax: 12},
		Resub:      ResubConfig{StepsMax: resub.Div1Max},
	}
}

// Load reads and parses path as YAML, starting from Defaults so a config
// file only needs to name the fields it wants to change.
func Load(path string) (Config, error) {
	cfg := Defaults()

	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return Config{}, errors.Wrapf(err, "opening config %s", path)
	}
	defer f.Close()

	d, err := ioutil.ReadAll(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(d, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
