package compiler

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Option configures the compiler.
type Option func(*compiler)

// WithSourceTag sets the build tag marking the source files holding generator
// functions to compile. The default is "genc".
func WithSourceTag(tag string) Option {
	return func(c *compiler) { c.sourceTag = tag }
}

// WithOutputSuffix sets the suffix replacing the ".go" extension of source
// files to name the generated files. The default is "_genc.go".
func WithOutputSuffix(suffix string) Option {
	return func(c *compiler) { c.outputSuffix = suffix }
}

// WithBuildTags instructs the compiler to attach the specified build
// tags to generated files, in addition to the negated source tag.
func WithBuildTags(buildTags string) Option {
	return func(c *compiler) { c.buildTags = buildTags }
}

// Config is the configuration of the compiler, as loaded from a YAML file.
//
//	source_tag: genc
//	output_suffix: _genc.go
//	build_tags: linux || darwin
type Config struct {
	SourceTag    string `yaml:"source_tag"`
	OutputSuffix string `yaml:"output_suffix"`
	BuildTags    string `yaml:"build_tags"`
}

// LoadConfig reads the compiler configuration from a YAML file. Unknown keys
// are rejected.
func LoadConfig(path string) (Config, error) {
	var config Config
	b, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)
	if err := d.Decode(&config); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Options returns the compiler options for the fields set in config.
func (config Config) Options() []Option {
	var options []Option
	if config.SourceTag != "" {
		options = append(options, WithSourceTag(config.SourceTag))
	}
	if config.OutputSuffix != "" {
		options = append(options, WithOutputSuffix(config.OutputSuffix))
	}
	if config.BuildTags != "" {
		options = append(options, WithBuildTags(config.BuildTags))
	}
	return options
}
