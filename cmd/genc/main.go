package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/stealthrocket/generator/compiler"
)

const usage = `
genc is a generator compiler for Go.

USAGE:
  genc [OPTIONS] [PATH]

OPTIONS:
  -h, --help              Show this help information
  -v, --version           Show the compiler version
  -config <file>          Load the compiler configuration from a YAML file
                          (default: genc.yaml in the package directory)
  -tags <constraint>      Build constraint added to generated files
  -suffix <suffix>        Suffix of generated files (default: _genc.go)
`

// configFile is the name of the configuration file loaded from the package
// directory when -config is not set.
const configFile = "genc.yaml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Usage = func() { println(usage[1:]) }

	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "")
	flag.BoolVar(&showVersion, "version", false, "")

	var configPath, buildTags, outputSuffix string
	flag.StringVar(&configPath, "config", "", "")
	flag.StringVar(&buildTags, "tags", "", "")
	flag.StringVar(&outputSuffix, "suffix", "", "")

	flag.Parse()

	if showVersion {
		fmt.Println(version())
		return nil
	}

	path := flag.Arg(0)
	if path == "" {
		// If the compiler was invoked via go generate, the GOFILE
		// environment variable will be set with the name of the file
		// that contained the go:generate directive, and the current
		// working directory will be set to the directory that
		// contained the file.
		if gofile := os.Getenv("GOFILE"); gofile != "" {
			path = gofile
		} else {
			path = "."
		}
	}

	options, err := loadOptions(path, configPath)
	if err != nil {
		return err
	}
	// Flags take precedence over the configuration file.
	if buildTags != "" {
		options = append(options, compiler.WithBuildTags(buildTags))
	}
	if outputSuffix != "" {
		options = append(options, compiler.WithOutputSuffix(outputSuffix))
	}
	return compiler.Compile(path, options...)
}

func loadOptions(path, configPath string) ([]compiler.Option, error) {
	if configPath == "" {
		dir := strings.TrimSuffix(path, "...")
		if s, err := os.Stat(dir); err == nil && !s.IsDir() {
			dir = filepath.Dir(dir)
		}
		configPath = filepath.Join(dir, configFile)
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
	}
	config, err := compiler.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return config.Options(), nil
}

func version() (version string) {
	version = "devel"
	if info, ok := debug.ReadBuildInfo(); ok {
		switch info.Main.Version {
		case "":
		case "(devel)":
		default:
			version = info.Main.Version
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				version += " " + setting.Value
			}
		}
	}
	return
}
