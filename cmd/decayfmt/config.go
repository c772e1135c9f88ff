package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// config is the optional TOML configuration file:
//
//	[output]
//	format = "msgpack"  # default input encoding: json or msgpack
//	color = "off"       # auto, on or off
//	numbered = false    # number the items of each report
type config struct {
	Output outputConfig `toml:"output"`
}

type outputConfig struct {
	Format   string `toml:"format"`
	Color    string `toml:"color"`
	Numbered bool   `toml:"numbered"`
}

func defaultConfig() config {
	return config{Output: outputConfig{
		Format:   formatJSON,
		Color:    colorAuto,
		Numbered: true,
	}}
}

const (
	formatJSON    = "json"
	formatMsgpack = "msgpack"

	colorAuto = "auto"
	colorOn   = "on"
	colorOff  = "off"
)

// loadConfig reads the file at path over the defaults. An empty path
// gives the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("output", "format") {
		if err := checkFormat(cfg.Output.Format); err != nil {
			return config{}, fmt.Errorf("%s: [output].format: %w", path, err)
		}
	}
	if meta.IsDefined("output", "color") {
		if err := checkColor(cfg.Output.Color); err != nil {
			return config{}, fmt.Errorf("%s: [output].color: %w", path, err)
		}
	}
	return cfg, nil
}

// override applies the flags set on the command line.
func (cfg config) override(cmd *cobra.Command) config {
	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetString("color")
	}
	if f := flags.Lookup("numbered"); f != nil && f.Changed {
		cfg.Output.Numbered, _ = flags.GetBool("numbered")
	}
	return cfg
}

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatMsgpack:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or msgpack)", format)
	}
}

func checkColor(mode string) error {
	switch mode {
	case colorAuto, colorOn, colorOff:
		return nil
	default:
		return fmt.Errorf("unknown color mode %q (want auto, on or off)", mode)
	}
}
