// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slidescribe/internal/logging"
	"github.com/pdiddy/slidescribe/pkg/types"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.name", types.DefaultOutputName)
	v.SetDefault("extract.descend_groups", false)
	v.SetDefault("journal.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("log.no_color", false)
}

// conversionConfig reads the resolved settings from v. Flags bound to v
// take precedence over environment, config file and defaults.
func conversionConfig(v *viper.Viper) (types.ConversionConfig, error) {
	cfg := types.ConversionConfig{
		Output: types.OutputConfig{
			Dir:  v.GetString("output.dir"),
			Name: v.GetString("output.name"),
		},
		Extract: types.ExtractConfig{
			DescendGroups: v.GetBool("extract.descend_groups"),
		},
		Journal: types.JournalConfig{
			Path: v.GetString("journal.path"),
		},
		Log: types.LogConfig{
			Level:   v.GetString("log.level"),
			Format:  v.GetString("log.format"),
			NoColor: v.GetBool("log.no_color"),
		},
	}
	if err := logging.Validate(cfg.Log); err != nil {
		return types.ConversionConfig{}, err
	}
	return cfg, nil
}

// newLogger builds the stderr logger for cfg.
func newLogger(cfg types.ConversionConfig) zerolog.Logger {
	return logging.New(cfg.Log, os.Stderr)
}

// bindFlags binds each config key to the named flag of cmd. Commands that
// share a key bind it when they run so the running command's flag wins.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("command %s has no flag --%s", cmd.Name(), flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

func mustBind(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
