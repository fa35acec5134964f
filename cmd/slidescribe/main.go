// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the slidescribe CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the slidescribe CLI.
var rootCmd = &cobra.Command{
	Use:   "slidescribe",
	Short: "Convert PowerPoint decks into a single Word document",
	Long: `slidescribe reads one or more .pptx presentations and writes their text
into a single .docx document. Each presentation's first line becomes a
title heading, each slide's first line a section heading, and every other
line a paragraph that keeps its bold and underline.

Layout, images, tables and visual formatting are discarded.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("log.no_color") {
			color.NoColor = true
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./slidescribe.yaml or ~/.config/slidescribe/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", "console", "log format: console or json")
	pf.Bool("no-color", false, "disable coloured output")

	mustBind("log.level", pf.Lookup("log-level"))
	mustBind("log.format", pf.Lookup("log-format"))
	mustBind("log.no_color", pf.Lookup("no-color"))
}

func initConfig() {
	// A missing .env is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slidescribe")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slidescribe"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("SLIDESCRIBE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
