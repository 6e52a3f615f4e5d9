// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/beevik/go68k/config"
	"github.com/beevik/go68k/host"
	"github.com/beevik/go68k/machine"
	"github.com/beevik/go68k/rom"
	"github.com/beevik/term"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
)

var (
	configPath  string
	romPath     string
	model       string
	logLevel    string
	profileMode string
	saveConfig  string
)

func init() {
	flag.StringVar(&configPath, "config", "", "load settings from a YAML file")
	flag.StringVar(&romPath, "rom", "", "ROM image to boot")
	flag.StringVar(&model, "model", "", "calculator model (auto, ti89, ti92p, v200, ti89t)")
	flag.StringVar(&logLevel, "loglevel", "", "log level (debug, info, warn, error)")
	flag.StringVar(&profileMode, "profile", "", "write a cpu or mem profile to the current directory")
	flag.StringVar(&saveConfig, "saveconfig", "", "write the effective settings to a YAML file and exit")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: go68k [options] [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		exitOnError(err)
	}

	if saveConfig != "" {
		if err := cfg.Save(saveConfig); err != nil {
			exitOnError(err)
		}
		os.Exit(0)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		exitOnError(fmt.Errorf("unknown profile mode '%s'", profileMode))
	}

	if cfg.ROM == "" {
		exitOnError(errors.New("no ROM image; use -rom or the rom setting"))
	}
	img, err := rom.Load(cfg.ROM)
	if err != nil {
		exitOnError(err)
	}
	m, err := machine.New(cfg, img)
	if err != nil {
		exitOnError(err)
	}
	logrus.WithField("state", m.State.String()).Info("machine ready")

	h := host.New(m)

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		if strings.EqualFold(filepath.Ext(filename), ".lua") {
			err := h.RunScript(filename)
			switch {
			case errors.Is(err, host.ErrQuit):
				return
			case err != nil:
				exitOnError(err)
			}
			continue
		}

		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands interactively.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}

// loadConfig builds the configuration from the optional file and the
// command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	if romPath != "" {
		cfg.ROM = romPath
	}
	if model != "" {
		cfg.Model = model
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
