package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Night-Chase/internal/client"
	"github.com/Garsondee/Night-Chase/internal/config"
	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/level"
	"github.com/Garsondee/Night-Chase/internal/logging"
	"github.com/Garsondee/Night-Chase/internal/signup"
	"github.com/Garsondee/Night-Chase/internal/sound"
	"github.com/Garsondee/Night-Chase/internal/sound/ebitensink"
)

type options struct {
	configPath, levelPath string
	debug                 bool
	seed                  int64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML file overriding the built-in tunables")
	flag.StringVar(&opts.levelPath, "level", "", "YAML level file (default: built-in backrooms)")
	flag.BoolVar(&opts.debug, "debug", false, "write a log to logs/night-chase.log")
	flag.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = time based)")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run owns every resource the game opens so its deferred closes happen
// before main exits.
func run(opts options) error {
	if f := logging.Setup(opts.debug); f != nil {
		defer f.Close()
	}

	cfg, lvl, err := load(opts.configPath, opts.levelPath)
	if err != nil {
		return err
	}

	var mixer game.Mixer
	sink, err := ebitensink.New(sound.NewBank(sound.SampleRate, 1))
	if err != nil {
		log.Printf("audio disabled: %v", err)
	} else {
		defer sink.Close()
		mixer = sink
	}

	g, err := client.New(client.Options{
		Config: cfg,
		Level:  lvl,
		Mixer:  mixer,
		Signup: signup.NewClient(cfg.Signup.Endpoint, cfg.Signup.Timeout),
		Seed:   opts.seed,
	})
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// load reads the config and level; empty paths select the built-in ones.
func load(configPath, levelPath string) (config.Config, *level.Level, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	lvl, err := level.Load(levelPath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, lvl, nil
}
