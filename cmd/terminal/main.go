// Command terminal plays the chase in a terminal as a top-down map, with
// synthesized audio through the system speaker.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Night-Chase/internal/config"
	"github.com/Garsondee/Night-Chase/internal/game"
	"github.com/Garsondee/Night-Chase/internal/level"
	"github.com/Garsondee/Night-Chase/internal/logging"
	"github.com/Garsondee/Night-Chase/internal/signup"
	"github.com/Garsondee/Night-Chase/internal/sound"
	"github.com/Garsondee/Night-Chase/internal/sound/speakersink"
)

const frameTime = 16 * time.Millisecond

func main() {
	var configPath, levelPath string
	var debug bool
	var seed int64

	flag.StringVar(&configPath, "config", "", "YAML file overriding the built-in tunables")
	flag.StringVar(&levelPath, "level", "", "YAML level file (default: built-in backrooms)")
	flag.BoolVar(&debug, "debug", false, "write a log to logs/night-chase.log")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time based)")
	flag.Parse()

	if f := logging.Setup(debug); f != nil {
		defer f.Close()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	lvl, err := level.Load(levelPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sink := speakersink.New(sound.NewBank(sound.SampleRate, 1))
	if err := sink.Init(); err != nil {
		// The sink stays unready and rejects playback, so the game runs silent.
		log.Printf("audio disabled: %v", err)
	} else {
		defer speaker.Close()
	}
	defer sink.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	scene, spawn := lvl.Build()
	session := game.NewSession(cfg.Game, scene, spawn, sink,
		game.WithRand(rand.New(rand.NewSource(seed))))
	defer session.Close()

	tg := newTermGame(screen, session, cfg, signup.NewClient(cfg.Signup.Endpoint, cfg.Signup.Timeout))
	defer tg.form.Close()
	tg.run()
}

func (tg *termGame) run() {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := tg.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !tg.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			tg.step(now.Sub(last).Seconds())
			last = now
			tg.draw()
		}
	}
}
