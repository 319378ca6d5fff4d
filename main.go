package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/script-fighter/config"
	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/engine"
	"github.com/lixenwraith/script-fighter/event"
	"github.com/lixenwraith/script-fighter/game"
	"github.com/lixenwraith/script-fighter/host"
	"github.com/lixenwraith/script-fighter/script"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	headless := flag.Bool("headless", false, "run without a terminal screen")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *headless {
		cfg.Game.Headless = true
	}

	if err := core.InitLogging(cfg.Log.Path, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	var screen tcell.Screen
	if !cfg.Game.Headless {
		screen, err = tcell.NewScreen()
		if err == nil {
			err = screen.Init()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "screen: %v\n", err)
			os.Exit(1)
		}
	}

	core.SetCrashCleanup(func() {
		if screen != nil {
			screen.Fini()
		}
	})
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	hostEngine := host.NewEngine(screen)
	speaker := host.NewSpeaker(cfg.Audio.Enabled && !cfg.Game.Headless, cfg.Audio.SampleRate)
	queue := event.NewQueue()

	registry := engine.NewRegistry()
	clock := engine.NewDualClock()

	boot := game.NewBootstrap(hostEngine, speaker, queue, game.Params{
		SpawnInterval: int64(cfg.Game.SpawnInterval),
		ShakeTrail:    cfg.Game.ShakeTrail,
		Seed:          time.Now().UnixNano(),
	})
	session, coordinator, err := boot.Run(registry, clock)
	if err != nil {
		if screen != nil {
			screen.Fini()
		}
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}

	scriptEngine := script.New(registry, hostEngine, coordinator.Bridge, session, cfg.Scripts.Dir, cfg.Scripts.Entry)
	defer scriptEngine.Close()
	if err := scriptEngine.Load(); err != nil {
		core.LogWarn("entry script failed, running built-in systems only: %v", err)
	}
	coordinator.Input.SetReloadFunc(scriptEngine.Load)

	if cfg.Scripts.Watch {
		watcher, werr := script.WatchScripts(cfg.Scripts.Dir, time.Duration(cfg.Scripts.Debounce)*time.Millisecond, queue)
		if werr != nil {
			core.LogWarn("script watching disabled: %v", werr)
		} else {
			defer watcher.Close()
		}
	}

	if screen != nil {
		core.Go(func() { hostEngine.PollInput(queue) })
	}

	// Headless runs have no key source, so map SIGINT/SIGTERM to quit
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	core.Go(func() {
		<-sigc
		queue.Push(event.Event{Type: event.EventQuitRequested})
	})

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	for !session.QuitRequested() {
		<-ticker.C

		gameDelta, systemDelta := clock.Tick()
		registry.Update(gameDelta, systemDelta)
		registry.Render()
	}

	if screen != nil {
		screen.Fini()
	}
	core.LogInfo("session %s ended after %d frames", session.ID(), coordinator.Bridge.FrameCount())
}
