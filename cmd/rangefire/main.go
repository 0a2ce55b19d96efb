package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/rangefire/audio"
	"github.com/lixenwraith/rangefire/config"
	"github.com/lixenwraith/rangefire/core"
	"github.com/lixenwraith/rangefire/engine"
	"github.com/lixenwraith/rangefire/engine/status"
	"github.com/lixenwraith/rangefire/event"
	"github.com/lixenwraith/rangefire/input"
	"github.com/lixenwraith/rangefire/parameter"
	"github.com/lixenwraith/rangefire/physics"
	"github.com/lixenwraith/rangefire/render"
	"github.com/lixenwraith/rangefire/system"
	"github.com/lixenwraith/rangefire/vmath"
)

var (
	configFlag = flag.String("config", "", "TOML config file")
	debugFlag  = flag.Bool("debug", false, "log to logs/rangefire.log and show metrics")
	muteFlag   = flag.Bool("mute", false, "disable sound effects")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rangefire: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rangefire: terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "rangefire: terminal init: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashCleanup(screen.Fini)
	defer core.Recover()

	err = run(cfg, screen)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rangefire: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, screen tcell.Screen) error {
	reg := status.NewRegistry()
	bus := event.NewBus()
	intents := event.NewIntentQueue()
	clock := engine.NewPausableClock()
	world := engine.NewWorld()

	anchor := vmath.Vec3F{X: cfg.Spawn.Anchor[0], Y: cfg.Spawn.Anchor[1], Z: cfg.Spawn.Anchor[2]}
	aim := physics.NewAimAssist(vmath.V3FAdd(anchor, vmath.Vec3F{Y: parameter.MuzzleHeight}), vmath.Vec3F{Z: 1})
	aim.Attach(bus)
	defer aim.Detach(bus)

	session, err := system.NewSession(cfg, system.SessionDeps{
		Clock:    clock,
		Bus:      bus,
		Intents:  intents,
		Scene:    world,
		Status:   reg,
		Muzzle:   aim,
		Contacts: physics.NewSweptContacts(parameter.ProjectileRadius, parameter.TargetRadius, world),
	})
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer session.Close()

	rate := beep.SampleRate(parameter.AudioSampleRate)
	player := audio.NewSpeakerPlayer(rate)
	if err := player.Init(); err != nil {
		log.Printf("[audio] speaker unavailable, running silent: %v", err)
	} else {
		defer player.Close()
	}
	board := audio.NewSoundBoard(player, rate, parameter.AudioMasterVolume)
	board.SetMuted(*muteFlag)
	board.Attach(bus)
	defer board.Detach(bus)

	hud := render.NewHUD(screen, reg, anchor, cfg.Spawn.Radius)
	hud.SetDebug(*debugFlag)
	scheduler := engine.NewClockScheduler(session, clock, cfg.Engine.TickInterval, reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(core.Guard(func() error {
		return scheduler.Run(ctx)
	}))

	g.Go(core.Guard(func() error {
		return input.Poll(ctx, screen, intents)
	}))

	g.Go(core.Guard(func() error {
		hud.Draw(session.Snapshot())
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-scheduler.Updates():
				hud.Draw(session.Snapshot())
			}
		}
	}))

	// Quit ends every loop; Fini unblocks the input poll
	g.Go(core.Guard(func() error {
		select {
		case <-session.Done():
		case <-ctx.Done():
		}
		cancel()
		screen.Fini()
		return nil
	}))

	err = g.Wait()
	log.Printf("[main] stopped after %d ticks", scheduler.TickCount())
	return err
}
