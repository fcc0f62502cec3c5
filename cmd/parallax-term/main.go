// Command parallax-term runs the motion engine in a terminal: move the mouse
// over the hero card to tilt it, scroll with the wheel or paging keys
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/parallax/audio"
	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/config"
	"github.com/lixenwraith/parallax/core"
	"github.com/lixenwraith/parallax/frame"
	"github.com/lixenwraith/parallax/motion"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/status"
	"github.com/lixenwraith/parallax/terminal"
	"github.com/lixenwraith/parallax/tilt"
)

var (
	configPath    = flag.String("config", "parallax.yaml", "YAML configuration file")
	debugFlag     = flag.Bool("debug", false, "Log to logs/parallax.log and show the metrics overlay")
	soundFlag     = flag.Bool("sound", false, "Play a tone whose pitch follows horizontal tilt")
	reducedMotion = flag.String("reduced-motion", "", "Force reduced motion: auto, on, off")
	springFlag    = flag.Bool("spring", false, "Use spring easing for tilt")
)

// screenFinisher releases the screen exactly once from any goroutine
type screenFinisher struct {
	once   sync.Once
	screen tcell.Screen
}

func (s *screenFinisher) Fini() {
	s.once.Do(s.screen.Fini)
}

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()

	fin := &screenFinisher{screen: screen}
	core.SetCrashTerminal(fin)
	defer func() {
		core.SetCrashTerminal(nil)
		fin.Fini()
	}()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := run(cfg, screen, fin); err != nil {
		fin.Fini()
		fmt.Fprintf(os.Stderr, "parallax: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *soundFlag {
		cfg.Audio.Enabled = true
	}
	if *reducedMotion != "" {
		cfg.Capability.ReducedMotion = *reducedMotion
	}
	if *springFlag && cfg.Tilt.Spring == nil {
		cfg.Tilt.Spring = &config.SpringConfig{
			Frequency:    parameter.DefaultSpringFrequency,
			DampingRatio: parameter.DefaultSpringDampingRatio,
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config, screen tcell.Screen, fin *screenFinisher) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	core.Go(func() {
		select {
		case sig := <-sigCh:
			log.Printf("[Main] received %v", sig)
			cancel()
		case <-ctx.Done():
		}
	})

	reg := status.NewRegistry()
	loop := frame.NewLoop(clock.NewMonotonic(), cfg.Frame.Interval, reg)

	var observer motion.Sink
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.BaseHz, cfg.Audio.Volume)
		if err := sm.Initialize(); err != nil {
			log.Printf("[Main] audio unavailable: %v", err)
		} else {
			sm.PlayTone()
			defer sm.Cleanup()
			observer = audio.NewToneSink(tilt.Axes.X, sm.Tone(), cfg.Audio.BaseHz, cfg.Audio.SpanHz)
		}
	}

	host, err := terminal.NewHost(screen, loop, terminal.Options{
		Config:   cfg,
		Registry: reg,
		Observer: observer,
		OnQuit:   cancel,
	})
	if err != nil {
		return err
	}

	mountErr := make(chan error, 1)
	loop.Post(func() {
		if err := host.Mount(); err != nil {
			mountErr <- err
			cancel()
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() error { return loop.Run(gctx) }))
	g.Go(guard(func() error { return host.Pump(gctx) }))
	g.Go(func() error {
		// Finalizing the screen unblocks PollEvent in Pump
		<-gctx.Done()
		fin.Fini()
		return nil
	})

	err = g.Wait()
	// Loop goroutine is gone; host teardown is safe from here
	host.Close()

	select {
	case err := <-mountErr:
		return err
	default:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// guard routes a panic in an errgroup goroutine through the crash handler
func guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()
		return fn()
	}
}
