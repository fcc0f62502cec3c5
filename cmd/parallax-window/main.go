// Command parallax-window runs the motion engine in a desktop window
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/parallax/audio"
	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/config"
	"github.com/lixenwraith/parallax/frame"
	"github.com/lixenwraith/parallax/motion"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/status"
	"github.com/lixenwraith/parallax/tilt"
	"github.com/lixenwraith/parallax/window"
)

var (
	configPath    = flag.String("config", "parallax.yaml", "YAML configuration file")
	debugFlag     = flag.Bool("debug", false, "Log to stderr and show the metrics overlay")
	soundFlag     = flag.Bool("sound", false, "Play a tone whose pitch follows horizontal tilt")
	reducedMotion = flag.String("reduced-motion", "", "Force reduced motion: auto, on, off")
)

func main() {
	flag.Parse()

	// A window leaves stderr free, so debug logs go straight there
	if !*debugFlag {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
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
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	reg := status.NewRegistry()
	// ebiten's Update is the tick source; the loop is stepped, never Run
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

	app, err := window.NewApp(loop, cfg, reg, window.NewMatcher(), observer, parameter.WindowWidth, parameter.WindowHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := app.Mount(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := window.Run(app, "parallax"); err != nil {
		log.Printf("[Main] window: %v", err)
	}
}
