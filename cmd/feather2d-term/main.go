// Command feather2d-term runs the sandbox scene in a terminal.
//
// Click or press c / r to drop a circle / rectangle, 1 2 3 to pick the basic,
// rotation or friction resolver, space to pause, q or Esc to quit.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/internal/sandbox"
	"github.com/akmonengine/feather2d/render"
	"github.com/akmonengine/feather2d/render/termrender"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// viewWidth is the world width shown, in cm. The height follows the terminal aspect.
const viewWidth = 700

var resolverKeys = map[rune]string{
	'1': constraint.ResolverBasic,
	'2': constraint.ResolverRotation,
	'3': constraint.ResolverFriction,
}

type app struct {
	screen   tcell.Screen
	renderer *termrender.Renderer
	sandbox  *sandbox.Sandbox
	camera   render.Camera

	// buttons held at the last mouse event; a body spawns on press only
	buttons tcell.ButtonMask

	audioInit bool
	hits      int
}

func newApp(cfg config.Config, logger *log.Logger, mute bool) (*app, error) {
	sb, err := sandbox.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseButtonEvents)

	a := &app{
		screen:   screen,
		renderer: termrender.New(screen),
		sandbox:  sb,
	}
	a.resize()

	if !mute {
		if err := a.initAudio(); err != nil {
			// Non-fatal, the sandbox runs without sound
			log.Printf("audio initialization failed: %v", err)
		}
	}
	sb.World.Events.Subscribe(feather2d.COLLISION_ENTER, func(event feather2d.Event) {
		a.hits++
	})

	return a, nil
}

func (a *app) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		a.audioInit = true
	}
	return err
}

// playHitSound plays one short tone per frame with new contacts, whatever their number
func (a *app) playHitSound() {
	if !a.audioInit || a.hits == 0 {
		return
	}

	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, 440+float64(min(a.hits, 8))*60)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(30*time.Millisecond), sine))
}

// resize keeps the world aspect: a terminal cell is about twice as tall as wide
func (a *app) resize() {
	width, height := a.screen.Size()
	a.camera = render.Camera{
		Center: mgl32.Vec2{0, 0},
		Width:  viewWidth,
		Height: viewWidth * float32(height*2) / float32(max(width, 1)),
	}
}

func (a *app) spawn(kind actor.ShapeKind, x, y int) {
	width, height := a.screen.Size()
	position := a.camera.ScreenToWorld(mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}, width, height)
	if _, err := a.sandbox.Spawn(kind, position); err != nil {
		log.Printf("spawn: %v", err)
	}
}

func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		width, height := a.screen.Size()
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case ' ':
			a.sandbox.Paused = !a.sandbox.Paused
		case 'c':
			a.spawn(actor.ShapeCircle, width/2, height/8)
		case 'r':
			a.spawn(actor.ShapeRectangle, width/2, height/8)
		default:
			if name, ok := resolverKeys[r]; ok {
				_ = a.sandbox.SetResolver(name)
			}
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons() &^ a.buttons
		a.buttons = ev.Buttons()

		x, y := ev.Position()
		if pressed&tcell.Button1 != 0 {
			a.spawn(actor.ShapeCircle, x, y)
		} else if pressed&tcell.Button2 != 0 {
			a.spawn(actor.ShapeRectangle, x, y)
		}

	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	}

	return true
}

func (a *app) draw() {
	a.screen.Clear()
	a.sandbox.World.Draw(a.renderer, a.camera.Projection())

	status := fmt.Sprintf(" bodies %d  resolver %s  steps %d ", a.sandbox.World.BodyCount(), a.sandbox.Config.Resolver, a.sandbox.Steps())
	if a.sandbox.Paused {
		status += " [paused]"
	}
	a.renderer.Text(0, 0, status, tcell.StyleDefault.Reverse(true))
	a.screen.Show()
}

func (a *app) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			a.hits = 0
			a.sandbox.Advance(float32(now.Sub(last).Seconds()))
			last = now

			a.playHitSound()
			a.draw()
		}
	}
}

func (a *app) cleanup() {
	if a.audioInit {
		speaker.Close()
	}
	a.screen.Fini()
}

func main() {
	configPath := flag.String("config", config.Path, "YAML configuration file")
	logPath := flag.String("log", "", "write world logs to this file")
	mute := flag.Bool("mute", false, "disable the collision sound")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config: %v, using defaults", err)
	}

	// The terminal belongs to tcell: logs go to a file or nowhere
	var logger *log.Logger
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
		logger = log.Default()
	} else {
		log.SetOutput(io.Discard)
	}

	a, err := newApp(cfg, logger, *mute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.cleanup()

	a.run()
}
