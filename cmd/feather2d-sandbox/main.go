// Command feather2d-sandbox runs the sandbox scene in a raylib window.
//
// Left click drops a circle, right click a rectangle. Keys 1 2 3 pick the basic,
// rotation or friction resolver, space pauses.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/internal/sandbox"
	"github.com/akmonengine/feather2d/render"
	"github.com/akmonengine/feather2d/render/rayrender"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

var resolverKeys = map[int32]string{
	rl.KeyOne:   constraint.ResolverBasic,
	rl.KeyTwo:   constraint.ResolverRotation,
	rl.KeyThree: constraint.ResolverFriction,
}

func main() {
	configPath := flag.String("config", config.Path, "YAML configuration file")
	verbose := flag.Bool("v", false, "log body removals")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("config: %v, using defaults", err)
	}

	var logger *log.Logger
	if *verbose {
		logger = log.Default()
	}

	sb, err := sandbox.New(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	rl.InitWindow(screenWidth, screenHeight, "feather2d sandbox")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := render.Camera{Center: mgl32.Vec2{0, 0}, Width: 800, Height: 600}
	renderer := rayrender.New()
	background := rl.NewColor(30, 34, 40, 255)

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		cursor := camera.ScreenToWorld(mgl32.Vec2{mouse.X, mouse.Y}, rl.GetScreenWidth(), rl.GetScreenHeight())

		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			if _, err := sb.Spawn(actor.ShapeCircle, cursor); err != nil {
				log.Printf("spawn: %v", err)
			}
		}
		if rl.IsMouseButtonPressed(rl.MouseRightButton) {
			if _, err := sb.Spawn(actor.ShapeRectangle, cursor); err != nil {
				log.Printf("spawn: %v", err)
			}
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			sb.Paused = !sb.Paused
		}
		for key, name := range resolverKeys {
			if rl.IsKeyPressed(key) {
				_ = sb.SetResolver(name)
			}
		}

		sb.Advance(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(background)
		sb.World.Draw(renderer, camera.Projection())
		rl.DrawText(fmt.Sprintf("bodies %d  resolver %s", sb.World.BodyCount(), sb.Config.Resolver), 10, 10, 20, rl.RayWhite)
		if sb.Paused {
			rl.DrawText("paused", 10, 34, 20, rl.Yellow)
		}
		rl.DrawFPS(screenWidth-90, 10)
		rl.EndDrawing()
	}
}
