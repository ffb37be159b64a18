package gui

import (
	"fmt"
	"time"

	raygui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/fieldsim/internal/field"
	"github.com/san-kum/fieldsim/internal/frame"
	"github.com/san-kum/fieldsim/internal/viz"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 18, 255)
	ColSelect  = rl.NewColor(230, 233, 245, 255)
	ColText    = rl.NewColor(140, 140, 160, 255)
	ColTextDim = rl.NewColor(60, 60, 80, 255)
	ColAccent  = rl.NewColor(122, 162, 255, 255)
)

const (
	SurfaceID    = "window"
	maxTelemetry = 200
)

type Options struct {
	Width, Height int
	FPS           int
	Mode          field.Mode
	Reduced       bool
	Banner        viz.Banner
}

type App struct {
	Loop  *frame.Loop
	Field *field.Field
	Prefs *field.Prefs

	Surface   *Surface
	TargetTex rl.RenderTexture2D
	GlowTex   rl.Texture2D

	Paused    bool
	ShowHUD   bool
	Telemetry []float64 // link counts, newest last
	Banner    viz.Banner

	minimized bool
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow(w, h, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), "fieldsim")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// NewApp mounts a field on the window. It must run after initWindow.
func NewApp(cfg field.Config, opts Options) (*App, error) {
	img := rl.GenImageGradientRadial(64, 64, 0.0, rl.White, rl.NewColor(255, 255, 255, 0))
	glow := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	app := &App{
		Loop:      frame.NewLoop(field.Viewport{Width: w, Height: h}),
		Prefs:     &field.Prefs{Current: opts.Mode, Reduced: opts.Reduced},
		Surface:   &Surface{Background: ColBg, GlowTex: glow},
		TargetTex: rl.LoadRenderTexture(int32(w), int32(h)),
		GlowTex:   glow,
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		Banner:    opts.Banner,
	}
	app.clearTarget()
	app.Loop.Mount(SurfaceID, app.Surface)

	// Initialize may draw a static frame, which has to land in the texture.
	rl.BeginTextureMode(app.TargetTex)
	f, err := field.Initialize(app.Loop, SurfaceID, cfg, app.Prefs)
	rl.EndTextureMode()
	if err != nil {
		app.unload()
		return nil, err
	}
	app.Field = f
	f.AddObserver(field.ObserverFunc(app.observe))
	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg field.Config, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, opts)
	if err != nil {
		return err
	}
	defer app.unload()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
	a.Field.Stop()
}

func (a *App) observe(s field.FrameStats) {
	if len(a.Telemetry) >= maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	a.Telemetry = append(a.Telemetry, float64(s.Links))
}

// Update handles window events and input. It returns false on quit.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		if w > 0 && h > 0 {
			rl.UnloadRenderTexture(a.TargetTex)
			a.TargetTex = rl.LoadRenderTexture(int32(w), int32(h))
			a.clearTarget()
		}
		rl.BeginTextureMode(a.TargetTex)
		a.Loop.Resize(field.Viewport{Width: w, Height: h})
		rl.EndTextureMode()
	}

	minimized := rl.IsWindowMinimized()
	if minimized != a.minimized {
		a.minimized = minimized
		a.syncVisibility()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.Field.Stop()
		return false
	case rl.IsKeyPressed(rl.KeySpace):
		a.togglePause()
	case rl.IsKeyPressed(rl.KeyM):
		a.cycleMode()
	case rl.IsKeyPressed(rl.KeyR):
		a.reseed()
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}
	return true
}

func (a *App) togglePause() {
	a.Paused = !a.Paused
	a.syncVisibility()
}

func (a *App) cycleMode() {
	a.Prefs.CycleMode()
	if a.Prefs.Mode() == field.ModeNone {
		a.clearTarget()
	}
}

func (a *App) reseed() {
	a.clearTarget()
	rl.BeginTextureMode(a.TargetTex)
	a.Field.Reseed(a.Loop.Viewport())
	rl.EndTextureMode()
}

func (a *App) syncVisibility() {
	a.Loop.SetVisible(!a.minimized && !a.Paused)
}

func (a *App) clearTarget() {
	rl.BeginTextureMode(a.TargetTex)
	rl.ClearBackground(ColBg)
	rl.EndTextureMode()
}

// Draw ticks the loop into the render texture and presents it.
func (a *App) Draw() {
	rl.BeginTextureMode(a.TargetTex)
	a.Loop.Tick(time.Now())
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(a.TargetTex.Texture.Width), -float32(a.TargetTex.Texture.Height))
	rl.DrawTextureRec(a.TargetTex.Texture, src, rl.NewVector2(0, 0), rl.White)

	if a.Banner != nil {
		a.DrawBanner()
	}
	if a.ShowHUD {
		a.DrawHUD()
		a.DrawControls()
	}
	rl.EndDrawing()
}

func (a *App) state() string {
	switch {
	case a.Paused:
		return "PAUSED"
	case !a.Field.Scheduled():
		return "STATIC"
	}
	return "RUNNING"
}

func (a *App) DrawHUD() {
	h := int32(rl.GetScreenHeight())
	w := int32(rl.GetScreenWidth())

	rl.DrawText("fieldsim", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s  %s  %d particles", a.Prefs.Mode(), a.Field.Viewport(), len(a.Field.Particles())), 160, 36, 16, ColText)

	status := a.state()
	col := ColSelect
	if status != "RUNNING" {
		col = ColTextDim
	}
	rl.DrawText(status, w-120, 30, 16, col)

	a.DrawTelemetry(30, h-110, 300, 50)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-40, 14, ColTextDim)
	rl.DrawText("[SPACE] PAUSE  [M] MODE  [R] RESEED  [H] HUD  [Q] QUIT", w-520, h-40, 14, ColTextDim)
}

// DrawControls draws the button panel. Clicks act after the frame has been
// ticked, so they take effect from the next frame on.
func (a *App) DrawControls() {
	x := float32(rl.GetScreenWidth()) - 150
	y := float32(60)

	if raygui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, toggleText(a.Paused, "Resume", "Pause")) {
		a.togglePause()
	}
	y += 40
	if raygui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, "Mode: "+string(a.Prefs.Mode())) {
		a.cycleMode()
	}
	y += 40
	if raygui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 30}, "Reseed") {
		a.reseed()
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// DrawTelemetry plots recent link counts as a line strip.
func (a *App) DrawTelemetry(x, y, width, height int32) {
	if len(a.Telemetry) < 2 {
		return
	}

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(x) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("links: %.0f", a.Telemetry[len(a.Telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}

// DrawBanner centres the banner lines on the window, title largest.
func (a *App) DrawBanner() {
	lines := a.Banner.Lines(time.Now())
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	y := h/2 - int32(len(lines))*20
	for i, line := range lines {
		size, col := int32(20), ColText
		if i == 0 {
			size, col = 40, ColSelect
		}
		tw := rl.MeasureText(line, size)
		rl.DrawText(line, (w-tw)/2, y, size, col)
		y += size + 12
	}
}

func (a *App) unload() {
	rl.UnloadRenderTexture(a.TargetTex)
	rl.UnloadTexture(a.GlowTex)
}
