package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slicer/common"
	"github.com/milk9111/slicer/config"
	"github.com/milk9111/slicer/controller"
	"github.com/milk9111/slicer/physics"
	"github.com/milk9111/slicer/render"
	"github.com/milk9111/slicer/scene"
)

const statusDuration = 2 * time.Second

type GameOptions struct {
	Scene string
	// Mode overrides the tuning file when set.
	Mode  string
	Debug bool
}

type Game struct {
	frames int
	debug  bool

	tuning    config.Tuning
	mode      string
	sceneName string

	world    *physics.World
	ctrl     *controller.Controller
	renderer *render.Renderer
	pointer  *Pointer
	watcher  *config.Watcher

	settings     *ebitenui.UI
	settingsView *settingsView
	paused       bool

	status      string
	statusUntil time.Time
}

func NewGame(opts GameOptions) (*Game, error) {
	tuning, err := config.LoadTuning(config.TuningFile)
	if err != nil {
		return nil, err
	}
	if opts.Mode != "" {
		if _, err := controller.ParseMode(opts.Mode); err != nil {
			return nil, err
		}
		tuning.Mode = opts.Mode
	}

	worldOpts := physics.DefaultOptions(common.BaseWidth, common.BaseHeight)
	worldOpts.Gravity = tuning.Gravity
	worldOpts.Density = tuning.Density
	worldOpts.DragMaxForce = tuning.DragMaxForce
	world := physics.NewWorld(worldOpts)

	ctrl := controller.New(world, world.Drag(), tuning.Controller())
	ctrl.Logf = log.Printf

	g := &Game{
		debug:     opts.Debug,
		tuning:    tuning,
		mode:      opts.Mode,
		sceneName: opts.Scene,
		world:     world,
		ctrl:      ctrl,
		renderer:  render.NewRenderer(tuning.Colors),
		pointer:   NewPointer(),
	}
	if g.sceneName == "" {
		g.sceneName = scene.DefaultScene
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}

	g.watcher = startWatcher(config.Dir, scene.Dir)
	g.settingsView = newSettingsView(g)
	g.settings = g.settingsView.ui
	return g, nil
}

// startWatcher watches whichever of dirs exist. Hot reload is a convenience,
// so a missing directory only disables it.
func startWatcher(dirs ...string) *config.Watcher {
	var existing []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	w, err := config.NewWatcher(existing...)
	if err != nil {
		log.Printf("game: hot reload disabled: %v", err)
		return nil
	}
	log.Printf("game: watching %s", strings.Join(existing, ", "))
	return w
}

func (g *Game) loadScene() error {
	sc, err := scene.Load(g.sceneName, common.BaseWidth, common.BaseHeight, scene.DefaultsFrom(g.tuning))
	if err != nil {
		return err
	}
	g.world.Clear()
	if err := scene.Populate(g.world, sc); err != nil {
		log.Printf("game: %v", err)
	}
	return nil
}

func (g *Game) reset() {
	if err := g.loadScene(); err != nil {
		log.Printf("game: reset: %v", err)
		g.flash("reset failed, see log")
		return
	}
	g.flash("scene " + g.sceneName + " reset")
}

func (g *Game) Update() error {
	g.frames++
	now := time.Now()
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.settings.Update()
		return nil
	}

	g.handleKeys()
	g.pointer.Update()
	g.routePointer(now)

	g.world.Step(1)
	g.ctrl.Tick(now)
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyRepro()
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.debug = !g.debug
	}
}

// routePointer forwards pointer edges to the controller. A press and release
// in the same frame are both delivered, in that order.
func (g *Game) routePointer(now time.Time) {
	p := g.pointer
	if p.JustPressed {
		g.ctrl.PointerDown(p.Pos, now)
	} else if p.Pressed {
		g.ctrl.PointerMove(p.Pos, now)
	}
	if !p.JustReleased {
		return
	}
	rep := g.ctrl.PointerUp(p.Pos, now)
	if rep.Committed && rep.Removed > 0 {
		log.Printf("game: cut %d bodies into %d fragments", rep.Removed, rep.Created)
	}
}

func (g *Game) toggleMode() {
	cfg := g.ctrl.Config()
	if cfg.Mode == controller.ModeSingle {
		cfg.Mode = controller.ModeFreehand
	} else {
		cfg.Mode = controller.ModeSingle
	}
	g.ctrl.SetConfig(cfg)
	g.mode = cfg.Mode.String()
	g.settingsView.sync()
	g.flash("mode: " + cfg.Mode.String())
}

// reload applies edited tuning and scene files. A bad file is logged and the
// previous values stay.
func (g *Game) reload() {
	for _, change := range g.watcher.Drain() {
		switch change.Kind {
		case config.TuningChanged:
			if filepath.Base(change.Path) != config.TuningFile {
				continue
			}
			t, err := config.LoadTuning(config.TuningFile)
			if err != nil {
				log.Printf("game: keeping previous tuning: %v", err)
				g.flash("tuning error, see log")
				continue
			}
			g.applyTuning(t)
			g.flash("tuning reloaded")
		case config.SceneChanged:
			if strings.TrimSuffix(filepath.Base(change.Path), ".tengo") != g.sceneName {
				continue
			}
			g.reset()
		}
	}
}

func (g *Game) applyTuning(t config.Tuning) {
	if g.mode != "" {
		t.Mode = g.mode
	}
	g.tuning = t
	g.world.SetGravity(t.Gravity)
	g.world.SetDensity(t.Density)
	g.world.Drag().SetMaxForce(t.DragMaxForce)
	g.ctrl.SetConfig(t.Controller())
	g.renderer.Colors = t.Colors
	g.settingsView.sync()
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(statusDuration)
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	screen.Fill(g.tuning.Colors.Background.NRGBA)

	g.renderer.Bodies(screen, g.world)
	g.renderer.History(screen, g.ctrl.History(), now)
	g.renderer.Preview(screen, g.ctrl, g.pointer.Pos)
	if g.debug {
		physics.DrawDebug(g.world, screen)
	}

	cfg := g.ctrl.Config()
	hud := fmt.Sprintf("FPS: %.1f  mode: %s  state: %s  bodies: %d  impacts: %d\n[Esc] settings  [M] mode  [R] reset  [C] copy repro  [F1] debug",
		ebiten.ActualFPS(), cfg.Mode, g.ctrl.State(), len(g.world.Bodies()), g.world.Impacts())
	if g.status != "" && now.Before(g.statusUntil) {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.paused {
		g.settings.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the file watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
