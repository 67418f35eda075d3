package main

import (
	"image/color"

	"github.com/milk9111/slicer/common"
	"github.com/milk9111/slicer/controller"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// settingsView is the overlay shown while paused. Toggle buttons show the
// current value in their label.
type settingsView struct {
	g  *Game
	ui *ebitenui.UI

	mode   *widget.Button
	bias   *widget.Button
	commit *widget.Button
}

func newSettingsView(g *Game) *settingsView {
	v := &settingsView{g: g}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Top: 6, Bottom: 6, Left: 12, Right: 12}),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	title := widget.NewText(
		widget.TextOpts.Text("Settings", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	v.mode = button("", g.toggleMode)
	v.bias = button("", func() {
		cfg := g.ctrl.Config()
		cfg.Kinematics.UpwardBias = !cfg.Kinematics.UpwardBias
		g.ctrl.SetConfig(cfg)
		v.sync()
	})
	v.commit = button("", func() {
		cfg := g.ctrl.Config()
		if cfg.Commit == controller.CommitOnRelease {
			cfg.Commit = controller.CommitNever
		} else {
			cfg.Commit = controller.CommitOnRelease
		}
		g.ctrl.SetConfig(cfg)
		v.sync()
	})
	reset := button("Reset scene", func() {
		g.reset()
		g.paused = false
	})
	resume := button("Resume", func() {
		g.paused = false
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(v.mode)
	panel.AddChild(v.bias)
	panel.AddChild(v.commit)
	panel.AddChild(reset)
	panel.AddChild(resume)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	v.ui = &ebitenui.UI{Container: root}
	v.sync()
	return v
}

// sync refreshes the toggle labels from the controller config.
func (v *settingsView) sync() {
	if v == nil {
		return
	}
	cfg := v.g.ctrl.Config()
	v.mode.SetText("Mode: " + cfg.Mode.String())
	bias := "off"
	if cfg.Kinematics.UpwardBias {
		bias = "on"
	}
	v.bias.SetText("Upward bias: " + bias)
	v.commit.SetText("Freehand commit: " + cfg.Commit.String())
}
