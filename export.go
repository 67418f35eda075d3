package main

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/milk9111/slicer/repro"
	"golang.design/x/clipboard"
)

// reproFallback receives the repro case when no clipboard is available.
const reproFallback = "repro.yaml"

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// copyRepro puts the last commit on the clipboard as a slicecheck case.
func (g *Game) copyRepro() {
	rep := g.ctrl.LastReport()
	if !rep.Committed || len(rep.Bodies) == 0 {
		g.flash("no cut to copy")
		return
	}
	c := repro.FromReport(fmt.Sprintf("%s-frame-%d", g.sceneName, g.frames), rep, g.tuning.Epsilon)
	data, err := c.Marshal()
	if err != nil {
		log.Printf("export: %v", err)
		return
	}

	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		if err := os.WriteFile(reproFallback, data, 0o644); err != nil {
			log.Printf("export: clipboard unavailable (%v) and write failed: %v", clipboardErr, err)
			return
		}
		g.flash("repro written to " + reproFallback)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.flash(fmt.Sprintf("copied repro (%d bodies)", len(c.Bodies)))
}
