package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"docshelf/internal/organizer"
)

// phaseDescriptions maps engine phases to progress labels.
var phaseDescriptions = map[string]string{
	organizer.PhaseScan:    "Scanning",
	organizer.PhaseAnalyze: "Matching",
	organizer.PhaseMove:    "Moving",
	"undo":                 "Restoring",
}

// progressRenderer drives one progress bar per engine phase. It renders
// nothing when stderr is not a terminal.
type progressRenderer struct {
	enabled bool
	phase   string
	bar     *progressbar.ProgressBar
}

func newProgressRenderer() *progressRenderer {
	return &progressRenderer{
		enabled: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
}

// Notify implements organizer.Progress.
func (p *progressRenderer) Notify(phase string, current, total int) {
	if !p.enabled {
		return
	}
	if phase != p.phase {
		p.finishCurrent()
		p.phase = phase
		description := phaseDescriptions[phase]
		if description == "" {
			description = phase
		}
		size := int64(total)
		if size == 0 {
			size = -1
		}
		p.bar = progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
		)
	}
	if p.bar != nil && current > 0 {
		_ = p.bar.Set(current)
	}
}

// Finish closes out the active bar, if any.
func (p *progressRenderer) Finish() {
	p.finishCurrent()
	p.phase = ""
}

func (p *progressRenderer) finishCurrent() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
