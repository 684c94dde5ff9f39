package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/defihorse/horse-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpinnerProgressReporter shows a spinner while a stage is waiting
type SpinnerProgressReporter struct {
	out          io.Writer
	spinner      *spinner.Spinner
	enabled      bool
	title        cases.Caser
	stages       []stageInfo
	currentStage usecase.ExecutionStage
}

type stageInfo struct {
	Stage     usecase.ExecutionStage
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

// NewSpinnerProgressReporter creates a reporter writing to out. The spinner
// only animates when enabled; messages are printed either way.
func NewSpinnerProgressReporter(out io.Writer, enabled bool) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		out:     out,
		spinner: s,
		enabled: enabled,
		title:   cases.Title(language.English),
	}
}

// IsTerminal reports whether w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	stage := usecase.ExecutionStage(event.Stage)
	if stage != r.currentStage {
		r.completeCurrentStage()
		r.currentStage = stage
		r.stages = append(r.stages, stageInfo{
			Stage:     stage,
			StartTime: time.Now(),
			Status:    "running",
		})
	}
	r.stages[len(r.stages)-1].Message = event.Message

	if stage == usecase.StageCompleted {
		r.completeCurrentStage()
	}

	if event.Spinner && r.enabled {
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage marks the current stage as completed
func (r *SpinnerProgressReporter) completeCurrentStage() {
	if len(r.stages) == 0 {
		return
	}
	idx := len(r.stages) - 1
	if r.stages[idx].Status == "completed" {
		return
	}
	r.stages[idx].EndTime = time.Now()
	r.stages[idx].Status = "completed"
}

// display renders the stage trail, e.g. "✓ Deploying → ● Confirming"
func (r *SpinnerProgressReporter) display() string {
	var display string
	for _, stage := range r.stages {
		if stage.Stage == usecase.StageResolving {
			continue
		}

		var icon string
		var stageColor *color.Color
		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}

		if display != "" {
			display += " → "
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(r.title.String(string(stage.Stage))), duration)
	}

	if current := r.stages[len(r.stages)-1]; current.Message != "" {
		display += " " + current.Message
	}
	return display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
