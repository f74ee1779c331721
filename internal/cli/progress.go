package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"apuntes/internal/pipeline"
	"apuntes/internal/stage"
)

const timeRound = 100 * time.Millisecond

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// stageEventMsg carries one pipeline event into the UI.
type stageEventMsg pipeline.Event

// runDoneMsg carries the final outcome of the pipeline goroutine.
type runDoneMsg struct {
	report *pipeline.Report
	err    error
}

// progressModel is the bubbletea model for a pipeline run.
type progressModel struct {
	events   <-chan pipeline.Event
	outcome  <-chan runDoneMsg
	cancel   context.CancelFunc
	progress progress.Model
	theme    Theme

	current  string
	index    int
	total    int
	degraded []string
	report   *pipeline.Report
	done     bool
	err      error
}

// newProgressModel creates a new progress model.
func newProgressModel(events <-chan pipeline.Event, outcome <-chan runDoneMsg, cancel context.CancelFunc) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		events:   events,
		outcome:  outcome,
		cancel:   cancel,
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command (wait for the first event).
func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		m.waitForEvent(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Cancel the run; the final outcome still arrives as runDoneMsg.
			m.cancel()
			return m, nil
		}

	case stageEventMsg:
		ev := pipeline.Event(msg)
		m.current = ev.Stage
		m.index = ev.Index
		m.total = ev.Total
		if ev.State == pipeline.StateDegraded {
			m.degraded = append(m.degraded, ev.Stage)
		}
		return m, m.waitForEvent()

	case runDoneMsg:
		m.done = true
		m.report = msg.report
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m progressModel) renderContent() string {
	if m.done {
		return m.finalView()
	}

	if m.current == "" {
		return "Starting pipeline...\n"
	}

	var pct float64
	if m.total > 0 {
		pct = float64(m.index-1) / float64(m.total)
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.current))
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d stages", m.index, m.total)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to cancel")

	return fmt.Sprintf("%s %s %s\n%s\n", status, progressBar, counts, hint)
}

// finalView renders the completion message.
func (m progressModel) finalView() string {
	if m.err != nil {
		if errors.Is(m.err, context.Canceled) {
			return m.theme.hintStyle().Render("\nRun cancelled.\n")
		}
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Pipeline failed: %s\n", m.err))
	}

	var output string
	output += m.theme.completedStyle().Render("✓ Completed") + "\n\n"
	if m.report != nil {
		output += fmt.Sprintf("  Study bundle: %s\n", m.report.Artifacts.Markdown)
		for _, res := range m.report.Results {
			if res.Output != "" {
				output += fmt.Sprintf("  %-12s %s\n", res.Stage, res.Output)
			}
		}
	}
	if len(m.degraded) > 0 {
		output += m.theme.errorStyle().Render(fmt.Sprintf("\nDegraded stages (%d):\n", len(m.degraded)))
		for _, name := range m.degraded {
			output += fmt.Sprintf("  • %s\n", name)
		}
	}
	return output
}

// waitForEvent blocks on the event channel; when it closes, the final
// outcome is read instead.
func (m progressModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return runDoneMsg(<-m.outcome)
		}
		return stageEventMsg(ev)
	}
}

// managerFunc abstracts over NewFromVideo / NewFromTranscript.
type managerFunc func(string, pipeline.Collaborators, *slog.Logger, ...pipeline.Option) (*pipeline.Manager, error)

// runWithProgress runs the pipeline with the interactive progress UI.
func runWithProgress(ctx context.Context, input string, collab pipeline.Collaborators, newManager managerFunc) error {
	events := make(chan pipeline.Event)
	outcome := make(chan runDoneMsg, 1)

	m, err := newManager(input, collab, log, pipeline.WithEventFunc(func(ev pipeline.Event) {
		events <- ev
	}))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		report, err := m.Run(runCtx)
		close(events)
		outcome <- runDoneMsg{report: report, err: err}
	}()

	model := newProgressModel(events, outcome, cancel)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}

	if fm, ok := finalModel.(progressModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// degradedReason describes why a stage degraded, for plain output.
func degradedReason(res stage.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	return "no content produced"
}
