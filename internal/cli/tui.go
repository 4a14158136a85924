package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/boundlayout/pkg/core/sim"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

const (
	barWidth       = 40
	progressEvents = 200 // upper bound on progress messages per run
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	phaseStyle    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// =============================================================================
// Messages
// =============================================================================

type progressMsg struct{ done, total int }

type resultMsg struct {
	result *pipeline.Result
	err    error
}

// =============================================================================
// LayoutModel - live progress of one layout run
// =============================================================================

// LayoutModel is the bubbletea model behind `layout --tui`. Pressing q or
// ctrl+c cancels the run; the partial layout is still reported.
type LayoutModel struct {
	Title   string
	Done    int
	Total   int
	Started time.Time
	Result  *pipeline.Result
	Err     error

	cancel     context.CancelFunc
	cancelling bool
	finished   bool
}

// NewLayoutModel creates a model for a run of total iterations.
func NewLayoutModel(title string, total int, cancel context.CancelFunc) LayoutModel {
	return LayoutModel{Title: title, Total: total, Started: time.Now(), cancel: cancel}
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.cancelling && m.cancel != nil {
				m.cancel()
			}
			m.cancelling = true
		}
	case progressMsg:
		m.Done, m.Total = msg.done, msg.total
	case resultMsg:
		m.Result, m.Err = msg.result, msg.err
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LayoutModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout " + m.Title))
	b.WriteString("\n\n")

	frac := 0.0
	if m.Total > 0 {
		frac = float64(m.Done) / float64(m.Total)
	}
	filled := int(frac * barWidth)
	b.WriteString(barFullStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", barWidth-filled)))
	fmt.Fprintf(&b, " %3.0f%%  %s\n", frac*100, StyleDim.Render(fmt.Sprintf("%d/%d", m.Done, m.Total)))

	fmt.Fprintf(&b, "%s %s  %s\n",
		StyleDim.Render("phase"), phaseStyle.Render(phaseAt(m.Done, m.Total)),
		StyleDim.Render(time.Since(m.Started).Round(100*time.Millisecond).String()))

	switch {
	case m.finished && m.Err != nil:
		b.WriteString("\n" + styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
	case m.finished && m.Result != nil:
		b.WriteString("\n" + regionTable(m.Result.Layout.Regions) + "\n")
	case m.cancelling:
		b.WriteString("\n" + StyleWarning.Render("cancelling...") + "\n")
	default:
		b.WriteString("\n" + StyleDim.Render("q cancel") + "\n")
	}
	return b.String()
}

// phaseAt names the engine phase running at iteration done of total.
func phaseAt(done, total int) string {
	switch {
	case total <= 0:
		return "-"
	case done < total/3:
		return sim.PhaseSprings
	case done < 2*total/3:
		return sim.PhaseWalls
	}
	return sim.PhaseRepulsion
}

// =============================================================================
// Runner integration
// =============================================================================

// runWithTUI executes the pipeline while a LayoutModel renders its progress
// on stderr. Logging is muted for the duration so it cannot tear the view.
func runWithTUI(ctx context.Context, runner *pipeline.Runner, s *scene.Scene, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := s.Layout.NumIterations
	if total <= 0 {
		total = sim.DefaultNumIterations
	}
	p := tea.NewProgram(NewLayoutModel(s.Name, total, cancel), tea.WithOutput(os.Stderr))

	step := max(total/progressEvents, 1)
	opts.Progress = func(done, total int) {
		if done%step == 0 || done == total {
			p.Send(progressMsg{done: done, total: total})
		}
	}
	quiet := *runner
	quiet.Logger = log.New(io.Discard)
	opts.Logger = quiet.Logger

	go func() {
		res, err := quiet.Execute(ctx, s, opts)
		p.Send(resultMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	m := final.(LayoutModel)
	return m.Result, m.Err
}
