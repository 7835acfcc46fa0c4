// Package tui shows a visualization run live in the terminal: a
// sparkline of the latent-mean trajectory so far plus per-frame
// readouts, updating as the sampler works through the frames.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/latentwalk/internal/vis"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type frameMsg struct {
	frame    int
	modifier float64
	mean     float64
	seed     uint64
}

type doneMsg struct {
	result *vis.Result
	err    error
}

// channelObserver forwards frame callbacks from the run goroutine into
// the bubbletea event loop.
type channelObserver struct {
	ch chan<- tea.Msg
}

func (o channelObserver) OnFrame(frame int, modifier, mean float64, seed uint64) {
	o.ch <- frameMsg{frame: frame, modifier: modifier, mean: mean, seed: seed}
}

// Model is the live view of one visualization run. The run executes in
// its own goroutine; quitting the view cancels it between frames.
type Model struct {
	viz *vis.Visualizer
	cfg vis.Config

	cancel context.CancelFunc
	runCtx context.Context
	ch     chan tea.Msg

	total   int
	means   []float64
	last    frameMsg
	started time.Time

	done   bool
	err    error
	result *vis.Result

	width int
}

// New prepares a live view for the given run. The run starts when the
// bubbletea program does.
func New(ctx context.Context, v *vis.Visualizer, cfg vis.Config) *Model {
	runCtx, cancel := context.WithCancel(ctx)

	total := cfg.DesiredFrames()
	if cfg.ImageLimit > 0 && cfg.ImageLimit < total {
		total = cfg.ImageLimit
	}

	return &Model{
		viz:    v,
		cfg:    cfg,
		cancel: cancel,
		runCtx: runCtx,
		ch:     make(chan tea.Msg, 16),
		total:  total,
		width:  80,
	}
}

// Result returns the finished run's output, nil if it failed or was
// cancelled.
func (m *Model) Result() *vis.Result { return m.result }

// Err returns the run error, nil on success.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd {
	m.started = time.Now()
	m.viz.AddObserver(channelObserver{ch: m.ch})

	run := func() tea.Msg {
		result, err := m.viz.Run(m.runCtx, m.cfg)
		return doneMsg{result: result, err: err}
	}
	return tea.Batch(run, m.wait())
}

// wait pulls the next message produced by the run goroutine.
func (m *Model) wait() tea.Cmd {
	return func() tea.Msg {
		return <-m.ch
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case frameMsg:
		m.last = msg
		m.means = append(m.means, msg.mean)
		return m, m.wait()
	case doneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(cyan.Render("latentwalk live"))
	sb.WriteString(dim.Render(fmt.Sprintf("  %s / seed %s",
		m.cfg.LatentMode, m.cfg.SeedMode)))
	sb.WriteString("\n\n")

	if len(m.means) > 0 {
		graphW := m.width - 12
		if graphW < 20 {
			graphW = 20
		}
		sb.WriteString(asciigraph.Plot(m.means,
			asciigraph.Height(10),
			asciigraph.Width(graphW),
			asciigraph.Caption("latent mean"),
		))
		sb.WriteString("\n\n")
	}

	elapsed := time.Since(m.started).Round(100 * time.Millisecond)
	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		dim.Render("frame"),
		white.Render(fmt.Sprintf("%d/%d", len(m.means), m.total)),
		dim.Render("mean"),
		yellow.Render(fmt.Sprintf("%+.4f", m.last.mean)),
		dim.Render("elapsed"),
		white.Render(elapsed.String()),
	))
	sb.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		dim.Render("modifier"),
		white.Render(fmt.Sprintf("%+.4f", m.last.modifier)),
		dim.Render("seed"),
		white.Render(fmt.Sprintf("%d", m.last.seed)),
	))

	sb.WriteString("\n")
	switch {
	case m.done && m.err != nil:
		sb.WriteString(red.Render(fmt.Sprintf("failed: %v", m.err)))
	case m.done:
		sb.WriteString(green.Render("done"))
	default:
		sb.WriteString(dim.Render("q to cancel"))
	}
	sb.WriteString("\n")

	return sb.String()
}
