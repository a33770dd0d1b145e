package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

// searchModel is the live view of a genetic search run: generation
// counter, a fitness progress bar (fitness is "0 is best," so the bar
// fills as the best individual improves), winner count, and the estimate
// table when running under synth/list. Grounded on the teacher's
// testExecutionModel (same progress.Model + lipgloss styling idiom),
// sized down to the fields this domain's search loop actually reports.
type searchModel struct {
	cfg StartConfig

	width int

	bar progress.Model

	gen          int
	bestFitness  float64
	haveFitness  bool
	winnersSoFar int

	holes    []HoleEstimate
	holesErr error

	winners  []WinnerSummary
	quitting bool
}

func newSearchModel(cfg *StartConfig) searchModel {
	return searchModel{
		cfg:         *cfg,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		bestFitness: 1,
	}
}

func (m searchModel) Init() tea.Cmd {
	return nil
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case generationMsg:
		m.gen = msg.gen
		m.bestFitness = msg.bestFitness
		m.haveFitness = true
		m.winnersSoFar = msg.winnersSoFar

		cmd := m.bar.SetPercent(1 - clampUnit(msg.bestFitness))

		return m, cmd

	case estimateMsg:
		m.holes = msg.holes
		m.holesErr = msg.err

		return m, nil

	case winnersMsg:
		m.winners = msg.winners
		return m, nil

	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		m.bar = barModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}

func (m searchModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	default:
	}

	if msg.String() == "q" {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m searchModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("gooze-repair search"))
	b.WriteString("\n\n")

	if m.holesErr != nil {
		fmt.Fprintf(&b, "estimate error: %v\n", m.holesErr)
	} else if len(m.holes) > 0 {
		m.renderEstimate(&b)
	}

	if m.cfg.mode == ModeRepair {
		m.renderGeneration(&b)
	}

	if len(m.winners) > 0 {
		m.renderWinners(&b)
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m searchModel) renderEstimate(b *strings.Builder) {
	total := 0
	for _, h := range m.holes {
		fmt.Fprintf(b, "  %s: %d fits\n", h.Site, h.FitCount)
		total += h.FitCount
	}

	fmt.Fprintf(b, "%d sites, %d fits total\n\n", len(m.holes), total)
}

func (m searchModel) renderGeneration(b *strings.Builder) {
	if !m.haveFitness {
		b.WriteString(dimStyle.Render("waiting for first generation...\n\n"))
		return
	}

	fmt.Fprintf(b, "generation %d\n", m.gen)
	b.WriteString(m.bar.View())
	fmt.Fprintf(b, "  best fitness %.4f\n", m.bestFitness)
	fmt.Fprintf(b, "  winners so far: %d\n\n", m.winnersSoFar)
}

func (m searchModel) renderWinners(b *strings.Builder) {
	b.WriteString(winStyle.Render(fmt.Sprintf("%d winning fix(es):", len(m.winners))))
	b.WriteString("\n")

	for _, w := range m.winners {
		fmt.Fprintf(b, "  %s  (fitness %.4f)\n", w.Fix, w.Fitness)
	}

	b.WriteString("\n")
}

func clampUnit(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
