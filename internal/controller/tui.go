package controller

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI implements UI using Bubble Tea for interactive display, grounded on
// the teacher's TUI struct shape (a thin wrapper holding the output
// writer and driving a tea.Program), generalized from the teacher's
// always-print-and-return-a-string rendering to a genuinely running
// program so generation updates can stream in live via Program.Send.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(options ...StartOption) error {
	cfg := &StartConfig{}
	for _, opt := range options {
		opt(cfg)
	}

	model := newSearchModel(cfg)
	t.program = tea.NewProgram(model, tea.WithOutput(t.output))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)
		_, _ = t.program.Run()
	}()

	return nil
}

// Close asks the running program to quit.
func (t *TUI) Close() {
	if t.program != nil {
		t.program.Quit()
	}
}

// Wait blocks until the program has exited, either by user quit or Close.
func (t *TUI) Wait() {
	if t.done != nil {
		<-t.done
	}
}

// DisplayEstimate forwards the estimate into the running program.
func (t *TUI) DisplayEstimate(holes []HoleEstimate, err error) error {
	if t.program != nil {
		t.program.Send(estimateMsg{holes: holes, err: err})
	}

	return err
}

// DisplayGeneration forwards one generation's progress into the running
// program.
func (t *TUI) DisplayGeneration(gen int, bestFitness float64, winnersSoFar int) {
	if t.program != nil {
		t.program.Send(generationMsg{gen: gen, bestFitness: bestFitness, winnersSoFar: winnersSoFar})
	}
}

// DisplayWinners forwards the final winner set into the running program.
func (t *TUI) DisplayWinners(winners []WinnerSummary) error {
	if t.program != nil {
		t.program.Send(winnersMsg{winners: winners})
	}

	return nil
}
