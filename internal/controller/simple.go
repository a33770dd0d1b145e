package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's Println, grounded on the
// teacher's SimpleUI (same tablewriter-over-a-buffer idiom, generalized
// from a mutation-count table to a hole-fit-count table and a winner
// table).
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	cfg := &StartConfig{}
	for _, opt := range options {
		opt(cfg)
	}

	if cfg.mode == ModeRepair {
		s.printf("search: %d iterations, population %d", cfg.iterations, cfg.population)

		if cfg.islands > 1 {
			s.printf(" across %d islands", cfg.islands)
		}

		s.printf("\n")
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// Wait is a no-op for SimpleUI: there is no background render loop to
// join.
func (s *SimpleUI) Wait() {}

// DisplayEstimate prints the hole/fit-count table or error.
func (s *SimpleUI) DisplayEstimate(holes []HoleEstimate, err error) error {
	if err != nil {
		s.printf("estimate error: %v\n", err)
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Site", "Fits"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, h := range holes {
		table.Append([]string{h.Site, fmt.Sprintf("%d", h.FitCount)})
		total += h.FitCount
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Sites %d", len(holes)),
		fmt.Sprintf("%d", total),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayGeneration prints a one-line progress update per generation; a
// plain, non-interactive counterpart to the TUI's live view.
func (s *SimpleUI) DisplayGeneration(gen int, bestFitness float64, winnersSoFar int) {
	s.printf("gen %d: best fitness %.4f, winners so far %d\n", gen, bestFitness, winnersSoFar)
}

// DisplayWinners prints the final winner table.
func (s *SimpleUI) DisplayWinners(winners []WinnerSummary) error {
	if len(winners) == 0 {
		s.printf("no winning fix found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Fix", "Fitness"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, w := range winners {
		table.Append([]string{w.Fix, fmt.Sprintf("%.4f", w.Fitness)})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
