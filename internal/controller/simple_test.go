package controller

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestSimpleUI_DisplayEstimate_PrintsTable(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)

	holes := []HoleEstimate{
		{Site: "p.expr:0-4", FitCount: 3},
		{Site: "p.expr:8-9", FitCount: 1},
	}

	require.NoError(t, ui.DisplayEstimate(holes, nil))

	output := buf.String()
	for _, want := range []string{"p.expr:0-4", "p.expr:8-9", "Total Sites 2", "4"} {
		require.Contains(t, output, want)
	}
}

func TestSimpleUI_DisplayEstimate_Error(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)
	boom := errors.New("boom")

	err := ui.DisplayEstimate(nil, boom)
	require.ErrorIs(t, err, boom)
	require.Contains(t, buf.String(), "estimate error: boom")
}

func TestSimpleUI_DisplayWinners_Empty(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayWinners(nil))
	require.Contains(t, buf.String(), "no winning fix found")
}

func TestSimpleUI_DisplayWinners_PrintsTable(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.DisplayWinners([]WinnerSummary{{Fix: "x + 1", Fitness: 0}}))
	require.Contains(t, buf.String(), "x + 1")
}

func TestSimpleUI_Start_RepairModeBanner(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd)

	require.NoError(t, ui.Start(WithRepairMode(), WithSearchSize(20, 32, 4)))
	require.Contains(t, buf.String(), "4 islands")
}
