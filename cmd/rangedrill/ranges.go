package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/lox/rangedrill/cmd/rangedrill/shared"
	"github.com/lox/rangedrill/internal/actions"
	"github.com/lox/rangedrill/internal/hands"
	"github.com/lox/rangedrill/internal/ranges"
)

// RangesCmd inspects a range book without starting a server.
type RangesCmd struct {
	List RangesListCmd `cmd:"" help:"List every scenario in the book"`
	Show RangesShowCmd `cmd:"" help:"Show one scenario's range as a hand grid"`
}

// RangesListCmd lists the book's scenarios with their sizes.
type RangesListCmd struct {
	Ranges string `kong:"default='ranges.json',help='Range book path'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *RangesListCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	book, err := ranges.Load(c.Ranges, logger)
	if err != nil {
		return fmt.Errorf("failed to load range book: %w", err)
	}

	data := pterm.TableData{{"Position", "Action", "Depth", "Labels", "Hands"}}
	for _, position := range book.Positions() {
		for _, action := range book.ActionsFor(position) {
			for _, depth := range book.StackDepthsFor(position, action) {
				r := book.Lookup(position, action, depth)
				data = append(data, []string{
					position, action, depth,
					strings.Join(r.Labels, ", "),
					fmt.Sprintf("%d", r.Size()),
				})
			}
		}
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// RangesShowCmd renders one scenario as the standard 13x13 grid: pairs on
// the diagonal, suited hands above it, offsuit below.
type RangesShowCmd struct {
	Position string `kong:"arg,help='Position, e.g. BTN'"`
	Action   string `kong:"arg,help='Facing action, e.g. open'"`
	Depth    string `kong:"arg,help='Stack depth, e.g. 100bb'"`
	Ranges   string `kong:"default='ranges.json',help='Range book path'"`
	Debug    bool   `kong:"help='Enable debug logging'"`
}

func (c *RangesShowCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	book, err := ranges.Load(c.Ranges, logger)
	if err != nil {
		return fmt.Errorf("failed to load range book: %w", err)
	}

	r := book.Lookup(c.Position, c.Action, c.Depth)
	if r == nil {
		return fmt.Errorf("no range for %s / %s / %s", c.Position, c.Action, c.Depth)
	}

	pterm.DefaultSection.Printfln("%s vs %s @ %s (%d hands)",
		c.Position, c.Action, c.Depth, r.Size())

	if err := pterm.DefaultTable.WithData(gridData(r)).Render(); err != nil {
		return err
	}

	// Legend with per-label counts.
	for _, label := range r.Labels {
		pterm.Printfln("%s %d hands", styleFor(label).Sprint(label), len(r.HandsFor(label)))
	}
	return nil
}

// gridData builds the 13x13 table, ranks descending from ace.
func gridData(r *ranges.Range) pterm.TableData {
	var data pterm.TableData
	for row := hands.Ace; row >= hands.Two; row-- {
		line := make([]string, 0, 13)
		for col := hands.Ace; col >= hands.Two; col-- {
			h := gridHand(row, col)
			line = append(line, styleFor(r.ActionFor(h)).Sprint(h.String()))
		}
		data = append(data, line)
	}
	return data
}

// gridHand maps a grid cell to its hand class: suited above the diagonal,
// offsuit below.
func gridHand(row, col hands.Rank) hands.Hand {
	switch {
	case row == col:
		return hands.Hand{High: row, Low: col}
	case col > row:
		return hands.Hand{High: col, Low: row, Suited: true}
	default:
		return hands.Hand{High: row, Low: col, Suited: false}
	}
}

func styleFor(label string) *pterm.Style {
	switch actions.FamilyOf(label) {
	case actions.FamilyRaise:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case actions.FamilyCall:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case actions.FamilyPassive:
		return pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	case actions.FamilyFold:
		return pterm.NewStyle(pterm.FgDarkGray)
	default:
		return pterm.NewStyle(pterm.FgWhite)
	}
}
