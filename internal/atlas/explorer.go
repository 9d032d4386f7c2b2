// Package atlas implements the map explorer: a set of countries with marker
// positions, a selection and a bounded zoom level.
package atlas

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/suguru-ai/smartclass/internal/catalog"
)

// Zoom bounds.
const (
	DefaultZoom = 3
	MinZoom     = 2
	MaxZoom     = 8
)

// Explorer holds the map state. It is not safe for concurrent use.
type Explorer struct {
	countries []catalog.Country
	selected  *catalog.Country
	zoom      int
	printer   *message.Printer
}

// NewExplorer creates an explorer at the default zoom with nothing selected.
// Numbers are formatted for lang.
func NewExplorer(countries []catalog.Country, lang language.Tag) *Explorer {
	return &Explorer{
		countries: countries,
		zoom:      DefaultZoom,
		printer:   message.NewPrinter(lang),
	}
}

// Countries returns the countries on the map.
func (e *Explorer) Countries() []catalog.Country {
	return e.countries
}

// Select makes the country with id the current selection.
func (e *Explorer) Select(id string) (catalog.Country, error) {
	for i := range e.countries {
		if strings.EqualFold(e.countries[i].ID, id) || strings.EqualFold(e.countries[i].Code, id) {
			e.selected = &e.countries[i]
			return *e.selected, nil
		}
	}
	return catalog.Country{}, fmt.Errorf("country not found: %s", id)
}

// Selected returns the current selection.
func (e *Explorer) Selected() (catalog.Country, bool) {
	if e.selected == nil {
		return catalog.Country{}, false
	}
	return *e.selected, true
}

// ClearSelection deselects the current country.
func (e *Explorer) ClearSelection() {
	e.selected = nil
}

// Zoom returns the current zoom level.
func (e *Explorer) Zoom() int { return e.zoom }

// ZoomIn increases the zoom by one, up to MaxZoom.
func (e *Explorer) ZoomIn() int {
	e.zoom = min(e.zoom+1, MaxZoom)
	return e.zoom
}

// ZoomOut decreases the zoom by one, down to MinZoom.
func (e *Explorer) ZoomOut() int {
	e.zoom = max(e.zoom-1, MinZoom)
	return e.zoom
}

// Describe renders the information panel for c.
func (e *Explorer) Describe(c catalog.Country) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", c.Name)
	fmt.Fprintf(&b, "Learn about %s\n\n", c.Name)
	fmt.Fprintf(&b, "Capital:    %s\n", c.Capital)
	b.WriteString(e.printer.Sprintf("Population: %d\n", c.Population))
	b.WriteString(e.printer.Sprintf("Area:       %d km²\n", c.Area))
	fmt.Fprintf(&b, "Currency:   %s\n", c.Currency)
	if c.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", c.Description)
	}
	if len(c.Facts) > 0 {
		b.WriteString("\nFacts:\n")
		for _, f := range c.Facts {
			fmt.Fprintf(&b, "  • %s\n", f)
		}
	}
	return b.String()
}

// Plot draws the country markers on a character grid whose size grows with
// the zoom level. Markers show the country code; the selection is bracketed.
func (e *Explorer) Plot() []string {
	width, height := 10*e.zoom, 4*e.zoom
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(".", width))
	}

	for _, c := range e.countries {
		label := c.Code
		if e.selected != nil && e.selected.ID == c.ID {
			label = "[" + label + "]"
		}
		row := clampInt(int(math.Round(c.Position.Y/100*float64(height-1))), 0, height-1)
		col := clampInt(int(math.Round(c.Position.X/100*float64(width-1))), 0, width-1)
		col = clampInt(col-len(label)/2, 0, max(width-len(label), 0))
		for i, r := range label {
			if col+i < width {
				grid[row][col+i] = r
			}
		}
	}

	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
