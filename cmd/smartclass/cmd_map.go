package main

import (
	"fmt"

	"github.com/suguru-ai/smartclass/internal/atlas"
)

func (a *app) cmdMap(args []string) error {
	e := atlas.NewExplorer(a.catalog.Countries(), a.lang)

	for _, arg := range args {
		switch arg {
		case "+", "--zoom-in":
			e.ZoomIn()
		case "-", "--zoom-out":
			e.ZoomOut()
		default:
			if _, err := e.Select(arg); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(a.out, "Map of Africa (zoom %d)\n\n", e.Zoom())
	for _, line := range e.Plot() {
		fmt.Fprintln(a.out, line)
	}
	fmt.Fprintln(a.out)

	c, ok := e.Selected()
	if !ok {
		fmt.Fprintln(a.out, "Select a country on the map to view detailed information")
		for _, c := range e.Countries() {
			fmt.Fprintf(a.out, "  %-4s %s\n", c.ID, c.Name)
		}
		return nil
	}
	fmt.Fprint(a.out, e.Describe(c))
	return nil
}
