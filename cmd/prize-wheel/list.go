package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lixenwraith/prize-wheel/pool"
)

var (
	listIndex   = color.New(color.FgHiBlack)
	listDrawn   = color.New(color.Faint, color.CrossedOut)
	listSummary = color.New(color.Bold)
)

// printList writes the pool as a numbered list, marking drawn entries
func printList(w io.Writer, entries []pool.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "pool is empty")
		return
	}
	for i, e := range entries {
		listIndex.Fprintf(w, "%3d. ", i+1)
		if e.Removed {
			listDrawn.Fprint(w, e.Label)
			fmt.Fprintln(w, " (drawn)")
			continue
		}
		fmt.Fprintln(w, e.Label)
	}
	listSummary.Fprintf(w, "%d/%d available\n", pool.AvailableCount(entries), len(entries))
}
