package main

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/uvalib/virgo4-solr-facet-ws/internal/facet"
)

func elipsis(s string, maxLen int) string {
	if len(s) < maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func selectedMark(v *facet.Value) string {
	if v.Selected == true {
		return "*"
	}
	return ""
}

// writeFacets renders one table per facet. Tree facets list every node,
// indented by depth; grouping nodes have no count.
func writeFacets(facets *facet.Collection, w io.Writer) {
	for a := range facets.All() {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.SetTitle(a.Label())

		t.AppendHeader(table.Row{"", "label", "value", "count"})

		if tree, ok := a.Container().(*facet.Tree); ok == true {
			for node := range tree.Root().Walk() {
				indent := strings.Repeat("  ", node.Depth()-1)

				if node.HasValue() == false {
					t.AppendRow(table.Row{"", indent + node.Label(), "", ""})
					continue
				}

				v := node.Value()
				t.AppendRow(table.Row{selectedMark(v), indent + elipsis(v.DisplayLabel(), 48), elipsis(v.Value, 48), v.Count})
			}
		} else {
			for v := range a.Container().All() {
				t.AppendRow(table.Row{selectedMark(v), elipsis(v.DisplayLabel(), 48), elipsis(v.Value, 48), v.Count})
			}
		}

		t.SetCaption("%d values", a.Container().Count())
		t.Render()
		w.Write([]byte{'\n'})
	}
}
