package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/gomlx/vkdgen/model"
	"github.com/olekukonko/tablewriter"
)

var statsHeader = []string{"FEATURE", "GUARD", "BASE TYPES", "HANDLES", "FUNC PTRS", "CONSTS", "ENUMS",
	"STRUCTS", "GLOBAL", "INSTANCE", "DEVICE"}

// statsRows returns one row per feature with the number of entities of each kind, and a final row
// with the totals.
func statsRows(m *model.Model) [][]string {
	var rows [][]string
	totals := make([]int, len(statsHeader)-2)
	for _, f := range m.Features {
		guard := "-"
		if f.Guard != nil {
			guard = strings.Join(f.Guard.VersionGuards, "+")
		}
		counts := []int{
			len(f.BaseTypes), len(f.Handles) + len(f.NDHandles), len(f.FuncPtrs), len(f.Consts), len(f.Enums),
			len(f.Structs), len(f.GlobalCmds()), len(f.InstanceCmds()), len(f.DeviceCmds()),
		}
		row := []string{f.Name, guard}
		for i, c := range counts {
			totals[i] += c
			row = append(row, strconv.Itoa(c))
		}
		rows = append(rows, row)
	}
	total := []string{"TOTAL", ""}
	for _, c := range totals {
		total = append(total, strconv.Itoa(c))
	}
	return append(rows, total)
}

func printStats(w io.Writer, m *model.Model) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(statsHeader)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(statsRows(m))
	table.Render()
}
