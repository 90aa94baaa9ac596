package utils

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SheetCount is the row count of one workbook sheet for the run summary
type SheetCount struct {
	Name string
	Rows int
}

func DrawSummaryTable(rootGroupID string, counts []SheetCount, warnings int, outPath string) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🩺  BUDGET DOCTOR SUMMARY"))
	fmt.Printf(" Root management group: %s\n", text.FgBlue.Sprint(rootGroupID))

	tw := table.Table{}
	tw.AppendHeader(table.Row{"Sheet", "Rows"})

	total := 0
	for _, count := range counts {
		tw.AppendRow(table.Row{count.Name, count.Rows})
		total += count.Rows
	}
	tw.AppendFooter(table.Row{"Total", total})

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	fmt.Println(tw.Render())

	if warnings > 0 {
		fmt.Println(text.FgYellow.Sprintf(" %d scope(s) had partial data, see warnings above", warnings))
	}
	fmt.Printf(" Wrote workbook: %s\n", text.FgGreen.Sprint(outPath))
}
