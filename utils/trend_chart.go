package utils

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/elC0mpa/budget-doctor/model"
)

const (
	colorRank1 = "#d73027"
	colorRank2 = "#f46d43"
	colorRank3 = "#fee08b"
	colorRank4 = "#abdda4"
	colorRank5 = "#66c2a5"
	colorRank6 = "#1a9850"
)

var chartBorderStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawTrendChart renders the root group's monthly spend, oldest month first.
// Failed months are drawn as zero-height bars but labeled as missing.
func DrawTrendChart(rootGroupID string, windows []model.MonthWindow, series model.MonthlySeries) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🩺  BUDGET DOCTOR TREND"))
	fmt.Printf(" Root management group: %s\n", text.FgBlue.Sprint(rootGroupID))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	bc := barchart.New(130, 20)
	colors := rankedColors(series)

	// series and windows arrive most-recent-first
	for i := len(series) - 1; i >= 0; i-- {
		label := windows[i].Start.Format("Jan")
		value := 0.0
		if series[i] != nil {
			value = *series[i]
			label = fmt.Sprintf("%s: %.2f", label, value)
		} else {
			label += ": n/a"
		}

		bc.Push(barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{
					Value: value,
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i])),
				},
			},
		})
	}

	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, chartBorderStyle.Render(bc.View())))
}

// rankedColors maps each month to a color by spend rank, hottest color for
// the most expensive month
func rankedColors(series model.MonthlySeries) []string {
	palette := []string{colorRank1, colorRank2, colorRank3, colorRank4, colorRank5, colorRank6}

	type indexed struct {
		index int
		value float64
	}

	months := make([]indexed, len(series))
	for i, v := range series {
		months[i] = indexed{index: i}
		if v != nil {
			months[i].value = *v
		}
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].value > months[j].value
	})

	colors := make([]string, len(series))
	for rank, m := range months {
		if rank < len(palette) {
			colors[m.index] = palette[rank]
		} else {
			colors[m.index] = palette[len(palette)-1]
		}
	}
	return colors
}
