package charts

import (
	"fmt"
	"sort"
	"strings"

	"f1strategydashboard/pkg/helper"
	"f1strategydashboard/pkg/openf1"
	"f1strategydashboard/pkg/process"
)

const (
	titleLapTimes     = "Lap Times by Driver"
	titleTireStrategy = "Tire Strategy by Driver"
	titlePitStops     = "Pit Stop Times by Driver"

	chartHeight  = 600
	fallbackHex  = "#AAA"
	fallbackGray = "gray"
)

// CompoundColors matches the standard Pirelli compound graphics.
var CompoundColors = map[string]string{
	"SOFT":         "red",
	"MEDIUM":       "yellow",
	"HARD":         "white",
	"INTERMEDIATE": "green",
	"WET":          "blue",
	"UNKNOWN":      "gray",
}

// LapTimes builds a line chart with one colored trace per driver, x = lap
// number, y = lap duration. The inputs are never modified; an empty table
// yields an empty figure.
func LapTimes(laps []openf1.Lap, acronyms map[int]string, colors map[int]string) Figure {
	laps = process.KnownLaps(laps, acronyms)
	if len(laps) == 0 {
		return emptyFigure(titleLapTimes)
	}

	byDriver := map[int][]openf1.Lap{}
	for _, lap := range laps {
		byDriver[lap.DriverNumber] = append(byDriver[lap.DriverNumber], lap)
	}

	numbers := make([]int, 0, len(byDriver))
	for number := range byDriver {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	fig := Figure{
		Data: make([]Trace, 0, len(numbers)),
		Layout: Layout{
			Title:     titleLapTimes,
			HoverMode: "closest",
			Height:    chartHeight,
			XAxis:     &Axis{Title: "Lap"},
			YAxis:     lapTimeAxis(laps),
		},
	}

	for _, number := range numbers {
		driverLaps := byDriver[number]
		sort.Slice(driverLaps, func(i, j int) bool {
			return driverLaps[i].LapNumber < driverLaps[j].LapNumber
		})

		acronym := acronyms[number]
		color := driverColor(colors, number)

		x := make([]any, 0, len(driverLaps))
		y := make([]any, 0, len(driverLaps))
		hover := make([]string, 0, len(driverLaps))
		for _, lap := range driverLaps {
			x = append(x, lap.LapNumber)
			y = append(y, *lap.LapDuration)
			text := fmt.Sprintf("<b>%s: %d</b><br>Lap: %d<br>Lap Time: %s",
				acronym, number, lap.LapNumber, helper.SecondsToMinutes(*lap.LapDuration))
			if lap.IsPitOutLap {
				text += "<br>🔧 PIT"
			}
			hover = append(hover, text)
		}

		fig.Data = append(fig.Data, Trace{
			Type:      "scatter",
			Mode:      "lines+markers",
			Name:      acronym,
			X:         x,
			Y:         y,
			Marker:    &Marker{Color: color},
			Line:      &Line{Color: color},
			HoverInfo: "text",
			HoverText: hover,
		})
	}

	return fig
}

// TireStrategy builds a horizontal stacked bar chart with one bar segment
// per stint: base = start lap, span = lap count, row = driver, color by
// compound. Driver acronyms are drawn as annotations tinted with the team
// color instead of axis ticks.
func TireStrategy(stints []process.StintRange, acronyms map[int]string, colors map[int]string) Figure {
	stints = process.KnownStints(stints, acronyms)
	if len(stints) == 0 {
		return emptyFigure(titleTireStrategy)
	}

	fig := Figure{
		Data: make([]Trace, 0, len(stints)),
		Layout: Layout{
			Title:   titleTireStrategy,
			BarMode: "stack",
			Height:  chartHeight,
			XAxis:   &Axis{Title: "Lap Number"},
			YAxis:   &Axis{ShowTickLabels: boolPtr(false)},
			Margin:  &Margin{Left: 120},
		},
	}

	seen := map[string]bool{}
	order := []string{}
	for _, stint := range stints {
		acronym := acronyms[stint.DriverNumber]
		compound := strings.ToUpper(stint.Compound)

		fig.Data = append(fig.Data, Trace{
			Type:        "bar",
			Orientation: "h",
			X:           []any{stint.LapCount},
			Y:           []any{acronym},
			Base:        []int{stint.LapStart},
			Marker:      &Marker{Color: compoundColor(compound)},
			HoverInfo:   "text",
			HoverText: []string{fmt.Sprintf("%s: %d<br>Compound: %s<br>Laps: %d<br>Start Lap: %d<br>End Lap: %d",
				acronym, stint.DriverNumber, compound, stint.LapCount, stint.LapStart, stint.LapEnd)},
			ShowLegend: boolPtr(false),
		})

		if !seen[acronym] {
			seen[acronym] = true
			order = append(order, acronym)
		}
	}

	// colored driver labels on the left margin instead of y ticks
	for _, acronym := range order {
		color := fallbackHex
		for number, acr := range acronyms {
			if acr == acronym {
				if c, ok := colors[number]; ok {
					color = c
				}
				break
			}
		}
		fig.Layout.Annotations = append(fig.Layout.Annotations, Annotation{
			X:         -3,
			Y:         acronym,
			XRef:      "x",
			YRef:      "y",
			Text:      fmt.Sprintf("<b>%s</b>", acronym),
			ShowArrow: false,
			Align:     "right",
			Font:      &Font{Color: color, Size: 12},
		})
	}

	return fig
}

// PitStops builds a grouped vertical bar chart, x = driver, y = pit lane
// duration, one bar per stop.
func PitStops(pits []openf1.PitStop, acronyms map[int]string, colors map[int]string) Figure {
	pits = process.KnownPitStops(pits, acronyms)
	if len(pits) == 0 {
		return emptyFigure(titlePitStops)
	}

	byDriver := map[int][]openf1.PitStop{}
	for _, pit := range pits {
		byDriver[pit.DriverNumber] = append(byDriver[pit.DriverNumber], pit)
	}

	numbers := make([]int, 0, len(byDriver))
	for number := range byDriver {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	fig := Figure{
		Data: make([]Trace, 0, len(numbers)),
		Layout: Layout{
			Title:     titlePitStops,
			BarMode:   "group",
			HoverMode: "closest",
			Height:    chartHeight,
			XAxis:     &Axis{Title: "Driver"},
			YAxis:     &Axis{Title: "Time in pit lane (s)"},
		},
	}

	for _, number := range numbers {
		stops := byDriver[number]
		acronym := acronyms[number]

		x := make([]any, 0, len(stops))
		y := make([]any, 0, len(stops))
		hover := make([]string, 0, len(stops))
		for _, stop := range stops {
			x = append(x, acronym)
			y = append(y, *stop.PitDuration)
			hover = append(hover, fmt.Sprintf("<b>%s: %d</b><br>Lap: %d<br>Time in pit lane (s): %.1f",
				acronym, number, stop.LapNumber, *stop.PitDuration))
		}

		fig.Data = append(fig.Data, Trace{
			Type:      "bar",
			Name:      acronym,
			X:         x,
			Y:         y,
			Marker:    &Marker{Color: driverColor(colors, number)},
			HoverInfo: "text",
			HoverText: hover,
		})
	}

	return fig
}

func driverColor(colors map[int]string, number int) string {
	if color, ok := colors[number]; ok {
		return color
	}
	return fallbackGray
}

func compoundColor(compound string) string {
	if color, ok := CompoundColors[compound]; ok {
		return color
	}
	return fallbackGray
}

// lapTimeAxis formats the y axis as MM:SS, keeping roughly one tick every
// five seconds within the plausible lap time range.
func lapTimeAxis(laps []openf1.Lap) *Axis {
	unique := map[float64]bool{}
	for _, lap := range laps {
		rounded := float64(int(*lap.LapDuration + 0.5))
		if rounded >= 60 && rounded <= 180 {
			unique[rounded] = true
		}
	}

	vals := make([]float64, 0, len(unique))
	for v := range unique {
		vals = append(vals, v)
	}
	sort.Float64s(vals)

	ticks := make([]float64, 0, len(vals)/5+1)
	text := make([]string, 0, cap(ticks))
	for i := 0; i < len(vals); i += 5 {
		ticks = append(ticks, vals[i])
		text = append(text, helper.SecondsToMMSS(vals[i]))
	}

	return &Axis{
		Title:    "Lap Time (MM:SS)",
		TickVals: ticks,
		TickText: text,
	}
}
