package charts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f1strategydashboard/pkg/openf1"
	"f1strategydashboard/pkg/process"
)

func dur(seconds float64) *float64 {
	return &seconds
}

var (
	testAcronyms = map[int]string{1: "VER", 44: "HAM"}
	testColors   = map[int]string{1: "#3671C6", 44: "#27F4D2"}
)

func TestLapTimesOneTracePerDriver(t *testing.T) {
	laps := []openf1.Lap{
		{SessionKey: 9158, DriverNumber: 44, LapNumber: 1, LapDuration: dur(95.8)},
		{SessionKey: 9158, DriverNumber: 1, LapNumber: 2, LapDuration: dur(93.1)},
		{SessionKey: 9158, DriverNumber: 1, LapNumber: 1, LapDuration: dur(93.456)},
	}

	fig := LapTimes(laps, testAcronyms, testColors)
	require.Len(t, fig.Data, 2)

	ver := fig.Data[0]
	assert.Equal(t, "scatter", ver.Type)
	assert.Equal(t, "lines+markers", ver.Mode)
	assert.Equal(t, "VER", ver.Name)
	assert.Equal(t, "#3671C6", ver.Marker.Color)
	assert.Equal(t, "#3671C6", ver.Line.Color)

	// laps sorted by lap number within the trace
	assert.Equal(t, []any{1, 2}, ver.X)
	assert.Equal(t, "<b>VER: 1</b><br>Lap: 1<br>Lap Time: 01:33.456", ver.HoverText[0])

	assert.Equal(t, "HAM", fig.Data[1].Name)
}

func TestLapTimesPitOutLapMarkedInHover(t *testing.T) {
	laps := []openf1.Lap{
		{SessionKey: 9158, DriverNumber: 1, LapNumber: 14, LapDuration: dur(101.2), IsPitOutLap: true},
	}

	fig := LapTimes(laps, testAcronyms, testColors)
	require.Len(t, fig.Data, 1)
	assert.Contains(t, fig.Data[0].HoverText[0], "🔧 PIT")
}

func TestLapTimesUnknownDriverFallsBackToGray(t *testing.T) {
	laps := []openf1.Lap{
		{SessionKey: 9158, DriverNumber: 1, LapNumber: 1, LapDuration: dur(93.0)},
	}

	fig := LapTimes(laps, testAcronyms, map[int]string{})
	require.Len(t, fig.Data, 1)
	assert.Equal(t, "gray", fig.Data[0].Marker.Color)
}

func TestLapTimesDropsDriversMissingFromIndex(t *testing.T) {
	laps := []openf1.Lap{
		{SessionKey: 9158, DriverNumber: 99, LapNumber: 1, LapDuration: dur(93.0)},
	}

	fig := LapTimes(laps, testAcronyms, testColors)
	assert.Empty(t, fig.Data)
}

func TestLapTimesEmptyInputYieldsEmptyFigure(t *testing.T) {
	fig := LapTimes(nil, testAcronyms, testColors)
	assert.NotNil(t, fig.Data)
	assert.Empty(t, fig.Data)
	assert.Equal(t, "Lap Times by Driver", fig.Layout.Title)

	// the empty figure must serialize with an empty data array, not null
	raw, err := json.Marshal(fig)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":[]`)
}

func TestTireStrategyBarSpansLapRange(t *testing.T) {
	stints := []process.StintRange{
		{Stint: openf1.Stint{SessionKey: 9158, DriverNumber: 1, StintNumber: 1, Compound: "SOFT", LapStart: 5, LapEnd: 12}, LapCount: 8},
	}

	fig := TireStrategy(stints, testAcronyms, testColors)
	require.Len(t, fig.Data, 1)

	bar := fig.Data[0]
	assert.Equal(t, "bar", bar.Type)
	assert.Equal(t, "h", bar.Orientation)
	assert.Equal(t, []any{8}, bar.X, "bar width is the inclusive lap count")
	assert.Equal(t, []int{5}, bar.Base, "bar offset is the start lap")
	assert.Equal(t, []any{"VER"}, bar.Y)
	assert.Equal(t, "red", bar.Marker.Color)
	assert.Contains(t, bar.HoverText[0], "Start Lap: 5")
	assert.Contains(t, bar.HoverText[0], "End Lap: 12")

	assert.Equal(t, "stack", fig.Layout.BarMode)
	require.Len(t, fig.Layout.Annotations, 1)
	assert.Equal(t, "<b>VER</b>", fig.Layout.Annotations[0].Text)
	assert.Equal(t, "#3671C6", fig.Layout.Annotations[0].Font.Color)
}

func TestTireStrategyCompoundColorFallback(t *testing.T) {
	stints := []process.StintRange{
		{Stint: openf1.Stint{SessionKey: 9158, DriverNumber: 44, StintNumber: 1, Compound: "Unknown", LapStart: 1, LapEnd: 3}, LapCount: 3},
	}

	fig := TireStrategy(stints, testAcronyms, testColors)
	require.Len(t, fig.Data, 1)
	assert.Equal(t, "gray", fig.Data[0].Marker.Color)
}

func TestTireStrategyEmptyInputYieldsEmptyFigure(t *testing.T) {
	fig := TireStrategy(nil, testAcronyms, testColors)
	assert.Empty(t, fig.Data)
	assert.Equal(t, "Tire Strategy by Driver", fig.Layout.Title)
}

func TestPitStopsGroupedPerDriver(t *testing.T) {
	pits := []openf1.PitStop{
		{SessionKey: 9158, DriverNumber: 1, LapNumber: 14, PitDuration: dur(22.4)},
		{SessionKey: 9158, DriverNumber: 1, LapNumber: 33, PitDuration: dur(21.0)},
		{SessionKey: 9158, DriverNumber: 44, LapNumber: 15, PitDuration: dur(24.8)},
	}

	fig := PitStops(pits, testAcronyms, testColors)
	require.Len(t, fig.Data, 2)

	ver := fig.Data[0]
	assert.Equal(t, "bar", ver.Type)
	assert.Equal(t, "VER", ver.Name)
	assert.Equal(t, []any{"VER", "VER"}, ver.X)
	assert.Equal(t, []any{22.4, 21.0}, ver.Y)
	assert.Contains(t, ver.HoverText[0], "Lap: 14")
	assert.Contains(t, ver.HoverText[0], "Time in pit lane (s): 22.4")

	assert.Equal(t, "group", fig.Layout.BarMode)
}

func TestPitStopsEmptyInputYieldsEmptyFigure(t *testing.T) {
	fig := PitStops(nil, testAcronyms, testColors)
	assert.Empty(t, fig.Data)
	assert.Equal(t, "Pit Stop Times by Driver", fig.Layout.Title)
}

func TestLapTimeAxisTicksFormattedMMSS(t *testing.T) {
	laps := make([]openf1.Lap, 0, 12)
	for i := 0; i < 12; i++ {
		laps = append(laps, openf1.Lap{
			SessionKey:   9158,
			DriverNumber: 1,
			LapNumber:    i + 1,
			LapDuration:  dur(90 + float64(i)),
		})
	}

	axis := lapTimeAxis(laps)
	require.NotEmpty(t, axis.TickVals)
	assert.Equal(t, len(axis.TickVals), len(axis.TickText))
	assert.Equal(t, "01:30", axis.TickText[0])
}
