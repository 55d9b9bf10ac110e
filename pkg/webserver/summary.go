package webserver

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"f1strategydashboard/pkg/helper"
	"f1strategydashboard/pkg/process"
)

const (
	tableDriver  = "DRIVER"
	tableBestLap = "BEST LAP"
	tableLaps    = "LAPS"
)

// handleSummary renders a fastest-lap-per-driver table for the dashboard's
// summary panel.
func (m *Manager) handleSummary(w http.ResponseWriter, r *http.Request) {
	sessionKey, err := intParam(r, "session_key")
	if err != nil {
		writeError(w, err)
		return
	}

	drivers, err := m.fetcher.Drivers(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching drivers"))
		return
	}
	laps, err := m.fetcher.Laps(r.Context(), sessionKey)
	if err != nil {
		writeError(w, errors.Wrap(err, "fetching laps"))
		return
	}

	cleaned, err := process.CleanLaps(laps)
	if err != nil {
		writeError(w, err)
		return
	}

	acronyms := process.AcronymIndex(drivers)
	cleaned = process.KnownLaps(cleaned, acronyms)

	type driverBest struct {
		number  int
		best    float64
		lapsRun int
	}
	bests := map[int]driverBest{}
	for _, lap := range cleaned {
		entry, ok := bests[lap.DriverNumber]
		if !ok {
			entry = driverBest{number: lap.DriverNumber, best: *lap.LapDuration}
		} else if *lap.LapDuration < entry.best {
			entry.best = *lap.LapDuration
		}
		entry.lapsRun++
		bests[lap.DriverNumber] = entry
	}

	rows := make([]driverBest, 0, len(bests))
	for _, entry := range bests {
		rows = append(rows, entry)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].best < rows[j].best
	})

	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()
	t.AppendHeader(table.Row{tableDriver, tableBestLap, tableLaps})
	for _, row := range rows {
		t.AppendRow([]interface{}{
			fmt.Sprintf("%s: %d", acronyms[row.number], row.number),
			helper.SecondsToMinutes(row.best),
			row.lapsRun,
		})
	}
	t.Render()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Bytes())
}
