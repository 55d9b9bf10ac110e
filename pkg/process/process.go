package process

import (
	"sort"
	"strings"

	"f1strategydashboard/pkg/apierror"
	"f1strategydashboard/pkg/openf1"
)

const UnknownCompound = "Unknown"

// StintRange is a stint with its derived inclusive lap range length.
type StintRange struct {
	openf1.Stint
	LapCount int `json:"lap_count"`
}

// CleanLaps drops laps without a usable duration or lap number and sorts the
// rest by driver and lap number. The input is never modified.
func CleanLaps(laps []openf1.Lap) ([]openf1.Lap, error) {
	if err := checkLapIdentifiers(laps); err != nil {
		return nil, err
	}

	cleaned := make([]openf1.Lap, 0, len(laps))
	for _, lap := range laps {
		if lap.DriverNumber <= 0 || lap.SessionKey <= 0 {
			continue
		}
		if lap.LapDuration == nil || *lap.LapDuration <= 0 {
			continue
		}
		if lap.LapNumber <= 0 {
			continue
		}
		cleaned = append(cleaned, lap)
	}

	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].DriverNumber != cleaned[j].DriverNumber {
			return cleaned[i].DriverNumber < cleaned[j].DriverNumber
		}
		return cleaned[i].LapNumber < cleaned[j].LapNumber
	})

	return cleaned, nil
}

// BuildStints derives the inclusive lap range per stint and normalizes the
// compound. Stints with an inverted lap range or missing identifiers are
// dropped, not repaired.
func BuildStints(stints []openf1.Stint) ([]StintRange, error) {
	if err := checkStintIdentifiers(stints); err != nil {
		return nil, err
	}

	ranges := make([]StintRange, 0, len(stints))
	for _, stint := range stints {
		if stint.DriverNumber <= 0 || stint.SessionKey <= 0 {
			continue
		}
		if stint.LapStart > stint.LapEnd || stint.LapStart <= 0 {
			continue
		}
		if stint.Compound == "" {
			stint.Compound = UnknownCompound
		}
		ranges = append(ranges, StintRange{
			Stint:    stint,
			LapCount: stint.LapEnd - stint.LapStart + 1,
		})
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].DriverNumber != ranges[j].DriverNumber {
			return ranges[i].DriverNumber < ranges[j].DriverNumber
		}
		return ranges[i].StintNumber < ranges[j].StintNumber
	})

	return ranges, nil
}

// CleanPitStops keeps only pit stops with a recorded duration, sorted by
// driver and lap number.
func CleanPitStops(pits []openf1.PitStop) ([]openf1.PitStop, error) {
	if err := checkPitIdentifiers(pits); err != nil {
		return nil, err
	}

	cleaned := make([]openf1.PitStop, 0, len(pits))
	for _, pit := range pits {
		if pit.DriverNumber <= 0 || pit.SessionKey <= 0 {
			continue
		}
		if pit.PitDuration == nil || *pit.PitDuration <= 0 {
			continue
		}
		cleaned = append(cleaned, pit)
	}

	sort.Slice(cleaned, func(i, j int) bool {
		if cleaned[i].DriverNumber != cleaned[j].DriverNumber {
			return cleaned[i].DriverNumber < cleaned[j].DriverNumber
		}
		return cleaned[i].LapNumber < cleaned[j].LapNumber
	})

	return cleaned, nil
}

// BuildColorMap maps driver number to a CSS color. Team colors from the API
// come without the leading '#'. Last-seen wins on duplicate driver numbers.
func BuildColorMap(drivers []openf1.Driver) map[int]string {
	colors := make(map[int]string, len(drivers))
	for _, driver := range drivers {
		if driver.DriverNumber <= 0 || driver.TeamColour == "" {
			continue
		}
		colors[driver.DriverNumber] = normalizeColor(driver.TeamColour)
	}
	return colors
}

// AcronymIndex maps driver number to the driver's name acronym. This is the
// join key used when rendering any chart involving multiple drivers; rows
// referencing a driver absent from the index are dropped downstream.
func AcronymIndex(drivers []openf1.Driver) map[int]string {
	acronyms := make(map[int]string, len(drivers))
	for _, driver := range drivers {
		if driver.DriverNumber <= 0 || driver.NameAcronym == "" {
			continue
		}
		acronyms[driver.DriverNumber] = driver.NameAcronym
	}
	return acronyms
}

// KnownLaps drops laps whose driver is not present in the acronym index.
func KnownLaps(laps []openf1.Lap, acronyms map[int]string) []openf1.Lap {
	known := make([]openf1.Lap, 0, len(laps))
	for _, lap := range laps {
		if _, ok := acronyms[lap.DriverNumber]; ok {
			known = append(known, lap)
		}
	}
	return known
}

// KnownStints drops stints whose driver is not present in the acronym index.
func KnownStints(stints []StintRange, acronyms map[int]string) []StintRange {
	known := make([]StintRange, 0, len(stints))
	for _, stint := range stints {
		if _, ok := acronyms[stint.DriverNumber]; ok {
			known = append(known, stint)
		}
	}
	return known
}

// KnownPitStops drops pit stops whose driver is not present in the acronym index.
func KnownPitStops(pits []openf1.PitStop, acronyms map[int]string) []openf1.PitStop {
	known := make([]openf1.PitStop, 0, len(pits))
	for _, pit := range pits {
		if _, ok := acronyms[pit.DriverNumber]; ok {
			known = append(known, pit)
		}
	}
	return known
}

func normalizeColor(color string) string {
	if strings.HasPrefix(color, "#") {
		return color
	}
	return "#" + color
}

// A non-empty table where no row carries the driver identifier means the
// payload does not have the expected shape at all.

func checkLapIdentifiers(laps []openf1.Lap) error {
	if len(laps) == 0 {
		return nil
	}
	for _, lap := range laps {
		if lap.DriverNumber > 0 {
			return nil
		}
	}
	return apierror.Schema("laps: driver_number missing from every record")
}

func checkStintIdentifiers(stints []openf1.Stint) error {
	if len(stints) == 0 {
		return nil
	}
	for _, stint := range stints {
		if stint.DriverNumber > 0 {
			return nil
		}
	}
	return apierror.Schema("stints: driver_number missing from every record")
}

func checkPitIdentifiers(pits []openf1.PitStop) error {
	if len(pits) == 0 {
		return nil
	}
	for _, pit := range pits {
		if pit.DriverNumber > 0 {
			return nil
		}
	}
	return apierror.Schema("pit: driver_number missing from every record")
}
