package charts

// Figure is a chart specification the front end hands to Plotly unchanged.
// Only the fields the dashboard uses are modeled; everything serializes to
// the plotly.js schema.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type        string   `json:"type"`
	Mode        string   `json:"mode,omitempty"`
	Name        string   `json:"name,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	X           []any    `json:"x,omitempty"`
	Y           []any    `json:"y,omitempty"`
	Base        []int    `json:"base,omitempty"`
	Marker      *Marker  `json:"marker,omitempty"`
	Line        *Line    `json:"line,omitempty"`
	HoverInfo   string   `json:"hoverinfo,omitempty"`
	HoverText   []string `json:"hovertext,omitempty"`
	ShowLegend  *bool    `json:"showlegend,omitempty"`
}

type Marker struct {
	Color string `json:"color,omitempty"`
}

type Line struct {
	Color string `json:"color,omitempty"`
}

type Layout struct {
	Title       string       `json:"title,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Height      int          `json:"height,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

type Axis struct {
	Title          string    `json:"title,omitempty"`
	TickVals       []float64 `json:"tickvals,omitempty"`
	TickText       []string  `json:"ticktext,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
}

type Margin struct {
	Left int `json:"l,omitempty"`
}

type Annotation struct {
	X         float64 `json:"x"`
	Y         any     `json:"y"`
	XRef      string  `json:"xref,omitempty"`
	YRef      string  `json:"yref,omitempty"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	Align     string  `json:"align,omitempty"`
	Font      *Font   `json:"font,omitempty"`
}

type Font struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

func boolPtr(v bool) *bool {
	return &v
}

func emptyFigure(title string) Figure {
	return Figure{
		Data:   []Trace{},
		Layout: Layout{Title: title},
	}
}
