package planextract

// Opening is a door or window detected on a plan
type Opening struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Count  int     `json:"count"`
}

// Room is one room read off a plan, in metres
type Room struct {
	Name     string    `json:"name"`
	Length   float64   `json:"length"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Openings []Opening `json:"openings,omitempty"`
}

// Plan is the extraction service's reading of an uploaded drawing
type Plan struct {
	Rooms          []Room  `json:"rooms"`
	WallThickness  float64 `json:"wall_thickness,omitempty"`
	FloorThickness float64 `json:"floor_thickness,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}
