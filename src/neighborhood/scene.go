package neighborhood

import "math"

// Scene is the full declarative description the client renders: ground,
// lights, camera, control clamps and one box per spending location. The
// server does no rendering; selection and hover stay client-side, driven by
// each building's Description payload.
type Scene struct {
	Ground     Ground     `json:"ground"`
	Camera     Camera     `json:"camera"`
	Lights     Lights     `json:"lights"`
	Controls   Controls   `json:"controls"`
	HoverColor string     `json:"hover_color"`
	Buildings  []Building `json:"buildings"`
}

type Ground struct {
	Width       float64 `json:"width"`
	Length      float64 `json:"length"`
	Color       string  `json:"color"`
	BorderWidth float64 `json:"border_width"`
	BorderColor string  `json:"border_color"`
	RoadColor   string  `json:"road_color"`
	RoadWidth   float64 `json:"road_width"`
}

type Camera struct {
	Position [3]float64 `json:"position"`
	FOV      float64    `json:"fov"`
}

type Lights struct {
	AmbientIntensity     float64    `json:"ambient_intensity"`
	DirectionalIntensity float64    `json:"directional_intensity"`
	DirectionalPosition  [3]float64 `json:"directional_position"`
}

type Controls struct {
	MinDistance   float64 `json:"min_distance"`
	MaxDistance   float64 `json:"max_distance"`
	MinPolarAngle float64 `json:"min_polar_angle"`
	MaxPolarAngle float64 `json:"max_polar_angle"`
}

// NewScene assembles the scene for a set of locations using the grid layout.
func NewScene(locations []LocationSpend) Scene {
	return NewSceneLayout(locations, LayoutGrid)
}

func NewSceneLayout(locations []LocationSpend, layout Layout) Scene {
	return Scene{
		Ground: Ground{
			Width:       20,
			Length:      60,
			Color:       "#e0e0e0",
			BorderWidth: 0.1,
			BorderColor: "#000000",
			RoadColor:   "#ffffff",
			RoadWidth:   0.2,
		},
		Camera: Camera{
			Position: [3]float64{0, 600, 0},
			FOV:      50,
		},
		Lights: Lights{
			AmbientIntensity:     0.7,
			DirectionalIntensity: 0.5,
			DirectionalPosition:  [3]float64{0, 1, 0},
		},
		Controls: Controls{
			MinDistance:   2,
			MaxDistance:   800,
			MinPolarAngle: math.Pi / 2.3,
			MaxPolarAngle: math.Pi / 2.2,
		},
		HoverColor: HoverColor,
		Buildings:  Buildings(locations, layout),
	}
}
