package neighborhood

import (
	"buster-server/src/util"
	"math"
	"strings"
)

// Building height is linear in total spend so relative spending stays readable
// at a glance. A location with zero spend still gets the base height, so the
// neighborhood never renders flat or inverted boxes.
const (
	BaseHeight      = 2.0
	HeightPerDollar = 0.1
	Spacing         = 4.0
	Footprint       = 2.0

	DefaultColor = "#808080"
	HoverColor   = "#ff6b6b"
)

type Layout int

const (
	LayoutGrid Layout = iota
	LayoutRow
)

// LocationSpend is one spending location with its aggregate spend.
type LocationSpend struct {
	ID         string
	Name       string
	Category   string
	TotalSpent float64
}

// Building is one renderable box in the scene. Position is the box center;
// Y sits at half the height so the bottom rests on the ground plane.
type Building struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	TotalSpent  float64    `json:"total_spent"`
	Position    [3]float64 `json:"position"`
	Size        [3]float64 `json:"size"`
	Color       string     `json:"color"`
	Description string     `json:"description"`
}

func Height(totalSpent float64) float64 {
	if totalSpent < 0 {
		totalSpent = 0
	}
	return BaseHeight + totalSpent*HeightPerDollar
}

// Buildings maps locations to building descriptors using the given layout.
// The mapping is deterministic: same input, same geometry.
func Buildings(locations []LocationSpend, layout Layout) []Building {
	n := len(locations)
	buildings := make([]Building, 0, n)
	for i, loc := range locations {
		h := Height(loc.TotalSpent)

		var x, z float64
		switch layout {
		case LayoutRow:
			x, z = rowPosition(i, n)
		default:
			x, z = gridPosition(i, n)
		}

		buildings = append(buildings, Building{
			ID:          loc.ID,
			Name:        loc.Name,
			Category:    loc.Category,
			TotalSpent:  loc.TotalSpent,
			Position:    [3]float64{x, h / 2, z},
			Size:        [3]float64{Footprint, h, Footprint},
			Color:       CategoryColor(loc.Category),
			Description: "Total Spent: $" + util.FormatAmount(loc.TotalSpent),
		})
	}
	return buildings
}

// gridPosition lays index i of n out on a centered square grid.
func gridPosition(i, n int) (x, z float64) {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	rowCount := (n + cols - 1) / cols
	row := i / cols
	col := i % cols
	x = (float64(col) - float64(cols-1)/2) * Spacing
	z = (float64(row) - float64(rowCount-1)/2) * Spacing
	return x, z
}

// rowPosition lays index i of n out on a single row centered on x=0.
func rowPosition(i, n int) (x, z float64) {
	x = (float64(i) - float64(n-1)/2) * Spacing
	return x, 0
}

var categoryColors = map[string]string{
	"groceries":     "#4ade80",
	"restaurants":   "#f97316",
	"dining":        "#f97316",
	"coffee":        "#a16207",
	"shopping":      "#60a5fa",
	"entertainment": "#c084fc",
	"transport":     "#facc15",
	"utilities":     "#94a3b8",
	"health":        "#f87171",
	"travel":        "#38bdf8",
}

// CategoryColor returns the fixed color for a spending category. Categories are
// free text, so matching is case-insensitive and unknowns fall back to gray.
func CategoryColor(category string) string {
	if c, ok := categoryColors[strings.ToLower(strings.TrimSpace(category))]; ok {
		return c
	}
	return DefaultColor
}

var palette = []string{
	"#f87171", "#fb923c", "#facc15", "#4ade80",
	"#38bdf8", "#818cf8", "#c084fc", "#f472b6",
}

// PaletteColor cycles a bright palette by index, for views that color buildings
// by position rather than category.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}
