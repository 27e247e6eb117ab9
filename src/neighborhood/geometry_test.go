package neighborhood

import (
	"fmt"
	"math"
	"testing"
)

func TestHeight(t *testing.T) {
	tests := []struct {
		name  string
		spent float64
		want  float64
	}{
		{name: "zero spend gets base height", spent: 0, want: BaseHeight},
		{name: "linear in spend", spent: 100, want: BaseHeight + 10},
		{name: "negative clamps to base", spent: -50, want: BaseHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Height(tt.spent); got != tt.want {
				t.Errorf("Height(%v) = %v, want %v", tt.spent, got, tt.want)
			}
		})
	}
}

func TestHeightMonotonic(t *testing.T) {
	prev := Height(0)
	for spent := 10.0; spent <= 1000; spent += 10 {
		h := Height(spent)
		if h <= prev {
			t.Fatalf("Height not increasing: Height(%v) = %v, previous %v", spent, h, prev)
		}
		prev = h
	}
}

func locations(n int) []LocationSpend {
	out := make([]LocationSpend, n)
	for i := range out {
		out[i] = LocationSpend{
			ID:         fmt.Sprintf("loc-%d", i),
			Name:       fmt.Sprintf("Location %d", i),
			Category:   "groceries",
			TotalSpent: float64(i) * 25,
		}
	}
	return out
}

func TestBuildingsGridNoCollisions(t *testing.T) {
	for _, n := range []int{1, 2, 5, 9, 10, 20} {
		buildings := Buildings(locations(n), LayoutGrid)
		if len(buildings) != n {
			t.Fatalf("n=%d: got %d buildings", n, len(buildings))
		}
		seen := map[[2]float64]string{}
		for _, b := range buildings {
			key := [2]float64{b.Position[0], b.Position[2]}
			if other, ok := seen[key]; ok {
				t.Errorf("n=%d: %s and %s share position %v", n, other, b.ID, key)
			}
			seen[key] = b.ID
		}
	}
}

func TestBuildingsRestOnGround(t *testing.T) {
	for _, b := range Buildings(locations(6), LayoutGrid) {
		bottom := b.Position[1] - b.Size[1]/2
		if math.Abs(bottom) > 1e-9 {
			t.Errorf("building %s bottom at %v, want 0", b.ID, bottom)
		}
	}
}

func TestRowLayoutSymmetric(t *testing.T) {
	buildings := Buildings(locations(5), LayoutRow)
	for _, b := range buildings {
		if b.Position[2] != 0 {
			t.Errorf("row layout z = %v for %s, want 0", b.Position[2], b.ID)
		}
	}
	first := buildings[0].Position[0]
	last := buildings[len(buildings)-1].Position[0]
	if first != -last {
		t.Errorf("row not centered: first x = %v, last x = %v", first, last)
	}
	if buildings[2].Position[0] != 0 {
		t.Errorf("middle of odd row at x = %v, want 0", buildings[2].Position[0])
	}
}

func TestBuildingsSingleLocation(t *testing.T) {
	buildings := Buildings(locations(1), LayoutGrid)
	if len(buildings) != 1 {
		t.Fatalf("got %d buildings, want 1", len(buildings))
	}
	b := buildings[0]
	if b.Position[0] != 0 || b.Position[2] != 0 {
		t.Errorf("single building at (%v, %v), want origin", b.Position[0], b.Position[2])
	}
}

func TestBuildingsDeterministic(t *testing.T) {
	locs := locations(7)
	a := Buildings(locs, LayoutGrid)
	b := Buildings(locs, LayoutGrid)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("building %d differs between identical calls", i)
		}
	}
}

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{name: "known category", category: "groceries", want: "#4ade80"},
		{name: "case insensitive", category: "Groceries", want: "#4ade80"},
		{name: "surrounding spaces", category: "  travel  ", want: "#38bdf8"},
		{name: "unknown falls back to gray", category: "llamas", want: DefaultColor},
		{name: "empty falls back to gray", category: "", want: DefaultColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryColor(tt.category); got != tt.want {
				t.Errorf("CategoryColor(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestPaletteColorCycles(t *testing.T) {
	if PaletteColor(0) != PaletteColor(len(palette)) {
		t.Error("palette does not cycle")
	}
	if PaletteColor(-3) != PaletteColor(3) {
		t.Error("negative index not mirrored")
	}
}

func TestNewSceneIncludesBuildings(t *testing.T) {
	scene := NewScene(locations(4))
	if len(scene.Buildings) != 4 {
		t.Fatalf("scene has %d buildings, want 4", len(scene.Buildings))
	}
	if scene.HoverColor != HoverColor {
		t.Errorf("hover color %q, want %q", scene.HoverColor, HoverColor)
	}
	if scene.Camera.FOV != 50 {
		t.Errorf("camera fov %v, want 50", scene.Camera.FOV)
	}
	if scene.Controls.MinPolarAngle >= scene.Controls.MaxPolarAngle {
		t.Error("polar angle clamp inverted")
	}
}
