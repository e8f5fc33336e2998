package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/physics"
)

var surface = geom.Size{W: 160, H: 96}

func TestPaintersIdempotent(t *testing.T) {
	view := View{Surface: surface, Rotation: 0.4, Pitch: -0.3, ShowVectors: true}

	track, tp := physics.NewTrack(), physics.DefaultTrackParams()
	ts := track.Init(tp)
	ts.Velocity = 0.5
	if diff := cmp.Diff(PaintTrack(ts, tp, view), PaintTrack(ts, tp, view)); diff != "" {
		t.Errorf("track frames differ:\n%s", diff)
	}

	att, ap := physics.NewAttractor(), physics.DefaultAttractorParams()
	as := att.Init(ap)
	for i := 0; i < 50; i++ {
		as = att.Step(as, ap, 0.01)
	}
	before := *as
	if diff := cmp.Diff(PaintAttractor(as, ap, view), PaintAttractor(as, ap, view)); diff != "" {
		t.Errorf("attractor frames differ:\n%s", diff)
	}
	if as.A != before.A || as.Steps != before.Steps || as.TrailA().Len() != before.TrailA().Len() {
		t.Error("painting mutated state")
	}

	g, gp := physics.NewGauge(), physics.DefaultGaugeParams()
	gs := g.Init(gp)
	if diff := cmp.Diff(PaintGauge(gs, gp, view), PaintGauge(gs, gp, view)); diff != "" {
		t.Errorf("gauge frames differ:\n%s", diff)
	}

	sl, sp := physics.NewSled(), physics.DefaultSledParams()
	ss := sl.Step(sl.Init(sp), sp, 1.0/120)
	if diff := cmp.Diff(PaintSled(ss, sp, view), PaintSled(ss, sp, view)); diff != "" {
		t.Errorf("sled frames differ:\n%s", diff)
	}
}

func TestAttractorTrailFading(t *testing.T) {
	att, ap := physics.NewAttractor(), physics.DefaultAttractorParams()
	as := att.Init(ap)
	for i := 0; i < 100; i++ {
		as = att.Step(as, ap, 0.01)
	}

	f := PaintAttractor(as, ap, View{Surface: surface, TrailLength: 40})
	// Two trails of 40 samples give 39 segments each.
	if got := f.Count(Line); got != 78 {
		t.Errorf("expected 78 trail segments, got %d", got)
	}
	newest := 0.0
	for _, p := range f.Prims {
		if p.Kind == Line {
			if p.Alpha <= 0 || p.Alpha > 1 {
				t.Fatalf("alpha %v out of range", p.Alpha)
			}
			newest = math.Max(newest, p.Alpha)
		}
	}
	if newest != 1 {
		t.Errorf("newest segment alpha = %v, want 1", newest)
	}
}

func TestTrailAlpha(t *testing.T) {
	if TrailAlpha(0, 10) != 1 {
		t.Error("newest sample should be opaque")
	}
	if a := TrailAlpha(9, 10); math.Abs(a-0.1) > 1e-12 {
		t.Errorf("oldest alpha = %v", a)
	}
	if TrailAlpha(3, 0) != 0 {
		t.Error("empty trail should be transparent")
	}
}

func TestGaugeNeedlesPerCell(t *testing.T) {
	g, gp := physics.NewGauge(), physics.DefaultGaugeParams()
	gp.Cols, gp.Rows = 5, 3
	f := PaintGauge(g.Init(gp), gp, View{Surface: surface})
	if f.Count(Line) != 15 || f.Count(Dot) != 15 {
		t.Errorf("expected 15 needles, got %d lines %d dots", f.Count(Line), f.Count(Dot))
	}
}

func TestOrthoProjection(t *testing.T) {
	o := Ortho{Scale: 2, Center: geom.Vec2{X: 50, Y: 40}}
	px, _ := o.Project(geom.Vec3{})
	if px != (geom.Vec2{X: 50, Y: 40}) {
		t.Errorf("pivot should land on centre, got %v", px)
	}
	px, _ = o.Project(geom.Vec3{Z: 5})
	if math.Abs(px.Y-30) > 1e-12 {
		t.Errorf("+z should point up the screen, got %v", px)
	}

	o.Yaw = math.Pi / 2
	px, depth := o.Project(geom.Vec3{X: 1})
	if math.Abs(px.X-50) > 1e-9 || math.Abs(depth-1) > 1e-9 {
		t.Errorf("quarter yaw should turn x into depth, got %v depth %v", px, depth)
	}
}

func TestCanvasRasterize(t *testing.T) {
	c := NewCanvas(10, 5)
	if c.Size() != (geom.Size{W: 20, H: 20}) {
		t.Fatalf("size = %v", c.Size())
	}
	f := NewFrame(c.Size())
	f.Line(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 19, Y: 0}, 0.2, RoleTrack)
	f.Disc(geom.Vec2{X: 10, Y: 10}, 2, 1, RoleBody)
	f.Dot(geom.Vec2{X: math.NaN(), Y: 3}, 1, RoleBody)
	f.Text(geom.Vec2{X: 0, Y: 16}, "hi", RoleLabel)
	c.Rasterize(f)

	for col := 0; col < 10; col++ {
		if c.Grid[0][col] == blank {
			t.Fatalf("line should light cell (0,%d)", col)
		}
	}
	if c.Intensity[0][0] != 0.2 {
		t.Errorf("intensity = %v, want 0.2", c.Intensity[0][0])
	}
	if c.Intensity[2][5] != 1 || c.Roles[2][5] != RoleBody {
		t.Error("disc should be the brightest primitive in its cell")
	}
	lines := strings.Split(c.String(), "\n")
	if !strings.HasPrefix(lines[4], "hi") {
		t.Errorf("label missing from last row: %q", lines[4])
	}
	if out := c.Render(ThemeMinimal); !strings.Contains(out, "h") {
		t.Error("render lost the label")
	}

	c.Clear()
	if c.Grid[2][5] != blank || c.Intensity[2][5] != 0 {
		t.Error("clear should reset cells")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("lookup by name failed")
	}
	if GetTheme("nope").Name != ThemeCyberpunk.Name {
		t.Error("unknown theme should fall back")
	}
	if ThemeSunset.Next().Name != Themes[0].Name {
		t.Error("Next should wrap")
	}
	if diff := cmp.Diff([]string{"cyberpunk", "minimal", "ocean", "sunset"}, ThemeNames()); diff != "" {
		t.Errorf("ThemeNames() mismatch (-want +got):\n%s", diff)
	}
	seen := map[string]bool{}
	for th := GetTheme("cyberpunk"); !seen[th.Name]; th = th.Next() {
		seen[th.Name] = true
	}
	if len(seen) != len(Themes) {
		t.Errorf("Next cycle visited %d of %d themes", len(seen), len(Themes))
	}
}

func TestPaletteFieldOrder(t *testing.T) {
	th := ThemeOcean
	got := []string{string(th.Primary), string(th.Background), string(th.Warning)}
	if diff := cmp.Diff([]string{"#0077be", "#001a33", "#ffcc00"}, got); diff != "" {
		t.Errorf("ocean palette mismatch (-want +got):\n%s", diff)
	}
	if GetTheme("retro").Name != ThemeCyberpunk.Name {
		t.Error("removed theme names should fall back to the default")
	}
}
