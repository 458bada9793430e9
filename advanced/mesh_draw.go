package advanced

import (
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/navmesh/dbg"
)

// Padding around the domain so the boundary edges are visible
const dbgDrawPadding = 20

// Render the mesh to a PNG file. Constrained edges are drawn in red, boundary
// edges in white, everything else in green. With labels set, every face is
// labelled with a readable name derived from its id.
func (m *Mesh) DrawPNG(path string, scale float64, labels bool) error {
	return m.render(scale, labels).SavePNG(path)
}

// Helper to draw and print the mesh in the terminal (iTerm only) for
// debugging, followed by an edge legend in matching colors.
func (m *Mesh) DbgDraw(scale float64) {
	m.DrawPNG("/tmp/navmesh.png", scale, true)
	imgcat.CatFile("/tmp/navmesh.png", os.Stdout)
	fmt.Println(m.legend())
}

func (m *Mesh) legend() string {
	var boundary, constrained, free int
	for e := range m.Edges(false) {
		switch crep := m.Crep(e); {
		case crep.Contains(Boundary):
			boundary++
		case len(crep) > 0:
			constrained++
		default:
			free++
		}
	}
	return fmt.Sprintf("%s %s %s",
		aurora.White(fmt.Sprintf("boundary:%d", boundary)),
		aurora.Red(fmt.Sprintf("constrained:%d", constrained)),
		aurora.Green(fmt.Sprintf("free:%d", free)))
}

func (m *Mesh) render(scale float64, labels bool) *gg.Context {
	size := m.extent.Size()
	width := int(scale*size.X) + dbgDrawPadding*2
	height := int(scale*size.Y) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	// Translate for padding
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-m.extent.X.Lo, -m.extent.Y.Lo)

	for e := range m.Edges(false) {
		a, b := m.OrgPoint(e), m.DestPoint(e)
		c.DrawLine(a.X, a.Y, b.X, b.Y)
		switch crep := m.Crep(e); {
		case crep.Contains(Boundary):
			c.SetRGB(1, 1, 1)
			c.SetLineWidth(3)
		case len(crep) > 0:
			c.SetRGB(1, 0.2, 0.2)
			c.SetLineWidth(3)
		default:
			c.SetRGB(0, 0.8, 0.3)
			c.SetLineWidth(1)
		}
		c.Stroke()
	}

	if labels {
		c.SetRGB(1, 1, 1)
		for e := range m.Triangles() {
			t := m.Triangle(e)
			centerX := (t[0].X + t[1].X + t[2].X) / 3
			centerY := (t[0].Y + t[1].Y + t[2].Y) / 3
			// We have to go back to identity to draw the text, so get the point in
			// native coordinates
			centerX, centerY = c.TransformPoint(centerX, centerY)
			c.Push()
			c.Identity()
			c.DrawStringAnchored(dbg.Name(m.TriangleID(e)), centerX, centerY, 0.5, 0.5)
			c.Pop()
		}
	}
	return c
}
