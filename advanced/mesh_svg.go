package advanced

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
)

// Write the mesh as an SVG document, with y pointing up like the mesh.
func (m *Mesh) WriteSVG(w io.Writer, scale float64) {
	size := m.extent.Size()
	width := size.X * scale
	height := size.Y * scale
	tx := func(x float64) float64 { return (x - m.extent.X.Lo) * scale }
	ty := func(y float64) float64 { return height - (y-m.extent.Y.Lo)*scale }

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill: black")

	for e := range m.Triangles() {
		t := m.Triangle(e)
		xs := []float64{tx(t[0].X), tx(t[1].X), tx(t[2].X)}
		ys := []float64{ty(t[0].Y), ty(t[1].Y), ty(t[2].Y)}
		canvas.Polygon(xs, ys, fmt.Sprintf("fill: #1a3a2a; stroke: none; id: t%d", m.TriangleID(e)))
	}
	for e := range m.Edges(false) {
		a, b := m.OrgPoint(e), m.DestPoint(e)
		style := "stroke: #2c4; stroke-width: 1"
		if crep := m.Crep(e); crep.Contains(Boundary) {
			style = "stroke: white; stroke-width: 3"
		} else if len(crep) > 0 {
			style = "stroke: #f33; stroke-width: 3"
		}
		canvas.Line(tx(a.X), ty(a.Y), tx(b.X), ty(b.Y), style)
	}
	for _, v := range m.live {
		p := m.position(v)
		canvas.Circle(tx(p.X), ty(p.Y), 2, "fill: yellow")
	}
	canvas.End()
}
