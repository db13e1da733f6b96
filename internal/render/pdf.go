// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/jung-kurt/gofpdf"

	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/projection"
)

// RGB is a colour with components in [0,255].
type RGB struct{ R, G, B int }

// PDFStyle holds the colours and sizes used by the PDF renderer.
type PDFStyle struct {
	Bar       RGB
	Point     RGB
	Line      RGB
	Land      RGB
	Border    RGB
	Axis      RGB
	FontSize  float64
	TickSize  float64
	LineWidth float64
}

// DefaultPDFStyle is the palette used when none is given.
var DefaultPDFStyle = PDFStyle{
	Bar:       RGB{0x46, 0x82, 0xb4}, // steelblue
	Point:     RGB{0xdc, 0x14, 0x3c},
	Line:      RGB{0x22, 0x8b, 0x22},
	Land:      RGB{0xee, 0xee, 0xee},
	Border:    RGB{0x99, 0x99, 0x99},
	Axis:      RGB{0x00, 0x00, 0x00},
	FontSize:  7,
	TickSize:  4,
	LineWidth: 0.5,
}

// pdfSurface is one page of a PDF document.
type pdfSurface struct {
	spec  models.SurfaceSpec
	page  int
	owner *PDF
}

func (s *pdfSurface) Spec() models.SurfaceSpec { return s.spec }

// PDF is a Renderer that draws each surface on its own page, one surface
// pixel per PDF point.
type PDF struct {
	mu    sync.Mutex
	doc   *gofpdf.Fpdf
	style PDFStyle
}

// NewPDF creates an empty PDF document.
func NewPDF(title string, style *PDFStyle) *PDF {
	st := DefaultPDFStyle
	if style != nil {
		st = *style
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: 595, Ht: 842},
	})
	doc.SetTitle(title, true)
	doc.SetCreator("flightmap", true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetFont("Helvetica", "", st.FontSize)
	return &PDF{doc: doc, style: st}
}

// CreateSurface implements Renderer by adding a page of the surface size.
func (p *PDF) CreateSurface(spec models.SurfaceSpec) (Surface, error) {
	if err := checkSpec(spec); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc.AddPageFormat("P", gofpdf.SizeType{Wd: spec.Width, Ht: spec.Height})
	return &pdfSurface{spec: spec, page: p.doc.PageNo(), owner: p}, p.doc.Error()
}

// begin selects the surface's page and holds the document lock. The
// returned function releases it.
func (p *PDF) begin(s Surface) (*pdfSurface, func(), error) {
	ps, ok := s.(*pdfSurface)
	if !ok || ps.owner != p {
		return nil, nil, ErrForeignSurface
	}
	p.mu.Lock()
	p.doc.SetPage(ps.page)
	return ps, p.mu.Unlock, nil
}

func (p *PDF) fill(c RGB) { p.doc.SetFillColor(c.R, c.G, c.B) }
func (p *PDF) draw(c RGB) { p.doc.SetDrawColor(c.R, c.G, c.B) }

// DrawBars implements Renderer.
func (p *PDF) DrawBars(s Surface, bars []models.Bar) error {
	ps, done, err := p.begin(s)
	if err != nil {
		return err
	}
	defer done()

	p.fill(p.style.Bar)
	for _, b := range bars {
		p.doc.Rect(ps.spec.OriginX+b.X, ps.spec.OriginY+b.Y, b.Width, b.Height, "F")
	}
	return p.doc.Error()
}

// DrawPoints implements Renderer.
func (p *PDF) DrawPoints(s Surface, points []models.Point) error {
	_, done, err := p.begin(s)
	if err != nil {
		return err
	}
	defer done()

	p.fill(p.style.Point)
	for _, pt := range points {
		p.doc.Circle(pt.CX, pt.CY, pt.R, "F")
	}
	return p.doc.Error()
}

// DrawLines implements Renderer.
func (p *PDF) DrawLines(s Surface, lines []models.Line) error {
	_, done, err := p.begin(s)
	if err != nil {
		return err
	}
	defer done()

	p.draw(p.style.Line)
	p.doc.SetLineWidth(p.style.LineWidth)
	for _, l := range lines {
		p.doc.Line(l.X1, l.Y1, l.X2, l.Y2)
	}
	return p.doc.Error()
}

// DrawAxis implements Renderer.
func (p *PDF) DrawAxis(s Surface, axis models.Axis) error {
	ps, done, err := p.begin(s)
	if err != nil {
		return err
	}
	defer done()

	p.draw(p.style.Axis)
	p.doc.SetTextColor(p.style.Axis.R, p.style.Axis.G, p.style.Axis.B)
	p.doc.SetLineWidth(p.style.LineWidth)
	ox, oy := ps.spec.OriginX, ps.spec.OriginY
	tick := p.style.TickSize

	switch axis.Orientation {
	case models.AxisBottom:
		y := oy + axis.Cross
		p.doc.Line(ox, y, ox+axis.Length, y)
		for _, t := range axis.Ticks {
			x := ox + t.Offset
			p.doc.Line(x, y, x, y+tick)
			w := p.doc.GetStringWidth(t.Label)
			p.doc.Text(x-w/2, y+tick+p.style.FontSize, t.Label)
		}
	case models.AxisLeft:
		x := ox + axis.Cross
		p.doc.Line(x, oy, x, oy+axis.Length)
		for _, t := range axis.Ticks {
			y := oy + t.Offset
			p.doc.Line(x-tick, y, x, y)
			w := p.doc.GetStringWidth(t.Label)
			p.doc.Text(x-tick-2-w, y+p.style.FontSize/3, t.Label)
		}
	default:
		return fmt.Errorf("unknown axis orientation %q", axis.Orientation)
	}
	return p.doc.Error()
}

// DrawPolygons implements Renderer.
func (p *PDF) DrawPolygons(s Surface, features []models.Feature, project projection.Func) error {
	_, done, err := p.begin(s)
	if err != nil {
		return err
	}
	defer done()

	p.fill(p.style.Land)
	p.draw(p.style.Border)
	p.doc.SetLineWidth(p.style.LineWidth / 2)
	for i := range features {
		paths, err := featurePaths(&features[i], project)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		for _, path := range paths {
			pts := make([]gofpdf.PointType, len(path))
			for j, pt := range path {
				pts[j] = gofpdf.PointType{X: pt.X, Y: pt.Y}
			}
			p.doc.Polygon(pts, "FD")
		}
	}
	return p.doc.Error()
}

// WriteTo writes the finished document to w.
func (p *PDF) WriteTo(w io.Writer) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cw := &countWriter{w: w}
	err := p.doc.Output(cw)
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
