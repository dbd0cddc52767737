package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/woozymasta/parallax/internal/geo"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ErrNoGeometry is returned when an entry cannot be drawn as a triangle.
var ErrNoGeometry = errors.New("diagram: entry has no drawable geometry")

const (
	diagramWidth  = 640
	diagramHeight = 400
	supersample   = 2

	// Apex angles below this are widened so the target stays on canvas;
	// labels always show the solved values.
	minApexDeg = 20.0
	arcSteps   = 48
)

var (
	colorBackground = color.RGBA{0x10, 0x14, 0x1c, 0xff}
	colorEarth      = color.RGBA{0x3a, 0x7c, 0xc9, 0xff}
	colorBaseline   = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorSight      = color.RGBA{0xf2, 0xc1, 0x4e, 0xff}
	colorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

type vec struct{ x, y float64 }

// Diagram renders a schematic of the station / target triangle.
//
// The baseline is drawn horizontally with the surface arc above it and
// the sight lines meeting at the target. Angles are exaggerated when the
// parallax is small.
func Diagram(e Entry) (image.Image, error) {
	if !e.OK() {
		return nil, ErrNoGeometry
	}
	tri := e.solution.Triangle

	mab, mba, err := displayAngles(tri.MAB, tri.MBA)
	if err != nil {
		return nil, err
	}

	// unit frame: A at origin, B at (1, 0), y up
	a := vec{0, 0}
	b := vec{1, 0}
	am := math.Sin(geo.Radians(mba)) / math.Sin(geo.Radians(180-mab-mba))
	m := vec{am * math.Cos(geo.Radians(mab)), am * math.Sin(geo.Radians(mab))}
	arc := surfaceArc(tri.AOB)

	pts := append([]vec{a, b, m}, arc...)
	w, h := float64(diagramWidth*supersample), float64(diagramHeight*supersample)
	project := fit(pts, w, h, 0.12*w, 0.18*h)

	canvas := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	lineW := float32(2 * supersample)
	z := vector.NewRasterizer(int(w), int(h))

	if len(arc) > 1 {
		for i := 1; i < len(arc); i++ {
			stroke(z, project(arc[i-1]), project(arc[i]), lineW*2)
		}
		z.Draw(canvas, canvas.Bounds(), image.NewUniform(colorEarth), image.Point{})
	}

	z.Reset(int(w), int(h))
	stroke(z, project(a), project(b), lineW)
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(colorBaseline), image.Point{})

	z.Reset(int(w), int(h))
	stroke(z, project(a), project(m), lineW)
	stroke(z, project(b), project(m), lineW)
	z.Draw(canvas, canvas.Bounds(), image.NewUniform(colorSight), image.Point{})

	out := image.NewRGBA(image.Rect(0, 0, diagramWidth, diagramHeight))
	xdraw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)

	label := func(p vec, dx, dy int, s string) {
		q := project(p)
		x := int(q.x)/supersample + dx
		y := int(q.y)/supersample + dy
		drawText(out, x, y, s)
	}

	stationName := func(i int, fallback string) string {
		if i < len(e.Stations) && e.Stations[i].Name != "" {
			return e.Stations[i].Name
		}
		return fallback
	}

	target := e.Target
	if target == "" {
		target = "M"
	}

	label(a, -10, 18, stationName(0, "A"))
	label(b, -10, 18, stationName(1, "B"))
	label(m, -10, -8, target)

	drawText(out, 10, 18, e.Name)
	drawText(out, 10, diagramHeight-28, fmt.Sprintf("parallax %.4f deg   baseline %.3f km   arc %.3f km",
		tri.Parallax, tri.BaselineKm, e.solution.ArcKm))
	drawText(out, 10, diagramHeight-10, fmt.Sprintf("A->%s %.1f km   B->%s %.1f km",
		target, tri.DistA, target, tri.DistB))

	return out, nil
}

// displayAngles returns the base angles used for drawing.
func displayAngles(mab, mba float64) (float64, float64, error) {
	sum := mab + mba
	if mab <= 0 || mba <= 0 || sum >= 180 {
		return 0, 0, fmt.Errorf("%w: base angles %.3f and %.3f", ErrNoGeometry, mab, mba)
	}

	if sum > 180-minApexDeg {
		k := (180 - minApexDeg) / sum
		mab, mba = mab*k, mba*k
	}

	return mab, mba, nil
}

// surfaceArc returns the surface between A and B for the central angle
// aob (degrees), bulging above the chord. It is empty when the angle is
// not in (0, 180).
func surfaceArc(aob float64) []vec {
	if aob <= 0 || aob >= 180 {
		return nil
	}

	half := geo.Radians(aob) / 2
	r := 0.5 / math.Sin(half)
	center := vec{0.5, -0.5 / math.Tan(half)}

	pts := make([]vec, 0, arcSteps+1)
	for i := 0; i <= arcSteps; i++ {
		phi := math.Pi/2 + half - 2*half*float64(i)/arcSteps
		pts = append(pts, vec{center.x + r*math.Cos(phi), center.y + r*math.Sin(phi)})
	}

	return pts
}

// fit returns a projection from the unit frame into a w×h canvas that
// keeps the aspect ratio and flips the y axis.
func fit(pts []vec, w, h, padX, padY float64) func(vec) vec {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}

	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	scale := math.Min((w-2*padX)/spanX, (h-2*padY)/spanY)

	offX := (w - spanX*scale) / 2
	offY := (h - spanY*scale) / 2

	return func(p vec) vec {
		return vec{
			x: offX + (p.x-minX)*scale,
			y: h - offY - (p.y-minY)*scale,
		}
	}
}

func stroke(z *vector.Rasterizer, p0, p1 vec, width float32) {
	dx, dy := p1.x-p0.x, p1.y-p0.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}

	nx := float32(-dy/l) * width / 2
	ny := float32(dx/l) * width / 2
	x0, y0 := float32(p0.x), float32(p0.y)
	x1, y1 := float32(p1.x), float32(p1.y)

	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func drawText(dst draw.Image, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colorText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// EncodeWebP writes img as a lossless WebP image.
func EncodeWebP(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}

// SaveDiagrams renders every solved entry into dir as <name>.webp.
// Entries that cannot be drawn are skipped.
func SaveDiagrams(dir string, r Report) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	count := 0
	for _, e := range r.Entries {
		img, err := Diagram(e)
		if err != nil {
			log.Debug().Err(err).Str("observation", e.Name).Msg("Diagram skipped")
			continue
		}

		path := filepath.Join(dir, e.Name+".webp")
		f, err := os.Create(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to create file")
			continue
		}

		if err := EncodeWebP(f, img); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to encode webp")
		} else {
			count++
		}

		if err := f.Close(); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to close file")
		}
	}

	return count, nil
}
