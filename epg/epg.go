// Package epg renders synthetic electropherograms: one Gaussian peak per
// numeric marker along a size axis, scaled so the tallest peak reads 100
// RFU, lightly low-pass filtered, and stamped with a case-information
// footer.
package epg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/jfcg/butter"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/profile"
)

// CaseInfo is stamped under the trace.
type CaseInfo struct {
	ID   string
	Date time.Time
	Lab  string
}

const (
	chartWidth  = 1024
	chartHeight = 320

	// laneSamples is the width of one marker's lane on the synthetic
	// size axis.
	laneSamples = 120
	peakSigma   = 8.0
	maxRFU      = 100.0

	smoothWC = 0.9
)

// Trace synthesizes the fluorescence trace for a profile: one lane per
// numeric catalog marker the profile carries, in name order, with a
// Gaussian peak whose height is proportional to the repeat count. The
// tallest peak reads exactly maxRFU. The lane marker names are returned
// alongside the samples.
func Trace(c *catalog.Catalog, p profile.Profile) ([]float64, []string) {
	var names []string
	var counts []int
	maxCount := 0

	for _, m := range c.Markers() {
		if m.Kind != catalog.KindNumeric {
			continue
		}
		v, ok := p.Get(m.Name)
		if !ok {
			continue
		}
		n, ok := v.Repeats()
		if !ok {
			continue
		}

		names = append(names, m.Name)
		counts = append(counts, n)
		if n > maxCount {
			maxCount = n
		}
	}

	trace := make([]float64, len(names)*laneSamples)
	if maxCount == 0 {
		return trace, names
	}

	for lane, n := range counts {
		if n == 0 {
			continue
		}
		center := float64(lane*laneSamples + laneSamples/2)
		height := float64(n) / float64(maxCount) * maxRFU

		for x := range trace {
			d := float64(x) - center
			trace[x] += height * math.Exp(-(d*d)/(2*peakSigma*peakSigma))
		}
	}

	return trace, names
}

// Smooth runs the samples through a first-order Butterworth low-pass.
func Smooth(vals []float64, wc float64) ([]float64, error) {
	filt := butter.NewLowPass1(wc)
	if filt == nil {
		return nil, fmt.Errorf("invalid low-pass filter (attempted wc=%f, but expect .0001 < wc && wc < 3.1415)", wc)
	}

	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = filt.Next(v)
	}

	return out, nil
}

// Render draws the smoothed trace and stamps the case footer.
func Render(c *catalog.Catalog, p profile.Profile, info CaseInfo) (image.Image, error) {
	trace, names := Trace(c, p)
	if len(names) == 0 {
		return nil, fmt.Errorf("profile %s has no plottable markers", p.ID())
	}

	smoothed, err := Smooth(trace, smoothWC)
	if err != nil {
		return nil, err
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: 0, Max: maxRFU * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: sampleSeq(len(smoothed)),
				YValues: smoothed,
			},
		},
	}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}

	img, err := png.Decode(buffer)
	if err != nil {
		return nil, err
	}

	return stampFooter(img, footerText(p, info)), nil
}

// WritePNG renders the electropherogram and encodes it onto w.
func WritePNG(w io.Writer, c *catalog.Catalog, p profile.Profile, info CaseInfo) error {
	img, err := Render(c, p, info)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func footerText(p profile.Profile, info CaseInfo) string {
	id := info.ID
	if id == "" {
		id = p.ID()
	}
	date := info.Date
	if date.IsZero() {
		date = time.Now()
	}
	return fmt.Sprintf("Case: %s | %s | %s", id, date.Format("2006-01-02"), info.Lab)
}

// stampFooter writes the label along the bottom edge of the image.
func stampFooter(img image.Image, label string) image.Image {
	ctx := gg.NewContextForImage(img)
	ctx.SetRGB(0.25, 0.25, 0.25)
	ctx.DrawString(label, 8, float64(img.Bounds().Dy()-8))
	return ctx.Image()
}

func sampleSeq(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
