package report

import (
	"fmt"
	"github.com/dasnellings/indelTools/realign"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"math"
	"strings"
)

// Summary tallies window decisions over a run.
type Summary struct {
	Windows      int
	Clean        int
	Fail         int
	BadIndel     int
	IndelsFound  int
	ReadsCleaned int
	Improvements []float64 // one per window that produced a consensus
}

// Add records the decision for one window.
func (s *Summary) Add(r realign.Result) {
	s.Windows++
	switch r.Status {
	case realign.StatusClean:
		s.Clean++
	case realign.StatusBadIndel:
		s.BadIndel++
	default:
		s.Fail++
	}
	if r.Indel != nil {
		s.IndelsFound++
	}
	s.ReadsCleaned += r.Cleaned
	if r.Improvement >= 0 {
		s.Improvements = append(s.Improvements, r.Improvement)
	}
}

// String formats the tallies and the mean and standard deviation of improvement scores.
func (s Summary) String() string {
	ans := new(strings.Builder)
	fmt.Fprintf(ans, "Windows:\t%d\n", s.Windows)
	fmt.Fprintf(ans, "CLEAN:\t%d\n", s.Clean)
	fmt.Fprintf(ans, "FAIL:\t%d\n", s.Fail)
	fmt.Fprintf(ans, "FAIL (bad indel):\t%d\n", s.BadIndel)
	fmt.Fprintf(ans, "Indels found:\t%d\n", s.IndelsFound)
	fmt.Fprintf(ans, "Reads cleaned:\t%d\n", s.ReadsCleaned)
	switch len(s.Improvements) {
	case 0:
		ans.WriteString("Improvement:\tNA\n")
	case 1:
		fmt.Fprintf(ans, "Improvement:\t%.2f\n", s.Improvements[0])
	default:
		mean, sd := stat.MeanStdDev(s.Improvements, nil)
		fmt.Fprintf(ans, "Improvement:\t%.2f +/- %.2f\n", mean, sd)
	}
	return ans.String()
}

// binCounts splits values into bins of equal width between their min and max.
func binCounts(values []float64, bins int) (counts []float64, min, width float64) {
	counts = make([]float64, bins)
	if len(values) == 0 {
		return
	}
	min, max := values[0], values[0]
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	width = (max - min) / float64(bins)
	var bin int
	for _, v := range values {
		if width == 0 {
			bin = 0
		} else {
			bin = int((v - min) / width)
		}
		if bin == bins {
			bin--
		}
		counts[bin]++
	}
	return
}

// Histogram draws the distribution of improvement scores as text. Returns an empty string when
// no window produced a consensus.
func (s Summary) Histogram(bins int) string {
	if len(s.Improvements) == 0 || bins < 1 {
		return ""
	}
	counts, min, width := binCounts(s.Improvements, bins)
	caption := fmt.Sprintf("windows per improvement bin (%.1f to %.1f)", min, min+width*float64(bins))
	return asciigraph.Plot(counts, asciigraph.Height(10), asciigraph.Precision(0), asciigraph.Caption(caption))
}

// PlotHistogram saves a histogram of improvement scores to filename. The image format is taken
// from the file extension.
func (s Summary) PlotHistogram(filename string, bins int) error {
	if len(s.Improvements) == 0 {
		return fmt.Errorf("no improvement scores to plot")
	}
	h, err := plotter.NewHist(plotter.Values(s.Improvements), bins)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "Window improvement"
	p.X.Label.Text = "Improvement"
	p.Y.Label.Text = "Windows"
	p.Add(h)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename)
}
