package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-grain/dsp/spectrum"
)

func printReport(w io.Writer, res *result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Second\tMax Live\tRMS L [dB]\tRMS R [dB]\tPeak [dB]\tClipped\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "------\t--------\t----------\t----------\t---------\t-------\n"); err != nil {
		return err
	}

	for _, s := range res.seconds {
		peak := math.Max(s.left.Peak_dB, s.right.Peak_dB)

		if _, err := fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%d\n",
			s.index,
			s.maxLive,
			formatDB(s.left.RMS_dB),
			formatDB(s.right.RMS_dB),
			formatDB(peak),
			s.left.Clipped+s.right.Clipped,
		); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	mid := make([]float64, len(res.left))
	for i := range mid {
		mid[i] = 0.5 * (res.left[i] + res.right[i])
	}

	sum, err := spectrum.Analyze(mid, res.sampleRate)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\nmax live %d, faults %d\nspectrum: peak %.1f Hz (%s dB), centroid %.1f Hz, rolloff %.1f Hz, flatness %.3f\n",
		res.maxLive, res.faults, sum.PeakHz, formatDB(sum.PeakDB), sum.Centroid, sum.Rolloff, sum.Flatness)

	return err
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.2f", v)
}
