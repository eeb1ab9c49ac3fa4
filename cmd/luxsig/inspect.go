package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/luxsig"
	"github.com/arloliu/luxsig/codec"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the header of a signal file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := luxsig.ReadFile(cmd.Context(), args[0], a.options()...)
			if err != nil {
				return a.describe(err)
			}

			printInfo(cmd.OutOrStdout(), res)

			return nil
		},
	}
}

func printInfo(w io.Writer, res *codec.Result) {
	info := res.Info
	h := info.Header
	d := res.Dataset

	fmt.Fprintf(w, "File:        %s\n", info.Path)
	fmt.Fprintf(w, "Format:      %s\n", info.Format)
	fmt.Fprintf(w, "Compression: %s\n", info.Compression)
	fmt.Fprintf(w, "Culture:     %s\n", info.CultureName)
	fmt.Fprintf(w, "Series:      %d\n", d.SeriesCount)
	fmt.Fprintf(w, "Points:      %d\n", d.SampleCount)
	fmt.Fprintf(w, "Frequency:   %g Hz\n", d.SampleFrequency)
	if info.Format.HasTimestamps() {
		fmt.Fprintf(w, "Start:       %s\n", h.Start.Format(time.RFC3339Nano))
		fmt.Fprintf(w, "End:         %s\n", h.End.Format(time.RFC3339Nano))
		fmt.Fprintf(w, "Duration:    %s\n", h.Duration())
	}
	fmt.Fprintf(w, "Labels:      %s\n", strings.Join(d.Labels, ", "))
	if h.HasStats {
		fmt.Fprintf(w, "Statistics:\n")
		for _, line := range strings.Split(res.Stats.String(), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	if info.Truncated {
		fmt.Fprintf(w, "Truncated:   %d of %d samples read\n", info.RowsRead, d.SeriesCount*d.SampleCount)
	}
	fmt.Fprintf(w, "Fingerprint: %016x\n", d.Fingerprint())
}
