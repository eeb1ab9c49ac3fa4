package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arloliu/luxsig"
	"github.com/arloliu/luxsig/codec"
	"github.com/arloliu/luxsig/format"
)

func newConvertCommand(a *app) *cobra.Command {
	var (
		series     []int
		from, to   int
		dataFormat string
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert a signal file to the format of the output extension",
		Long: "Convert reads INPUT and writes OUTPUT in the format chosen by its extension\n" +
			"(.elux, .sig, .txt or .bin; anything else is written as .txt). The statistics\n" +
			"of INPUT are carried over. LUXSIG_COMPRESSION adds a compression suffix to\n" +
			"OUTPUT unless it already has one.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := luxsig.ReadFile(cmd.Context(), args[0], a.options()...)
			if err != nil {
				return a.describe(err)
			}

			opts := append(a.options(), codec.WithStats(res.Stats), codec.WithSeries(series...))
			if from != 0 || to != 0 {
				if to == 0 {
					to = res.Dataset.SampleCount
				}
				opts = append(opts, codec.WithRange(from, to))
			}
			if cmd.Flags().Changed("data-format") {
				opts = append(opts, codec.WithDataFormat(dataFormat))
			}

			out := outputPath(args[1], a.settings.CompressionType())
			if err := luxsig.WriteFile(cmd.Context(), out, res.Dataset, opts...); err != nil {
				return a.describe(err)
			}

			a.logger.Info("signal file converted",
				"input", args[0],
				"output", out,
				"from", res.Info.Format.String(),
				"to", format.ForWrite(extOf(out)).String(),
			)

			return nil
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&series, "series", nil, "indices of the series to export, in order (default all)")
	f.IntVar(&from, "from", 0, "first sample to export")
	f.IntVar(&to, "to", 0, "sample after the last one to export (default end)")
	f.StringVar(&dataFormat, "data-format", "", "numeric display pattern, e.g. 0.###")

	return cmd
}

// outputPath appends the suffix of c unless path already ends with a compression suffix.
func outputPath(path string, c format.CompressionType) string {
	if _, existing := format.SplitPath(path); existing != format.CompressionNone {
		return path
	}

	return path + c.Extension()
}

func extOf(path string) string {
	base, _ := format.SplitPath(path)
	return filepath.Ext(base)
}
