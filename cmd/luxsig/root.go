package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arloliu/luxsig"
	"github.com/arloliu/luxsig/codec"
	"github.com/arloliu/luxsig/internal/config"
	"github.com/arloliu/luxsig/internal/logging"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	settings *config.Settings
	logger   *slog.Logger
}

func (a *app) options() []codec.Option {
	return a.settings.CodecOptions(a.logger)
}

// describe renders err for the user in the configured culture.
func (a *app) describe(err error) error {
	culture := ""
	if a.settings != nil {
		culture = a.settings.Culture
	}

	return errors.New(luxsig.Describe(err, nil, culture))
}

func newRootCommand() *cobra.Command {
	a := &app{}

	var (
		cultureFlag   string
		uiCultureFlag string
		logLevelFlag  string
		logFormatFlag string
	)

	root := &cobra.Command{
		Use:           "luxsig",
		Short:         "Inspect and convert light-sensor signal files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("culture") {
				s.Culture = cultureFlag
			}
			if flags.Changed("ui-culture") {
				s.UICulture = uiCultureFlag
			}
			if flags.Changed("log-level") {
				s.Logging.Level = logLevelFlag
			}
			if flags.Changed("log-format") {
				s.Logging.Format = logFormatFlag
			}
			if err := s.Validate(); err != nil {
				return err
			}

			a.settings = s
			a.logger = logging.New(cmd.ErrOrStderr(), s.Logging.Level, s.Logging.Format)

			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cultureFlag, "culture", "", "output culture, e.g. es-ES (overrides LUXSIG_CULTURE)")
	pf.StringVar(&uiCultureFlag, "ui-culture", "", "culture of accepted localized format tags")
	pf.StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFormatFlag, "log-format", "", "text or json")

	root.AddCommand(newInspectCommand(a), newConvertCommand(a))

	return root
}
