package culture

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	englishDays   = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	englishMonths = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

var invariant = Culture{
	Name:               InvariantName,
	DecimalSeparator:   ".",
	GroupSeparator:     ",",
	DateTimePattern:    "dddd, dd MMMM yyyy HH:mm:ss",
	MillisecondsFormat: ":ss.fff",
	DayNames:           englishDays,
	MonthNames:         englishMonths,
	AMDesignator:       "AM",
	PMDesignator:       "PM",
}

// table holds the built-in cultures. Patterns follow the .NET ICU data.
var table = []Culture{
	{
		Name:               "en-US",
		DecimalSeparator:   ".",
		GroupSeparator:     ",",
		DateTimePattern:    "dddd, MMMM d, yyyy h:mm:ss tt",
		MillisecondsFormat: ":ss.fff",
		DayNames:           englishDays,
		MonthNames:         englishMonths,
		AMDesignator:       "AM",
		PMDesignator:       "PM",
	},
	{
		Name:               "en-GB",
		DecimalSeparator:   ".",
		GroupSeparator:     ",",
		DateTimePattern:    "dddd, d MMMM yyyy HH:mm:ss",
		MillisecondsFormat: ":ss.fff",
		DayNames:           englishDays,
		MonthNames:         englishMonths,
		AMDesignator:       "am",
		PMDesignator:       "pm",
	},
	{
		Name:               "es-ES",
		DecimalSeparator:   ",",
		GroupSeparator:     ".",
		DateTimePattern:    "dddd, d' de 'MMMM' de 'yyyy H:mm:ss",
		MillisecondsFormat: ":ss,fff",
		DayNames:           [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		MonthNames: [12]string{
			"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
		},
		AMDesignator: "a. m.",
		PMDesignator: "p. m.",
	},
	{
		Name:               "ca-ES",
		DecimalSeparator:   ",",
		GroupSeparator:     ".",
		DateTimePattern:    "dddd, d MMMM' de 'yyyy H:mm:ss",
		MillisecondsFormat: ":ss,fff",
		DayNames:           [7]string{"diumenge", "dilluns", "dimarts", "dimecres", "dijous", "divendres", "dissabte"},
		MonthNames: [12]string{
			"gener", "febrer", "març", "abril", "maig", "juny",
			"juliol", "agost", "setembre", "octubre", "novembre", "desembre",
		},
		AMDesignator: "a. m.",
		PMDesignator: "p. m.",
	},
	{
		Name:               "fr-FR",
		DecimalSeparator:   ",",
		GroupSeparator:     "\u202f",
		DateTimePattern:    "dddd d MMMM yyyy HH:mm:ss",
		MillisecondsFormat: ":ss,fff",
		DayNames:           [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		MonthNames: [12]string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		AMDesignator: "AM",
		PMDesignator: "PM",
	},
	{
		Name:               "de-DE",
		DecimalSeparator:   ",",
		GroupSeparator:     ".",
		DateTimePattern:    "dddd, d. MMMM yyyy HH:mm:ss",
		MillisecondsFormat: ":ss,fff",
		DayNames:           [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		MonthNames: [12]string{
			"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November", "Dezember",
		},
		AMDesignator: "AM",
		PMDesignator: "PM",
	},
	{
		Name:               "it-IT",
		DecimalSeparator:   ",",
		GroupSeparator:     ".",
		DateTimePattern:    "dddd d MMMM yyyy HH:mm:ss",
		MillisecondsFormat: ":ss,fff",
		DayNames:           [7]string{"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato"},
		MonthNames: [12]string{
			"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
			"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
		},
		AMDesignator: "AM",
		PMDesignator: "PM",
	},
	{
		Name:               "pt-PT",
		DecimalSeparator:   ",",
		GroupSeparator:     "\u00a0",
		DateTimePattern:    "dddd, d' de 'MMMM' de 'yyyy HH:mm:ss",
		MillisecondsFormat: ":ss,fff",
		DayNames:           [7]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"},
		MonthNames: [12]string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
		},
		AMDesignator: "da manhã",
		PMDesignator: "da tarde",
	},
}

var (
	byName  = make(map[string]Culture, len(table))
	matcher language.Matcher
)

func init() {
	tags := make([]language.Tag, 0, len(table))
	for _, c := range table {
		byName[strings.ToLower(c.Name)] = c
		tags = append(tags, language.MustParse(c.Name))
	}
	matcher = language.NewMatcher(tags)
}
