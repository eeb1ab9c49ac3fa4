package labels

// Spanish is a ready-made table with the es-ES labels shipped with the desktop tool.
var Spanish = Table{
	"es-ES": {
		ELuxData:           "Datos ErgoLux",
		SignalData:         "Datos SignalAnalysis",
		StartTime:          "Hora de inicio",
		EndTime:            "Hora final",
		TotalTime:          "Tiempo total de medida",
		DataPoints:         "Número de datos",
		SamplingFrequency:  "Frecuencia de muestreo",
		Average:            "Promedio",
		Maximum:            "Máximo",
		Minimum:            "Mínimo",
		FractalDimension:   "Dimensión fractal",
		FractalVariance:    "Varianza fractal",
		ApproximateEntropy: "Entropía aproximada",
		SampleEntropy:      "Entropía muestral",
		ShannonEntropy:     "Entropía de Shannon",
		EntropyBit:         "Bits de entropía",
		IdealEntropy:       "Entropía ideal",
		DataSeries:         "Número de series",
		Sensors:            "Número de sensores",
		Time:               "Hora",
		Days:               "días",
		Hours:              "horas",
		Minutes:            "minutos",
		Seconds:            "segundos",
		And:                "y",
		Milliseconds:       "milisegundos",
		FrequencyAxis:      "Frecuencia (Hz)",
		MagnitudeAxis:      "Magnitud (RMS²)",
		PowerAxis:          "Potencia (dB)",
		AverageIlluminance: "Iluminancia media",
		MaximumIlluminance: "Iluminancia máxima",
		MinimumIlluminance: "Iluminancia mínima",
	},
}
