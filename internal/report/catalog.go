package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var translations = map[language.Tag]map[string]string{
	language.Filipino: {
		"INPUT DATA:":        "MGA DATOS:",
		"SUPPORT REACTIONS:": "MGA REAKSIYON SA SUPORTA:",
		"DESIGN VALUES:":     "MGA HALAGANG PANDISENYO:",

		"Supports": "Mga suporta",
		"Loads":    "Mga karga",

		"  Beam length:\t%.2f m\n":                "  Haba ng biga:\t%.2f m\n",
		"  Flexural rigidity (EI):\t%.0f kN-m²\n": "  Tigas sa pagbaluktot (EI):\t%.0f kN-m²\n",
		"  %s\t%s at x = %.3f m\n":                "  %s\t%s sa x = %.3f m\n",
		"  Solver:\t%s\n":                         "  Pamamaraan:\t%s\n",

		"  Maximum shear (Vmax):\t%.2f kN at x = %.3f m\n":    "  Pinakamataas na shear (Vmax):\t%.2f kN sa x = %.3f m\n",
		"  Maximum moment (Mmax):\t%.2f kN-m at x = %.3f m\n": "  Pinakamataas na moment (Mmax):\t%.2f kN-m sa x = %.3f m\n",
		"  Maximum deflection:\t%.2f mm at x = %.3f m\n":      "  Pinakamalaking deflection:\t%.2f mm sa x = %.3f m\n",
	},
	language.Turkish: {
		"INPUT DATA:":        "GİRDİ VERİLERİ:",
		"SUPPORT REACTIONS:": "MESNET TEPKİLERİ:",
		"DESIGN VALUES:":     "TASARIM DEĞERLERİ:",

		"Supports": "Mesnetler",
		"Loads":    "Yükler",

		"  Beam length:\t%.2f m\n":                "  Kiriş uzunluğu:\t%.2f m\n",
		"  Flexural rigidity (EI):\t%.0f kN-m²\n": "  Eğilme rijitliği (EI):\t%.0f kN-m²\n",
		"  %s\t%s at x = %.3f m\n":                "  %s\t%s, x = %.3f m\n",
		"  Solver:\t%s\n":                         "  Çözücü:\t%s\n",

		"  Maximum shear (Vmax):\t%.2f kN at x = %.3f m\n":    "  En büyük kesme (Vmax):\t%.2f kN, x = %.3f m\n",
		"  Maximum moment (Mmax):\t%.2f kN-m at x = %.3f m\n": "  En büyük moment (Mmax):\t%.2f kN-m, x = %.3f m\n",
		"  Maximum deflection:\t%.2f mm at x = %.3f m\n":      "  En büyük sehim:\t%.2f mm, x = %.3f m\n",
	},
}

func init() {
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}
