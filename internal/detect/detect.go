package detect

import (
	"github.com/abadojack/whatlanggo"
)

// Supported language codes. The tool translates between English and Spanish;
// anything the detector reports outside that pair falls back to a heuristic.
const (
	English = "en"
	Spanish = "es"
)

// Guess returns the most likely source language of text, constrained to the
// supported pair. Detection runs locally so choosing a default target never
// costs a network round trip.
func Guess(text string) string {
	info := whatlanggo.Detect(text)

	switch info.Lang.Iso6391() {
	case English:
		return English
	case Spanish:
		return Spanish
	}

	// Mostly-ASCII text is overwhelmingly likely to be English here.
	if asciiRatio(text) > 0.9 {
		return English
	}
	return Spanish
}

// Opposite returns the other language of the supported pair, used to default
// the target when only the source is known.
func Opposite(code string) string {
	if code == English {
		return Spanish
	}
	return English
}

func asciiRatio(text string) float64 {
	if len(text) == 0 {
		return 1
	}

	total := 0
	ascii := 0
	for _, r := range text {
		total++
		if r < 128 {
			ascii++
		}
	}

	return float64(ascii) / float64(total)
}
