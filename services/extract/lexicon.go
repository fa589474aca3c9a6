// File: services/extract/lexicon.go
package extract

import (
	"fmt"

	"github.com/spf13/viper"
)

// Lexicon carries the vocabulary tables the matching engine resolves against.
// The engine itself is content-free; all language data lives here so it can be
// replaced from configuration without touching the matching rules.
type Lexicon struct {
	// NumberWords maps spoken numerals (English and Hindi) to values.
	NumberWords map[string]int `mapstructure:"numberWords"`
	// RelativeDays maps relative-day words to day offsets from today.
	RelativeDays map[string]int `mapstructure:"relativeDays"`
	// Weekdays maps day-of-week words to 0=Sunday..6=Saturday.
	Weekdays map[string]int `mapstructure:"weekdays"`
	// NextWeekQualifiers force an extra 7-day skip on weekday references.
	NextWeekQualifiers []string `mapstructure:"nextWeekQualifiers"`
	// Months maps month names to 1..12.
	Months map[string]int `mapstructure:"months"`
	// TimeQualifiers maps time-of-day words to "am" or "pm".
	TimeQualifiers map[string]string `mapstructure:"timeQualifiers"`
	// HourMarkers are locale words that follow an hour numeral ("7 baje").
	HourMarkers []string `mapstructure:"hourMarkers"`
	// Cuisines is the closed cuisine vocabulary.
	Cuisines []string `mapstructure:"cuisines"`
	// RequestTags maps free-text keywords to canonical special-request tags.
	RequestTags map[string]string `mapstructure:"requestTags"`
	// NameIntroductions are self-introduction phrases preceding a name.
	NameIntroductions []string `mapstructure:"nameIntroductions"`
	// NameTrailers are phrase tails following a name ("... hai", "... hoon").
	NameTrailers []string `mapstructure:"nameTrailers"`
	// PartyIntros precede a companion count ("me and three more").
	PartyIntros []string `mapstructure:"partyIntros"`
	// MoreConstructions follow a companion count ("me and three more").
	MoreConstructions []string `mapstructure:"moreConstructions"`
	// AndMeTails follow a count meaning "plus the speaker" ("3 and me").
	AndMeTails []string `mapstructure:"andMeTails"`
}

// DefaultLexicon returns the built-in English/Hindi vocabulary.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		NumberWords: map[string]int{
			"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
			"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
			"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
			"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
			"nineteen": 19, "twenty": 20,
			"ek": 1, "do": 2, "teen": 3, "char": 4, "chaar": 4,
			"panch": 5, "paanch": 5, "che": 6, "chhe": 6, "cheh": 6,
			"saat": 7, "aath": 8, "nau": 9, "das": 10, "dus": 10,
			"gyarah": 11, "barah": 12, "pandrah": 15, "bees": 20,
		},
		RelativeDays: map[string]int{
			"today": 0, "aaj": 0,
			"tomorrow": 1, "kal": 1, "tmrw": 1,
			"day after tomorrow": 2, "day after": 2, "parso": 2, "parson": 2,
		},
		Weekdays: map[string]int{
			"sunday": 0, "ravivar": 0, "itwar": 0,
			"monday": 1, "somvar": 1, "somwar": 1,
			"tuesday": 2, "mangalvar": 2, "mangalwar": 2,
			"wednesday": 3, "budhvar": 3, "budhwar": 3,
			"thursday": 4, "guruvar": 4, "guruwar": 4,
			"friday": 5, "shukravar": 5, "shukrawar": 5,
			"saturday": 6, "shanivar": 6, "shaniwar": 6,
		},
		NextWeekQualifiers: []string{"next", "agle", "agla", "agli"},
		Months: map[string]int{
			"january": 1, "jan": 1, "february": 2, "feb": 2, "march": 3, "mar": 3,
			"april": 4, "apr": 4, "may": 5, "june": 6, "jun": 6, "july": 7, "jul": 7,
			"august": 8, "aug": 8, "september": 9, "sept": 9, "sep": 9,
			"october": 10, "oct": 10, "november": 11, "nov": 11, "december": 12, "dec": 12,
		},
		TimeQualifiers: map[string]string{
			"morning": "am", "subah": "am", "savere": "am",
			"noon": "pm", "afternoon": "pm", "dopahar": "pm",
			"evening": "pm", "shaam": "pm", "sham": "pm",
			"night": "pm", "raat": "pm", "tonight": "pm",
		},
		HourMarkers: []string{"baje", "bje", "o'clock", "oclock"},
		Cuisines: []string{
			"italian", "chinese", "indian", "north indian", "south indian",
			"mughlai", "punjabi", "gujarati", "rajasthani", "bengali",
			"continental", "mexican", "thai", "japanese", "lebanese",
			"seafood", "barbecue", "vegetarian", "vegan",
		},
		RequestTags: map[string]string{
			"birthday":    "birthday celebration",
			"anniversary": "anniversary celebration",
			"window":      "window seat",
			"quiet":       "quiet corner",
			"wheelchair":  "wheelchair accessible",
			"highchair":   "high chair",
			"high chair":  "high chair",
			"candlelight": "candlelight setup",
			"cake":        "cake arrangement",
			"jain":        "jain food",
			"allergy":     "allergy note",
			"allergic":    "allergy note",
		},
		NameIntroductions: []string{
			"my name is", "name is", "i am", "i'm", "this is", "call me",
			"mera naam", "mera nam", "main", "mai",
		},
		NameTrailers:      []string{"hai", "hoon", "hun", "hu", "here", "speaking", "bol raha hoon", "bol rahi hoon"},
		PartyIntros:       []string{"me and", "main aur", "mere saath"},
		MoreConstructions: []string{"more", "aur", "log", "others", "other"},
		AndMeTails:        []string{"and me", "aur main", "aur mai"},
	}
}

// LoadLexicon reads a vocabulary file (YAML) and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func LoadLexicon(path string) (*Lexicon, error) {
	lex := DefaultLexicon()
	if path == "" {
		return lex, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}
	if err := v.Unmarshal(lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}
	return lex, nil
}
