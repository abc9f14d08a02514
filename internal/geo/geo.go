package geo

import "strings"

// Macro regions used for brand/creator proximity scoring.
const (
	NorthAmerica = "north america"
	Europe       = "europe"
	AsiaPacific  = "asia-pacific"
	SouthAsia    = "south asia"
	MiddleEast   = "middle east"
	LatinAmerica = "latin america"
	Africa       = "africa"
)

// Canonicalizes free-text country input ("USA", "United States", "us")
// before any table lookup.
func Norm(country string) string {
	c := strings.ToLower(strings.TrimSpace(country))
	if alias, ok := COUNTRY_ALIASES[c]; ok {
		return alias
	}
	return c
}

func IsValidCountry(country string) bool {
	_, ok := REGIONS[Norm(country)]
	return ok
}

// Region the country belongs to, or "" when unknown.
func Region(country string) string {
	return REGIONS[Norm(country)]
}

func SameCountry(a, b string) bool {
	na, nb := Norm(a), Norm(b)
	return na != "" && na == nb
}

func SameRegion(a, b string) bool {
	ra, rb := Region(a), Region(b)
	return ra != "" && ra == rb
}

// Currency the country bills in, or "" when unknown.
func Currency(country string) string {
	return CURRENCIES[Norm(country)]
}

// Does the country commonly produce content in the given language?
func SpeaksLanguage(country, lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, l := range LANGUAGES[Norm(country)] {
		if l == lang {
			return true
		}
	}
	return false
}
