package geo

// Lookup tables keyed by canonical lowercased country name. Coverage
// follows the markets the product actually sees; unknown countries score
// through the international fallback rather than erroring.

var COUNTRY_ALIASES = map[string]string{
	"us":                       "usa",
	"u.s.":                     "usa",
	"u.s.a.":                   "usa",
	"united states":            "usa",
	"united states of america": "usa",
	"uk":                       "united kingdom",
	"u.k.":                     "united kingdom",
	"great britain":            "united kingdom",
	"england":                  "united kingdom",
	"uae":                      "united arab emirates",
	"south korea":              "korea",
	"republic of korea":        "korea",
	"holland":                  "netherlands",
	"ca":                       "canada",
	"de":                       "germany",
	"fr":                       "france",
	"jp":                       "japan",
	"au":                       "australia",
	"in":                       "india",
	"br":                       "brazil",
	"mx":                       "mexico",
}

var REGIONS = map[string]string{
	"usa":    NorthAmerica,
	"canada": NorthAmerica,

	"united kingdom": Europe,
	"ireland":        Europe,
	"france":         Europe,
	"germany":        Europe,
	"netherlands":    Europe,
	"belgium":        Europe,
	"spain":          Europe,
	"portugal":       Europe,
	"italy":          Europe,
	"austria":        Europe,
	"switzerland":    Europe,
	"sweden":         Europe,
	"norway":         Europe,
	"denmark":        Europe,
	"finland":        Europe,
	"poland":         Europe,
	"czechia":        Europe,
	"greece":         Europe,
	"romania":        Europe,
	"ukraine":        Europe,

	"japan":       AsiaPacific,
	"korea":       AsiaPacific,
	"china":       AsiaPacific,
	"taiwan":      AsiaPacific,
	"hong kong":   AsiaPacific,
	"singapore":   AsiaPacific,
	"malaysia":    AsiaPacific,
	"thailand":    AsiaPacific,
	"vietnam":     AsiaPacific,
	"philippines": AsiaPacific,
	"indonesia":   AsiaPacific,
	"australia":   AsiaPacific,
	"new zealand": AsiaPacific,

	"india":      SouthAsia,
	"pakistan":   SouthAsia,
	"bangladesh": SouthAsia,
	"sri lanka":  SouthAsia,
	"nepal":      SouthAsia,

	"united arab emirates": MiddleEast,
	"saudi arabia":         MiddleEast,
	"israel":               MiddleEast,
	"turkey":               MiddleEast,
	"qatar":                MiddleEast,
	"kuwait":               MiddleEast,
	"jordan":               MiddleEast,
	"egypt":                MiddleEast,

	"mexico":    LatinAmerica,
	"brazil":    LatinAmerica,
	"argentina": LatinAmerica,
	"chile":     LatinAmerica,
	"colombia":  LatinAmerica,
	"peru":      LatinAmerica,
	"uruguay":   LatinAmerica,

	"south africa": Africa,
	"nigeria":      Africa,
	"kenya":        Africa,
	"ghana":        Africa,
	"morocco":      Africa,
}

var CURRENCIES = map[string]string{
	"usa":            "USD",
	"canada":         "CAD",
	"united kingdom": "GBP",
	"ireland":        "EUR",
	"france":         "EUR",
	"germany":        "EUR",
	"netherlands":    "EUR",
	"belgium":        "EUR",
	"spain":          "EUR",
	"portugal":       "EUR",
	"italy":          "EUR",
	"austria":        "EUR",
	"switzerland":    "CHF",
	"sweden":         "SEK",
	"norway":         "NOK",
	"denmark":        "DKK",
	"finland":        "EUR",
	"poland":         "PLN",
	"czechia":        "CZK",
	"greece":         "EUR",
	"romania":        "RON",
	"ukraine":        "UAH",
	"japan":          "JPY",
	"korea":          "KRW",
	"china":          "CNY",
	"taiwan":         "TWD",
	"hong kong":      "HKD",
	"singapore":      "SGD",
	"malaysia":       "MYR",
	"thailand":       "THB",
	"vietnam":        "VND",
	"philippines":    "PHP",
	"indonesia":      "IDR",
	"australia":      "AUD",
	"new zealand":    "NZD",
	"india":          "INR",
	"pakistan":       "PKR",
	"bangladesh":     "BDT",
	"sri lanka":      "LKR",
	"nepal":          "NPR",
	"united arab emirates": "AED",
	"saudi arabia":         "SAR",
	"israel":               "ILS",
	"turkey":               "TRY",
	"qatar":                "QAR",
	"kuwait":               "KWD",
	"jordan":               "JOD",
	"egypt":                "EGP",
	"mexico":               "MXN",
	"brazil":               "BRL",
	"argentina":            "ARS",
	"chile":                "CLP",
	"colombia":             "COP",
	"peru":                 "PEN",
	"uruguay":              "UYU",
	"south africa":         "ZAR",
	"nigeria":              "NGN",
	"kenya":                "KES",
	"ghana":                "GHS",
	"morocco":              "MAD",
}

var LANGUAGES = map[string][]string{
	"usa":            {"english", "spanish"},
	"canada":         {"english", "french"},
	"united kingdom": {"english"},
	"ireland":        {"english"},
	"australia":      {"english"},
	"new zealand":    {"english"},
	"france":         {"french"},
	"belgium":        {"french", "dutch"},
	"germany":        {"german"},
	"austria":        {"german"},
	"switzerland":    {"german", "french", "italian"},
	"netherlands":    {"dutch", "english"},
	"spain":          {"spanish"},
	"portugal":       {"portuguese"},
	"italy":          {"italian"},
	"sweden":         {"swedish", "english"},
	"norway":         {"norwegian", "english"},
	"denmark":        {"danish", "english"},
	"finland":        {"finnish", "english"},
	"poland":         {"polish"},
	"czechia":        {"czech"},
	"greece":         {"greek"},
	"romania":        {"romanian"},
	"ukraine":        {"ukrainian"},
	"japan":          {"japanese"},
	"korea":          {"korean"},
	"china":          {"chinese"},
	"taiwan":         {"chinese"},
	"hong kong":      {"chinese", "english"},
	"singapore":      {"english", "chinese", "malay"},
	"malaysia":       {"malay", "english"},
	"thailand":       {"thai"},
	"vietnam":        {"vietnamese"},
	"philippines":    {"english", "filipino"},
	"indonesia":      {"indonesian"},
	"india":          {"hindi", "english"},
	"pakistan":       {"urdu", "english"},
	"bangladesh":     {"bengali"},
	"sri lanka":      {"sinhala", "tamil", "english"},
	"nepal":          {"nepali"},
	"united arab emirates": {"arabic", "english"},
	"saudi arabia":         {"arabic"},
	"israel":               {"hebrew", "english"},
	"turkey":               {"turkish"},
	"qatar":                {"arabic", "english"},
	"kuwait":               {"arabic"},
	"jordan":               {"arabic"},
	"egypt":                {"arabic"},
	"mexico":               {"spanish"},
	"brazil":               {"portuguese"},
	"argentina":            {"spanish"},
	"chile":                {"spanish"},
	"colombia":             {"spanish"},
	"peru":                 {"spanish"},
	"uruguay":              {"spanish"},
	"south africa":         {"english", "afrikaans"},
	"nigeria":              {"english"},
	"kenya":                {"english", "swahili"},
	"ghana":                {"english"},
	"morocco":              {"arabic", "french"},
}
