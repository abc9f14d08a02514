package common

var NICHES = map[string]struct{}{
	"gaming":                 struct{}{},
	"tech":                   struct{}{},
	"beauty":                 struct{}{},
	"fashion":                struct{}{},
	"fitness":                struct{}{},
	"health & wellness":      struct{}{},
	"food & drink":           struct{}{},
	"cooking":                struct{}{},
	"travel":                 struct{}{},
	"finance":                struct{}{},
	"education":              struct{}{},
	"music":                  struct{}{},
	"art & design":           struct{}{},
	"diy & crafts":           struct{}{},
	"parenting":              struct{}{},
	"pets":                   struct{}{},
	"sports":                 struct{}{},
	"outdoors":               struct{}{},
	"comedy":                 struct{}{},
	"lifestyle":              struct{}{},
	"books":                  struct{}{},
	"science":                struct{}{},
	"automotive":             struct{}{},
	"photography":            struct{}{},
	"home & garden":          struct{}{},
	"productivity":           struct{}{},
	"software & apps":        struct{}{},
	"esports":                struct{}{},
	"streaming":              struct{}{},
	"virtual reality":        struct{}{},
}

// Niches considered adjacent for scoring purposes; membership is checked
// both ways.
var RELATED_NICHES = map[string][]string{
	"gaming":            {"esports", "streaming", "tech", "virtual reality"},
	"esports":           {"gaming", "streaming"},
	"streaming":         {"gaming", "esports", "music"},
	"tech":              {"gaming", "software & apps", "science", "productivity"},
	"software & apps":   {"tech", "productivity"},
	"beauty":            {"fashion", "lifestyle"},
	"fashion":           {"beauty", "lifestyle", "photography"},
	"fitness":           {"health & wellness", "sports", "outdoors"},
	"health & wellness": {"fitness", "food & drink", "cooking"},
	"food & drink":      {"cooking", "travel", "health & wellness"},
	"cooking":           {"food & drink", "home & garden"},
	"travel":            {"outdoors", "photography", "food & drink"},
	"finance":           {"productivity", "education"},
	"education":         {"science", "books", "productivity"},
	"music":             {"streaming", "art & design"},
	"art & design":      {"diy & crafts", "photography", "music"},
	"diy & crafts":      {"art & design", "home & garden"},
	"parenting":         {"lifestyle", "education"},
	"pets":              {"lifestyle", "outdoors"},
	"sports":            {"fitness", "outdoors", "esports"},
	"outdoors":          {"travel", "sports", "fitness"},
	"lifestyle":         {"beauty", "fashion", "home & garden"},
	"automotive":        {"tech", "outdoors"},
	"photography":       {"travel", "art & design"},
	"home & garden":     {"diy & crafts", "lifestyle"},
	"productivity":      {"software & apps", "finance", "education"},
}

func GetNiches() []string {
	out := make([]string, 0, len(NICHES))
	for k := range NICHES {
		out = append(out, k)
	}
	return out
}

func AreRelatedNiches(a, b string) bool {
	if related(a, b) || related(b, a) {
		return true
	}
	return false
}

func related(a, b string) bool {
	for _, r := range RELATED_NICHES[a] {
		if r == b {
			return true
		}
	}
	return false
}

// Deal types offered to brands.
var DEAL_TYPES = map[string]struct{}{
	"sponsored_video":  struct{}{},
	"integration":      struct{}{},
	"dedicated_review": struct{}{},
	"ugc":              struct{}{},
	"affiliate":        struct{}{},
	"ambassador":       struct{}{},
	"giveaway":         struct{}{},
	"shoutout":         struct{}{},
	"livestream":       struct{}{},
}

// Deal types close enough to substitute for one another when the brand's
// proposal is not in the creator's preferred set.
var DEAL_TYPE_COMPAT = map[string][]string{
	"sponsored_video":  {"integration", "dedicated_review"},
	"integration":      {"sponsored_video", "shoutout"},
	"dedicated_review": {"sponsored_video", "ugc"},
	"ugc":              {"dedicated_review", "affiliate"},
	"affiliate":        {"ambassador", "ugc"},
	"ambassador":       {"affiliate", "giveaway"},
	"giveaway":         {"shoutout", "ambassador"},
	"shoutout":         {"giveaway", "integration"},
	"livestream":       {"sponsored_video", "integration"},
}

func AreCompatibleDealTypes(a, b string) bool {
	for _, c := range DEAL_TYPE_COMPAT[a] {
		if c == b {
			return true
		}
	}
	for _, c := range DEAL_TYPE_COMPAT[b] {
		if c == a {
			return true
		}
	}
	return false
}
