package subscriptions

import "strings"

const (
	FREE    = "free"
	STARTER = "starter"
	PRO     = "pro"
	VIP     = "vip"
)

// Unlimited is the MonthlyMatches sentinel for plans with no quota.
const Unlimited = -1

type Plan interface {
	Name() string
	// Brand matches the plan may generate per calendar month
	MonthlyMatches() int
	// Human-readable nudge shown when the quota is hit
	UpgradeHint() string
	GetKey(monthly bool) string
}

func GetPlan(name string) Plan {
	switch strings.ToLower(name) {
	case FREE, "":
		return new(Free)
	case STARTER:
		return new(Starter)
	case PRO:
		return new(Pro)
	case VIP:
		return new(Vip)
	default:
		return nil
	}
}
