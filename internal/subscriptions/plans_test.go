package subscriptions

import "testing"

func TestGetPlan(t *testing.T) {
	cases := map[string]int{
		"free":    3,
		"":        3,
		"FREE":    3,
		"starter": 15,
		"pro":     40,
		"vip":     Unlimited,
	}
	for name, want := range cases {
		p := GetPlan(name)
		if p == nil {
			t.Fatalf("GetPlan(%q) returned nil", name)
		}
		if got := p.MonthlyMatches(); got != want {
			t.Errorf("GetPlan(%q).MonthlyMatches() = %d, want %d", name, got, want)
		}
	}

	if GetPlan("enterprise") != nil {
		t.Error("unknown plan names should return nil")
	}
}

func TestUpgradeHints(t *testing.T) {
	for _, name := range []string{FREE, STARTER, PRO} {
		if GetPlan(name).UpgradeHint() == "" {
			t.Errorf("%s should nudge toward the next tier", name)
		}
	}
	if GetPlan(VIP).UpgradeHint() != "" {
		t.Error("there is nothing above vip")
	}
}
