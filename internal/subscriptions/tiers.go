package subscriptions

type Free struct{}

func (p *Free) Name() string { return "Free" }

func (p *Free) MonthlyMatches() int { return 3 }

func (p *Free) UpgradeHint() string {
	return "Upgrade to Starter for 15 AI brand matches every month."
}

func (p *Free) GetKey(monthly bool) string { return "" }

type Starter struct{}

func (p *Starter) Name() string { return "Starter" }

func (p *Starter) MonthlyMatches() int { return 15 }

func (p *Starter) UpgradeHint() string {
	return "Upgrade to Pro for 40 AI brand matches every month."
}

func (p *Starter) GetKey(monthly bool) string {
	// Returns stripe key
	if monthly {
		return "Starter Monthly"
	}
	return "Starter Yearly"
}

type Pro struct{}

func (p *Pro) Name() string { return "Pro" }

func (p *Pro) MonthlyMatches() int { return 40 }

func (p *Pro) UpgradeHint() string {
	return "Upgrade to VIP for unlimited AI brand matches."
}

func (p *Pro) GetKey(monthly bool) string {
	if monthly {
		return "Pro Monthly"
	}
	return "Pro Yearly"
}

type Vip struct{}

func (p *Vip) Name() string { return "VIP" }

func (p *Vip) MonthlyMatches() int { return Unlimited }

func (p *Vip) UpgradeHint() string { return "" }

func (p *Vip) GetKey(monthly bool) string {
	if monthly {
		return "VIP Monthly"
	}
	return "VIP Yearly"
}
