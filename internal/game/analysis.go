package game

import "github.com/mesh-intelligence/save4dream/pkg/types"

// Analysis thresholds.
const (
	needFocusRatio     = 70
	balancedRatio      = 50
	frugalSpendLimit   = 500
	frugalMinPurchases = 3
	heavySpendLimit    = 1500
	strongSavings      = 1000
	lowSavings         = 300

	// AnalysisSavingsTarget is the balance the analysis measures savings
	// progress against.
	AnalysisSavingsTarget = 2000
)

// Analysis summarizes the player's spending behavior.
type Analysis struct {
	NeedPurchases   int      `json:"needPurchases"`
	WantPurchases   int      `json:"wantPurchases"`
	TotalPurchases  int      `json:"totalPurchases"`
	NeedRatio       int      `json:"needRatio"`
	TotalSpent      int      `json:"totalSpent"`
	TotalEarned     int      `json:"totalEarned"`
	SavingsDeposits int      `json:"savingsDeposits"`
	SavingsPercent  int      `json:"savingsPercent"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Tips            []string `json:"tips"`
}

// Analyze derives strengths, weaknesses and tips from stats and behavior.
func Analyze(stats types.UserStats, behavior types.UserBehavior) Analysis {
	a := Analysis{
		NeedPurchases:   behavior.CountByType(types.RewardNeed),
		WantPurchases:   behavior.CountByType(types.RewardWant),
		TotalPurchases:  len(behavior.Purchases),
		TotalSpent:      behavior.TotalSpent,
		TotalEarned:     behavior.TotalEarned,
		SavingsDeposits: behavior.SavingsDeposits,
		SavingsPercent:  roundedPercent(stats.Savings, AnalysisSavingsTarget),
		Strengths:       []string{},
		Weaknesses:      []string{},
		Tips:            []string{},
	}
	if a.TotalPurchases > 0 {
		a.NeedRatio = a.NeedPurchases * 100 / a.TotalPurchases
	}

	switch {
	case a.NeedRatio >= needFocusRatio:
		a.Strengths = append(a.Strengths, "Great focus on needs over wants")
	case a.NeedRatio >= balancedRatio:
		a.Strengths = append(a.Strengths, "Good balance between needs and wants")
	case a.TotalPurchases > 0:
		a.Weaknesses = append(a.Weaknesses, "Buys many wants, not just needs")
		a.Tips = append(a.Tips, "Before buying, ask: is this a need or a want?")
	}

	switch {
	case a.TotalSpent < frugalSpendLimit && a.TotalPurchases > frugalMinPurchases:
		a.Strengths = append(a.Strengths, "Controls spending carefully")
	case a.TotalSpent > heavySpendLimit:
		a.Weaknesses = append(a.Weaknesses, "Spends a lot of coins")
		a.Tips = append(a.Tips, "Grow your savings before big purchases")
	}

	switch {
	case stats.Savings > strongSavings:
		a.Strengths = append(a.Strengths, "Impressive savings")
	case stats.Savings < lowSavings:
		a.Weaknesses = append(a.Weaknesses, "Savings are too low")
		a.Tips = append(a.Tips, "Save at least 20% of everything you earn")
	}

	if a.TotalPurchases == 0 {
		a.Tips = append(a.Tips, "Buy something to see your spending analysis")
	}
	return a
}

// Analysis analyzes the player's current behavior.
func (s *Session) Analysis() Analysis {
	st := s.State()
	return Analyze(st.Stats, st.Behavior)
}

// roundedPercent returns part as a percentage of whole rounded half up,
// within [0, 100].
func roundedPercent(part, whole int) int {
	part = min(max(part, 0), whole)
	return (part*100 + whole/2) / whole
}
