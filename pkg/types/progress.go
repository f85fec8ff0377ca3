package types

// Metric names a progress counter that unlock rules and journey
// requirements compare against a threshold.
type Metric string

// Known metrics.
const (
	MetricSavings               Metric = "savings"
	MetricCoins                 Metric = "coins"
	MetricLevel                 Metric = "level"
	MetricKnowledgePoints       Metric = "knowledge_points"
	MetricMissionsCompleted     Metric = "missions_completed"
	MetricDailyTasks            Metric = "daily_tasks"
	MetricPurchases             Metric = "purchases"
	MetricTrailingNeedPurchases Metric = "trailing_need_purchases"
)

// Progress is a read-only snapshot of the counters that rules evaluate.
type Progress struct {
	Stats                 UserStats
	MissionsCompleted     int
	DailyTasks            int
	Purchases             int
	TrailingNeedPurchases int
}

// NewProgress builds a snapshot from stats and behavior plus the counters
// that live outside them.
func NewProgress(stats UserStats, behavior UserBehavior, missionsCompleted, dailyTasks int) Progress {
	return Progress{
		Stats:                 stats,
		MissionsCompleted:     missionsCompleted,
		DailyTasks:            dailyTasks,
		Purchases:             len(behavior.Purchases),
		TrailingNeedPurchases: behavior.TrailingNeedPurchases(),
	}
}

// Value returns the current value of metric m.
// Returns ErrUnknownMetric for names it does not recognize.
func (p Progress) Value(m Metric) (int, error) {
	switch m {
	case MetricSavings:
		return p.Stats.Savings, nil
	case MetricCoins:
		return p.Stats.Coins, nil
	case MetricLevel:
		return p.Stats.Level, nil
	case MetricKnowledgePoints:
		return p.Stats.KnowledgePoints, nil
	case MetricMissionsCompleted:
		return p.MissionsCompleted, nil
	case MetricDailyTasks:
		return p.DailyTasks, nil
	case MetricPurchases:
		return p.Purchases, nil
	case MetricTrailingNeedPurchases:
		return p.TrailingNeedPurchases, nil
	default:
		return 0, ErrUnknownMetric
	}
}

// Rule is a "metric >= threshold" predicate.
type Rule struct {
	Metric    Metric `json:"metric" yaml:"metric"`
	Threshold int    `json:"threshold" yaml:"threshold"`
}

// Satisfied reports whether p meets the rule. Rules over unknown metrics are
// never satisfied.
func (r Rule) Satisfied(p Progress) bool {
	v, err := p.Value(r.Metric)
	if err != nil {
		return false
	}
	return v >= r.Threshold
}
