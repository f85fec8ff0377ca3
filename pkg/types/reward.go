package types

import "time"

// RewardType classifies shop items for the spending analysis.
type RewardType string

// Reward types.
const (
	RewardNeed RewardType = "need"
	RewardWant RewardType = "want"
)

// Valid reports whether t is a recognized reward type.
func (t RewardType) Valid() bool {
	return t == RewardNeed || t == RewardWant
}

// Reward is a shop catalog item. The catalog is read-only.
type Reward struct {
	ID    string     `json:"id" yaml:"id"`
	Name  string     `json:"name" yaml:"name"`
	Price int        `json:"price" yaml:"price"`
	Icon  string     `json:"icon" yaml:"icon"`
	Type  RewardType `json:"type" yaml:"type"`
}

// Purchase is one entry of the purchase audit log.
type Purchase struct {
	RewardID   string     `json:"rewardId"`
	RewardName string     `json:"rewardName"`
	Type       RewardType `json:"type"`
	Price      int        `json:"price"`
	Timestamp  time.Time  `json:"timestamp"`
}

// UserBehavior aggregates what the player has done with their money.
// Purchases is append-only: entries are never edited or removed.
type UserBehavior struct {
	Purchases         []Purchase `json:"purchases"`
	SavingsDeposits   int        `json:"savingsDeposits"`
	CompletedMissions int        `json:"completedMissions"`
	TotalEarned       int        `json:"totalEarned"`
	TotalSpent        int        `json:"totalSpent"`
}

// RecordPurchase appends r to the purchase log and adds its price to
// TotalSpent.
func (b *UserBehavior) RecordPurchase(r Reward, at time.Time) {
	b.Purchases = append(b.Purchases, Purchase{
		RewardID:   r.ID,
		RewardName: r.Name,
		Type:       r.Type,
		Price:      r.Price,
		Timestamp:  at,
	})
	b.TotalSpent += r.Price
}

// RecordEarning adds n to TotalEarned. Negative amounts are ignored.
func (b *UserBehavior) RecordEarning(n int) {
	if n > 0 {
		b.TotalEarned += n
	}
}

// CountByType returns the number of purchases of type t.
func (b UserBehavior) CountByType(t RewardType) int {
	n := 0
	for _, p := range b.Purchases {
		if p.Type == t {
			n++
		}
	}
	return n
}

// TrailingNeedPurchases returns the length of the run of need purchases at
// the end of the log.
func (b UserBehavior) TrailingNeedPurchases() int {
	n := 0
	for i := len(b.Purchases) - 1; i >= 0; i-- {
		if b.Purchases[i].Type != RewardNeed {
			break
		}
		n++
	}
	return n
}
