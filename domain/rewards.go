package domain

type RewardBalance struct {
	Points int64  `json:"points"`
	Tier   string `json:"tier"`
}

// RewardItem is something a patient can spend points on.
type RewardItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Cost        int64  `json:"cost"`
}

// RewardEvent is one ledger row of earned or spent points.
type RewardEvent struct {
	ID        int64  `json:"id"`
	Points    int64  `json:"points"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"createdAt"`
}
