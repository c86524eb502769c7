package model

// SavingsGoal is a Starling space: a sub-account with its own balance.
// TotalSaved is the withdrawable balance and goes stale after any withdrawal,
// so goals are refetched per transaction rather than cached.
type SavingsGoal struct {
	SavingsGoalUid  string  `json:"savingsGoalUid"`
	Name            string  `json:"name"`
	Target          *Amount `json:"target,omitempty"`
	TotalSaved      Amount  `json:"totalSaved"`
	SavedPercentage int     `json:"savedPercentage,omitempty"`
}
