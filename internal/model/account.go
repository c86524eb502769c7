package model

import "time"

// Account is one Starling account as returned by /api/v2/accounts. Accounts
// are fetched once per session and never mutated by this tool.
type Account struct {
	AccountUid      string    `json:"accountUid"`
	AccountType     string    `json:"accountType"`
	DefaultCategory string    `json:"defaultCategory"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"createdAt"`
	Name            string    `json:"name,omitempty"`
}

// DisplayName returns the account name, falling back to a generic label for
// unnamed personal accounts.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return "Personal Account"
}
