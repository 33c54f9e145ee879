package model

// Balance is a user's Stars wallet entry. Never negative; debits are
// checked against the current balance before they commit.
type Balance struct {
	Stars    int    `json:"stars"`
	Username string `json:"username"`
}

// UserStats holds per-user purchase counters. All counters are
// monotonically non-decreasing and mutated only by completed transactions.
type UserStats struct {
	TotalPurchases   int    `json:"totalPurchases"`
	TotalSpent       int    `json:"totalSpent"`
	ReferralCount    int    `json:"referralCount"`
	ReferralEarnings int    `json:"referralEarnings"`
	Username         string `json:"username"`
}
