package domain

// MemberBalance is positive when the member is owed money and negative when they owe.
type MemberBalance struct {
	MemberID string
	Balance  float64
}

// Transfer is a single payment from a debtor to a creditor.
type Transfer struct {
	From   string
	To     string
	Amount float64
}
