package domain

// Currency is an issued, fungible unit type. Amounts are fixed-point integers.
type Currency struct {
	ID                string `json:"id"`         // Primary Key
	TotalIssued       int64  `json:"count"`      // total released so far
	AvailableToAssign int64  `json:"leftCount"`  // released but not yet assigned to an owner
	Creator           string `json:"creator"`    // credential allowed to release/assign
	CreatedAt         int64  `json:"createTime"` // unix nanoseconds
}

// Release grows both the issued total and the assignable pool by count. It
// reports false, leaving c unchanged, when the total would overflow.
func (c *Currency) Release(count int64) bool {
	total, ok := AddAmounts(c.TotalIssued, count)
	if !ok {
		return false
	}
	c.TotalIssued = total
	c.AvailableToAssign += count
	return true
}

// ReleaseLog records one issuance event.
type ReleaseLog struct {
	Currency    string `json:"currency"`
	Count       int64  `json:"count"`
	ReleaseTime int64  `json:"releaseTime"`
}

// AssignLog records one distribution of a currency to an owner.
type AssignLog struct {
	Currency   string `json:"currency"`
	Owner      string `json:"owner"`
	Count      int64  `json:"count"`
	AssignTime int64  `json:"assignTime"`
}

// Distribution is one item of an assignCurrency call.
type Distribution struct {
	Owner string `json:"owner" validate:"required"`
	Count int64  `json:"count" validate:"gte=0"`
}

// Assignment is the payload of an assignCurrency call.
type Assignment struct {
	Currency string         `json:"currency" validate:"required"`
	Assigns  []Distribution `json:"assigns" validate:"required,min=1,dive"`
}

// Total sums the counts of all distributions. ok is false when the sum
// overflows.
func (a Assignment) Total() (total int64, ok bool) {
	for _, d := range a.Assigns {
		if total, ok = AddAmounts(total, d.Count); !ok {
			return 0, false
		}
	}
	return total, true
}
