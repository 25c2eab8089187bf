package domain

// Asset is one owner's balance of one currency.
// Invariant: Available >= 0 and Locked >= 0.
type Asset struct {
	Owner     string `json:"owner"`
	Currency  string `json:"currency"`
	Available int64  `json:"count"`
	Locked    int64  `json:"lockCount"`
}

// CanLock reports whether count can move from available to locked.
func (a *Asset) CanLock(count int64) bool {
	_, ok := AddAmounts(a.Locked, count)
	return a.Available >= count && ok
}

// CanUnlock reports whether count can move from locked back to available.
func (a *Asset) CanUnlock(count int64) bool {
	_, ok := AddAmounts(a.Available, count)
	return a.Locked >= count && ok
}

// Credit adds count to the available balance. It reports false, leaving a
// unchanged, on overflow.
func (a *Asset) Credit(count int64) bool {
	available, ok := AddAmounts(a.Available, count)
	if !ok {
		return false
	}
	a.Available = available
	return true
}

// Apply moves count between available and locked.
func (a *Asset) Apply(count int64, isLock bool) {
	if isLock {
		a.Available -= count
		a.Locked += count
		return
	}
	a.Available += count
	a.Locked -= count
}

// LockLog records one applied lock or unlock. Its key
// (owner, currency, orderId, isLock) doubles as the replay-protection index.
type LockLog struct {
	Owner    string `json:"owner"`
	Currency string `json:"currency"`
	OrderID  string `json:"orderId"`
	IsLock   bool   `json:"isLock"`
	Amount   int64  `json:"lockCount"`
	LockTime int64  `json:"lockTime"`
}

// LockRequest is one item of a lock/unlock batch.
type LockRequest struct {
	Owner    string `json:"owner" validate:"required"`
	Currency string `json:"currency" validate:"required"`
	OrderID  string `json:"orderId" validate:"required"`
	Count    int64  `json:"count" validate:"gt=0"`
}
