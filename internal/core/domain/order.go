package domain

// Order is one side of a matched trade as produced by the matching engine.
// Counts are fixed-point integers scaled by the client.
type Order struct {
	UUID         string `json:"uuid" validate:"required"`
	Account      string `json:"account" validate:"required"`
	SrcCurrency  string `json:"srcCurrency" validate:"required"`
	SrcCount     int64  `json:"srcCount"`
	DesCurrency  string `json:"desCurrency" validate:"required,nefield=SrcCurrency"`
	DesCount     int64  `json:"desCount" validate:"gt=0"`
	IsBuyAll     bool   `json:"isBuyAll"`
	ExpiredTime  int64  `json:"expiredTime"`
	PendingTime  int64  `json:"PendingTime"`
	PendedTime   int64  `json:"PendedTime"`
	MatchedTime  int64  `json:"matchedTime"`
	FinishedTime int64  `json:"finishedTime"`
	RawUUID      string `json:"rawUUID" validate:"required"`
	Metadata     string `json:"metadata"`
	FinalCost    int64  `json:"finalCost" validate:"gt=0"`
}

// CompletesParent reports whether this fill closes a fill-or-nothing parent
// order, in which case any over-reserved balance is returned.
func (o *Order) CompletesParent() bool {
	return o.IsBuyAll && o.UUID == o.RawUUID
}

// Match is a buy/sell pair to settle.
type Match struct {
	BuyOrder  Order `json:"buyOrder"`
	SellOrder Order `json:"sellOrder"`
}

// ID identifies the pair in batch results.
func (m *Match) ID() string {
	return m.BuyOrder.UUID + "," + m.SellOrder.UUID
}

// Symmetric reports whether both sides trade the same currency pair.
func (m *Match) Symmetric() bool {
	return m.BuyOrder.SrcCurrency == m.SellOrder.DesCurrency &&
		m.BuyOrder.DesCurrency == m.SellOrder.SrcCurrency
}

// TradeLeg is one executed side stored in the trade journal.
type TradeLeg struct {
	Owner       string
	SrcCurrency string
	DesCurrency string
	RawOrderID  string
	UUID        string
	Detail      Order
}

// NewTradeLeg builds the journal record for an executed order.
func NewTradeLeg(o Order) TradeLeg {
	return TradeLeg{
		Owner:       o.Account,
		SrcCurrency: o.SrcCurrency,
		DesCurrency: o.DesCurrency,
		RawOrderID:  o.RawUUID,
		UUID:        o.UUID,
		Detail:      o,
	}
}
