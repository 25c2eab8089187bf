package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
)

// ToRowTradeLeg converts a leg to a TxLog row:
// owner, srcCurrency, desCurrency, rawOrderId, uuid | detail.
// The detail column holds the order as JSON.
func ToRowTradeLeg(d domain.TradeLeg) (portsrepo.Row, error) {
	detail, err := json.Marshal(d.Detail)
	if err != nil {
		return nil, fmt.Errorf("encode trade detail: %w", err)
	}
	return portsrepo.Row{
		portsrepo.Text(d.Owner),
		portsrepo.Text(d.SrcCurrency),
		portsrepo.Text(d.DesCurrency),
		portsrepo.Text(d.RawOrderID),
		portsrepo.Text(d.UUID),
		portsrepo.Text(string(detail)),
	}, nil
}

// ToDomainTradeLeg converts a TxLog row.
func ToDomainTradeLeg(row portsrepo.Row) (domain.TradeLeg, error) {
	r := rowReader{row: row}
	d := domain.TradeLeg{
		Owner:       r.textAt(0),
		SrcCurrency: r.textAt(1),
		DesCurrency: r.textAt(2),
		RawOrderID:  r.textAt(3),
		UUID:        r.textAt(4),
	}
	detail := r.textAt(5)
	if r.err != nil {
		return domain.TradeLeg{}, fmt.Errorf("decode trade leg row: %w", r.err)
	}
	if err := json.Unmarshal([]byte(detail), &d.Detail); err != nil {
		return domain.TradeLeg{}, fmt.Errorf("decode trade detail: %w", err)
	}
	return d, nil
}

// ToRowTradeIndex converts a leg to its TxLogIndex row: uuid | detail.
func ToRowTradeIndex(d domain.TradeLeg) (portsrepo.Row, error) {
	detail, err := json.Marshal(d.Detail)
	if err != nil {
		return nil, fmt.Errorf("encode trade detail: %w", err)
	}
	return portsrepo.Row{
		portsrepo.Text(d.UUID),
		portsrepo.Text(string(detail)),
	}, nil
}
