package mapping

import (
	"fmt"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
)

// ToRowAsset converts an Asset: owner, currency | available, locked.
func ToRowAsset(d domain.Asset) portsrepo.Row {
	return portsrepo.Row{
		portsrepo.Text(d.Owner),
		portsrepo.Text(d.Currency),
		portsrepo.Int64(d.Available),
		portsrepo.Int64(d.Locked),
	}
}

// ToDomainAsset converts an Assets row.
func ToDomainAsset(row portsrepo.Row) (domain.Asset, error) {
	r := rowReader{row: row}
	d := domain.Asset{
		Owner:     r.textAt(0),
		Currency:  r.textAt(1),
		Available: r.intAt(2),
		Locked:    r.intAt(3),
	}
	if r.err != nil {
		return domain.Asset{}, fmt.Errorf("decode asset row: %w", r.err)
	}
	return d, nil
}

// ToRowLockLog converts a LockLog: owner, currency, orderId, isLock | amount, lockTime.
func ToRowLockLog(d domain.LockLog) portsrepo.Row {
	return portsrepo.Row{
		portsrepo.Text(d.Owner),
		portsrepo.Text(d.Currency),
		portsrepo.Text(d.OrderID),
		portsrepo.Bool(d.IsLock),
		portsrepo.Int64(d.Amount),
		portsrepo.Int64(d.LockTime),
	}
}

// ToDomainLockLog converts an AssetLockLog row.
func ToDomainLockLog(row portsrepo.Row) (domain.LockLog, error) {
	r := rowReader{row: row}
	d := domain.LockLog{
		Owner:    r.textAt(0),
		Currency: r.textAt(1),
		OrderID:  r.textAt(2),
		IsLock:   r.boolAt(3),
		Amount:   r.intAt(4),
		LockTime: r.intAt(5),
	}
	if r.err != nil {
		return domain.LockLog{}, fmt.Errorf("decode lock log row: %w", r.err)
	}
	return d, nil
}
