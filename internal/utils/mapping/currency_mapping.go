package mapping

import (
	"fmt"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
)

// ToRowCurrency converts a domain Currency to a Currency table row:
// id | totalIssued, availableToAssign, creator, createdAt.
func ToRowCurrency(d domain.Currency) portsrepo.Row {
	return portsrepo.Row{
		portsrepo.Text(d.ID),
		portsrepo.Int64(d.TotalIssued),
		portsrepo.Int64(d.AvailableToAssign),
		portsrepo.Text(d.Creator),
		portsrepo.Int64(d.CreatedAt),
	}
}

// ToDomainCurrency converts a Currency table row to a domain Currency.
func ToDomainCurrency(row portsrepo.Row) (domain.Currency, error) {
	r := rowReader{row: row}
	d := domain.Currency{
		ID:                r.textAt(0),
		TotalIssued:       r.intAt(1),
		AvailableToAssign: r.intAt(2),
		Creator:           r.textAt(3),
		CreatedAt:         r.intAt(4),
	}
	if r.err != nil {
		return domain.Currency{}, fmt.Errorf("decode currency row: %w", r.err)
	}
	return d, nil
}

// ToRowReleaseLog converts a ReleaseLog: currency, releaseTime | count.
func ToRowReleaseLog(d domain.ReleaseLog) portsrepo.Row {
	return portsrepo.Row{
		portsrepo.Text(d.Currency),
		portsrepo.Int64(d.ReleaseTime),
		portsrepo.Int64(d.Count),
	}
}

// ToDomainReleaseLog converts a CurrencyReleaseLog row.
func ToDomainReleaseLog(row portsrepo.Row) (domain.ReleaseLog, error) {
	r := rowReader{row: row}
	d := domain.ReleaseLog{
		Currency:    r.textAt(0),
		ReleaseTime: r.intAt(1),
		Count:       r.intAt(2),
	}
	if r.err != nil {
		return domain.ReleaseLog{}, fmt.Errorf("decode release log row: %w", r.err)
	}
	return d, nil
}

// ToRowAssignLog converts an AssignLog: currency, owner, assignTime | count.
func ToRowAssignLog(d domain.AssignLog) portsrepo.Row {
	return portsrepo.Row{
		portsrepo.Text(d.Currency),
		portsrepo.Text(d.Owner),
		portsrepo.Int64(d.AssignTime),
		portsrepo.Int64(d.Count),
	}
}

// ToDomainAssignLog converts a CurrencyAssignLog row.
func ToDomainAssignLog(row portsrepo.Row) (domain.AssignLog, error) {
	r := rowReader{row: row}
	d := domain.AssignLog{
		Currency:   r.textAt(0),
		Owner:      r.textAt(1),
		AssignTime: r.intAt(2),
		Count:      r.intAt(3),
	}
	if r.err != nil {
		return domain.AssignLog{}, fmt.Errorf("decode assign log row: %w", r.err)
	}
	return d, nil
}
