package services

import (
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/exchange_ledger/internal/apperrors"
	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
)

// command is the closed set of operations an invocation can name.
type command interface {
	name() string
}

type createCurrencyCmd struct {
	ID      string
	Count   int64
	Creator string
}

type releaseCurrencyCmd struct {
	ID    string
	Count int64
}

type assignCurrencyCmd struct {
	Assignment domain.Assignment
}

type lockCmd struct {
	Batch     []domain.LockRequest
	IsLock    bool
	SrcMethod string
}

type exchangeCmd struct {
	Matches []domain.Match
}

func (createCurrencyCmd) name() string  { return domain.FnCreateCurrency }
func (releaseCurrencyCmd) name() string { return domain.FnReleaseCurrency }
func (assignCurrencyCmd) name() string  { return domain.FnAssignCurrency }
func (exchangeCmd) name() string        { return domain.FnExchange }
func (c lockCmd) name() string {
	if c.IsLock {
		return domain.FnLock
	}
	return domain.FnUnlock
}

// commandParser turns positional arguments into a command. Every error it
// returns is an input validation failure; nothing has been read or written
// yet.
type commandParser struct {
	decoder  portssvc.IdentifierDecoder
	validate *validator.Validate
}

func (p *commandParser) parse(inv domain.Invocation) (command, error) {
	switch inv.Function {
	case domain.FnCreateCurrency:
		return p.parseCreate(inv.Args)
	case domain.FnReleaseCurrency:
		return p.parseRelease(inv.Args)
	case domain.FnAssignCurrency:
		return p.parseAssign(inv.Args)
	case domain.FnLock:
		return p.parseLock(inv.Args, true)
	case domain.FnUnlock:
		return p.parseLock(inv.Args, false)
	case domain.FnExchange:
		return p.parseExchange(inv.Args)
	default:
		return nil, apperrors.Validation("unknown function %q", inv.Function)
	}
}

func (p *commandParser) parseCreate(args []string) (command, error) {
	if err := expectArgs(domain.FnCreateCurrency, args, 3, 3); err != nil {
		return nil, err
	}
	count, err := parseCount(args[1])
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, apperrors.Validation("initial count must not be negative, got %d", count)
	}
	creator, err := p.decode("creator", args[2])
	if err != nil {
		return nil, err
	}
	if args[0] == "" {
		return nil, apperrors.Validation("currency id is required")
	}
	return createCurrencyCmd{ID: args[0], Count: count, Creator: creator}, nil
}

func (p *commandParser) parseRelease(args []string) (command, error) {
	if err := expectArgs(domain.FnReleaseCurrency, args, 2, 2); err != nil {
		return nil, err
	}
	count, err := parseCount(args[1])
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, apperrors.Validation("release count must be positive, got %d", count)
	}
	return releaseCurrencyCmd{ID: args[0], Count: count}, nil
}

func (p *commandParser) parseAssign(args []string) (command, error) {
	if err := expectArgs(domain.FnAssignCurrency, args, 1, 1); err != nil {
		return nil, err
	}
	var assignment domain.Assignment
	if err := json.Unmarshal([]byte(args[0]), &assignment); err != nil {
		return nil, apperrors.Validation("malformed assignment: %v", err)
	}
	if err := p.validate.Struct(assignment); err != nil {
		return nil, apperrors.Validation("invalid assignment: %v", err)
	}
	for i := range assignment.Assigns {
		owner, err := p.decode("owner", assignment.Assigns[i].Owner)
		if err != nil {
			return nil, err
		}
		assignment.Assigns[i].Owner = owner
	}
	return assignCurrencyCmd{Assignment: assignment}, nil
}

func (p *commandParser) parseLock(args []string, isLock bool) (command, error) {
	fn := domain.FnLock
	if !isLock {
		fn = domain.FnUnlock
	}
	if err := expectArgs(fn, args, 1, 2); err != nil {
		return nil, err
	}
	var batch []domain.LockRequest
	if err := json.Unmarshal([]byte(args[0]), &batch); err != nil {
		return nil, apperrors.Validation("malformed %s batch: %v", fn, err)
	}
	for i := range batch {
		if err := p.validate.Struct(batch[i]); err != nil {
			return nil, apperrors.Validation("invalid %s item %d: %v", fn, i, err)
		}
		owner, err := p.decode("owner", batch[i].Owner)
		if err != nil {
			return nil, err
		}
		batch[i].Owner = owner
	}
	cmd := lockCmd{Batch: batch, IsLock: isLock}
	if len(args) == 2 {
		cmd.SrcMethod = args[1]
	}
	return cmd, nil
}

func (p *commandParser) parseExchange(args []string) (command, error) {
	if err := expectArgs(domain.FnExchange, args, 1, 1); err != nil {
		return nil, err
	}
	var matches []domain.Match
	if err := json.Unmarshal([]byte(args[0]), &matches); err != nil {
		return nil, apperrors.Validation("malformed matches: %v", err)
	}
	for i := range matches {
		m := &matches[i]
		if err := p.validate.Struct(m); err != nil {
			return nil, apperrors.Validation("invalid match %d: %v", i, err)
		}
		if m.BuyOrder.UUID == m.SellOrder.UUID {
			return nil, apperrors.Validation("match %d settles order %s against itself", i, m.BuyOrder.UUID)
		}
		for _, o := range []*domain.Order{&m.BuyOrder, &m.SellOrder} {
			account, err := p.decode("account", o.Account)
			if err != nil {
				return nil, err
			}
			o.Account = account
		}
	}
	return exchangeCmd{Matches: matches}, nil
}

func (p *commandParser) decode(field, encoded string) (string, error) {
	decoded, err := p.decoder.Decode(encoded)
	if err != nil {
		return "", apperrors.Validation("malformed %s %q: %v", field, encoded, err)
	}
	if decoded == "" {
		return "", apperrors.Validation("%s is empty", field)
	}
	return decoded, nil
}

func expectArgs(fn string, args []string, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return apperrors.Validation("%s expects %d arguments, got %d", fn, lo, len(args))
		}
		return apperrors.Validation("%s expects %d to %d arguments, got %d", fn, lo, hi, len(args))
	}
	return nil
}

func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperrors.Validation("count %q is not an integer", s)
	}
	return n, nil
}
