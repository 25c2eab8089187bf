package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/exchange_ledger/internal/core/domain"
	"github.com/SscSPs/exchange_ledger/internal/platform/identity"
	"github.com/SscSPs/exchange_ledger/pkg/amount"
)

// builder turns CLI arguments into invocations. Amounts are decimal strings
// that are scaled to ledger units; identifiers are encoded the way the
// server expects.
type builder struct {
	ownerEncoding string
	srcMethod     string
	newOrderID    func() string
}

func newBuilder(ownerEncoding, srcMethod string) *builder {
	return &builder{ownerEncoding: ownerEncoding, srcMethod: srcMethod, newOrderID: uuid.NewString}
}

func (b *builder) encode(id string) (string, error) {
	switch b.ownerEncoding {
	case identity.EncodingBase64:
		return base64.StdEncoding.EncodeToString([]byte(id)), nil
	case identity.EncodingRaw:
		return id, nil
	default:
		return "", fmt.Errorf("unknown owner encoding %q", b.ownerEncoding)
	}
}

func units(s string) (string, error) {
	u, err := amount.ToUnits(s)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(u, 10), nil
}

// createCurrency <id> <amount> <creator-public-key-pem>
func (b *builder) createCurrency(id, amt string, creatorPEM []byte) (domain.Invocation, error) {
	count, err := units(amt)
	if err != nil {
		return domain.Invocation{}, err
	}
	creator, err := b.encode(string(creatorPEM))
	if err != nil {
		return domain.Invocation{}, err
	}
	return domain.Invocation{Function: domain.FnCreateCurrency, Args: []string{id, count, creator}}, nil
}

// releaseCurrency <id> <amount>
func (b *builder) releaseCurrency(id, amt string) (domain.Invocation, error) {
	count, err := units(amt)
	if err != nil {
		return domain.Invocation{}, err
	}
	return domain.Invocation{Function: domain.FnReleaseCurrency, Args: []string{id, count}}, nil
}

// assignCurrency <currency> <owner=amount>...
func (b *builder) assignCurrency(currency string, pairs []string) (domain.Invocation, error) {
	assignment := domain.Assignment{Currency: currency}
	for _, p := range pairs {
		owner, amt, ok := strings.Cut(p, "=")
		if !ok || owner == "" {
			return domain.Invocation{}, fmt.Errorf("expected owner=amount, got %q", p)
		}
		count, err := amount.ToUnits(amt)
		if err != nil {
			return domain.Invocation{}, err
		}
		encoded, err := b.encode(owner)
		if err != nil {
			return domain.Invocation{}, err
		}
		assignment.Assigns = append(assignment.Assigns, domain.Distribution{Owner: encoded, Count: count})
	}
	raw, err := json.Marshal(assignment)
	if err != nil {
		return domain.Invocation{}, err
	}
	return domain.Invocation{Function: domain.FnAssignCurrency, Args: []string{string(raw)}}, nil
}

// lock <owner> <currency> <amount> [orderId]. A missing order id is generated.
func (b *builder) lock(isLock bool, owner, currency, amt, orderID string) (domain.Invocation, error) {
	count, err := amount.ToUnits(amt)
	if err != nil {
		return domain.Invocation{}, err
	}
	encoded, err := b.encode(owner)
	if err != nil {
		return domain.Invocation{}, err
	}
	if orderID == "" {
		orderID = b.newOrderID()
	}
	raw, err := json.Marshal([]domain.LockRequest{{Owner: encoded, Currency: currency, OrderID: orderID, Count: count}})
	if err != nil {
		return domain.Invocation{}, err
	}

	fn := domain.FnUnlock
	if isLock {
		fn = domain.FnLock
	}
	args := []string{string(raw)}
	if b.srcMethod != "" {
		args = append(args, b.srcMethod)
	}
	return domain.Invocation{Function: fn, Args: args}, nil
}

// exchange <matches.json>. The file holds the match list as the server
// expects it; it is checked to be a JSON array and passed through.
func (b *builder) exchange(matchesJSON []byte) (domain.Invocation, error) {
	var matches []domain.Match
	if err := json.Unmarshal(matchesJSON, &matches); err != nil {
		return domain.Invocation{}, fmt.Errorf("matches file is not a list of matches: %w", err)
	}
	raw, err := json.Marshal(matches)
	if err != nil {
		return domain.Invocation{}, err
	}
	return domain.Invocation{Function: domain.FnExchange, Args: []string{string(raw)}}, nil
}

// sign attaches the signature over the invocation digest.
func sign(inv domain.Invocation, signer *identity.Signer) (domain.Invocation, error) {
	sig, err := signer.Sign(inv.Digest())
	if err != nil {
		return inv, fmt.Errorf("failed to sign invocation: %w", err)
	}
	inv.Signature = sig
	return inv, nil
}
