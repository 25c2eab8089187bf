// Package identity provides the signature verifier and identifier decoders
// the engine consumes as capabilities.
package identity

import (
	"context"
	"crypto"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	portssvc "github.com/SscSPs/exchange_ledger/internal/core/ports/services"
)

// Ed25519Verifier treats a credential as a PEM encoded Ed25519 public key
// and checks EdDSA signatures against it.
type Ed25519Verifier struct{}

var _ portssvc.IdentityVerifier = Ed25519Verifier{}

func NewEd25519Verifier() Ed25519Verifier {
	return Ed25519Verifier{}
}

// Verify reports false for a well-formed signature that doesn't match. A
// credential that isn't a usable key is an error.
func (Ed25519Verifier) Verify(_ context.Context, credential string, signature, payload []byte) (bool, error) {
	if len(signature) == 0 {
		return false, nil
	}
	key, err := jwt.ParseEdPublicKeyFromPEM([]byte(credential))
	if err != nil {
		return false, fmt.Errorf("credential is not an Ed25519 public key: %w", err)
	}
	err = jwt.SigningMethodEdDSA.Verify(string(payload), signature, key)
	if errors.Is(err, jwt.ErrEd25519Verification) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Signer signs invocation digests with an Ed25519 private key. It is the
// client side counterpart of Ed25519Verifier.
type Signer struct {
	key crypto.PrivateKey
}

// NewSignerFromPEM parses a PKCS#8 PEM private key.
func NewSignerFromPEM(pemBytes []byte) (*Signer, error) {
	key, err := jwt.ParseEdPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Ed25519 private key: %w", err)
	}
	return &Signer{key: key}, nil
}

func (s *Signer) Sign(payload []byte) ([]byte, error) {
	return jwt.SigningMethodEdDSA.Sign(string(payload), s.key)
}
