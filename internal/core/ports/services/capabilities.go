package services

import "context"

// IdentityVerifier checks that signature over payload was produced by the
// holder of credential.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string, signature, payload []byte) (bool, error)
}

// IdentifierDecoder turns a transport-encoded owner or creator identifier
// into the form used as a ledger key.
type IdentifierDecoder interface {
	Decode(encoded string) (string, error)
}
