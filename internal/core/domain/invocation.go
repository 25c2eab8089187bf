package domain

import (
	"bytes"

	"golang.org/x/crypto/sha3"
)

// Caller-facing function names.
const (
	FnCreateCurrency  = "createCurrency"
	FnReleaseCurrency = "releaseCurrency"
	FnAssignCurrency  = "assignCurrency"
	FnLock            = "lock"
	FnUnlock          = "unlock"
	FnExchange        = "exchange"
)

// Invocation is a call by name with positional arguments, as submitted by a
// client. Signature is the caller's signature over Digest().
type Invocation struct {
	Function  string   `json:"function"`
	Args      []string `json:"args"`
	Signature []byte   `json:"signature,omitempty"`
}

// Payload is the canonical byte form of the call: function and args joined by NUL.
func (i Invocation) Payload() []byte {
	var buf bytes.Buffer
	buf.WriteString(i.Function)
	for _, a := range i.Args {
		buf.WriteByte(0)
		buf.WriteString(a)
	}
	return buf.Bytes()
}

// Digest is the SHA3-256 hash of Payload. Clients sign this value.
func (i Invocation) Digest() []byte {
	sum := sha3.Sum256(i.Payload())
	return sum[:]
}

// Caller is the proof of identity attached to an invocation.
type Caller struct {
	Signature []byte
	Payload   []byte
}

// Caller returns the signature together with the digest it must cover.
func (i Invocation) Caller() Caller {
	return Caller{Signature: i.Signature, Payload: i.Digest()}
}
