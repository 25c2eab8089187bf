package dto

import "github.com/SscSPs/exchange_ledger/internal/core/domain"

// InvokeRequest is the body of POST /api/v1/invoke. Signature is the caller's
// signature over the SHA3-256 digest of the call, base64 encoded on the wire.
type InvokeRequest struct {
	Function  string   `json:"function" binding:"required"`
	Args      []string `json:"args"`
	Signature []byte   `json:"signature,omitempty"`
}

// ToInvocation converts the request into the engine's invocation type.
func (r InvokeRequest) ToInvocation() domain.Invocation {
	args := r.Args
	if args == nil {
		args = []string{}
	}
	return domain.Invocation{Function: r.Function, Args: args, Signature: r.Signature}
}

// InvokeResponse reports the outcome of an invocation.
type InvokeResponse struct {
	Outcome domain.Outcome      `json:"outcome"`
	Reason  string              `json:"reason,omitempty"`
	Batch   *domain.BatchResult `json:"batch,omitempty"`
}

// ToInvokeResponse converts a domain.Result to InvokeResponse DTO
func ToInvokeResponse(res domain.Result) InvokeResponse {
	return InvokeResponse{Outcome: res.Outcome, Reason: res.Reason, Batch: res.Batch}
}
