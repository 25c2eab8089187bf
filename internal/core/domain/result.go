package domain

// Outcome tags the result of an invocation.
type Outcome string

const (
	OutcomeOK                Outcome = "OK"
	OutcomeInputValidation   Outcome = "INPUT_VALIDATION"
	OutcomeBusinessRejection Outcome = "BUSINESS_REJECTION"
	OutcomeStorageFault      Outcome = "STORAGE_FAULT"
)

// Result is what the dispatcher hands back to the caller. Reason is empty on
// success; Batch is set for lock, unlock and exchange.
type Result struct {
	Outcome Outcome      `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
	Batch   *BatchResult `json:"batch,omitempty"`
	Cause   error        `json:"-"`
}

// OK reports whether the invocation committed.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}
