package domain

// Event names reported in BatchResult.
const (
	EventLock     = "chaincode_lock"
	EventUnlock   = "chaincode_unlock"
	EventExchange = "chaincode_exchange"
)

// FailInfo describes one rejected batch item.
type FailInfo struct {
	ID   string `json:"id"`
	Info string `json:"info"`
}

// BatchResult reports per-item outcomes of a batch operation.
type BatchResult struct {
	EventName string     `json:"eventName"`
	SrcMethod string     `json:"srcMethod,omitempty"`
	Success   []string   `json:"success"`
	Fail      []FailInfo `json:"fail"`
}

// NewBatchResult returns an empty result for the given event.
func NewBatchResult(eventName, srcMethod string) *BatchResult {
	return &BatchResult{
		EventName: eventName,
		SrcMethod: srcMethod,
		Success:   []string{},
		Fail:      []FailInfo{},
	}
}

func (b *BatchResult) Succeeded(id string) {
	b.Success = append(b.Success, id)
}

func (b *BatchResult) Failed(id string, err error) {
	b.Fail = append(b.Fail, FailInfo{ID: id, Info: err.Error()})
}
