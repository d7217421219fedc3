package transaction

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ResultStatus is assigned by the banking service and passed through as-is.
type ResultStatus string

const (
	ResultPending   ResultStatus = "PENDING"
	ResultCompleted ResultStatus = "COMPLETED"
	ResultFailed    ResultStatus = "FAILED"
)

type Result struct {
	TransactionID string       `json:"transactionId"`
	Status        ResultStatus `json:"status"`
}

// State is a snapshot of one manager. Data and Error are never both set.
type State struct {
	Status Status  `json:"status"`
	Data   *Result `json:"data"`
	Error  string  `json:"error,omitempty"`
}

func (s State) clone() State {
	if s.Data != nil {
		data := *s.Data
		s.Data = &data
	}
	return s
}
