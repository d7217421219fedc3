package transaction

type Kind int

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindTransfer
)

var kinds = map[Kind]struct {
	name     string
	path     string
	fallback string
}{
	KindDeposit:    {name: "deposit", path: "/deposits", fallback: "Deposit failed"},
	KindWithdrawal: {name: "withdrawal", path: "/withdrawals", fallback: "Withdrawal failed"},
	KindTransfer:   {name: "transfer", path: "/transfers", fallback: "Transfer failed"},
}

func (k Kind) String() string {
	if d, ok := kinds[k]; ok {
		return d.name
	}
	return "unknown"
}

// Path is the banking API path a submission of this kind is posted to.
func (k Kind) Path() string {
	return kinds[k].path
}

// FallbackMessage is shown when a failed response carries no message.
func (k Kind) FallbackMessage() string {
	return kinds[k].fallback
}
