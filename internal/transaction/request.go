package transaction

import "strings"

// Request is one of Deposit, Withdrawal or Transfer.
type Request interface {
	Kind() Kind
	// Complete reports whether every required field is filled in. Callers
	// must not submit incomplete requests.
	Complete() bool
}

type Deposit struct {
	AccountID string `json:"accountId"`
	Amount    string `json:"amount"`
}

type Withdrawal struct {
	AccountID string `json:"accountId"`
	Amount    string `json:"amount"`
}

type Transfer struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        string `json:"amount"`
}

func (Deposit) Kind() Kind    { return KindDeposit }
func (Withdrawal) Kind() Kind { return KindWithdrawal }
func (Transfer) Kind() Kind   { return KindTransfer }

func (d Deposit) Complete() bool {
	return filled(d.AccountID, d.Amount)
}

func (w Withdrawal) Complete() bool {
	return filled(w.AccountID, w.Amount)
}

func (t Transfer) Complete() bool {
	return filled(t.FromAccountID, t.ToAccountID, t.Amount)
}

func filled(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
