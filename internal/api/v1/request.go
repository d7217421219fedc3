package v1

type BalanceRequest struct {
	AccountID string `json:"accountId" validate:"filled"`
}

type DepositRequest struct {
	AccountID string `json:"accountId" validate:"filled"`
	Amount    string `json:"amount" validate:"filled,amount"`
}

type WithdrawalRequest struct {
	AccountID string `json:"accountId" validate:"filled"`
	Amount    string `json:"amount" validate:"filled,amount"`
}

type TransferRequest struct {
	FromAccountID string `json:"fromAccountId" validate:"filled"`
	ToAccountID   string `json:"toAccountId" validate:"filled"`
	Amount        string `json:"amount" validate:"filled,amount"`
}
