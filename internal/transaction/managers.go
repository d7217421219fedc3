package transaction

import (
	"github.com/Behyna/banking-portal/pkg/bankingapi"
	"go.uber.org/zap"
)

// Managers holds one independent Manager per kind, all sharing a client.
type Managers struct {
	Deposits    *Manager
	Withdrawals *Manager
	Transfers   *Manager
}

func NewManagers(client bankingapi.Client, logger *zap.Logger, recorder Recorder) Managers {
	return Managers{
		Deposits:    NewManager(KindDeposit, client, logger, recorder),
		Withdrawals: NewManager(KindWithdrawal, client, logger, recorder),
		Transfers:   NewManager(KindTransfer, client, logger, recorder),
	}
}

// For returns the manager for kind, or nil for an unknown kind.
func (ms Managers) For(kind Kind) *Manager {
	switch kind {
	case KindDeposit:
		return ms.Deposits
	case KindWithdrawal:
		return ms.Withdrawals
	case KindTransfer:
		return ms.Transfers
	default:
		return nil
	}
}
