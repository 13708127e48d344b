package output

import (
	"context"

	"maillet-agent/internal/domain/entity"
)

// WalletPort wraps the external custodial wallet API. All amounts are
// the API's native-token units: balances in ETH strings, history
// values in wei strings.
type WalletPort interface {
	Balance(ctx context.Context, email string) (string, error)
	Send(ctx context.Context, fromEmail, toEmailOrAddress, amount string) (txHash string, err error)
	Transactions(ctx context.Context, email string, limit int) (*entity.TransactionHistory, error)
	CreateAccount(ctx context.Context, email string) (publicKey string, err error)
}
