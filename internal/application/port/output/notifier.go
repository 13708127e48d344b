package output

import (
	"context"

	"maillet-agent/internal/domain/format"
)

// NotifierPort sends the transactional reply emails. Delivery is
// fire-and-forget: implementations log transport failures and swallow
// them, so the wallet operation that triggered the email succeeds or
// fails independently of notification delivery.
type NotifierPort interface {
	SendBalance(ctx context.Context, recipient, address, ethAmount string)
	SendConfirmation(ctx context.Context, recipient, beneficiary, ethAmount, txID string)
	SendFailure(ctx context.Context, recipient, beneficiary, ethAmount, txID, reason string)
	SendTransactionHistory(ctx context.Context, recipient string, history format.FormattedHistory)
	SendCreationConfirmation(ctx context.Context, recipient, publicKey string)
}
