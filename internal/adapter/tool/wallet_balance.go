package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/domain/entity"
)

var _ output.ToolPort = (*BalanceTool)(nil)

type BalanceTool struct {
	wallet   output.WalletPort
	notifier output.NotifierPort
	logger   output.LoggerPort
}

func NewBalanceTool(wallet output.WalletPort, notifier output.NotifierPort, logger output.LoggerPort) *BalanceTool {
	return &BalanceTool{wallet: wallet, notifier: notifier, logger: logger}
}

func (t *BalanceTool) Name() entity.ToolName { return entity.ToolGetWalletBalance }

func (t *BalanceTool) Description() string {
	return "Fetch the native-token wallet balance for the sender's email address. A balance notification email is sent to the sender on success."
}

func (t *BalanceTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"fromEmail": map[string]interface{}{
				"type":        "string",
				"description": "The sender's email address",
			},
		},
		"required": []string{"fromEmail"},
	}
}

// Execute returns "null" on any failure; no failure email is sent for
// balance checks.
func (t *BalanceTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		FromEmail string `json:"fromEmail"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.FromEmail == "" {
		return "", fmt.Errorf("fromEmail is required")
	}

	balance, err := t.wallet.Balance(ctx, args.FromEmail)
	if err != nil {
		t.logger.Error("Balance check failed", "email", args.FromEmail, "error", err)
		return "null", nil
	}

	t.notifier.SendBalance(ctx, args.FromEmail, args.FromEmail, balance)

	result, err := json.Marshal(map[string]string{"balance": balance})
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
