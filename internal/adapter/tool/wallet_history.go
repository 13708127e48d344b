package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/domain/entity"
	"maillet-agent/internal/domain/format"
)

const historyLimit = 10

var _ output.ToolPort = (*HistoryTool)(nil)

type HistoryTool struct {
	wallet   output.WalletPort
	notifier output.NotifierPort
	logger   output.LoggerPort
}

func NewHistoryTool(wallet output.WalletPort, notifier output.NotifierPort, logger output.LoggerPort) *HistoryTool {
	return &HistoryTool{wallet: wallet, notifier: notifier, logger: logger}
}

func (t *HistoryTool) Name() entity.ToolName { return entity.ToolGetWalletHistory }

func (t *HistoryTool) Description() string {
	return "Fetch the sender's most recent wallet transactions and email them a formatted transaction history."
}

func (t *HistoryTool) Parameters() map[string]interface{} {
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
// history requests.
func (t *HistoryTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		FromEmail string `json:"fromEmail"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.FromEmail == "" {
		return "", fmt.Errorf("fromEmail is required")
	}

	history, err := t.wallet.Transactions(ctx, args.FromEmail, historyLimit)
	if err != nil {
		t.logger.Error("History fetch failed", "email", args.FromEmail, "error", err)
		return "null", nil
	}

	formatted := format.ProcessTransactions(*history)
	t.notifier.SendTransactionHistory(ctx, args.FromEmail, formatted)

	result, err := json.Marshal(formatted)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
