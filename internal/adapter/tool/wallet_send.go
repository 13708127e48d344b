package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/domain/entity"
)

var _ output.ToolPort = (*SendTool)(nil)

type SendTool struct {
	wallet   output.WalletPort
	notifier output.NotifierPort
	logger   output.LoggerPort
}

func NewSendTool(wallet output.WalletPort, notifier output.NotifierPort, logger output.LoggerPort) *SendTool {
	return &SendTool{wallet: wallet, notifier: notifier, logger: logger}
}

func (t *SendTool) Name() entity.ToolName { return entity.ToolSendWalletTransaction }

func (t *SendTool) Description() string {
	return "Send a native-token transaction from the sender's wallet. Sends a confirmation email with the transaction id on success, or a failure email with the reason on failure."
}

func (t *SendTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"fromEmail": map[string]interface{}{
				"type":        "string",
				"description": "The sender's email address",
			},
			"toEmailOrAddress": map[string]interface{}{
				"type":        "string",
				"description": "The recipient's email address or wallet address/public key",
			},
			"amount": map[string]interface{}{
				"type":        "string",
				"description": "The amount of cryptocurrency to send, in ETH",
			},
		},
		"required": []string{"fromEmail", "toEmailOrAddress", "amount"},
	}
}

// Execute submits the transfer exactly once; there is no retry or
// deduplication. Failures become a structured {error, details} result
// and trigger the failure email.
func (t *SendTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		FromEmail        string `json:"fromEmail"`
		ToEmailOrAddress string `json:"toEmailOrAddress"`
		Amount           string `json:"amount"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.FromEmail == "" || args.ToEmailOrAddress == "" || args.Amount == "" {
		return "", fmt.Errorf("fromEmail, toEmailOrAddress and amount are required")
	}

	txHash, err := t.wallet.Send(ctx, args.FromEmail, args.ToEmailOrAddress, args.Amount)
	if err != nil {
		t.logger.Error("Transaction send failed",
			"from", args.FromEmail, "to", args.ToEmailOrAddress, "amount", args.Amount, "error", err)
		t.notifier.SendFailure(ctx, args.FromEmail, args.ToEmailOrAddress, args.Amount, "Not available", err.Error())

		result, merr := json.Marshal(map[string]string{
			"error":   "Request failed",
			"details": err.Error(),
		})
		if merr != nil {
			return "", fmt.Errorf("marshal result: %w", merr)
		}
		return string(result), nil
	}

	t.notifier.SendConfirmation(ctx, args.FromEmail, args.ToEmailOrAddress, args.Amount, txHash)

	result, err := json.Marshal(map[string]string{"transactionHash": txHash})
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
