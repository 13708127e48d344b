package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/domain/entity"
)

var _ output.ToolPort = (*CreateAccountTool)(nil)

type CreateAccountTool struct {
	wallet   output.WalletPort
	notifier output.NotifierPort
	logger   output.LoggerPort
}

func NewCreateAccountTool(wallet output.WalletPort, notifier output.NotifierPort, logger output.LoggerPort) *CreateAccountTool {
	return &CreateAccountTool{wallet: wallet, notifier: notifier, logger: logger}
}

func (t *CreateAccountTool) Name() entity.ToolName { return entity.ToolCreateWalletAccount }

func (t *CreateAccountTool) Description() string {
	return "Create a custodial wallet account keyed by the sender's email address. Sends a creation confirmation email with the new public key."
}

func (t *CreateAccountTool) Parameters() map[string]interface{} {
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
// account creation.
func (t *CreateAccountTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args struct {
		FromEmail string `json:"fromEmail"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.FromEmail == "" {
		return "", fmt.Errorf("fromEmail is required")
	}

	publicKey, err := t.wallet.CreateAccount(ctx, args.FromEmail)
	if err != nil {
		t.logger.Error("Account creation failed", "email", args.FromEmail, "error", err)
		return "null", nil
	}

	t.notifier.SendCreationConfirmation(ctx, args.FromEmail, publicKey)

	result, err := json.Marshal(map[string]string{"publicKey": publicKey})
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(result), nil
}
