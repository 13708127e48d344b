package executor

import (
	"context"
	"fmt"

	"maillet-agent/internal/application/port/input"
	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/domain/entity"
	"maillet-agent/internal/infrastructure/prompts"
)

var _ input.RequestProcessor = (*UseCase)(nil)

const (
	maxIterations     = 10
	maxObservationLen = 20000
)

// UseCase is the tool-calling agent loop. Each Process call owns its
// conversation exclusively; nothing is shared across requests and
// nothing survives the request.
type UseCase struct {
	llm    output.LLMPort
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func New(llm output.LLMPort, tools output.ToolRegistry, logger output.LoggerPort) *UseCase {
	return &UseCase{
		llm:    llm,
		tools:  tools,
		logger: logger,
	}
}

func (uc *UseCase) Process(ctx context.Context, email entity.InboundEmail) (*input.ProcessResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: prompts.SystemPrompt(email.From)},
		{Role: entity.RoleUser, Content: prompts.UserPrompt(email)},
	}

	toolDefs := uc.tools.Definitions()

	for iteration := 1; iteration <= maxIterations; iteration++ {
		uc.logger.Debug("Starting iteration", "iteration", iteration)

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.5,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return &input.ProcessResult{
				FinalAnswer: resp.Message.Content,
				Iterations:  iteration,
			}, nil
		}

		// Every tool call gets exactly one tool-role result message,
		// in the order the model emitted the calls.
		for _, tc := range resp.Message.ToolCalls {
			observation := uc.executeTool(ctx, tc)

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	return nil, fmt.Errorf("max iterations (%d) exceeded", maxIterations)
}

// executeTool dispatches one tool call. Failures are converted to an
// error observation the model can react to; they never abort the loop.
func (uc *UseCase) executeTool(ctx context.Context, tc entity.ToolCall) string {
	tool, ok := uc.tools.Get(entity.ToolName(tc.Name))
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		return "Error: " + err.Error()
	}

	if len(result) > maxObservationLen {
		result = result[:maxObservationLen] + "\n... (truncated)"
	}

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result
}
