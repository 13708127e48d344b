package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maillet-agent/internal/application/port/output"
	"maillet-agent/internal/application/service"
	"maillet-agent/internal/domain/entity"
	"maillet-agent/internal/infrastructure/logger"
)

// scriptedLLM replays a fixed sequence of assistant messages and
// records every request it saw.
type scriptedLLM struct {
	responses []entity.Message
	requests  []output.ChatRequest
	calls     int
}

func (s *scriptedLLM) Chat(_ context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	s.requests = append(s.requests, req)
	if s.calls >= len(s.responses) {
		return nil, fmt.Errorf("no scripted response for call %d", s.calls+1)
	}
	msg := s.responses[s.calls]
	s.calls++
	return &output.ChatResponse{Message: msg}, nil
}

type fakeTool struct {
	name     entity.ToolName
	executed []string
	result   string
	err      error
}

func (f *fakeTool) Name() entity.ToolName { return f.name }
func (f *fakeTool) Description() string   { return "fake" }
func (f *fakeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{"type": "object"}
}
func (f *fakeTool) Execute(_ context.Context, args string) (string, error) {
	f.executed = append(f.executed, args)
	return f.result, f.err
}

func newRegistry(t *testing.T, tools ...output.ToolPort) output.ToolRegistry {
	t.Helper()
	registry := service.NewToolRegistry()
	for _, tool := range tools {
		require.NoError(t, registry.Register(tool))
	}
	return registry
}

var testEmail = entity.InboundEmail{
	From:     "a@x.com",
	Subject:  "Balance",
	TextBody: "how much do I have?",
}

func TestProcess_TerminatesWithoutToolCalls(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{
		{Role: entity.RoleAssistant, Content: "You hold 1 ETH."},
	}}

	uc := New(llm, newRegistry(t), logger.NewNop())

	result, err := uc.Process(context.Background(), testEmail)
	require.NoError(t, err)

	assert.Equal(t, "You hold 1 ETH.", result.FinalAnswer)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, 1, llm.calls)
}

func TestProcess_ConversationStartsWithSystemAndUser(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{
		{Role: entity.RoleAssistant, Content: "done"},
	}}

	uc := New(llm, newRegistry(t), logger.NewNop())

	_, err := uc.Process(context.Background(), testEmail)
	require.NoError(t, err)

	msgs := llm.requests[0].Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "a@x.com")
	assert.Equal(t, entity.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "how much do I have?")
}

func TestProcess_EveryToolCallGetsOneResult(t *testing.T) {
	balance := &fakeTool{name: entity.ToolGetWalletBalance, result: `{"balance":"1"}`}
	history := &fakeTool{name: entity.ToolGetWalletHistory, result: `{"transactions":[]}`}

	llm := &scriptedLLM{responses: []entity.Message{
		{
			Role: entity.RoleAssistant,
			ToolCalls: []entity.ToolCall{
				{ID: "call_1", Name: "get_wallet_balance", Arguments: `{"fromEmail":"a@x.com"}`},
				{ID: "call_2", Name: "get_wallet_history", Arguments: `{"fromEmail":"a@x.com"}`},
			},
		},
		{Role: entity.RoleAssistant, Content: "all done"},
	}}

	uc := New(llm, newRegistry(t, balance, history), logger.NewNop())

	result, err := uc.Process(context.Background(), testEmail)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Iterations)

	assert.Len(t, balance.executed, 1)
	assert.Len(t, history.executed, 1)

	// Second request carries the assistant message plus one tool
	// message per call, correlated in model order.
	msgs := llm.requests[1].Messages
	require.Len(t, msgs, 5)
	assert.Equal(t, entity.RoleAssistant, msgs[2].Role)
	assert.Equal(t, entity.RoleTool, msgs[3].Role)
	assert.Equal(t, "call_1", msgs[3].ToolCallID)
	assert.Equal(t, `{"balance":"1"}`, msgs[3].Content)
	assert.Equal(t, entity.RoleTool, msgs[4].Role)
	assert.Equal(t, "call_2", msgs[4].ToolCallID)
}

func TestProcess_ToolErrorBecomesObservation(t *testing.T) {
	failing := &fakeTool{name: entity.ToolGetWalletBalance, err: fmt.Errorf("wallet API returned 500")}

	llm := &scriptedLLM{responses: []entity.Message{
		{
			Role: entity.RoleAssistant,
			ToolCalls: []entity.ToolCall{
				{ID: "call_1", Name: "get_wallet_balance", Arguments: `{}`},
			},
		},
		{Role: entity.RoleAssistant, Content: "something went wrong"},
	}}

	uc := New(llm, newRegistry(t, failing), logger.NewNop())

	result, err := uc.Process(context.Background(), testEmail)
	require.NoError(t, err)
	assert.Equal(t, "something went wrong", result.FinalAnswer)

	observation := llm.requests[1].Messages[3].Content
	assert.Equal(t, "Error: wallet API returned 500", observation)
}

func TestProcess_UnknownToolObserved(t *testing.T) {
	llm := &scriptedLLM{responses: []entity.Message{
		{
			Role: entity.RoleAssistant,
			ToolCalls: []entity.ToolCall{
				{ID: "call_1", Name: "delete_wallet", Arguments: `{}`},
			},
		},
		{Role: entity.RoleAssistant, Content: "sorry"},
	}}

	uc := New(llm, newRegistry(t), logger.NewNop())

	_, err := uc.Process(context.Background(), testEmail)
	require.NoError(t, err)

	observation := llm.requests[1].Messages[3].Content
	assert.Contains(t, observation, "unknown tool 'delete_wallet'")
}

func TestProcess_LLMErrorPropagates(t *testing.T) {
	llm := &scriptedLLM{}

	uc := New(llm, newRegistry(t), logger.NewNop())

	_, err := uc.Process(context.Background(), testEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm request failed")
}

func TestProcess_IterationCap(t *testing.T) {
	tool := &fakeTool{name: entity.ToolGetWalletBalance, result: "null"}

	// The model never stops calling tools.
	looping := make([]entity.Message, maxIterations)
	for i := range looping {
		looping[i] = entity.Message{
			Role: entity.RoleAssistant,
			ToolCalls: []entity.ToolCall{
				{ID: fmt.Sprintf("call_%d", i), Name: "get_wallet_balance", Arguments: `{}`},
			},
		}
	}
	llm := &scriptedLLM{responses: looping}

	uc := New(llm, newRegistry(t, tool), logger.NewNop())

	_, err := uc.Process(context.Background(), testEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")
	assert.Equal(t, maxIterations, llm.calls)
}
