package azure

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/llm"
	"github.com/inletlabs/attache/pkg/tools"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNoChoices indicates the completion response carried no choices.
var ErrNoChoices = errors.New("no completion choices returned")

const (
	defaultTemperature   = 0.7
	defaultMaxTokens     = 1000
	defaultMaxIterations = 8
)

// ChatCompleter is the slice of the OpenAI client the runner needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// RunnerConfig tunes one runner. Zero values fall back to defaults; for
// Azure the model is the deployment name.
type RunnerConfig struct {
	Model         string
	Temperature   float32
	MaxTokens     int
	MaxIterations int
}

// Runner drives the model/tool exchange: it sends the conversation to the
// model, executes any requested tools, feeds the results back, and repeats
// until the model answers in plain text or the iteration bound is hit.
type Runner struct {
	client   ChatCompleter
	registry *tools.Registry
	config   RunnerConfig
	logger   *zap.Logger
}

// NewRunner creates a runner over the given completion client and tool
// registry.
func NewRunner(client ChatCompleter, registry *tools.Registry, config RunnerConfig, logger *zap.Logger) *Runner {
	if config.Temperature == 0 {
		config.Temperature = defaultTemperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.MaxIterations == 0 {
		config.MaxIterations = defaultMaxIterations
	}
	return &Runner{
		client:   client,
		registry: registry,
		config:   config,
		logger:   logger,
	}
}

// Invoke runs one full exchange and returns the input turns followed by
// every assistant and tool turn generated along the way.
func (r *Runner) Invoke(ctx context.Context, input []llm.Turn, specs []tools.Spec, systemPrompt string) ([]llm.Turn, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(input)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range input {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	turns := make([]llm.Turn, len(input))
	copy(turns, input)

	oaTools := toOpenAITools(specs)

	for i := 0; i < r.config.MaxIterations; i++ {
		resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       r.config.Model,
			Messages:    messages,
			Tools:       oaTools,
			Temperature: r.config.Temperature,
			MaxTokens:   r.config.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, ErrNoChoices
		}

		assistant := resp.Choices[0].Message
		messages = append(messages, assistant)
		turns = append(turns, assistantTurn(assistant))

		if len(assistant.ToolCalls) == 0 {
			return turns, nil
		}

		for _, call := range assistant.ToolCalls {
			output := r.executeCall(ctx, call)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				ToolCallID: call.ID,
			})
			turns = append(turns, llm.NewToolTurn(output))
		}
	}

	r.logger.Warn("tool iteration bound reached", zap.Int("iterations", r.config.MaxIterations))
	return turns, nil
}

// executeCall resolves and runs one tool call. Every failure mode comes back
// as output text so the model can relay it.
func (r *Runner) executeCall(ctx context.Context, call openai.ToolCall) string {
	tool, ok := r.registry.Lookup(call.Function.Name)
	if !ok {
		r.logger.Error("unknown tool requested", zap.String("tool", call.Function.Name))
		return fmt.Sprintf("Error: unknown tool '%s'", call.Function.Name)
	}

	args, err := decodeArguments(call.Function.Arguments)
	if err != nil {
		r.logger.Error("failed to parse tool arguments",
			zap.String("tool", call.Function.Name),
			zap.Error(err),
		)
		return fmt.Sprintf("Error: failed to parse tool arguments: %v", err)
	}

	r.logger.Debug("executing tool",
		zap.String("tool", call.Function.Name),
		zap.Any("args", args),
	)

	output, err := tool.Execute(ctx, args)
	if err != nil {
		r.logger.Error("tool execution failed",
			zap.String("tool", call.Function.Name),
			zap.Error(err),
		)
		return fmt.Sprintf("Error: %v", err)
	}
	return output
}

func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.UnmarshalFromString(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}

func assistantTurn(message openai.ChatCompletionMessage) llm.Turn {
	turn := llm.Turn{
		Role:    llm.RoleAssistant,
		Content: message.Content,
	}
	for _, call := range message.ToolCalls {
		args, err := decodeArguments(call.Function.Arguments)
		if err != nil {
			args = map[string]any{}
		}
		turn.ToolCalls = append(turn.ToolCalls, llm.ToolCall{
			Name:      call.Function.Name,
			Arguments: args,
		})
	}
	return turn
}

func toOpenAITools(specs []tools.Spec) []openai.Tool {
	oaTools := make([]openai.Tool, 0, len(specs))
	for _, spec := range specs {
		oaTools = append(oaTools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}
	return oaTools
}
