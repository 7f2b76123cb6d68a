// Package agent drives an LLM-written review over the same capabilities
// the heuristic pipeline uses. The model calls tools to read diffs and
// history, then writes the review document itself; the pipeline stays
// network-free while this driver sits on top of it.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dmuchai/my-code-review-agent/internal/models"
)

// maxTurns bounds the tool-use loop so a confused model cannot spin forever.
const maxTurns = 20

// Agent runs tool-use review conversations against the Anthropic API.
type Agent struct {
	api   *anthropic.Client
	model anthropic.Model
	tools *Toolset
}

// New creates an agent with the given API key and model.
func New(apiKey, model string, tools *Toolset) *Agent {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Agent{
		api:   &client,
		model: anthropic.Model(model),
		tools: tools,
	}
}

// RunResult is the outcome of one agent review run.
type RunResult struct {
	Summary  string                // the model's closing text
	Message  *models.CommitMessage // last generated commit message, if any
	Artifact *models.WriteResult   // last review write, if any
	Model    string
	Turns    int
}

// Run executes the review conversation for rootDir until the model stops
// calling tools. outputPath is where the model is told to write the review;
// historyLimit bounds the context it is offered.
func (a *Agent) Run(ctx context.Context, rootDir, outputPath string, historyLimit int) (*RunResult, error) {
	eff := &runEffects{}
	tools := toolDefs()

	system := []anthropic.TextBlockParam{
		{Text: BuildSystemPrompt()},
	}
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(BuildKickoffPrompt(rootDir, outputPath, historyLimit))),
	}

	var lastText string
	for turn := 0; turn < maxTurns; turn++ {
		msg, err := a.api.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: 4096,
			System:    system,
			Messages:  messages,
			Tools:     tools,
		})
		if err != nil {
			return nil, fmt.Errorf("anthropic API call: %w", err)
		}
		messages = append(messages, msg.ToParam())

		var toolResults []anthropic.ContentBlockParamUnion
		for _, block := range msg.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				if strings.TrimSpace(variant.Text) != "" {
					lastText = variant.Text
				}
			case anthropic.ToolUseBlock:
				input := json.RawMessage(variant.JSON.Input.Raw())
				out, err := a.tools.dispatch(ctx, eff, variant.Name, input)
				if err != nil {
					toolResults = append(toolResults, anthropic.NewToolResultBlock(variant.ID, err.Error(), true))
					continue
				}
				toolResults = append(toolResults, anthropic.NewToolResultBlock(variant.ID, out, false))
			}
		}

		if len(toolResults) == 0 {
			break
		}
		messages = append(messages, anthropic.NewUserMessage(toolResults...))
	}

	return &RunResult{
		Summary:  stripFences(lastText),
		Message:  eff.lastMessage,
		Artifact: eff.lastWrite,
		Model:    string(a.model),
		Turns:    eff.toolCalls,
	}, nil
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) > 1 {
		text = lines[1]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
