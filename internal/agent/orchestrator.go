package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"sei-agent-engine/internal/crm"
)

const apologyReply = "I'm sorry, I'm having trouble answering right now. Please try again in a moment."

// Reply is what the boundary returns to the caller: text plus a status
// marker. Failures degrade to Status "error" with a readable Output, never
// a transport-level fault.
type Reply struct {
	Output string
	Status string
}

func successReply(text string) Reply { return Reply{Output: text, Status: "success"} }
func errorReply(text string) Reply   { return Reply{Output: text, Status: "error"} }

// ChatClient is the slice of the OpenAI client the orchestrator needs;
// *openai.Client satisfies it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Submitter is the lead gateway capability.
type Submitter interface {
	Submit(ctx context.Context, prospect crm.ProspectRecord, analysis crm.AnalysisRecord) (crm.Outcome, error)
}

// Orchestrator owns one conversation turn: assemble context, invoke the
// model with the persona and the finalize tool, then route the response to
// either the caller or the lead gateway.
type Orchestrator struct {
	client       ChatClient
	model        string
	persona      PersonaSpec
	assembler    *Assembler
	gateway      Submitter
	modelTimeout time.Duration
	log          zerolog.Logger
}

func NewOrchestrator(client ChatClient, model string, persona PersonaSpec, assembler *Assembler, gateway Submitter, modelTimeout time.Duration, log zerolog.Logger) *Orchestrator {
	if modelTimeout <= 0 {
		modelTimeout = 30 * time.Second
	}
	return &Orchestrator{
		client:       client,
		model:        model,
		persona:      persona,
		assembler:    assembler,
		gateway:      gateway,
		modelTimeout: modelTimeout,
		log:          log,
	}
}

// Respond handles one user turn. callerContext is optional extra state
// supplied by the front-end (for example previously gathered answers); it is
// appended to the assembled context verbatim.
func (o *Orchestrator) Respond(ctx context.Context, userInput, callerContext string) Reply {
	contextData := o.assembler.Assemble(ctx, userInput)
	if strings.TrimSpace(callerContext) != "" {
		contextData += " Caller Context: " + callerContext
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: o.persona.System},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Context: %s\n\nUser Question: %s", contextData, userInput)},
	}

	ctx, cancel := context.WithTimeout(ctx, o.modelTimeout)
	defer cancel()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.persona.Style.Temperature,
		MaxTokens:   o.persona.Style.MaxTokens,
		Messages:    messages,
		Tools:       []openai.Tool{finalizeToolDefinition(o.persona.Tool.Description)},
		ToolChoice:  "auto",
	})
	if err != nil {
		o.log.Error().Err(err).Msg("chat completion failed")
		return errorReply(apologyReply)
	}
	if len(resp.Choices) == 0 {
		o.log.Error().Msg("chat completion returned no choices")
		return errorReply(apologyReply)
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		return successReply(msg.Content)
	}
	return o.dispatchToolCall(ctx, msg.ToolCalls[0])
}

func (o *Orchestrator) dispatchToolCall(ctx context.Context, call openai.ToolCall) Reply {
	kind, ok := ParseToolKind(call.Function.Name)
	if !ok {
		o.log.Warn().Str("tool", call.Function.Name).Msg("model requested undeclared tool")
		return errorReply("I tried to take an action I don't support. Could you rephrase your request?")
	}

	switch kind {
	case ToolFinalizeDiscovery:
		prospect, analysis, err := parseFinalizeArgs(call.Function.Arguments)
		if err != nil {
			o.log.Warn().Err(err).Msg("malformed finalize arguments")
			return errorReply("I couldn't assemble the submission details correctly. Could you confirm the contact name, company, and the bottleneck you're facing?")
		}
		outcome, err := o.gateway.Submit(ctx, prospect, analysis)
		if err != nil {
			o.log.Warn().Err(err).Msg("lead submission rejected locally")
			return errorReply("I'm still missing some required details before I can submit. Could you confirm the contact name, company, and the bottleneck you're facing?")
		}
		if outcome.Kind == crm.OutcomeAccepted {
			return successReply(outcome.Message)
		}
		return errorReply(outcome.Message)
	}
	// Unreachable while ToolKind has one member; the switch stays exhaustive.
	return errorReply(apologyReply)
}
