package agent

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RunTurnWithDocument condenses a raw document in a single-shot, tool-free,
// sessionless pass and then runs a normal turn with the condensed text
// folded into the user message. Requires cfg.Summarize.
func (e *Engine) RunTurnWithDocument(ctx context.Context, sessionID, document, userText string) (*Message, error) {
	if e.cfg.Summarize == nil {
		return nil, NewError(e.cfg.Name, "summarize", fmt.Errorf("agent has no summarize configuration"))
	}

	condensed, err := e.summarize(ctx, document)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf(e.cfg.Summarize.Template, condensed)
	if strings.TrimSpace(userText) != "" {
		msg = userText + "\n\n\n" + msg
	}
	return e.RunTurn(ctx, sessionID, msg)
}

// summarize is stage one of the document pipeline: one completion, no
// tools, no session.
func (e *Engine) summarize(ctx context.Context, document string) (string, error) {
	sc := e.cfg.Summarize
	msgs := []Message{
		SystemMessage(sc.SystemPrompt),
		UserMessage(document),
	}
	reply, err := e.client.Complete(ctx, msgs, sc.Model, nil)
	if err != nil {
		return "", NewError(e.cfg.Name, "summarize", err)
	}
	return strings.TrimSpace(reply.Content), nil
}

// refineSystemPrompt instructs the model to restructure an existing plan
// without touching completed days.
const refineSystemPrompt = "You are a travel itinerary assistant that restructures existing trip plans.\n" +
	"If the user says a day is completed, do NOT regenerate that day's plan.\n" +
	"If the user asks to move a location to another day, do so logically.\n" +
	"If the user asks to extend the trip, add more days as needed with suitable attractions.\n" +
	"Ensure timing and activity count are realistic. Avoid repeating places.\n" +
	"Output ONLY the updated part of the itinerary, starting from the next uncompleted day."

// RefineItinerary rewrites an existing multi-day plan according to a user
// instruction. Single-shot: no tools, no session.
func RefineItinerary(ctx context.Context, client CompletionClient, model string, currentPlan, instruction string) (string, error) {
	userPrompt := fmt.Sprintf(
		"Current Itinerary:\n%s\n\nUser Instruction:\n%s\n\nGive updated itinerary from the next uncompleted day onward.",
		strings.TrimSpace(currentPlan), strings.TrimSpace(instruction))

	msgs := []Message{
		SystemMessage(refineSystemPrompt),
		UserMessage(userPrompt),
	}
	params := ModelParams{
		Model:       model,
		Temperature: 0.5,
		TopP:        0.95,
		MaxTokens:   1024,
		Timeout:     15 * time.Second,
	}
	reply, err := client.Complete(ctx, msgs, params, nil)
	if err != nil {
		return "", NewError("refine", "complete", err)
	}
	return strings.TrimSpace(reply.Content), nil
}
