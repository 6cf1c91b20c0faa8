package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"autc/internal/agents"
	"autc/internal/llm"
	"autc/internal/models"

	"go.uber.org/zap"
)

// ContextTurns bounds how much history the routing model sees.
const ContextTurns = 4

var ErrRoutingParse = errors.New("could not parse orchestrator response")

// IntentClassifier is the external routing collaborator. It returns the
// raw response text; parsing and every fallback live here.
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, directive, contextText string) (string, error)
}

type RouteDecision struct {
	AgentID   agents.ID `json:"agentId"`
	Reasoning string    `json:"reasoning"`
}

type Orchestrator struct {
	classifier IntentClassifier
	log        *zap.Logger
}

func New(classifier IntentClassifier, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{classifier: classifier, log: log}
}

// Decide picks the agent for a user turn. It never fails: any collaborator
// error, unparseable payload, or uncataloged id degrades to the fallback
// agent so the conversation always continues.
func (o *Orchestrator) Decide(ctx context.Context, utterance string, history []models.Message) RouteDecision {
	directive, _ := agents.Get(agents.Orchestrator)
	contextText := BuildRoutingContext(utterance, history)

	raw, err := o.classifier.ClassifyIntent(ctx, directive.Directive, contextText)
	if err != nil {
		kind, userMsg := llm.Classify(err)
		o.log.Warn("orchestration failed, using fallback agent",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return RouteDecision{
			AgentID:   agents.Fallback,
			Reasoning: fmt.Sprintf("Automatic routing failed due to: %s Defaulting to Technology Agent.", userMsg),
		}
	}

	dec, err := parseDecision(raw)
	if err != nil {
		if id, ok := scanForAgent(raw); ok {
			return RouteDecision{AgentID: id, Reasoning: "Fallback detection"}
		}
		o.log.Warn("routing response unparseable, using fallback agent",
			zap.String("raw", truncate(raw, 200)),
			zap.Error(err),
		)
		return RouteDecision{
			AgentID:   agents.Fallback,
			Reasoning: "Automatic routing failed. Defaulting to Technology Agent.",
		}
	}

	if !agents.Known(dec.AgentID) {
		o.log.Warn("routing model returned uncataloged agent",
			zap.String("agentId", string(dec.AgentID)),
		)
		dec.AgentID = agents.Fallback
	}
	return dec
}

// BuildRoutingContext formats the last ContextTurns turns as "role: text"
// lines plus the current utterance.
func BuildRoutingContext(utterance string, history []models.Message) string {
	recent := history
	if len(recent) > ContextTurns {
		recent = recent[len(recent)-ContextTurns:]
	}
	lines := make([]string, 0, len(recent))
	for _, msg := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Text))
	}

	var b strings.Builder
	b.WriteString("Conversation History:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nCurrent User Input:\n")
	b.WriteString(utterance)
	b.WriteString("\n\nBased on the history and current input, which agent is best?")
	return b.String()
}

func parseDecision(raw string) (RouteDecision, error) {
	var dec RouteDecision
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &dec); err != nil {
		return RouteDecision{}, fmt.Errorf("%w: %v", ErrRoutingParse, err)
	}
	if dec.AgentID == "" {
		return RouteDecision{}, fmt.Errorf("%w: missing agentId", ErrRoutingParse)
	}
	return dec, nil
}

// scanForAgent is the last-resort heuristic over degraded free text. The
// science key is checked before technology, matching the routing prompt's
// own examples.
func scanForAgent(raw string) (agents.ID, bool) {
	if strings.Contains(raw, string(agents.Science)) {
		return agents.Science, true
	}
	if strings.Contains(raw, string(agents.Technology)) {
		return agents.Technology, true
	}
	return "", false
}

// cleanJSON strips markdown code fences some models wrap around JSON.
func cleanJSON(text string) string {
	clean := strings.TrimSpace(text)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimSuffix(clean, "```")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSuffix(clean, "```")
	}
	return strings.TrimSpace(clean)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
