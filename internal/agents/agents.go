package agents

import (
	"errors"
	"fmt"
)

// ID is a wire-stable catalog key. These strings appear in persisted
// profiles and in routing responses, so renaming a display name must
// never change them.
type ID string

const (
	Orchestrator  ID = "orchestrator"
	Science       ID = "science"
	Education     ID = "education"
	Accessibility ID = "accessibility"
	Health        ID = "health"
	Business      ID = "business"
	Technology    ID = "technology"
)

// Fallback is substituted whenever an agent id cannot be resolved.
const Fallback = Technology

var ErrUnknownAgent = errors.New("unknown agent")

type Agent struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Color       string
	Directive   string
}

const orchestratorDirective = `You are the AUTC Orchestrator. Your ONLY job is to analyze the user's input and select the best agent to handle it.

Available Agents:
- science: Research, analysis, physics, chemistry, biology, experiment suggestions.
- education: Tutoring, explaining concepts, quizzes, study plans.
- accessibility: Text-to-speech formatting, image descriptions, sign language (text description), simplifying complex text.
- health: Symptom checking (non-medical advice), wellness tips, fitness plans, nutrition.
- business: Market analysis, email writing, meeting summaries, inventory prediction.
- technology: Code generation, debugging, software architecture, tech support.

If the request is general conversation ("Hello", "How are you?"), choose 'education' as a default friendly fallback or 'technology' if they seem tech-savvy.

Output strictly valid JSON with no markdown:
{ "agentId": "science" | "education" | "accessibility" | "health" | "business" | "technology", "reasoning": "short explanation" }`

// Catalog is the full agent roster in declaration order. The
// orchestrator sentinel comes first and never appears in List.
var Catalog = []Agent{
	{
		ID:          Orchestrator,
		Name:        "AUTC Orchestrator",
		Description: "Central brain that analyzes requests and routes them to specialist agents.",
		Icon:        "🧠",
		Color:       "#FFFFFF",
		Directive:   orchestratorDirective,
	},
	{
		ID:          Science,
		Name:        "Science Agent",
		Description: "Specialized in research, data analysis, and empirical suggestions.",
		Icon:        "🧬",
		Color:       "#A5D6A7",
		Directive:   "You are the Science Agent. Provide rigorous, evidence-based answers. Cite principles of physics, chemistry, or biology where applicable. When creating experiments, list safety precautions first.",
	},
	{
		ID:          Education,
		Name:        "Education Agent",
		Description: "Expert tutor for explanations, quizzes, and study guides.",
		Icon:        "🎓",
		Color:       "#FFEE58",
		Directive:   "You are the Education Agent. Explain concepts simply and clearly. Use analogies. If asked to teach, break topics down into steps. If asked for a quiz, provide 3 multiple choice questions at the end.",
	},
	{
		ID:          Accessibility,
		Name:        "Accessibility Agent",
		Description: "Helps with text-to-speech prep, simplification, and descriptions.",
		Icon:        "♿",
		Color:       "#FFCC80",
		Directive:   "You are the Accessibility Agent. Your goal is to make information accessible. Simplify complex sentences. If analyzing an image, provide thorough alt-text descriptions. Suggest format changes for better readability.",
	},
	{
		ID:          Health,
		Name:        "Health Agent",
		Description: "Wellness tips, fitness guidance, and general health info.",
		Icon:        "🩺",
		Color:       "#EF9A9A",
		Directive:   `You are the Health Agent. You provide general wellness, fitness, and nutritional information. ALWAYS start with a disclaimer: "I am an AI, not a doctor. Please consult a professional for medical diagnosis." Focus on preventive care and healthy habits.`,
	},
	{
		ID:          Business,
		Name:        "Business Agent",
		Description: "Market reports, professional emails, and strategic planning.",
		Icon:        "💼",
		Color:       "#90CAF9",
		Directive:   "You are the Business Agent. Maintain a professional, executive tone. Focus on ROI, efficiency, and clear communication. Structure answers with bullet points and clear headers suitable for reports.",
	},
	{
		ID:          Technology,
		Name:        "Technology Agent",
		Description: "Code generation, debugging, and technical solutions.",
		Icon:        "💻",
		Color:       "#80CBC4",
		Directive:   "You are the Technology Agent. Provide clean, modern code examples (Go/TypeScript/Python pref). Explain your code. If debugging, analyze the potential error stack.",
	},
}

var byID = func() map[ID]Agent {
	m := make(map[ID]Agent, len(Catalog))
	for _, a := range Catalog {
		m[a.ID] = a
	}
	return m
}()

func Get(id ID) (Agent, error) {
	a, ok := byID[id]
	if !ok {
		return Agent{}, fmt.Errorf("%w: %q", ErrUnknownAgent, id)
	}
	return a, nil
}

// List returns the specialist agents in declaration order, excluding the
// orchestrator sentinel.
func List() []Agent {
	out := make([]Agent, 0, len(Catalog)-1)
	for _, a := range Catalog {
		if a.ID == Orchestrator {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Known reports whether id is a cataloged agent, sentinel included.
func Known(id ID) bool {
	_, ok := byID[id]
	return ok
}

// Normalize maps any uncataloged id to the fallback agent. Bad keys from
// corrupted persisted data or from the routing model are substituted here
// rather than surfaced.
func Normalize(id ID) ID {
	if Known(id) {
		return id
	}
	return Fallback
}
