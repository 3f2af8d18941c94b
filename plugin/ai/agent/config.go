package agent

import "time"

// Agent names double as session namespaces: a session id is conventionally
// "<agent>:<pod>:<user>", so the five agents never share history.
const (
	AgentItinerary = "itinerary"
	AgentBudget    = "budget"
	AgentResearch  = "research"
	AgentLocal     = "local"
	AgentPacking   = "packing"
)

const (
	ModelGemma = "gemma2-9b-it"
	ModelLlama = "llama-3.1-8b-instant"
)

// daywiseSummaryParams drive the condensing pre-pass shared by the budget
// and packing agents.
var daywiseSummaryParams = ModelParams{
	Model:       ModelLlama,
	Temperature: 0.5,
	TopP:        0.95,
	MaxTokens:   1024,
	Timeout:     15 * time.Second,
}

// ItineraryConfig builds the day-wise planner agent. Tools ground the plan
// in live data: web search, restaurants, attractions.
func ItineraryConfig(tools []Tool) Config {
	return Config{
		Name:         AgentItinerary,
		SystemPrompt: itineraryPrompt,
		Tools:        tools,
		Model: ModelParams{
			Model:       ModelGemma,
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   2048,
			Timeout:     12 * time.Second,
		},
	}
}

// BudgetConfig builds the cost estimation agent. It receives itineraries
// through the summarize pre-pass rather than raw.
func BudgetConfig(tools []Tool) Config {
	return Config{
		Name:         AgentBudget,
		SystemPrompt: budgetPrompt,
		Tools:        tools,
		Model: ModelParams{
			Model:       ModelLlama,
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   2048,
			Timeout:     12 * time.Second,
		},
		Summarize: &SummarizeConfig{
			SystemPrompt: daywiseSummaryPrompt,
			Model:        daywiseSummaryParams,
			Template:     "Create a travel budget plan based on the following itinerary:\n\n%s\n\n",
		},
	}
}

// ResearchConfig builds the destination research agent.
func ResearchConfig(tools []Tool) Config {
	return Config{
		Name:         AgentResearch,
		SystemPrompt: researchPrompt,
		Tools:        tools,
		Model: ModelParams{
			Model:       ModelLlama,
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   512,
			Timeout:     12 * time.Second,
		},
	}
}

// LocalConfig builds the local rules, pricing and governance agent.
func LocalConfig(tools []Tool) Config {
	return Config{
		Name:         AgentLocal,
		SystemPrompt: localPrompt,
		Tools:        tools,
		Model: ModelParams{
			Model:       ModelLlama,
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   512,
			Timeout:     12 * time.Second,
		},
	}
}

// PackingConfig builds the packing list agent. No tools: its turns always
// finish in a single completion.
func PackingConfig() Config {
	return Config{
		Name:         AgentPacking,
		SystemPrompt: packingPrompt,
		Model: ModelParams{
			Model:       ModelLlama,
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   1024,
			Timeout:     12 * time.Second,
		},
		Summarize: &SummarizeConfig{
			SystemPrompt: daywiseSummaryPrompt,
			Model:        daywiseSummaryParams,
			Template:     "Create a packing list with the following itinerary.\n\n%s\n",
		},
	}
}
