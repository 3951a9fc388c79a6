package port

// LLM represents a language model for text generation.
type LLM interface {
	// GenerateWithSystem generates text from a system prompt and a user
	// message.
	GenerateWithSystem(systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
