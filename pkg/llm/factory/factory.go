package factory

import (
	"fmt"

	"crm-insights-be/pkg/llm"
	"crm-insights-be/pkg/llm/gemini"
	"crm-insights-be/pkg/llm/huggingface"
	"crm-insights-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(apiKey, modelName), nil
	case "huggingface":
		// The shared baseURL parameter is Ollama's; the HuggingFace router
		// has its own default.
		return huggingface.NewHuggingFaceProvider(apiKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
