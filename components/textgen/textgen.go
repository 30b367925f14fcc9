package textgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/tributary-dev/tributary/capability"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Default chat models per provider selector.
const (
	geminiModel = "gemini-1.5-flash"
	groqModel   = "llama-3.1-8b-instant"
	openaiModel = "gpt-4o-mini"
	ollamaModel = "llama3"
)

// Agent is the text-generation capability. The provider client is resolved
// lazily on first Run because the googleai constructor needs a context.
type Agent struct {
	cfg capability.Config
	llm llms.Model
}

// New builds a text-generation capability for the node's model selector.
func New(cfg capability.Config) (capability.Capability, error) {
	return &Agent{cfg: cfg}, nil
}

func (a *Agent) Run(ctx context.Context, query string) (string, error) {
	if a.llm == nil {
		m, err := resolve(ctx, a.cfg)
		if err != nil {
			return "", err
		}
		a.llm = m
	}

	msgs := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, a.cfg.Instructions),
		llms.TextParts(schema.ChatMessageTypeHuman, query),
	}
	resp, err := a.llm.GenerateContent(ctx, msgs)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}

// resolve maps the model selector onto a provider client. Unknown selectors
// fall through to OpenAI, matching how graphs in the wild set "llm" fields.
func resolve(ctx context.Context, cfg capability.Config) (llms.Model, error) {
	switch cfg.Model {
	case "gemini":
		key := cfg.Setting("googleai_api_key")
		if key == "" {
			return nil, errors.New("googleai_api_key is not configured")
		}
		return googleai.New(ctx, googleai.WithAPIKey(key), googleai.WithDefaultModel(geminiModel))
	case "groq":
		key := cfg.Setting("groq_api_key")
		if key == "" {
			return nil, errors.New("groq_api_key is not configured")
		}
		return openai.New(openai.WithToken(key), openai.WithBaseURL(groqBaseURL), openai.WithModel(groqModel))
	case "ollama":
		host := cfg.Setting("ollama_host")
		if host == "" {
			host = "http://localhost:11434"
		}
		return ollama.New(ollama.WithServerURL(host), ollama.WithModel(ollamaModel))
	default:
		key := cfg.Setting("openai_api_key")
		if key == "" {
			return nil, fmt.Errorf("openai_api_key is not configured (model selector %q)", cfg.Model)
		}
		return openai.New(openai.WithToken(key), openai.WithModel(openaiModel))
	}
}

// fixed returns a factory whose capability always uses the given system
// prompt, regardless of what the node declares.
func fixed(instructions string) capability.Factory {
	return func(cfg capability.Config) (capability.Capability, error) {
		cfg.Instructions = instructions
		return New(cfg)
	}
}

func init() {
	capability.Register("Text-Agent", capability.EnrichSections, New)

	// The original delegates these to tool-equipped agents; here they are
	// prompt-specialized text generation.
	capability.Register("Calculator", capability.EnrichNone, fixed(
		"You are a precise calculation assistant. Evaluate the given expression step by step and state the final result on its own line."))
	capability.Register("Python-Code", capability.EnrichNone, fixed(
		"You are an expert Python programmer. Write clean, runnable Python code for the request and explain the output briefly."))
	capability.Register("Pandas-Data", capability.EnrichNone, fixed(
		"You are a data analyst working with pandas. Answer questions about the provided tabular data, showing the reasoning behind each figure."))
	capability.Register("DuckDB-SQL", capability.EnrichNone, fixed(
		"You are a SQL analyst using DuckDB. Translate the request into SQL, then answer using the provided data."))
	capability.Register("Financial-Analysis", capability.EnrichNone, fixed(
		"You are a financial analyst. Answer questions about stocks, fundamentals and analyst recommendations, citing the figures you rely on."))
}
