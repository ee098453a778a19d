// Package tutor asks a language model for worked explanations of
// practice questions. Explanations are cached in memory for the life of
// the process and never persisted.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/llm"
)

// ErrDisabled is returned by a Service with no provider.
var ErrDisabled = errors.New("tutor: no LLM provider configured")

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 1200, Temperature: 0.2}
}

// Input identifies what to explain. Chosen is the learner's option index,
// or -1 if they have not answered.
type Input struct {
	Question content.Question
	Chosen   int
}

// Explanation is a worked solution.
type Explanation struct {
	QuestionID    string
	Summary       string   `json:"summary"`
	Steps         []string `json:"steps"`
	KeyIdea       string   `json:"key_idea"`
	CommonMistake string   `json:"common_mistake"`
	Model         string
}

type cacheKey struct {
	id     string
	chosen int
}

// Service generates explanations. A nil provider disables it.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu    sync.Mutex
	cache map[cacheKey]*Explanation
}

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg, cache: make(map[cacheKey]*Explanation)}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Explain returns a worked explanation. It blocks on the provider; run it
// off the UI loop.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if in.Chosen >= len(in.Question.Options) {
		in.Chosen = -1
	}

	key := cacheKey{id: in.Question.ID, chosen: in.Chosen}
	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "explain"), llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(in)),
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explain %s: %w", in.Question.ID, err)
	}

	var exp Explanation
	if err := json.Unmarshal(resp.Content, &exp); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	exp.QuestionID = in.Question.ID
	exp.Model = resp.Model

	s.mu.Lock()
	s.cache[key] = &exp
	s.mu.Unlock()
	return &exp, nil
}
