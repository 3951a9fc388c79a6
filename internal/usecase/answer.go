package usecase

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"docrag/internal/adapter/cache"
	"docrag/internal/adapter/retriever"
	"docrag/internal/domain"
	"docrag/internal/port"
)

// Answer orchestrates one question against a Session: retrieve evidence,
// render the grounded prompt, delegate generation.
type Answer struct {
	retriever *retriever.Semantic
	llm       port.LLM
	cache     *cache.QueryCache
	topK      int
	log       logrus.FieldLogger
}

// NewAnswer wires the query pipeline. The cache is optional; pass nil to
// retrieve fresh results on every call.
func NewAnswer(r *retriever.Semantic, llm port.LLM, qc *cache.QueryCache, topK int, log logrus.FieldLogger) *Answer {
	if topK <= 0 {
		topK = 5
	}
	return &Answer{
		retriever: r,
		llm:       llm,
		cache:     qc,
		topK:      topK,
		log:       log,
	}
}

// TopK returns the number of chunks retrieved per question.
func (u *Answer) TopK() int { return u.topK }

// Run answers one question from the Session's document. On a generation
// failure the returned Answer still carries the retrieved evidence, so the
// caller can retry generation without re-retrieving.
func (u *Answer) Run(question string, s *Session) (domain.Answer, error) {
	retrieved, hit := u.cachedResults(question)
	if !hit {
		var err error
		retrieved, err = u.retriever.Retrieve(question, s.Chunks, s.Index, u.topK)
		if err != nil {
			return domain.Answer{}, err
		}
		if u.cache != nil {
			u.cache.Put(question, u.topK, retrieved)
		}
	}
	u.log.WithFields(logrus.Fields{
		"retrieved": len(retrieved),
		"cached":    hit,
	}).Info("evidence assembled")

	userPrompt, err := renderUserPrompt(question, retrieved)
	if err != nil {
		return domain.Answer{Retrieved: retrieved}, fmt.Errorf("render prompt: %w", err)
	}

	text, err := u.llm.GenerateWithSystem(systemPrompt, userPrompt)
	if err != nil {
		return domain.Answer{Retrieved: retrieved}, &domain.GenerationError{Err: err}
	}

	return domain.Answer{Text: text, Retrieved: retrieved}, nil
}

func (u *Answer) cachedResults(question string) ([]domain.RetrievalResult, bool) {
	if u.cache == nil {
		return nil, false
	}
	return u.cache.Get(question, u.topK)
}
