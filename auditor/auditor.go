// Package auditor asks a text-generation model for a short audit of the
// current orders and journals.
package auditor

import (
	"context"
	"errors"
	"time"

	"github.com/mmdatafocus/procurement_backend/config"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/sirupsen/logrus"
)

// FallbackMessage is returned to the caller whenever the audit cannot be produced.
const FallbackMessage = "Error performing AI audit. Please ensure API Key is valid."

var ErrNotConfigured = errors.New("auditor is not configured")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Result struct {
	Analysis    string    `json:"analysis"`
	OK          bool      `json:"ok"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Auditor struct {
	generator Generator
	logger    *logrus.Logger
	timeout   time.Duration
	now       func() time.Time
}

type Option func(*Auditor)

func WithTimeout(d time.Duration) Option {
	return func(a *Auditor) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Auditor) { a.now = now }
}

// New builds an Auditor. A nil generator is allowed; every audit then
// returns the fallback text.
func New(generator Generator, logger *logrus.Logger, opts ...Option) *Auditor {
	a := &Auditor{
		generator: generator,
		logger:    logger,
		timeout:   60 * time.Second,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Audit never fails: errors are logged and replaced by FallbackMessage.
func (a *Auditor) Audit(ctx context.Context, orders []models.Order, journals []models.JournalEntry) Result {
	ctx, span := config.Tracer.Start(ctx, "auditor.Audit")
	defer span.End()

	now := a.now()
	text, err := a.generate(ctx, orders, journals, now)
	if err != nil {
		span.RecordError(err)
		config.LogError(a.logger, "auditor.go", "Audit", "generate", nil, err)
		return Result{Analysis: FallbackMessage, OK: false, GeneratedAt: now}
	}
	return Result{Analysis: text, OK: true, GeneratedAt: now}
}

func (a *Auditor) generate(ctx context.Context, orders []models.Order, journals []models.JournalEntry, now time.Time) (string, error) {
	if a.generator == nil {
		return "", ErrNotConfigured
	}
	prompt, err := BuildPrompt(orders, journals, now)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.generator.Generate(ctx, prompt)
}
