// Package pipeline provides the high-level orchestration for document generation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/document-generator/internal/layout"
	"github.com/jonathan/document-generator/internal/llm"
	"github.com/jonathan/document-generator/internal/logger"
	"github.com/jonathan/document-generator/internal/prompts"
	"github.com/jonathan/document-generator/internal/rendering"
	"github.com/jonathan/document-generator/internal/types"
	"github.com/jonathan/document-generator/internal/validation"
)

// Pipeline step names reported through ProgressEvent.
const (
	StepPrompt   = "build_prompt"
	StepGenerate = "generate_text"
	StepClassify = "classify"
	StepRender   = "render"
	StepValidate = "check_pages"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	Geometry rendering.Geometry
	// LLMTimeout bounds the model call; zero leaves it unbounded.
	LLMTimeout time.Duration
	OnProgress ProgressCallback
}

// Result is a generated document and what was learned producing it.
type Result struct {
	RequestID       string
	PDF             []byte
	Blocks          []layout.Block
	Pages           int
	UsedPlaceholder bool
	// BudgetViolation is set when the document exceeds its page budget.
	BudgetViolation *validation.BudgetViolation
	// Warnings are advisory findings about the request and generated text.
	Warnings []validation.Violation
}

// Generator runs one request through prompt, model, classifier and renderer.
type Generator struct {
	client   llm.Client
	renderer rendering.Renderer
	log      *logger.Logger
	opts     Options
}

// NewGenerator wires a Generator. A nil log discards output.
func NewGenerator(client llm.Client, renderer rendering.Renderer, log *logger.Logger, opts Options) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{client: client, renderer: renderer, log: log, opts: opts}
}

func emitProgress(onProgress ProgressCallback, requestID, step, message string, content any) {
	if onProgress != nil {
		onProgress(ProgressEvent{
			Step:      step,
			Message:   message,
			RequestID: requestID,
			Content:   content,
		})
	}
}

// Generate produces the PDF for req. Model failures degrade to a placeholder
// document; prompt and render failures are returned and no bytes are produced.
func (g *Generator) Generate(ctx context.Context, req *types.Request) (*Result, error) {
	return g.GenerateWithProgress(ctx, req, g.opts.OnProgress)
}

// GenerateWithProgress is Generate reporting to onProgress instead of the
// callback in Options.
func (g *Generator) GenerateWithProgress(ctx context.Context, req *types.Request, onProgress ProgressCallback) (*Result, error) {
	requestID := uuid.New().String()
	log := g.log.With("request_id", requestID, "doc_type", req.DocType)
	log.Info("received request")

	prompt, err := prompts.Build(req.DocType, req.Data)
	if err != nil {
		return nil, err
	}

	warnings := validation.CheckFields(req.Data)
	emitProgress(onProgress, requestID, StepPrompt, "prompt built", len(prompt))

	text, usedPlaceholder := g.generateText(ctx, log, prompt)
	if !usedPlaceholder {
		warnings = append(warnings, validation.CheckGeneratedText(text)...)
	}
	for _, w := range warnings {
		log.Warn("content check", "type", w.Type, "details", w.Details)
	}
	emitProgress(onProgress, requestID, StepGenerate, "text generated", len(text))

	blocks := layout.Classify(layout.DedupeHeader(text))
	emitProgress(onProgress, requestID, StepClassify, "text classified", blocks)

	pdf, err := g.renderer.Render(ctx, Title(req), blocks, g.opts.Geometry)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", req.DocType, err)
	}
	emitProgress(onProgress, requestID, StepRender, "document rendered", len(pdf))

	result := &Result{
		RequestID:       requestID,
		PDF:             pdf,
		Blocks:          blocks,
		UsedPlaceholder: usedPlaceholder,
		Warnings:        warnings,
	}

	pages, err := validation.CheckPageBudget(req.DocType, pdf)
	var violation *validation.BudgetViolation
	switch {
	case errors.As(err, &violation):
		result.Pages = pages
		result.BudgetViolation = violation
		log.Warn("document exceeds page budget", "pages", violation.Pages, "budget", violation.Budget)
	case err != nil:
		log.Warn("could not count pages", "error", err)
	default:
		result.Pages = pages
	}
	emitProgress(onProgress, requestID, StepValidate, "pages checked", result.Pages)

	log.Info("document generated", "bytes", len(pdf), "pages", result.Pages, "blocks", len(blocks))
	return result, nil
}

// generateText calls the model, substituting the placeholder on failure.
func (g *Generator) generateText(ctx context.Context, log *logger.Logger, prompt string) (string, bool) {
	if g.opts.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.LLMTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := llm.GenerateOrPlaceholder(ctx, g.client, prompt)
	if err != nil {
		log.Warn("text generation failed, using placeholder", "model", g.client.GetModel(), "error", err)
		return text, true
	}
	log.Debug("text generated", "model", g.client.GetModel(), "chars", len(text), "elapsed", time.Since(start))
	return text, false
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// candidateName returns the request's full_name, or "" when absent.
func candidateName(req *types.Request) string {
	name, ok := req.Data["full_name"].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}

// Title is the document title, e.g. "Jane Doe - CV".
func Title(req *types.Request) string {
	if name := candidateName(req); name != "" {
		return name + " - " + req.DocType.Label()
	}
	return req.DocType.Label()
}

// Filename is the download name, e.g. "Jane_Doe_cv.pdf", with "student"
// standing in for a missing name.
func Filename(req *types.Request) string {
	name := unsafeFilenameChars.ReplaceAllString(candidateName(req), "_")
	name = strings.Trim(name, "_.")
	if name == "" {
		name = "student"
	}
	return fmt.Sprintf("%s_%s.pdf", name, req.DocType)
}
