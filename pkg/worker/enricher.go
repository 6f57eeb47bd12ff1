package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/detector"
	"github.com/artem13815/jobboard/pkg/logging"
	"github.com/artem13815/jobboard/pkg/resume"
	"github.com/artem13815/jobboard/pkg/tasks"
)

// Cover letters at or below this word count are not worth analyzing; the task
// is a no-op and the AI fields stay null.
const coverLetterWordThreshold = 30

// ApplicationStore is the slice of the application repository the worker needs.
type ApplicationStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	SaveAIVerdict(ctx context.Context, id uuid.UUID, score *float64, report json.RawMessage) error
}

// ResumeStore is the slice of the resume repository the worker needs.
type ResumeStore interface {
	GetMeta(ctx context.Context, id uuid.UUID) (resume.Resume, error)
	SaveContent(ctx context.Context, id uuid.UUID, content string) error
}

// Enricher executes the enrichment tasks dispatched at creation time.
type Enricher struct {
	apps     ApplicationStore
	resumes  ResumeStore
	detector detector.TextDetector
	log      *logging.Logger
}

func NewEnricher(apps ApplicationStore, resumes ResumeStore, det detector.TextDetector, log *logging.Logger) *Enricher {
	return &Enricher{apps: apps, resumes: resumes, detector: det, log: log}
}

// Register wires the enricher's handlers onto a consumer.
func (e *Enricher) Register(c *tasks.Consumer) {
	c.Register(tasks.TaskAnalyzeCoverLetter, e.AnalyzeCoverLetter)
	c.Register(tasks.TaskExtractResumeText, e.ExtractResumeText)
}

// AnalyzeCoverLetter re-fetches the application and, when the cover letter is
// long enough, asks the detector for a verdict. Score and raw report are
// persisted together in one write; a failed detector call returns an error so
// the queue's redelivery policy applies and the record stays untouched.
func (e *Enricher) AnalyzeCoverLetter(ctx context.Context, m tasks.Message) error {
	a, err := e.apps.GetByID(ctx, m.ID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			e.log.Warn("application gone before analysis", "application", m.ID)
			return nil
		}
		return err
	}
	if len(strings.Fields(a.CoverLetter)) <= coverLetterWordThreshold {
		return nil
	}

	res, err := e.detector.DetectText(ctx, a.CoverLetter)
	if err != nil {
		return err
	}
	var score *float64
	if res.Success {
		v := res.FakePercentage
		score = &v
	}
	if err := e.apps.SaveAIVerdict(ctx, a.ID, score, res.Raw); err != nil {
		return err
	}
	e.log.Info("cover letter analyzed", "application", a.ID, "success", res.Success)
	return nil
}

// ExtractResumeText opens the stored file, extracts the text page by page and
// persists it as the resume content. Failures here are contained: they are
// logged and swallowed, leaving content unchanged.
func (e *Enricher) ExtractResumeText(ctx context.Context, m tasks.Message) error {
	r, err := e.resumes.GetMeta(ctx, m.ID)
	if err != nil {
		e.log.Warn("resume not found for extraction", "resume", m.ID, "err", err)
		return nil
	}
	data, err := os.ReadFile(r.StoragePath)
	if err != nil {
		e.log.Warn("resume file not readable", "resume", m.ID, "path", r.StoragePath, "err", err)
		return nil
	}
	text, err := resume.ParseResumeText(r.Filename, data)
	if err != nil {
		e.log.Warn("resume text extraction failed", "resume", m.ID, "err", err)
		return nil
	}
	if err := e.resumes.SaveContent(ctx, r.ID, text); err != nil {
		return err
	}
	e.log.Info("resume text extracted", "resume", r.ID, "chars", len(text))
	return nil
}
