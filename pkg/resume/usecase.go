package resume

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/logging"
	"github.com/artem13815/jobboard/pkg/tasks"
	"github.com/artem13815/jobboard/pkg/validation"
)

// UseCase covers resume upload, listing and deletion. Text extraction happens
// asynchronously in the worker, scheduled on creation.
type UseCase interface {
	Upload(ctx context.Context, userID uuid.UUID, filename string, data []byte) (Resume, error)
	ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Resume, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo  Repository
	dir   string
	queue tasks.Enqueuer
	log   *logging.Logger
}

func NewService(repo Repository, uploadDir string, queue tasks.Enqueuer, log *logging.Logger) UseCase {
	return &service{repo: repo, dir: uploadDir, queue: queue, log: log}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, filename string, data []byte) (Resume, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" && ext != ".docx" {
		return Resume{}, validation.New("resume", "Unsupported file format: only pdf and docx are allowed.")
	}
	if len(data) == 0 {
		return Resume{}, validation.New("resume", "Uploaded file is empty.")
	}

	id := uuid.New()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Resume{}, err
	}
	path := filepath.Join(s.dir, id.String()+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Resume{}, err
	}

	r := Resume{
		ID:          id,
		UserID:      userID,
		Filename:    filepath.Base(filename),
		StoragePath: path,
		Size:        int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		_ = os.Remove(path)
		return Resume{}, err
	}

	if err := s.queue.Enqueue(ctx, tasks.TaskExtractResumeText, r.ID); err != nil {
		s.log.Warn("failed to enqueue resume text extraction", "resume", r.ID, "err", err)
	}
	return r, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Resume, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r, err := s.repo.GetMeta(ctx, id)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return ErrNotOwner
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	// Best-effort file cleanup; the row is already gone.
	if deleted.StoragePath != "" {
		if err := os.Remove(deleted.StoragePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove resume file", "resume", id, "path", deleted.StoragePath, "err", err)
		}
	}
	return nil
}
