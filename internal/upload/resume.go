package upload

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

// ErrNotAPDF is returned when the uploaded resume is not a PDF file.
var ErrNotAPDF = goerrors.New("Resume must be a PDF file", goerrors.CategoryValidation).
	WithTextCode("RESUME_NOT_PDF").
	WithCode(goerrors.CodeBadRequest)

// ErrTooLarge is returned when the uploaded resume exceeds the size limit.
var ErrTooLarge = goerrors.New("Resume file is too large", goerrors.CategoryValidation).
	WithTextCode("RESUME_TOO_LARGE").
	WithCode(goerrors.CodeBadRequest)

// Store persists uploaded resumes under a public directory and extracts
// their plain text for search and screening.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create upload directory").
			WithMetadata(map[string]any{"dir": dir})
	}

	return &Store{
		dir:      dir,
		maxBytes: maxBytes,
	}, nil
}

// Dir returns the directory resumes are stored in
func (s *Store) Dir() string {
	return s.dir
}

// SaveResume writes the uploaded file to disk under a generated name and
// returns the public URL path clients use to fetch it.
func (s *Store) SaveResume(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNotAPDF
	}

	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return "", ErrNotAPDF
	}

	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", ErrTooLarge.WithMetadata(map[string]any{
			"size": fh.Size,
			"max":  s.maxBytes,
		})
	}

	src, err := fh.Open()
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open uploaded resume")
	}
	defer src.Close()

	name := uuid.NewString() + ".pdf"
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store resume")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write resume")
	}

	return "/uploads/" + name, nil
}

// ExtractText pulls the plain text out of a stored resume. Extraction
// failures are not fatal to the upload, callers decide what to do with
// an empty result.
func (s *Store) ExtractText(publicURL string) (string, error) {
	name := filepath.Base(publicURL)

	f, reader, err := pdf.Open(filepath.Join(s.dir, name))
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "failed to open resume for extraction")
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "failed to extract resume text")
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read resume text")
	}

	return strings.TrimSpace(buf.String()), nil
}
