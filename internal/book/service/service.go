package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"github.com/adventuresof/adventuresof/backend/go-services/internal/book"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/models"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/story"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/logger"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/metrics"
)

var ErrNilProfile = errors.New("nil profile")

// Service defines the book generation pipeline used by the handler layer.
type Service interface {
	Generate(ctx context.Context, p *models.Profile) (*book.Book, error)
}

// IllustrationPicker chooses the character art reference for a book.
type IllustrationPicker interface {
	Pick(childName string, childAge int) string
}

// StoryWriter produces story text; it must not fail.
type StoryWriter interface {
	Generate(ctx context.Context, p *models.Profile) story.Story
}

// Assembler writes the book file and returns its path.
type Assembler interface {
	Assemble(ctx context.Context, text, imageURL, childName string) (string, error)
}

// Archiver copies a finished book to secondary storage.
type Archiver interface {
	ArchiveBook(ctx context.Context, localPath string) error
}

type Options struct {
	// DownloadPrefix is the URL path the output directory is served under.
	DownloadPrefix string
	// Archiver is optional; nil disables archiving.
	Archiver Archiver
}

// NewService wires the pipeline stages together.
func NewService(picker IllustrationPicker, writer StoryWriter, asm Assembler, opts Options) Service {
	if opts.DownloadPrefix == "" {
		opts.DownloadPrefix = "/output"
	}
	return &pipeline{picker: picker, writer: writer, asm: asm, opts: opts}
}

type pipeline struct {
	picker IllustrationPicker
	writer StoryWriter
	asm    Assembler
	opts   Options
}

func (s *pipeline) Generate(ctx context.Context, p *models.Profile) (*book.Book, error) {
	if p == nil {
		metrics.BookFailures.WithLabelValues("input").Inc()
		return nil, ErrNilProfile
	}
	logger.Infof("book: generating for %s", p.ChildName)

	logger.Debugf("book: step 1: character illustration")
	image := s.picker.Pick(p.ChildName, p.ChildAge)

	logger.Debugf("book: step 2: personalized story")
	st := s.writer.Generate(ctx, p)

	logger.Debugf("book: step 3: pdf")
	pdfPath, err := s.asm.Assemble(ctx, st.Text, image, p.ChildName)
	if err != nil {
		metrics.BookFailures.WithLabelValues("assemble").Inc()
		return nil, fmt.Errorf("assemble book: %w", err)
	}

	if s.opts.Archiver != nil {
		if err := s.opts.Archiver.ArchiveBook(ctx, pdfPath); err != nil {
			metrics.BookFailures.WithLabelValues("archive").Inc()
			logger.Warnf("book: archive %s failed: %v", pdfPath, err)
		}
	}

	name := filepath.Base(pdfPath)
	metrics.BooksGenerated.WithLabelValues(string(st.Source)).Inc()
	return &book.Book{
		ChildName:      p.ChildName,
		Path:           pdfPath,
		FileName:       name,
		DownloadURL:    path.Join("/", s.opts.DownloadPrefix, url.PathEscape(name)),
		Story:          st.Text,
		StorySource:    string(st.Source),
		CharacterImage: image,
		CreatedAt:      time.Now(),
	}, nil
}
