package hero

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"aipirat/apperr"
	"aipirat/imagegen"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// MaxUploadBytes caps the size of an uploaded hero image.
const MaxUploadBytes = 10 << 20

// ErrGenerationInProgress is returned while another generation is running.
var ErrGenerationInProgress = apperr.New(apperr.CodeConflict, "image generation already in progress")

// Studio produces new hero images, by generation or upload, and records them.
type Studio struct {
	manager    *Manager
	gen        imagegen.Generator
	log        *zap.Logger
	generating atomic.Bool
}

func NewStudio(manager *Manager, gen imagegen.Generator, log *zap.Logger) *Studio {
	if gen == nil {
		gen = imagegen.Disabled{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Studio{manager: manager, gen: gen, log: log}
}

// Generating reports whether a generation is running.
func (s *Studio) Generating() bool {
	return s.generating.Load()
}

// Generate runs one generation and, on success, records the image as the new
// hero. ok is false when no image was produced or the caller went away before
// the result arrived; hero and history are unchanged in both cases.
func (s *Studio) Generate(ctx context.Context, prompt string) (image string, ok bool, err error) {
	if !s.generating.CompareAndSwap(false, true) {
		return "", false, ErrGenerationInProgress
	}
	defer s.generating.Store(false)

	image, ok = s.gen.Generate(ctx, prompt)
	if !ok {
		return "", false, nil
	}
	if ctx.Err() != nil {
		s.log.Info("discarding generated image, requester is gone", zap.Error(ctx.Err()))
		return "", false, nil
	}

	if err := s.manager.RecordAndSetHero(ctx, image); err != nil {
		return "", false, err
	}
	return image, true, nil
}

// Upload records an uploaded image file as the new hero.
func (s *Studio) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.New(apperr.CodeInvalid, "uploaded file is empty")
	}
	if len(data) > MaxUploadBytes {
		return "", apperr.New(apperr.CodeInvalid, fmt.Sprintf("uploaded file exceeds %d bytes", MaxUploadBytes))
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", apperr.New(apperr.CodeInvalid, fmt.Sprintf("%s is not an image (%s)", filename, mt.String()))
	}

	image := imagegen.DataURI(mt.String(), data)
	if err := s.manager.RecordAndSetHero(ctx, image); err != nil {
		return "", err
	}
	s.log.Info("hero image uploaded", zap.String("filename", filename), zap.String("mime", mt.String()), zap.Int("bytes", len(data)))
	return image, nil
}
