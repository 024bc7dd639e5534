package uploadmodule

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinevault/internal/policy"
	"github.com/mantonx/cinevault/internal/types"
	"github.com/mantonx/cinevault/internal/utils"
)

// PublicPrefix is the URL path uploads are served under
const PublicPrefix = "/uploads"

// UploadResult is the response of POST /files/upload
type UploadResult struct {
	URL string `json:"url"`
}

// Service accepts poster uploads
type Service struct {
	processor  *ImageProcessor
	store      FileStore
	maxSize    int64
	publicBase string
	logger     hclog.Logger
}

// NewService creates the upload service. publicBase prefixes returned URLs;
// when empty, the base the request arrived on is used instead.
func NewService(processor *ImageProcessor, store FileStore, maxSize int64, publicBase string, logger hclog.Logger) *Service {
	return &Service{
		processor:  processor,
		store:      store,
		maxSize:    maxSize,
		publicBase: strings.TrimRight(publicBase, "/"),
		logger:     logger,
	}
}

// Upload stores the image read from r and returns its absolute public URL.
// requestBase is the scheme and host the client used.
func (s *Service) Upload(ctx context.Context, actor *policy.Actor, filename, requestBase string, r io.Reader) (*UploadResult, error) {
	if err := policy.Enforce(actor, policy.ActionUpload, policy.Resource{Kind: policy.KindFile}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, types.NewInternalError("failed to read upload", err)
	}
	if n == 0 {
		return nil, types.NewValidationError("invalid upload", "file must not be empty")
	}
	if n > s.maxSize {
		return nil, types.NewValidationError("invalid upload", fmt.Sprintf("file must be at most %d bytes", s.maxSize))
	}

	data, size, err := s.processor.Process(buf.Bytes())
	if err != nil {
		s.logger.Debug("upload rejected", "filename", filename, "error", err)
		return nil, types.NewValidationError("invalid upload", "file must be a JPEG, PNG or WebP image")
	}

	name := utils.GenerateUUID() + ".webp"
	if err := s.store.Save(name, data); err != nil {
		return nil, types.NewInternalError("failed to store upload", err)
	}

	s.logger.Info("image uploaded", "name", name, "original", filename, "width", size.X, "height", size.Y, "bytes", len(data))
	return &UploadResult{URL: s.baseURL(requestBase) + PublicPrefix + "/" + name}, nil
}

func (s *Service) baseURL(requestBase string) string {
	if s.publicBase != "" {
		return s.publicBase
	}
	return strings.TrimRight(requestBase, "/")
}
