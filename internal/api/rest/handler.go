package rest

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
	"github.com/feral-file/ff-frame-inspector/internal/media/classifier"
	"github.com/feral-file/ff-frame-inspector/internal/media/processor"
	"github.com/feral-file/ff-frame-inspector/internal/media/reporter"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// InspectFrames decodes an uploaded media file and returns its frame summary
	// POST /api/v1/frames/inspect (multipart: file, kind, filename, mime, is_animated, is_video)
	InspectFrames(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug         bool
	processor     processor.Processor
	base64        adapter.Base64
	maxUploadSize int64
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, proc processor.Processor, b64 adapter.Base64, maxUploadSize int64) Handler {
	return &handler{
		debug:         debug,
		processor:     proc,
		base64:        b64,
		maxUploadSize: maxUploadSize,
	}
}

// InspectFrames decodes an uploaded media file
func (h *handler) InspectFrames(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondPayloadTooLarge(c, h.maxUploadSize)
			return
		}
		respondBadRequest(c, "File is required", err.Error())
		return
	}

	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		respondPayloadTooLarge(c, h.maxUploadSize)
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		respondBadRequest(c, "Unable to read file", err.Error())
		return
	}
	if len(data) == 0 {
		respondValidationError(c, "file is empty")
		return
	}

	att, err := buildAttachment(c, fileHeader, data)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result := h.processor.Process(c.Request.Context(), att)

	if result.Err != nil && result.Reply.Text == reporter.TextInternalError {
		respondInternalError(c, result.Err, reporter.TextInternalError, zap.String("filename", fileHeader.Filename))
		return
	}
	if result.Summary.FrameCount == 0 {
		respondUnprocessable(c, result.Reply.Text)
		return
	}

	c.JSON(http.StatusOK, toInspectResponse(result, h.base64.Encode, h.debug))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-frame-inspector-api",
	})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	return io.ReadAll(file)
}

// buildAttachment maps the form hints onto an attachment; without a kind the content is sniffed
func buildAttachment(c *gin.Context, fileHeader *multipart.FileHeader, data []byte) (domain.Attachment, error) {
	name := strings.TrimSpace(c.PostForm("filename"))
	if name == "" {
		name = fileHeader.Filename
	}

	kindValue := strings.TrimSpace(c.PostForm("kind"))
	if kindValue == "" {
		return classifier.Sniff(data, name), nil
	}

	kind, err := domain.ParseKind(kindValue)
	if err != nil {
		return nil, fmt.Errorf("invalid kind %q", kindValue)
	}

	switch kind {
	case domain.KindPhoto:
		return domain.Photo{Data: data}, nil
	case domain.KindVideo:
		return domain.Video{Data: data}, nil
	case domain.KindAnimation:
		return domain.Animation{Data: data}, nil
	case domain.KindDocument:
		mime := strings.TrimSpace(c.PostForm("mime"))
		if mime == "" {
			mime = fileHeader.Header.Get("Content-Type")
		}
		return domain.Document{Data: data, FileName: name, MimeType: mime}, nil
	default:
		isAnimated, err := formBool(c, "is_animated")
		if err != nil {
			return nil, err
		}
		isVideo, err := formBool(c, "is_video")
		if err != nil {
			return nil, err
		}
		return domain.Sticker{Data: data, IsAnimated: isAnimated, IsVideo: isVideo}, nil
	}
}

func formBool(c *gin.Context, key string) (bool, error) {
	value := strings.TrimSpace(c.PostForm(key))
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, value)
	}
	return b, nil
}

func formatBytes(n int64) string {
	return fmt.Sprintf("limit is %d bytes", n)
}
