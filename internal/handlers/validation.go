package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/careerconnect/connect-client/pkg/backend"
	"github.com/careerconnect/connect-client/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// maxAttachmentBytes bounds uploaded images
const maxAttachmentBytes = 5 << 20

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}

	out := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: fe.Field() + " " + validation.Reason(fe),
		})
	}
	return out
}

// bind decodes the request into req using its content type. On failure the
// 400 response is already written.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		if details := ParseValidationErrors(err); len(details) > 0 {
			respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details, err)
		} else {
			respondError(c, http.StatusBadRequest, "Invalid request body", err)
		}
		return false
	}
	return true
}

// formAttachment reads an optional uploaded file. A missing file, or a
// request that is not multipart at all, yields nil.
func formAttachment(c *gin.Context, field string) (*backend.Attachment, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size > maxAttachmentBytes {
		return nil, errors.New("attachment too large")
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentBytes+1))
	if err != nil {
		return nil, err
	}

	return &backend.Attachment{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
