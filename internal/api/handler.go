package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/td0m/studyman/internal/apperrors"
)

type SubjectHandler struct {
	records *Records
	metrics *Metrics
	logger  *zap.Logger
}

func NewSubjectHandler(records *Records, metrics *Metrics, logger *zap.Logger) *SubjectHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectHandler{records: records, metrics: metrics, logger: logger}
}

func (h *SubjectHandler) observe() {
	if h.metrics != nil {
		h.metrics.SetRecords(h.records.Len())
	}
}

func (h *SubjectHandler) List(c *gin.Context) {
	JSON(c, http.StatusOK, h.records.List())
}

// Create stores whatever fields were sent. An empty body creates a record
// holding only its id.
func (h *SubjectHandler) Create(c *gin.Context) {
	var fields Record
	if err := c.ShouldBindJSON(&fields); err != nil && !errors.Is(err, io.EOF) {
		Error(c, apperrors.Wrap(err, apperrors.ErrBadRequest.Code, http.StatusBadRequest, apperrors.ErrBadRequest.Message))
		return
	}
	if fields == nil {
		fields = Record{}
	}
	r := h.records.Create(fields)
	h.observe()
	h.logger.Debug("subject created", zap.Any("id", r["id"]))
	Created(c, r)
}

// Update replaces the matching subject with the body as sent and echoes it.
// An unknown or non-numeric id leaves the list alone but still answers 200.
func (h *SubjectHandler) Update(c *gin.Context) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, apperrors.Wrap(err, apperrors.ErrBadRequest.Code, http.StatusBadRequest, apperrors.ErrBadRequest.Message))
		return
	}
	if id, ok := parseID(c.Param("id")); ok {
		h.records.Replace(id, body)
	}
	JSON(c, http.StatusOK, body)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	if id, ok := parseID(c.Param("id")); ok {
		h.records.Delete(id)
		h.observe()
	}
	NoContent(c)
}
