package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ZaguanLabs/doctrans"
	"github.com/ZaguanLabs/doctrans/internal/app"
	"github.com/ZaguanLabs/doctrans/store"
)

// Error codes returned in error bodies.
const (
	CodeBadRequest        = "bad_request"
	CodeUnsupportedFormat = "unsupported_format"
	CodeExtractionFailed  = "extraction_failed"
	CodeNotFound          = "not_found"
	CodeTooLarge          = "request_too_large"
	CodeInternal          = "internal_error"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type languageItem struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Direction string `json:"direction"`
}

type languagesResponse struct {
	Target     string         `json:"target"`
	Languages  []languageItem `json:"languages"`
	Extensions []string       `json:"extensions"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": doctrans.Version,
	})
}

func (s *Server) languages(c *gin.Context) {
	langs := s.app.Languages()
	items := make([]languageItem, 0, len(langs))
	for _, l := range langs {
		items = append(items, languageItem{Name: l.Name, Code: l.Code, Direction: l.Direction()})
	}
	c.JSON(http.StatusOK, languagesResponse{
		Target:     s.app.TargetLang(),
		Languages:  items,
		Extensions: s.app.Extensions(),
	})
}

func (s *Server) preview(c *gin.Context) {
	name, data, ok := s.readUpload(c)
	if !ok {
		return
	}

	doc, err := s.app.Preview(name, data)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) translate(c *gin.Context) {
	name, data, ok := s.readUpload(c)
	if !ok {
		return
	}

	rec, err := s.app.Translate(c.Request.Context(), app.Request{
		FileName:   name,
		Data:       data,
		SourceLang: c.PostForm("source_lang"),
		Sheets:     c.PostFormArray("sheet"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Location", "/v1/translations/"+rec.ID)
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) getTranslation(c *gin.Context) {
	rec, err := s.app.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) download(c *gin.Context) {
	out, err := s.app.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.FileName}))
	c.Data(http.StatusOK, out.MediaType, out.Data)
}

// readUpload reads the multipart "file" field. On failure it writes the
// error response and returns ok == false.
func (s *Server) readUpload(c *gin.Context) (name string, data []byte, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(c, http.StatusRequestEntityTooLarge, CodeTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return "", nil, false
		}
		abort(c, http.StatusBadRequest, CodeBadRequest, "multipart field \"file\" is required")
		return "", nil, false
	}

	f, err := fh.Open()
	if err != nil {
		s.respondError(c, fmt.Errorf("open upload: %w", err))
		return "", nil, false
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		s.respondError(c, fmt.Errorf("read upload: %w", err))
		return "", nil, false
	}
	return fh.Filename, data, true
}

// respondError maps err onto a status code and error body.
func (s *Server) respondError(c *gin.Context, err error) {
	status, code := classify(err)
	_ = c.Error(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	abort(c, status, code, msg)
}

func classify(err error) (int, string) {
	var (
		cfgErr *doctrans.ConfigurationError
		fmtErr *doctrans.UnsupportedFormatError
		extErr *doctrans.ExtractionError
	)
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, CodeBadRequest
	case errors.As(err, &fmtErr):
		return http.StatusUnsupportedMediaType, CodeUnsupportedFormat
	case errors.As(err, &extErr):
		return http.StatusUnprocessableEntity, CodeExtractionFailed
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	}
	return http.StatusInternalServerError, CodeInternal
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}
