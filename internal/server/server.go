// Package server exposes the proofreading pipeline over HTTP for the web
// frontend: document upload and download, targeted snippet edits, standalone
// analysis, and language detection.
package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/ai"
	"github.com/valpere/pandulipi/internal/analyst"
	"github.com/valpere/pandulipi/internal/detector"
	"github.com/valpere/pandulipi/internal/docx"
	"github.com/valpere/pandulipi/internal/editor"
	"github.com/valpere/pandulipi/internal/orchestrator"
	"github.com/valpere/pandulipi/internal/store"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// maxUploadBytes bounds an uploaded manuscript. Voice-typed drafts are text
// heavy but small; anything larger is a mistake.
const maxUploadBytes = 32 << 20

// Server holds the pipeline dependencies shared by all handlers.
type Server struct {
	svc  ai.Service
	orch *orchestrator.Orchestrator
	det  *detector.Detector
	st   *store.Store // optional; nil disables history and caching
}

// New creates a Server. st may be nil.
func New(svc ai.Service, orch *orchestrator.Orchestrator, det *detector.Detector, st *store.Store) *Server {
	return &Server{svc: svc, orch: orch, det: det, st: st}
}

// Router builds the gin engine with CORS open to any origin; the frontend
// runs on a different port during development.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
	}))

	r.GET("/healthz", s.handleHealth)
	r.POST("/process-document/", s.handleProcessDocument)
	r.POST("/interactive-edit/", s.handleInteractiveEdit)
	r.POST("/analyze-document/", s.handleAnalyzeDocument)
	r.POST("/detect-language/", s.handleDetectLanguage)

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": s.svc.Name()})
}

// handleProcessDocument runs the full pipeline: extract text from the
// uploaded .docx, edit it, optionally analyze it, and stream back the
// formatted document as an attachment.
func (s *Server) handleProcessDocument(c *gin.Context) {
	data, filename, ok := s.readUpload(c)
	if !ok {
		return
	}

	req := requestFromForm(c)

	rawText, err := docx.ReadText(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	res, err := s.orch.Run(c.Request.Context(), rawText, req)
	if err != nil {
		s.recordJob(c, filename, req, rawText, "", "failed", err.Error(), nil)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	model := orchestrator.Assemble(res, req.Style)
	out, err := docx.Write(model, req.Style)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	s.recordJob(c, filename, req, rawText, res.EditedManuscript, "completed", "", res.Glossary)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "edited_"+filename))
	c.Data(http.StatusOK, docxContentType, out)
}

type interactiveEditRequest struct {
	TextSnippet string `json:"text_snippet" binding:"required"`
	Command     string `json:"command" binding:"required"`
}

func (s *Server) handleInteractiveEdit(c *gin.Context) {
	var req interactiveEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if s.st != nil {
		if cached, found, err := s.st.GetSnippetEdit(c.Request.Context(), req.TextSnippet, req.Command); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"edited_snippet": cached})
			return
		}
	}

	edited, err := editor.EditSnippet(c.Request.Context(), s.svc, req.TextSnippet, req.Command)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if s.st != nil {
		_ = s.st.SaveSnippetEdit(c.Request.Context(), req.TextSnippet, req.Command, edited, s.svc.Name())
	}

	c.JSON(http.StatusOK, gin.H{"edited_snippet": edited})
}

// handleAnalyzeDocument produces a glossary and consistency report for an
// uploaded document without editing it.
func (s *Server) handleAnalyzeDocument(c *gin.Context) {
	data, _, ok := s.readUpload(c)
	if !ok {
		return
	}

	rawText, err := docx.ReadText(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	a := analyst.New(s.svc)
	glossary, _ := a.Glossary(c.Request.Context(), rawText)
	report, _ := a.ConsistencyReport(c.Request.Context(), rawText)

	c.JSON(http.StatusOK, gin.H{
		"glossary":           glossary,
		"consistency_report": report,
	})
}

type detectLanguageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleDetectLanguage(c *gin.Context) {
	var req detectLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	langs, err := s.det.DetectLanguages(c.Request.Context(), s.svc, req.Text)
	resp := gin.H{"languages": langs}
	if err != nil {
		// Statistical fallback was used; tell the client.
		resp["fallback"] = true
	}
	c.JSON(http.StatusOK, resp)
}

// readUpload pulls the "file" form field, enforcing the .docx extension.
// On failure it writes the error response and returns ok=false.
func (s *Server) readUpload(c *gin.Context) (data []byte, filename string, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing file upload"})
		return nil, "", false
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".docx") {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid file type. Please upload a .docx file."})
		return nil, "", false
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "file too large"})
		return nil, "", false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return nil, "", false
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return nil, "", false
	}
	return data, fh.Filename, true
}

// requestFromForm maps the multipart form fields onto a ProofreadRequest,
// falling back to the documented defaults for anything omitted.
func requestFromForm(c *gin.Context) internal.ProofreadRequest {
	style := internal.DefaultStyle()
	style.FontFamily = c.DefaultPostForm("font_family", style.FontFamily)
	style.FontSizePt = formFloat(c, "font_size", style.FontSizePt)
	style.LineSpacing = formFloat(c, "line_spacing", style.LineSpacing)
	style.MarginTopIn = formFloat(c, "margin_top", style.MarginTopIn)
	style.MarginBottomIn = formFloat(c, "margin_bottom", style.MarginBottomIn)
	style.MarginLeftIn = formFloat(c, "margin_left", style.MarginLeftIn)
	style.MarginRightIn = formFloat(c, "margin_right", style.MarginRightIn)

	if formBool(c, "shloka_line_breaks") || formBool(c, "shloka_numbering") || formBool(c, "shloka_center") {
		style.Shloka = &internal.ShlokaOptions{
			LineBreaks:       formBool(c, "shloka_line_breaks"),
			AddNumbering:     formBool(c, "shloka_numbering"),
			CenterAlign:      formBool(c, "shloka_center"),
			TranslationStyle: c.PostForm("shloka_translation_style"),
		}
	}

	return internal.ProofreadRequest{
		AuthorPersona:     c.PostForm("author_persona"),
		BookSummary:       c.PostForm("book_summary"),
		LanguageRules:     c.PostForm("language_rules"),
		GenerateGlossary:  formBool(c, "generate_glossary"),
		ConsistencyReport: formBool(c, "consistency_report"),
		Style:             style,
	}
}

func formFloat(c *gin.Context, key string, def float64) float64 {
	v := c.PostForm(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func formBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.PostForm(key))
	return err == nil && v
}

// recordJob writes history when a store is configured. History failures are
// not surfaced to the client; the document result matters more.
func (s *Server) recordJob(c *gin.Context, filename string, req internal.ProofreadRequest, rawText, edited, status, errMsg string, glossary []internal.GlossaryEntry) {
	if s.st == nil {
		return
	}
	job := internal.ProofreadJob{
		Filename:      filename,
		AuthorPersona: req.AuthorPersona,
		BookSummary:   req.BookSummary,
		LanguageRules: req.LanguageRules,
		RawChars:      len([]rune(rawText)),
		EditedChars:   len([]rune(edited)),
		ServiceUsed:   s.svc.Name(),
		Status:        status,
		Error:         errMsg,
	}
	_, _ = s.st.SaveJob(c.Request.Context(), job, glossary)
}
