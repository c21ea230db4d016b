// =============================================================================
// Price Update Preparation Tool - HTTP Handlers
// =============================================================================

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/priceops/priceprep/internal/refsheet"
	"github.com/priceops/priceprep/internal/rowtable"
	"github.com/priceops/priceprep/internal/validation"
	"github.com/priceops/priceprep/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// =============================================================================
// REQUEST AND RESPONSE SHAPES
// =============================================================================

type createSessionRequest struct {
	RowCount int `json:"row_count"`
}

type inputRow struct {
	SKU      string `json:"sku"`
	NewPrice string `json:"new_price"`
}

type setRowsRequest struct {
	Rows []inputRow `json:"rows"`
}

type setRowCountRequest struct {
	RowCount int `json:"row_count"`
}

type refreshRequest struct {
	SheetLink string `json:"sheet_link"`
}

type downloadRequest struct {
	FileName           string `json:"file_name"`
	ConfirmUnpublished bool   `json:"confirm_unpublished"`
}

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	SheetLink string         `json:"sheet_link,omitempty"`
	RowCount  int            `json:"row_count"`
	Rows      []rowtable.Row `json:"rows"`
}

func newSessionResponse(session *Session) sessionResponse {
	return sessionResponse{
		SessionID: session.ID,
		SheetLink: session.SheetLink,
		RowCount:  session.Table.Len(),
		Rows:      session.Table.Rows(),
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleStatus(c *gin.Context) {
	templateStatus := "ok"
	if err := s.writer.Check(); err != nil {
		templateStatus = err.Error()
	}

	_, linkErr := refsheet.ExportURL(s.cfg.SheetLink)

	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"sessions":         s.sessions.Len(),
		"template":         templateStatus,
		"sheet_link_valid": linkErr == nil,
	})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	defaultRows := s.cfg.DefaultRowCount
	if defaultRows == 0 {
		defaultRows = DefaultRowCount
	}

	req := createSessionRequest{RowCount: defaultRows}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if req.RowCount == 0 {
			req.RowCount = defaultRows
		}
	}

	session := s.sessions.Create(req.RowCount)
	s.log.Info("session created",
		zap.String("session_id", session.ID),
		zap.Int("row_count", session.Table.Len()),
	)

	c.JSON(http.StatusCreated, newSessionResponse(session))
}

// lookupSession resolves the :id path param; a miss writes the 404 itself.
func (s *Server) lookupSession(c *gin.Context) (*Session, bool) {
	id := c.Param("id")
	session, ok := s.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}

func (s *Server) handleGetSession(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(session))
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	s.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSetRows(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	var req setRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if len(req.Rows) > rowtable.MaxRows {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many rows: %d (max %d)", len(req.Rows), rowtable.MaxRows),
		})
		return
	}

	session.Table.Resize(len(req.Rows))
	if len(req.Rows) == 0 {
		// Resize clamps to the one-row minimum; make that row blank too.
		session.Table.Clear()
	}
	for i, row := range req.Rows {
		if i >= session.Table.Len() {
			break
		}
		_ = session.Table.SetInput(i, row.SKU, row.NewPrice)
	}

	c.JSON(http.StatusOK, newSessionResponse(session))
}

func (s *Server) handleSetRowCount(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	var req setRowCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	session.Table.Resize(req.RowCount)
	c.JSON(http.StatusOK, newSessionResponse(session))
}

func (s *Server) handleRefresh(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	var req refreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	link := req.SheetLink
	if link == "" {
		link = session.SheetLink
	}
	if link == "" {
		link = s.cfg.SheetLink
	}

	if err := s.resolver.Resolve(c.Request.Context(), link, session.Table); err != nil {
		s.writeError(c, err)
		return
	}
	session.SheetLink = link

	s.log.Info("session refreshed",
		zap.String("session_id", session.ID),
		zap.Int("row_count", session.Table.Len()),
	)
	c.JSON(http.StatusOK, newSessionResponse(session))
}

func (s *Server) handleValidation(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	result := validation.Validate(session.Table.Rows(), s.policy)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleDownload(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	var req downloadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	result := validation.Validate(session.Table.Rows(), s.policy)
	if !result.OK() {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "validation failed",
			"validation": result,
		})
		return
	}
	if result.NeedsConfirmation() && !req.ConfirmUnpublished {
		c.JSON(http.StatusConflict, gin.H{
			"error":                 "unpublished SKUs need confirmation",
			"confirmation_required": true,
			"validation":            result,
		})
		return
	}

	workbook, err := s.writer.Fill(result.WritableRows)
	if err != nil {
		s.writeError(c, err)
		return
	}

	fileName := utils.ResolveFileName(req.FileName)
	s.log.Info("workbook generated",
		zap.String("session_id", session.ID),
		zap.String("file_name", fileName),
		zap.Int("rows", len(result.WritableRows)),
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, workbook.Bytes())
}
