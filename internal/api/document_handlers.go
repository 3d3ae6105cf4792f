package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalvoice/internal/export"
	"legalvoice/internal/middleware"
	"legalvoice/internal/model"
	"legalvoice/internal/repository"
	"legalvoice/internal/utils"
)

func (h *Handler) requireDocuments(c *gin.Context) {
	if h.docs == nil {
		utils.Error(c, http.StatusServiceUnavailable, "document store not configured")
		c.Abort()
		return
	}
	c.Next()
}

// listDocuments handles GET /api/documents
func (h *Handler) listDocuments(c *gin.Context) {
	docs, err := h.docs.List(c.Request.Context())
	if err != nil {
		middleware.Log(c).WithError(err).Error("failed to list documents")
		utils.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]model.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Response())
	}

	utils.Success(c, gin.H{
		"documents": out,
		"count":     len(out),
	})
}

// getDocument handles GET /api/documents/:id
func (h *Handler) getDocument(c *gin.Context) {
	doc, err := h.docs.GetByID(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		utils.Error(c, http.StatusBadRequest, repository.ErrInvalidID.Error())
		return
	case errors.Is(err, repository.ErrNotFound):
		utils.Error(c, http.StatusNotFound, repository.ErrNotFound.Error())
		return
	case err != nil:
		middleware.Log(c).WithError(err).Error("failed to get document")
		utils.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.Success(c, gin.H{"document": doc.Response()})
}

// exportDocuments handles GET /api/documents/export
func (h *Handler) exportDocuments(c *gin.Context) {
	docs, err := h.docs.List(c.Request.Context())
	if err != nil {
		middleware.Log(c).WithError(err).Error("failed to list documents for export")
		utils.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	buf, err := export.DocumentsXLSX(docs)
	if err != nil {
		middleware.Log(c).WithError(err).Error("failed to build workbook")
		utils.Error(c, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="documents.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
