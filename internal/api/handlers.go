package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalvoice/internal/ai"
	"legalvoice/internal/repository"
	"legalvoice/internal/storage"
	"legalvoice/internal/utils"
)

// Pipeline is the audio-to-template pipeline the handlers drive.
type Pipeline interface {
	Transcribe(ctx context.Context, path string) (string, error)
	MergeTemplate(ctx context.Context, spokenText, existingTemplate string) (ai.MergeResult, error)
	TranscribeAndMerge(ctx context.Context, path, existingTemplate string) (ai.MergeResult, error)
}

type Handler struct {
	pipeline Pipeline
	docs     repository.DocumentRepository // nil when no store is configured
	uploads  *storage.Store // transient audio, removed after each request
	public   string         // served under /uploads
}

func NewHandler(pipeline Pipeline, docs repository.DocumentRepository, uploads *storage.Store, publicDir string) *Handler {
	return &Handler{
		pipeline: pipeline,
		docs:     docs,
		uploads:  uploads,
		public:   publicDir,
	}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	// Health check
	r.GET("/health", h.healthCheck)

	r.Static("/uploads", h.public)

	api := r.Group("/api")
	{
		api.POST("/transcribe", h.transcribe)
		api.POST("/merge", h.mergeTemplate)
		api.POST("/audio-merge", h.audioMerge)

		docs := api.Group("/documents", h.requireDocuments)
		docs.GET("", h.listDocuments)
		docs.GET("/export", h.exportDocuments)
		docs.GET("/:id", h.getDocument)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.Error(c, http.StatusNotFound, "route not found")
	})
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":    "ok",
		"service":   "legalvoice",
		"documents": h.docs != nil,
	})
}
