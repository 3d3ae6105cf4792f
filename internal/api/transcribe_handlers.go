package api

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"legalvoice/internal/ai"
	"legalvoice/internal/apperr"
	"legalvoice/internal/middleware"
	"legalvoice/internal/storage"
	"legalvoice/internal/utils"
)

type mergeRequest struct {
	SpokenText       string `json:"spokenText"`
	ExistingTemplate string `json:"existingTemplate"`
}

// transcribe handles POST /api/transcribe
func (h *Handler) transcribe(c *gin.Context) {
	log := middleware.Log(c)

	upload, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer h.removeUpload(c, upload)

	text, err := h.pipeline.Transcribe(c.Request.Context(), upload.Path)
	if err != nil {
		log.WithError(err).Warn("transcription failed")
		utils.ErrorFrom(c, err)
		return
	}

	utils.Success(c, gin.H{
		"transcript": text,
		"file_name":  upload.OriginalName,
	})
}

// mergeTemplate handles POST /api/merge
func (h *Handler) mergeTemplate(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.SpokenText) == "" {
		c.JSON(http.StatusBadRequest, ai.MergeResult{
			SpokenText:       req.SpokenText,
			OriginalTemplate: req.ExistingTemplate,
			Error:            "spokenText is required",
		})
		return
	}

	result, err := h.pipeline.MergeTemplate(c.Request.Context(), req.SpokenText, req.ExistingTemplate)
	if err != nil {
		middleware.Log(c).WithError(err).Warn("merge failed")
	}
	c.JSON(apperr.HTTPStatus(err), result)
}

// audioMerge handles POST /api/audio-merge: transcribe then merge
func (h *Handler) audioMerge(c *gin.Context) {
	upload, ok := h.saveUpload(c)
	if !ok {
		return
	}
	defer h.removeUpload(c, upload)

	existing := c.PostForm("existingTemplate")

	result, err := h.pipeline.TranscribeAndMerge(c.Request.Context(), upload.Path, existing)
	if err != nil {
		middleware.Log(c).WithError(err).Warn("audio merge failed")
	}
	c.JSON(apperr.HTTPStatus(err), result)
}

// saveUpload stores the request's audio part. On failure the response has
// already been written.
func (h *Handler) saveUpload(c *gin.Context) (*storage.Upload, bool) {
	file, err := formAudioFile(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "audio_file is required. Error: "+err.Error())
		return nil, false
	}

	upload, err := h.uploads.Save(file)
	if err != nil {
		middleware.Log(c).WithError(err).Warn("failed to save upload")
		if apperr.HTTPStatus(err) == http.StatusInternalServerError {
			utils.Error(c, http.StatusInternalServerError, "failed to save audio file")
		} else {
			utils.ErrorFrom(c, err)
		}
		return nil, false
	}

	middleware.Log(c).WithField("upload_id", upload.ID).WithField("size", upload.Size).Info("audio uploaded")
	return upload, true
}

func (h *Handler) removeUpload(c *gin.Context, upload *storage.Upload) {
	if err := h.uploads.Remove(upload); err != nil {
		middleware.Log(c).WithError(err).Warn("failed to remove upload")
	}
}

// formAudioFile tries the accepted field names in order
func formAudioFile(c *gin.Context) (*multipart.FileHeader, error) {
	var err error
	for _, field := range []string{"audio_file", "audio", "file"} {
		var file *multipart.FileHeader
		if file, err = c.FormFile(field); err == nil {
			return file, nil
		}
	}
	return nil, err
}
