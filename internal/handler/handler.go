package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/usecase"
)

type Handler struct {
	backup *usecase.BackupUseCase
}

func New(backup *usecase.BackupUseCase) *Handler {
	return &Handler{backup: backup}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Backup runs
	r.POST("/runs", h.TriggerRun)
	r.GET("/runs", h.ListRuns)
	r.GET("/runs/:id", h.GetRun)

	// Remote archives
	r.GET("/archives", h.ListArchives)
}
