package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fekuna/textile-erp-service/internal/upload"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const formField = "images"

type UploadHandler struct {
	dir      string
	maxFiles int
	logger   logger.ZapLogger
}

func NewUploadHandler(dir string, maxFiles int, log logger.ZapLogger) *UploadHandler {
	if maxFiles <= 0 {
		maxFiles = 5
	}
	return &UploadHandler{
		dir:      dir,
		maxFiles: maxFiles,
		logger:   log,
	}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.UploadImages)
}

func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		httpx.BadRequest(c, "expected multipart form with field \""+formField+"\"")
		return
	}
	files := form.File[formField]
	if len(files) == 0 {
		httpx.BadRequest(c, "no images uploaded")
		return
	}
	if len(files) > h.maxFiles {
		httpx.BadRequest(c, fmt.Sprintf("at most %d images per upload", h.maxFiles))
		return
	}
	for _, f := range files {
		if !upload.IsImage(f.Filename) {
			httpx.BadRequest(c, fmt.Sprintf("%s is not an image (jpg, jpeg, png, gif, webp)", f.Filename))
			return
		}
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		name := upload.FileName(f.Filename, time.Now())
		if err := c.SaveUploadedFile(f, filepath.Join(h.dir, name)); err != nil {
			h.logger.Error("failed to save upload", zap.String("file", f.Filename), zap.Error(err))
			httpx.Error(c, h.logger, err)
			return
		}
		paths = append(paths, upload.URLPrefix+"/"+name)
	}
	httpx.Created(c, gin.H{"paths": paths})
}
