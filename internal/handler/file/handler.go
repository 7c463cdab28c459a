package file

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/anesthesia-api/internal/filestore"
	"github.com/jwalitptl/anesthesia-api/internal/handler"
)

type Handler struct {
	store filestore.Store
}

func NewHandler(store filestore.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/files/:filename", h.Download)
}

// Download streams a stored attachment back by its stored name. Any
// authenticated practitioner may retrieve any stored filename; names are
// not scoped to the uploading owner.
func (h *Handler) Download(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))

	rc, err := h.store.Open(filename)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("file not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to open file"))
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("failed to stream file")
	}
}
