package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"globalbroadcast/models"
	"globalbroadcast/texture"
)

// SceneView is the globe state the handlers read.
type SceneView interface {
	View() models.GlobeResponse
	Surface() texture.Surface
}

type GlobeHandler struct {
	scene SceneView
}

func NewGlobeHandler(scene SceneView) *GlobeHandler {
	return &GlobeHandler{scene: scene}
}

// Globe returns the rotation angle and every station marker
func (h *GlobeHandler) Globe(c *gin.Context) {
	c.JSON(http.StatusOK, h.scene.View())
}

// Texture serves the surface image once loaded. Until then, or after a
// failed load, it describes the flat colour to paint instead.
func (h *GlobeHandler) Texture(c *gin.Context) {
	surface := h.scene.Surface()
	if surface.State == texture.SurfaceLoaded && surface.Texture != nil {
		c.Data(http.StatusOK, surface.Texture.ContentType, surface.Texture.Data)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state": surface.State,
		"color": surface.Color,
	})
}
