package app

import (
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"visitor-reception/internal/broadcast"
	"visitor-reception/internal/config"
	"visitor-reception/internal/report"
	"visitor-reception/internal/routes"
	"visitor-reception/internal/utils"
	"visitor-reception/internal/visitor"
)

func securityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")

	// Disable caching
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Next()
}

// createRenderer composes the HTML pages from the shared layout.
func createRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromFiles("approve", "web/templates/layout.html.tmpl", "web/templates/approve.html.tmpl")
	r.AddFromFiles("error", "web/templates/layout.html.tmpl", "web/templates/error.html.tmpl")
	return r
}

// HTTPServer builds the gin engine with middleware and template renderer.
func HTTPServer(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.HTMLRender = createRenderer()

	r.Use(securityHeaders)
	r.Use(func(c *gin.Context) {
		c.Set("BaseURL", utils.GetBaseURL(c, cfg.BaseURL))
		c.Next()
	})
	r.Use(routes.ErrorHandler())

	return r
}

// RegisterRoutes wires all endpoints. The broadcaster and manager are
// per-process instances passed in explicitly.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, manager *visitor.Manager, exporter *report.Exporter, broadcaster *broadcast.Broadcaster) {
	routes.Health(r.Group("/"))

	rg := r.Group("/visitors")
	routes.Visitors(rg, manager, exporter, broadcaster, cfg.DataDir)

	// Stored photos and badge codes, served for the dashboard and for printing
	r.Static("/photos", filepath.Join(cfg.DataDir, "photos"))
	r.Static("/qrcodes", filepath.Join(cfg.DataDir, "qrcodes"))
}
