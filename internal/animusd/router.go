package animusd

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// initRouter installs the admin API on the gin engine. The surface is
// read-mostly introspection plus an on-demand reconcile.
func initRouter(engine *gin.Engine, s *runtimeServer) {
	v1 := engine.Group("/v1")

	v1.GET("/plugins", func(c *gin.Context) {
		type pluginInfo struct {
			Name       string `json:"name"`
			Version    string `json:"version"`
			Type       string `json:"type"`
			InstanceID string `json:"instanceId,omitempty"`
		}
		var out []pluginInfo
		for _, name := range s.manager.Registry().Names() {
			p, ok := s.manager.Registry().Get(name)
			if !ok {
				continue
			}
			out = append(out, pluginInfo{
				Name:       p.Name(),
				Version:    p.Version(),
				Type:       string(p.Type()),
				InstanceID: p.InstanceID(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"plugins": out})
	})

	v1.GET("/agents", func(c *gin.Context) {
		type agentInfo struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description,omitempty"`
			Model       string `json:"model,omitempty"`
			MaxTurns    int    `json:"maxTurns"`
		}
		ids := make([]string, 0, len(s.agents))
		for id := range s.agents {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out := make([]agentInfo, 0, len(ids))
		for _, id := range ids {
			def := s.agents[id]
			out = append(out, agentInfo{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				Model:       def.Model,
				MaxTurns:    def.MaxTurns,
			})
		}
		c.JSON(http.StatusOK, gin.H{"agents": out})
	})

	v1.GET("/models", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"providers": s.models.Names()})
	})

	v1.GET("/channels", func(c *gin.Context) {
		names := s.router.Channels()
		sort.Strings(names)
		c.JSON(http.StatusOK, gin.H{"channels": names})
	})

	v1.GET("/sync", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.lastSync)
	})

	v1.POST("/sync", func(c *gin.Context) {
		result := s.reconciler.Sync(c.Request.Context())
		s.lastSync = result
		c.JSON(http.StatusOK, result)
	})
}
