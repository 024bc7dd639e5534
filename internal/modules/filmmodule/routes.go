package filmmodule

import (
	"github.com/gin-gonic/gin"

	"github.com/mantonx/cinevault/internal/middleware"
	"github.com/mantonx/cinevault/internal/policy"
)

// RegisterRoutes mounts /films. Reads are public.
func (m *Module) RegisterRoutes(router gin.IRouter) {
	films := router.Group("/films")
	{
		films.GET("", m.handler.ListFilms)
		films.GET("/:id", m.handler.GetFilm)

		films.POST("", middleware.RequireAuth(), middleware.Authorize(policy.ActionCreate, policy.KindFilm), m.handler.CreateFilm)
		films.PATCH("/:id", middleware.RequireAuth(), middleware.Authorize(policy.ActionUpdate, policy.KindFilm), m.handler.UpdateFilm)
		films.DELETE("/:id", middleware.RequireAuth(), middleware.Authorize(policy.ActionDelete, policy.KindFilm), m.handler.DeleteFilm)
		films.PUT("/:id/genres", middleware.RequireAuth(), middleware.Authorize(policy.ActionSyncRelations, policy.KindFilm), m.handler.SyncGenres)
		films.PUT("/:id/credits", middleware.RequireAuth(), middleware.Authorize(policy.ActionSyncRelations, policy.KindFilm), m.handler.SyncCredits)
	}
}
