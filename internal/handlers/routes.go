package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every handler under api
func RegisterRoutes(api *gin.RouterGroup, eventos *EventoHandler, palestrantes *PalestranteHandler, store *StoreHandler) {
	eventoRoutes := api.Group("/eventos")
	{
		eventoRoutes.GET("", eventos.GetAllEventos)
		eventoRoutes.POST("", eventos.CreateEvento)
		eventoRoutes.GET("/tema/:tema", eventos.GetEventosByTema)
		eventoRoutes.GET("/:id", eventos.GetEventoByID)
		eventoRoutes.PUT("/:id", eventos.UpdateEvento)
		eventoRoutes.DELETE("/:id", eventos.DeleteEvento)
		eventoRoutes.POST("/:id/imagem", eventos.UploadImagem)
		eventoRoutes.POST("/:id/palestrantes/:palestranteId", eventos.AddPalestrante)
		eventoRoutes.DELETE("/:id/palestrantes/:palestranteId", eventos.RemovePalestrante)
	}

	palestranteRoutes := api.Group("/palestrantes")
	{
		palestranteRoutes.GET("", palestrantes.GetPalestrantes)
		palestranteRoutes.POST("", palestrantes.CreatePalestrante)
		palestranteRoutes.GET("/:id", palestrantes.GetPalestranteByID)
		palestranteRoutes.PUT("/:id", palestrantes.UpdatePalestrante)
		palestranteRoutes.DELETE("/:id", palestrantes.DeletePalestrante)
		palestranteRoutes.POST("/:id/imagem", palestrantes.UploadImagem)
	}

	storeRoutes := api.Group("/store")
	{
		storeRoutes.GET("/eventos", store.ListEventos)
		storeRoutes.GET("/eventos/:id", store.GetEvento)
	}
}
