package game

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/room", h.CreateRoomHandler)
	r.GET("/join/:room_id", h.JoinRoomHandler)
	r.POST("/image", h.UploadImageHandler)
}
