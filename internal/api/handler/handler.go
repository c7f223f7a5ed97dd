package handler

import (
	"github.com/gin-gonic/gin"

	"samadhan/backend/internal/eventhub"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/storage"
)

// identityKey — ключ у gin.Context, під яким middleware зберігає
// автентифікованого користувача.
const identityKey = "identity"

// Handler містить залежності всіх HTTP-обробників.
type Handler struct {
	Storage   storage.Storage
	Hub       *eventhub.Manager
	JWTSecret []byte
}

func NewHandler(s storage.Storage, hub *eventhub.Manager, jwtSecret []byte) *Handler {
	return &Handler{
		Storage:   s,
		Hub:       hub,
		JWTSecret: jwtSecret,
	}
}

// RegisterRoutes прив'язує всі маршрути API до роутера. Усе, крім
// реєстрації, логіна та health, вимагає автентифікації.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.POST("/auth/register/", h.Register)
	router.POST("/auth/login/", h.Login)

	authed := router.Group("/", h.AuthRequired())

	authed.GET("/departments/", h.ListDepartments)
	authed.GET("/departments/:id/", h.GetDepartment)

	authed.GET("/grievances/", h.ListGrievances)
	authed.POST("/grievances/", h.CreateGrievance)
	authed.GET("/grievances/:id/", h.GetGrievance)
	authed.PUT("/grievances/:id/", h.UpdateGrievance)
	authed.PATCH("/grievances/:id/", h.PatchGrievance)
	authed.DELETE("/grievances/:id/", h.DeleteGrievance)
	authed.GET("/grievances/:id/comments/", h.ListComments)
	authed.POST("/grievances/:id/comment/", h.CreateComment)
	authed.POST("/grievances/:id/set_status/", h.SetStatus)
	authed.POST("/grievances/:id/assign/", h.Assign)

	authed.GET("/ws", h.ServeEventFeed)
}

// identity повертає автентифікованого користувача з контексту запиту.
func identity(c *gin.Context) *models.User {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
