// Package http exposes the entry store's REST surface over gin.
package http

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dkomarov/garagehub/internal/logging"
	"github.com/dkomarov/garagehub/internal/server/models"
)

// Garage is the slice of the garage service the handlers call.
type Garage interface {
	UserCars(ctx context.Context, ownerID string) ([]*models.Car, error)
	CatalogMods(ctx context.Context, category string) ([]models.Mod, error)
	Create(ctx context.Context, ownerID string, car *models.Car) (*models.Car, error)
	Update(ctx context.Context, ownerID string, carID int64, car *models.Car) error
	Delete(ctx context.Context, ownerID string, carID int64) error
}

// Presigner issues presigned upload URLs.
type Presigner interface {
	GetPresignedPutURL(ctx context.Context, userID, fileName, fileType string) (url, key string, err error)
}

// Handler carries the dependencies the route handlers share.
type Handler struct {
	garage  Garage
	presign Presigner
	logger  logging.Logger
}

func NewHandler(garage Garage, presign Presigner, logger logging.Logger) *Handler {
	return &Handler{garage: garage, presign: presign, logger: logger}
}

// NewRouter builds the gin engine with CORS, recovery and the bearer-auth
// group. secretKey verifies the tokens minted by the external auth service.
func NewRouter(h *Handler, secretKey string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/healthz", h.Healthz)

	garage := r.Group("/garage")
	garage.Use(BearerAuth(secretKey))

	garage.GET("/user", h.UserCars)
	garage.POST("", h.CreateCar)
	garage.PUT("/update/:entryID", h.UpdateCar)
	garage.DELETE("/delete", h.DeleteCar)
	garage.GET("/mods", h.CatalogMods)
	garage.GET("/mods/:category", h.CatalogMods)
	garage.GET("/s3/presigned-url", h.PresignedURL)

	return r
}
