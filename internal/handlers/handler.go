package handlers

import (
	"net/http"

	_ "house_rental/docs"
	"house_rental/internal/logger"
	"house_rental/internal/service"
	"house_rental/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	uploads  http.FileSystem
	// maxUploadBody caps a photo upload request body in bytes
	maxUploadBody int64
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, maxUploadBody: defaultMaxUploadBody}
}

// WithUploads serves stored photos from fs under /uploads.
func (h *Handler) WithUploads(fs http.FileSystem) *Handler {
	h.uploads = fs
	return h
}

// WithUploadLimits sizes the upload body cap to the largest request the
// limits allow: MaxFiles files of MaxFileBytes each plus form overhead.
func (h *Handler) WithUploadLimits(l service.UploadLimits) *Handler {
	if l.MaxFileBytes > 0 {
		files := int64(l.MaxFiles)
		if files < 1 {
			files = 1
		}
		h.maxUploadBody = files*(l.MaxFileBytes+multipartPartOverhead) + multipartFormOverhead
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true
	useJSONFieldNames()

	router := gin.New()
	// an accepted upload is parsed fully in memory, never spilled to temp files
	router.MaxMultipartMemory = h.maxUploadBody
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.uploads != nil {
		router.StaticFS(storage.PublicPrefix, h.uploads)
	}

	api := router.Group("/api")
	{
		h.registerUserRoutes(api)
		h.registerHouseRoutes(api)
		h.registerPhotoRoutes(api)
		h.registerCatalogRoutes(api)
		api.GET("/activity", h.userIdMiddleware, h.listActivity)
	}

	router.GET("/ws/activity", h.userIdMiddleware, h.wsActivity)

	return router
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.POST("/register", h.register)
		users.POST("/login", h.login)
		users.GET("/:userId/profiles", h.userIdMiddleware, h.getProfile)
		users.PUT("/:userId/profiles", h.userIdMiddleware, h.updateProfile)
	}
}

func (h *Handler) registerHouseRoutes(api *gin.RouterGroup) {
	houses := api.Group("/houses")
	{
		houses.GET("", h.listHouses)
		houses.GET("/:houseId", h.getHouse)
		houses.POST("", h.userIdMiddleware, h.createHouse)
		houses.PUT("/:houseId", h.userIdMiddleware, h.updateHouse)
		houses.DELETE("/:houseId", h.userIdMiddleware, h.deleteHouse)
	}
	api.GET("/my_houses", h.userIdMiddleware, h.listMyHouses)
}

func (h *Handler) registerPhotoRoutes(api *gin.RouterGroup) {
	photos := api.Group("/house/photos")
	{
		photos.GET("", h.listPhotos)
		photos.GET("/:photoId", h.getPhoto)
		// guard runs before the multipart body is parsed
		photos.POST("", h.userIdMiddleware, h.uploadPhotos)
	}
}

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	amenities := api.Group("/amenities")
	{
		amenities.GET("", h.listAmenities)
		amenities.POST("", h.userIdMiddleware, h.createAmenity)
		amenities.DELETE("/:amenityId", h.userIdMiddleware, h.deleteAmenity)
	}

	location := api.Group("/location")
	{
		location.POST("", h.userIdMiddleware, h.createLocation)
		location.GET("/:locationId", h.getLocation)
	}
}
