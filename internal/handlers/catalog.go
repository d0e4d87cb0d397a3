package handlers

import (
	"net/http"

	"house_rental/internal/service"

	"github.com/gin-gonic/gin"
)

type AmenityRequest struct {
	Name        string `json:"name" binding:"required" example:"WiFi"`
	Description string `json:"description" example:"100 Mbit/s"`
}

type LocationRequest struct {
	Address   string  `json:"address" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Country   string  `json:"country" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

// @Summary      Create amenity
// @Tags         amenities
// @Accept       json
// @Produce      json
// @Param        body  body      AmenityRequest  true  "Amenity"
// @Success      201   {object}  models.Amenity
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/amenities [post]
// @Security     BearerAuth
func (h *Handler) createAmenity(c *gin.Context) {
	var req AmenityRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	a, err := h.services.Amenities.Create(c.Request.Context(), service.AmenityInput{Name: req.Name, Description: req.Description})
	if err != nil {
		h.respondError(c, err, "amenity_create_failed")
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary      List amenities
// @Tags         amenities
// @Produce      json
// @Success      200  {array}   models.Amenity
// @Failure      500  {object}  map[string]string
// @Router       /api/amenities [get]
func (h *Handler) listAmenities(c *gin.Context) {
	as, err := h.services.Amenities.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "amenity_list_failed")
		return
	}
	c.JSON(http.StatusOK, as)
}

// @Summary      Delete amenity
// @Tags         amenities
// @Produce      json
// @Param        amenityId  path      string  true  "Amenity id"
// @Success      200        {object}  models.Amenity
// @Failure      401        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/amenities/{amenityId} [delete]
// @Security     BearerAuth
func (h *Handler) deleteAmenity(c *gin.Context) {
	a, err := h.services.Amenities.Delete(c.Request.Context(), c.Param("amenityId"))
	if err != nil {
		h.respondError(c, err, "amenity_delete_failed", "amenity_id", c.Param("amenityId"))
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary      Create location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body      LocationRequest  true  "Location"
// @Success      201   {object}  models.Location
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/location [post]
// @Security     BearerAuth
func (h *Handler) createLocation(c *gin.Context) {
	var req LocationRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	l, err := h.services.Locations.Create(c.Request.Context(), service.LocationInput{
		Address:   req.Address,
		City:      req.City,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		h.respondError(c, err, "location_create_failed")
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary      Get location
// @Tags         locations
// @Produce      json
// @Param        locationId  path      string  true  "Location id"
// @Success      200         {object}  models.Location
// @Failure      404         {object}  map[string]string
// @Router       /api/location/{locationId} [get]
func (h *Handler) getLocation(c *gin.Context) {
	l, err := h.services.Locations.Get(c.Request.Context(), c.Param("locationId"))
	if err != nil {
		h.respondError(c, err, "location_get_failed", "location_id", c.Param("locationId"))
		return
	}
	c.JSON(http.StatusOK, l)
}
