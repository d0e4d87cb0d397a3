package handlers

import (
	"net/http"

	"house_rental/internal/service"

	"github.com/gin-gonic/gin"
)

// HouseRequest is the create payload.
type HouseRequest struct {
	Name          string   `json:"name" binding:"required" example:"Cabin"`
	Description   string   `json:"description" example:"Quiet place by the lake"`
	NumberOfRooms int      `json:"numberOfRooms" binding:"gte=0" example:"2"`
	MaxGuest      int      `json:"maxGuest" binding:"gte=0" example:"4"`
	PricePerNight float64  `json:"pricePerNight" binding:"gte=0" example:"100"`
	Location      string   `json:"location"`
	Amenities     []string `json:"amenities"`
	SharedBetween int      `json:"sharedBetween" binding:"gte=0"`
	Photos        []string `json:"photos"`
}

// HouseUpdateRequest merges only the fields present in the body.
type HouseUpdateRequest struct {
	Name          *string   `json:"name" binding:"omitempty,min=1"`
	Description   *string   `json:"description"`
	NumberOfRooms *int      `json:"numberOfRooms" binding:"omitempty,gte=0"`
	MaxGuest      *int      `json:"maxGuest" binding:"omitempty,gte=0"`
	PricePerNight *float64  `json:"pricePerNight" binding:"omitempty,gte=0"`
	Location      *string   `json:"location"`
	Amenities     *[]string `json:"amenities"`
	SharedBetween *int      `json:"sharedBetween" binding:"omitempty,gte=0"`
	Photos        *[]string `json:"photos"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Create house
// @Tags         houses
// @Accept       json
// @Produce      json
// @Param        body  body      HouseRequest  true  "House"
// @Success      201   {object}  models.House
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/houses [post]
// @Security     BearerAuth
func (h *Handler) createHouse(c *gin.Context) {
	var req HouseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	house, err := h.services.Houses.Create(c.Request.Context(), currentUser(c), service.HouseInput{
		Name:          req.Name,
		Description:   req.Description,
		NumberOfRooms: req.NumberOfRooms,
		MaxGuest:      req.MaxGuest,
		PricePerNight: req.PricePerNight,
		Location:      req.Location,
		Amenities:     req.Amenities,
		SharedBetween: req.SharedBetween,
		Photos:        req.Photos,
	})
	if err != nil {
		h.respondError(c, err, "house_create_failed", "owner", currentUser(c))
		return
	}
	c.JSON(http.StatusCreated, house)
}

// @Summary      List houses
// @Tags         houses
// @Produce      json
// @Success      200  {array}   models.House
// @Failure      500  {object}  map[string]string
// @Router       /api/houses [get]
func (h *Handler) listHouses(c *gin.Context) {
	houses, err := h.services.Houses.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "house_list_failed")
		return
	}
	c.JSON(http.StatusOK, houses)
}

// @Summary      Get house
// @Tags         houses
// @Produce      json
// @Param        houseId  path      string  true  "House id"
// @Success      200      {object}  models.House
// @Failure      404      {object}  map[string]string
// @Router       /api/houses/{houseId} [get]
func (h *Handler) getHouse(c *gin.Context) {
	house, err := h.services.Houses.Get(c.Request.Context(), c.Param("houseId"))
	if err != nil {
		h.respondError(c, err, "house_get_failed", "house_id", c.Param("houseId"))
		return
	}
	c.JSON(http.StatusOK, house)
}

// @Summary      List my houses
// @Tags         houses
// @Produce      json
// @Success      200  {array}   models.House
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/my_houses [get]
// @Security     BearerAuth
func (h *Handler) listMyHouses(c *gin.Context) {
	houses, err := h.services.Houses.ListByOwner(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err, "house_list_mine_failed", "owner", currentUser(c))
		return
	}
	c.JSON(http.StatusOK, houses)
}

// @Summary      Update house
// @Description  Only the owner may update. Fields absent from the body are left unchanged.
// @Tags         houses
// @Accept       json
// @Produce      json
// @Param        houseId  path      string              true  "House id"
// @Param        body     body      HouseUpdateRequest  true  "Fields to change"
// @Success      201      {object}  models.House
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/houses/{houseId} [put]
// @Security     BearerAuth
func (h *Handler) updateHouse(c *gin.Context) {
	var req HouseUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	house, err := h.services.Houses.Update(c.Request.Context(), c.Param("houseId"), currentUser(c), service.HousePatch{
		Name:          req.Name,
		Description:   req.Description,
		NumberOfRooms: req.NumberOfRooms,
		MaxGuest:      req.MaxGuest,
		PricePerNight: req.PricePerNight,
		Location:      req.Location,
		Amenities:     req.Amenities,
		SharedBetween: req.SharedBetween,
		Photos:        req.Photos,
	})
	if err != nil {
		h.respondError(c, err, "house_update_failed", "house_id", c.Param("houseId"), "requester", currentUser(c))
		return
	}
	c.JSON(http.StatusCreated, house)
}

// @Summary      Delete house
// @Tags         houses
// @Produce      json
// @Param        houseId  path      string  true  "House id"
// @Success      200      {object}  models.House
// @Failure      401      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/houses/{houseId} [delete]
// @Security     BearerAuth
func (h *Handler) deleteHouse(c *gin.Context) {
	house, err := h.services.Houses.Delete(c.Request.Context(), c.Param("houseId"), currentUser(c))
	if err != nil {
		h.respondError(c, err, "house_delete_failed", "house_id", c.Param("houseId"), "requester", currentUser(c))
		return
	}
	c.JSON(http.StatusOK, house)
}
