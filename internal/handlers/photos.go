package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	hr "house_rental"
	"house_rental/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	photoField   = "Image"
	houseIDField = "houseId"

	defaultMaxUploadBody  = 8 << 20
	multipartPartOverhead = 4 << 10
	multipartFormOverhead = 64 << 10
)

// @Summary      Upload house photos
// @Description  Multipart upload on field "Image". When houseId is set the stored paths are appended to that house.
// @Tags         photos
// @Accept       mpfd
// @Produce      json
// @Param        Image    formData  file    true   "Image file"
// @Param        houseId  formData  string  false  "House to attach the photo to"
// @Success      201      {object}  map[string][]string  "housePhotos"
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      413      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/house/photos [post]
// @Security     BearerAuth
func (h *Handler) uploadPhotos(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBody)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = hr.Errorf(hr.ErrValidation, "upload exceeds %d bytes", tooLarge.Limit)
			h.respondErrorStatus(c, http.StatusRequestEntityTooLarge, err, "photo_upload_too_large")
			return
		}
		h.respondError(c, hr.Errorf(hr.ErrValidation, "expected multipart/form-data: %v", err), "photo_upload_bad_form")
		return
	}

	headers := form.File[photoField]
	files := make([]service.UploadFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, service.UploadFile{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		})
	}

	var houseID string
	if vs := form.Value[houseIDField]; len(vs) > 0 {
		houseID = strings.TrimSpace(vs[0])
	}

	paths, err := h.services.Photos.Upload(c.Request.Context(), currentUser(c), service.UploadRequest{
		Files:   files,
		HouseID: houseID,
	})
	if err != nil {
		h.respondError(c, err, "photo_upload_failed", "files", len(files), "house_id", houseID)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"housePhotos": paths})
}

// @Summary      List house photos
// @Tags         photos
// @Produce      json
// @Success      200  {array}   models.HousePhoto
// @Failure      500  {object}  map[string]string
// @Router       /api/house/photos [get]
func (h *Handler) listPhotos(c *gin.Context) {
	photos, err := h.services.Photos.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "photo_list_failed")
		return
	}
	c.JSON(http.StatusOK, photos)
}

// @Summary      Get house photo
// @Tags         photos
// @Produce      json
// @Param        photoId  path      string  true  "Photo id"
// @Success      200      {object}  models.HousePhoto
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/house/photos/{photoId} [get]
func (h *Handler) getPhoto(c *gin.Context) {
	photo, err := h.services.Photos.Get(c.Request.Context(), c.Param("photoId"))
	if err != nil {
		h.respondError(c, err, "photo_get_failed", "photo_id", c.Param("photoId"))
		return
	}
	c.JSON(http.StatusOK, photo)
}
