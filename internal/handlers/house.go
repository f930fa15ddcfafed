package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/middleware"
	"ihome-rentals/internal/models"
	"ihome-rentals/internal/services"
	"ihome-rentals/internal/validators"

	"github.com/gin-gonic/gin"
)

type HouseHandler struct {
	houseService *services.HouseService
}

func NewHouseHandler(houseService *services.HouseService) *HouseHandler {
	return &HouseHandler{houseService: houseService}
}

// ListHouses serves GET /houses?aid=&sd=&ed=&sk=&p=
func (h *HouseHandler) ListHouses(c *gin.Context) {
	data, err := h.houseService.ListHouses(c.Request.Context(), validators.ListingParams{
		AreaID:    c.Query("aid"),
		StartDate: c.Query("sd"),
		EndDate:   c.Query("ed"),
		SortKey:   c.Query("sk"),
		Page:      c.Query("p"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	respondRaw(c, http.StatusOK, data)
}

// GetHouseDetail serves GET /houses/:house_id. The response carries the
// requester's id, or -1 for anonymous requests, next to the house.
func (h *HouseHandler) GetHouseDetail(c *gin.Context) {
	id, ok := pathID(c, "house_id")
	if !ok {
		c.Error(apperrors.NewParamError(fmt.Sprintf("invalid house id %q", c.Param("house_id")), nil))
		return
	}

	data, err := h.houseService.GetHouseDetail(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	var buf bytes.Buffer
	buf.WriteString(`{"user_id":`)
	buf.WriteString(strconv.FormatInt(middleware.ActorID(c), 10))
	buf.WriteString(`,"house":`)
	buf.Write(data)
	buf.WriteByte('}')
	respondRaw(c, http.StatusOK, buf.Bytes())
}

// HomeIndex serves GET /houses/index
func (h *HouseHandler) HomeIndex(c *gin.Context) {
	data, err := h.houseService.HomeIndex(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondRaw(c, http.StatusOK, data)
}

// ListAreas serves GET /areas
func (h *HouseHandler) ListAreas(c *gin.Context) {
	data, err := h.houseService.ListAreas(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	respondRaw(c, http.StatusOK, data)
}

// CreateHouse serves POST /houses
func (h *HouseHandler) CreateHouse(c *gin.Context) {
	var req models.CreateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewParamError("invalid house body", err))
		return
	}

	id, err := h.houseService.CreateHouse(c.Request.Context(), middleware.ActorID(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"house_id": id})
}

// ListOwnerHouses serves GET /user/houses
func (h *HouseHandler) ListOwnerHouses(c *gin.Context) {
	houses, err := h.houseService.ListOwnerHouses(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		c.Error(err)
		return
	}
	respond(c, http.StatusOK, gin.H{"houses": houses})
}
