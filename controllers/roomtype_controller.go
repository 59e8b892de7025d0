package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/TommyTam2012/hotel-booking-api/models"
	"github.com/TommyTam2012/hotel-booking-api/services"
	"github.com/TommyTam2012/hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

var roomTypeSvc services.RoomTypeService

func GetRoomTypes(c *gin.Context) {
	types, err := roomTypeSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve room types")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	rt.TypeName = strings.TrimSpace(rt.TypeName)
	if rt.TypeName == "" {
		utils.JSONError(c, http.StatusBadRequest, "typeName is required")
		return
	}
	if rt.BasePrice < 0 {
		utils.JSONError(c, http.StatusBadRequest, "basePrice must not be negative")
		return
	}

	if err := roomTypeSvc.Create(&rt); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room type")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func DeleteRoomType(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "room type id must be numeric")
		return
	}
	if err := roomTypeSvc.Delete(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room type")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room type deleted"})
}
