package services

import (
	"github.com/TommyTam2012/hotel-booking-api/config"
	"github.com/TommyTam2012/hotel-booking-api/models"
)

type RoomTypeService struct{}

func (s RoomTypeService) Create(rt *models.RoomType) error {
	return config.DB.Create(rt).Error
}

func (s RoomTypeService) GetAll() ([]models.RoomType, error) {
	var types []models.RoomType
	err := config.DB.Find(&types).Error
	return types, err
}

func (s RoomTypeService) GetByID(id int) (models.RoomType, error) {
	var rt models.RoomType
	err := config.DB.First(&rt, id).Error
	return rt, err
}

func (s RoomTypeService) Delete(id int) error {
	return config.DB.Delete(&models.RoomType{}, id).Error
}
