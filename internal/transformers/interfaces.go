package transformers

import (
	"ihome-rentals/internal/models"
)

type HouseTransformer interface {
	Summary(row models.HouseRow) models.HouseSummary
	Summaries(rows []models.HouseRow) []models.HouseSummary
	Detail(rec *models.HouseDetailRecord) models.HouseDetail
	NewHouse(ownerID int64, req *models.CreateHouseRequest) *models.House
}

type OrderTransformer interface {
	View(row models.OrderRow) models.OrderView
	Views(rows []models.OrderRow) []models.OrderView
}
