package transformers

import (
	"time"

	"ihome-rentals/internal/models"
)

const ctimeLayout = "2006-01-02 15:04:05"

type houseTransformer struct {
	imagePrefix string
}

// NewHouseTransformer builds projections, prefixing stored image names with imagePrefix.
func NewHouseTransformer(imagePrefix string) HouseTransformer {
	return &houseTransformer{imagePrefix: imagePrefix}
}

func (t *houseTransformer) imageURL(name string) string {
	if name == "" {
		return ""
	}
	return t.imagePrefix + name
}

func (t *houseTransformer) Summary(row models.HouseRow) models.HouseSummary {
	return models.HouseSummary{
		HouseID:    row.ID,
		Title:      row.Title,
		Price:      row.Price,
		AreaName:   row.AreaName,
		ImgURL:     t.imageURL(row.IndexImageURL),
		RoomCount:  row.RoomCount,
		OrderCount: row.OrderCount,
		Address:    row.Address,
		UserAvatar: t.imageURL(row.OwnerAvatar),
		Ctime:      row.CreateTime.Format(models.DateLayout),
	}
}

func (t *houseTransformer) Summaries(rows []models.HouseRow) []models.HouseSummary {
	summaries := make([]models.HouseSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, t.Summary(row))
	}
	return summaries
}

func (t *houseTransformer) Detail(rec *models.HouseDetailRecord) models.HouseDetail {
	h := rec.House
	detail := models.HouseDetail{
		HouseID:    h.ID,
		UserID:     h.UserID,
		UserName:   rec.Owner.Name,
		UserAvatar: t.imageURL(rec.Owner.AvatarURL),
		Title:      h.Title,
		Price:      h.Price,
		Address:    h.Address,
		RoomCount:  h.RoomCount,
		Acreage:    h.Acreage,
		Unit:       h.Unit,
		Capacity:   h.Capacity,
		Beds:       h.Beds,
		Deposit:    h.Deposit,
		MinDays:    h.MinDays,
		MaxDays:    h.MaxDays,
		OrderCount: h.OrderCount,
		ImgURLs:    make([]string, 0, len(rec.ImageURLs)),
		Facilities: append([]int64{}, rec.Facilities...),
		Comments:   make([]models.HouseComment, 0, len(rec.Comments)),
	}
	for _, url := range rec.ImageURLs {
		detail.ImgURLs = append(detail.ImgURLs, t.imageURL(url))
	}
	for _, c := range rec.Comments {
		detail.Comments = append(detail.Comments, models.HouseComment{
			UserName: c.UserName,
			Content:  c.Content,
			Ctime:    c.CreateTime.Format(ctimeLayout),
		})
	}
	return detail
}

func (t *houseTransformer) NewHouse(ownerID int64, req *models.CreateHouseRequest) *models.House {
	return &models.House{
		UserID:     ownerID,
		AreaID:     req.AreaID,
		Title:      req.Title,
		Address:    req.Address,
		Price:      req.Price,
		RoomCount:  req.RoomCount,
		Acreage:    req.Acreage,
		Unit:       req.Unit,
		Capacity:   req.Capacity,
		Beds:       req.Beds,
		Deposit:    req.Deposit,
		MinDays:    req.MinDays,
		MaxDays:    req.MaxDays,
		CreateTime: time.Now().UTC(),
	}
}
