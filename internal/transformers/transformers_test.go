package transformers

import (
	"testing"
	"time"

	"ihome-rentals/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestHouseSummary(t *testing.T) {
	tr := NewHouseTransformer("http://img.example.com/")
	row := models.HouseRow{
		House: models.House{ID: 4, Title: "Loft", Price: 10000, RoomCount: 2, OrderCount: 3, Address: "2 Side St",
			IndexImageURL: "h4.jpg", CreateTime: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)},
		AreaName:    "Downtown",
		OwnerAvatar: "",
	}

	s := tr.Summary(row)
	assert.Equal(t, int64(4), s.HouseID)
	assert.Equal(t, int64(10000), s.Price)
	assert.Equal(t, "http://img.example.com/h4.jpg", s.ImgURL)
	assert.Equal(t, "", s.UserAvatar)
	assert.Equal(t, "2024-01-02", s.Ctime)
	assert.Equal(t, "Downtown", s.AreaName)
	assert.NotNil(t, tr.Summaries(nil))
}

func TestHouseDetail(t *testing.T) {
	tr := NewHouseTransformer("p/")
	rec := &models.HouseDetailRecord{
		House:      models.House{ID: 7, UserID: 3, Title: "Loft", Price: 10000, Deposit: 5000, OrderCount: 1},
		Owner:      models.User{ID: 3, Name: "lena", AvatarURL: "a.png"},
		ImageURLs:  []string{"1.jpg", "2.jpg"},
		Facilities: []int64{2, 5},
		Comments: []models.CommentRow{
			{UserName: "sam", Content: "quiet", CreateTime: time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)},
		},
	}

	d := tr.Detail(rec)
	assert.Equal(t, int64(7), d.HouseID)
	assert.Equal(t, "lena", d.UserName)
	assert.Equal(t, "p/a.png", d.UserAvatar)
	assert.Equal(t, []string{"p/1.jpg", "p/2.jpg"}, d.ImgURLs)
	assert.Equal(t, []int64{2, 5}, d.Facilities)
	assert.Equal(t, []models.HouseComment{{UserName: "sam", Content: "quiet", Ctime: "2024-02-01 09:30:00"}}, d.Comments)
}

func TestNewHouseKeepsMinorUnits(t *testing.T) {
	h := NewHouseTransformer("").NewHouse(3, &models.CreateHouseRequest{Title: "Loft", Price: 12345, Deposit: 678, AreaID: 2})
	assert.Equal(t, int64(3), h.UserID)
	assert.Equal(t, int64(12345), h.Price)
	assert.Equal(t, int64(678), h.Deposit)
	assert.False(t, h.CreateTime.IsZero())
}

func TestOrderView(t *testing.T) {
	tr := NewOrderTransformer("p/")
	row := models.OrderRow{
		Order: models.Order{ID: 9, BeginDate: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
			EndDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Days: 5, Amount: 50000,
			Status: models.StatusRejected, Comment: "under repair", CreateTime: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		HouseTitle:    "Loft",
		HouseImageURL: "h.jpg",
	}

	v := tr.View(row)
	assert.Equal(t, "2024-01-16", v.StartDate)
	assert.Equal(t, "2024-01-20", v.EndDate)
	assert.Equal(t, "p/h.jpg", v.ImgURL)
	assert.Equal(t, "REJECTED", v.Status)
	assert.Equal(t, "under repair", v.Comment)
	assert.Equal(t, "under repair", v.RejectionReason)
	assert.Empty(t, v.Review)

	row.Status = models.StatusComplete
	row.Comment = "lovely"
	v = tr.View(row)
	assert.Equal(t, "lovely", v.Review)
	assert.Empty(t, v.RejectionReason)
}
