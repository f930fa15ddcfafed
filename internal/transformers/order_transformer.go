package transformers

import (
	"ihome-rentals/internal/models"
)

type orderTransformer struct {
	imagePrefix string
}

func NewOrderTransformer(imagePrefix string) OrderTransformer {
	return &orderTransformer{imagePrefix: imagePrefix}
}

func (t *orderTransformer) View(row models.OrderRow) models.OrderView {
	view := models.OrderView{
		OrderID:   row.ID,
		Title:     row.HouseTitle,
		StartDate: row.BeginDate.Format(models.DateLayout),
		EndDate:   row.EndDate.Format(models.DateLayout),
		Ctime:     row.CreateTime.Format(ctimeLayout),
		Days:      row.Days,
		Amount:    row.Amount,
		Status:    string(row.Status),
		Comment:   row.Comment,
	}
	if row.HouseImageURL != "" {
		view.ImgURL = t.imagePrefix + row.HouseImageURL
	}
	if review, ok := row.Review(); ok {
		view.Review = review
	}
	if reason, ok := row.RejectionReason(); ok {
		view.RejectionReason = reason
	}
	return view
}

func (t *orderTransformer) Views(rows []models.OrderRow) []models.OrderView {
	views := make([]models.OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, t.View(row))
	}
	return views
}
