package models

import "time"

// House is a rental listing. Price and Deposit are in minor currency units.
type House struct {
	ID            int64     `json:"house_id"`
	UserID        int64     `json:"user_id"`
	AreaID        int64     `json:"area_id"`
	Title         string    `json:"title"`
	Address       string    `json:"address"`
	Price         int64     `json:"price"`
	RoomCount     int       `json:"room_count"`
	Acreage       int       `json:"acreage"`
	Unit          string    `json:"unit"`
	Capacity      int       `json:"capacity"`
	Beds          string    `json:"beds"`
	Deposit       int64     `json:"deposit"`
	MinDays       int       `json:"min_days"`
	MaxDays       int       `json:"max_days"`
	OrderCount    int       `json:"order_count"`
	IndexImageURL string    `json:"index_image_url"`
	CreateTime    time.Time `json:"create_time"`
}

// HouseRow is a house joined with the names needed by the summary projection.
type HouseRow struct {
	House
	AreaName    string
	OwnerAvatar string
}

// HouseSummary is the basic projection used by listings, the home page and the owner's house list.
type HouseSummary struct {
	HouseID    int64  `json:"house_id"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	AreaName   string `json:"area_name"`
	ImgURL     string `json:"img_url"`
	RoomCount  int    `json:"room_count"`
	OrderCount int    `json:"order_count"`
	Address    string `json:"address"`
	UserAvatar string `json:"user_avatar"`
	Ctime      string `json:"ctime"`
}

// HouseComment is a completed order's review shown on the detail page.
type HouseComment struct {
	UserName string `json:"user_name"`
	Content  string `json:"content"`
	Ctime    string `json:"ctime"`
}

// HouseDetail is the full projection cached under house_info_<id>.
type HouseDetail struct {
	HouseID    int64          `json:"hid"`
	UserID     int64          `json:"user_id"`
	UserName   string         `json:"user_name"`
	UserAvatar string         `json:"user_avatar"`
	Title      string         `json:"title"`
	Price      int64          `json:"price"`
	Address    string         `json:"address"`
	RoomCount  int            `json:"room_count"`
	Acreage    int            `json:"acreage"`
	Unit       string         `json:"unit"`
	Capacity   int            `json:"capacity"`
	Beds       string         `json:"beds"`
	Deposit    int64          `json:"deposit"`
	MinDays    int            `json:"min_days"`
	MaxDays    int            `json:"max_days"`
	OrderCount int            `json:"order_count"`
	ImgURLs    []string       `json:"img_urls"`
	Facilities []int64        `json:"facilities"`
	Comments   []HouseComment `json:"comments"`
}

// HouseDetailRecord is everything the store returns for one detail page.
type HouseDetailRecord struct {
	House      House
	Owner      User
	ImageURLs  []string
	Facilities []int64
	Comments   []CommentRow
}

// CommentRow is a review read from a COMPLETE order.
type CommentRow struct {
	UserName   string
	Content    string
	CreateTime time.Time
}

// CreateHouseRequest is the body of a publish request. Money fields are minor units.
type CreateHouseRequest struct {
	Title      string  `json:"title" validate:"required,max=64"`
	Price      int64   `json:"price" validate:"gt=0"`
	AreaID     int64   `json:"area_id" validate:"gt=0"`
	Address    string  `json:"address" validate:"required,max=512"`
	RoomCount  int     `json:"room_count" validate:"gt=0"`
	Acreage    int     `json:"acreage" validate:"gt=0"`
	Unit       string  `json:"unit" validate:"required,max=32"`
	Capacity   int     `json:"capacity" validate:"gt=0"`
	Beds       string  `json:"beds" validate:"required,max=64"`
	Deposit    int64   `json:"deposit" validate:"gte=0"`
	MinDays    int     `json:"min_days" validate:"gt=0"`
	MaxDays    int     `json:"max_days" validate:"gte=0"`
	Facilities []int64 `json:"facility"`
}

// Area is an entry of the area directory.
type Area struct {
	ID   int64  `json:"aid"`
	Name string `json:"aname"`
}
