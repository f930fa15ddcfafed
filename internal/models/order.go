package models

import "time"

type OrderStatus string

const (
	StatusWaitAccept  OrderStatus = "WAIT_ACCEPT"
	StatusWaitComment OrderStatus = "WAIT_COMMENT"
	StatusComplete    OrderStatus = "COMPLETE"
	StatusRejected    OrderStatus = "REJECTED"
)

// Terminal reports whether no action can move an order out of s.
func (s OrderStatus) Terminal() bool {
	return s == StatusComplete || s == StatusRejected
}

type OrderAction string

const (
	ActionAccept  OrderAction = "accept"
	ActionReject  OrderAction = "reject"
	ActionComment OrderAction = "comment"
)

type transition struct {
	from OrderStatus
	to   OrderStatus
}

var transitions = map[OrderAction]transition{
	ActionAccept:  {from: StatusWaitAccept, to: StatusWaitComment},
	ActionReject:  {from: StatusWaitAccept, to: StatusRejected},
	ActionComment: {from: StatusWaitComment, to: StatusComplete},
}

// Valid reports whether a is a known action.
func (a OrderAction) Valid() bool {
	_, ok := transitions[a]
	return ok
}

// Transition returns the status an order must be in for a to apply and the status it moves to.
func (a OrderAction) Transition() (from, to OrderStatus, ok bool) {
	t, ok := transitions[a]
	return t.from, t.to, ok
}

// ByLandlord reports whether the house owner performs a. Otherwise the renter does.
func (a OrderAction) ByLandlord() bool {
	return a == ActionAccept || a == ActionReject
}

// Order is a booking. Dates are inclusive calendar days and money is in minor units.
type Order struct {
	ID         int64
	HouseID    int64
	UserID     int64
	BeginDate  time.Time
	EndDate    time.Time
	Days       int
	HousePrice int64
	Amount     int64
	Status     OrderStatus
	Comment    string
	CreateTime time.Time
}

// Review returns the renter's review, present only on COMPLETE orders.
func (o *Order) Review() (string, bool) {
	if o.Status != StatusComplete || o.Comment == "" {
		return "", false
	}
	return o.Comment, true
}

// RejectionReason returns the landlord's reason, present only on REJECTED orders.
func (o *Order) RejectionReason() (string, bool) {
	if o.Status != StatusRejected || o.Comment == "" {
		return "", false
	}
	return o.Comment, true
}

// OrderRow is an order joined with the house fields shown in order lists.
type OrderRow struct {
	Order
	HouseTitle    string
	HouseImageURL string
}

// OrderView is the projection returned by order lists.
type OrderView struct {
	OrderID         int64  `json:"order_id"`
	Title           string `json:"title"`
	ImgURL          string `json:"img_url"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Ctime           string `json:"ctime"`
	Days            int    `json:"days"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
	Comment         string `json:"comment"`
	Review          string `json:"review,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// CreateOrderRequest is the body of a booking request.
type CreateOrderRequest struct {
	HouseID   int64  `json:"house_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// OrderActionRequest carries the optional payload of a state transition.
type OrderActionRequest struct {
	Action  OrderAction `json:"action"`
	Reason  string      `json:"reason"`
	Comment string      `json:"comment"`
}

// Role selects which side of the orders a user lists.
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleRenter   Role = "custom"
)
