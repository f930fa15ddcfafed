package errors

// User-friendly error messages
const (
	MsgParam         = "The request parameters are missing or invalid."
	MsgInvalidDate   = "Dates must use the YYYY-MM-DD format and the start date cannot be after the end date."
	MsgInvalidPage   = "The page number must be a positive integer."
	MsgNoData        = "The requested record does not exist."
	MsgRole          = "You cannot book your own house."
	MsgConflict      = "The house is already booked for the selected dates."
	MsgReq           = "This operation is not allowed on the order in its current state."
	MsgDB            = "We could not access the data store. Please try again later."
	MsgThirdParty    = "An external service failed. Please try again later."
	MsgRateLimited   = "You're sending requests too quickly! Please wait a moment and try again."
	MsgUnauthorized  = "Please log in first."
	MsgInternalError = "Something went wrong on our end. Please try again later."
)
