package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	ReasonMissingKey      = NewReason("MISSING_KEY", "required payload key is missing")
	ReasonInvalidType     = NewReason("INVALID_TYPE", "payload value has the wrong type")
	ReasonInvalidValue    = NewReason("INVALID_VALUE", "payload value is out of its allowed range")
	ReasonCoordOutOfRange = NewReason("COORD_OUT_OF_RANGE", "coordinate lies outside the board")
	ReasonNoBoard         = NewReason("NO_BOARD", "create_board has not been executed")
)
