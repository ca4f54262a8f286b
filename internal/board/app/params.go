package app

// CreateBoardParams is the payload of create_board. x and y are the board extent.
type CreateBoardParams struct {
	Width  int `mapstructure:"x" validate:"gt=0"`
	Height int `mapstructure:"y" validate:"gt=0"`
}

// CoordParams is the payload of get_token and remove_token.
type CoordParams struct {
	X int `mapstructure:"x" validate:"gte=0"`
	Y int `mapstructure:"y" validate:"gte=0"`
}

// PlaceTokenParams is the payload of place_token. Any string is a valid symbol, "" included.
type PlaceTokenParams struct {
	CoordParams `mapstructure:",squash"`
	Symbol      string `mapstructure:"symbol"`
}

var (
	createBoardKeys = []string{"x", "y"}
	coordKeys       = []string{"x", "y"}
	placeTokenKeys  = []string{"x", "y", "symbol"}
)
