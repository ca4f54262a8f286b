package app

// Name identifies a command in the routing table.
type Name string

const (
	CmdCreateBoard Name = "create_board"
	CmdPlaceToken  Name = "place_token"
	CmdGetToken    Name = "get_token"
	CmdRemoveToken Name = "remove_token"
)

// Action is one command request. It is consumed by a single Execute call.
type Action struct {
	Name    Name
	Payload map[string]any
}

func NewAction(name Name, payload map[string]any) Action {
	return Action{Name: name, Payload: payload}
}
