package domain

// Token is a marker placed on a board cell. Its symbol never changes after construction.
type Token struct {
	value string
}

func NewToken(symbol string) Token {
	return Token{value: symbol}
}

func (t Token) Value() string {
	return t.value
}
