package token

type CreateTokenInput struct {
	Symbol  string
	Name    string
	Address string
	// Decimals is nil when the caller wants it read from chain.
	Decimals    *uint8
	Category    string
	Description string
}
