package domain

// TokenType distinguishes short-lived access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// AuthPayload is the claim set carried by bearer tokens
type AuthPayload struct {
	UserID int64     `json:"user_id"`
	Type   TokenType `json:"type"`
}
