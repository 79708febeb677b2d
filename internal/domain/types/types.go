package types

// Enum for user roles
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	MemberRole UserRole = "MEMBER"
	AdminRole  UserRole = "ADMIN"
)

// Enum for token kinds issued by the token service
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)
