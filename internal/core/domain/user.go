package domain

type User struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role,omitempty"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	Tier             string `json:"tier,omitempty"`
	MemberSince      string `json:"memberSince,omitempty"`
	LoyaltyPoints    int    `json:"loyaltyPoints,omitempty"`
	PointsToNextTier int    `json:"pointsToNextTier,omitempty"`
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}
