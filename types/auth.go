package types

type ParentCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ParentVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ParentAuthResponse struct {
	ParentID uint64    `json:"parent_id"`
	Email    string    `json:"email"`
	Tokens   TokenPair `json:"tokens"`
}

type ChildLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Pin      string `json:"pin" binding:"required"`
}

type ChildAuthResponse struct {
	ChildID  uint64    `json:"child_id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	AgeGroup string    `json:"age_group"`
	Tokens   TokenPair `json:"tokens"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshResponse struct {
	Tokens TokenPair `json:"tokens"`
}
