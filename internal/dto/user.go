package dto

// SignupRequest is the JSON body for POST /auth/signup.
type SignupRequest struct {
	FullName string `json:"fullname" binding:"required,min=4,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32,password"`
}

// SigninRequest is the JSON body for POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
}

// TokenResponse carries the signed access token returned on signin.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}
