package model

type AccessToken struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

type RegisterRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (r *LoginResponse) AccessTokenInfo() string {
	return r.AccessToken
}

func (r *LoginResponse) SessionInfo() map[string]any {
	return map[string]any{
		"user_id": r.User.ID,
		"handle":  r.User.Handle,
	}
}

type LogoutRequest struct{}

type LogoutResponse struct{}
