package models

// Response is the envelope of every API response. Clients display Error
// verbatim.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// TokenData is the data of a successful login.
type TokenData struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// ProfileData is the public view of a user.
type ProfileData struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

func NewProfileData(u *User) ProfileData {
	return ProfileData{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Unix(),
	}
}
