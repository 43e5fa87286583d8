package user

// RegisterInput is the request body for POST /users/register.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=20"`
	Password        string `json:"password" validate:"required,min=8,max=50"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// LoginInput is the request body for POST /users/login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateInput is the request body for PUT /users/. All fields are optional;
// password changes require the confirmation field.
type UpdateInput struct {
	Username        string `json:"username" validate:"omitempty,min=3,max=20"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"omitempty"`
	Password        string `json:"password" validate:"omitempty,min=8,max=50"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty"`
}
