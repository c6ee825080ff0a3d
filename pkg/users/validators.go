package users

// CreateUserPayload represents the request body for creating a user.
type CreateUserPayload struct {
	Username string `json:"username" form:"username" mod:"trim" validate:"required,min=3,max=150"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Role     string `json:"role" form:"role" default:"member" validate:"required,oneof=librarian member"`
}

// UpdateUserPayload represents the request body for updating a user.
type UpdateUserPayload struct {
	Role     *string `json:"role" form:"role" validate:"omitempty,oneof=librarian member"`
	IsActive *bool   `json:"is_active" form:"is_active"`
}

// ResetPasswordPayload represents the request body for resetting a password.
type ResetPasswordPayload struct {
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=8"`
}

// ListUsersQuery represents the query parameters for listing users.
type ListUsersQuery struct {
	Limit  int  `query:"limit" default:"50" validate:"min=1,max=200"`
	Offset int  `query:"offset" default:"0" validate:"min=0"`
	Active *bool `query:"active"`
}
