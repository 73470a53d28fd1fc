package dto

type CreateUserDTO struct {
	UID   string  `json:"uid"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Image *string `json:"image"`
}
