package dto

type CreateCourseDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
	Credits     int    `json:"credits"`
}

// UpdateCourseDTO uses pointers so that an omitted field can be told apart
// from an explicitly provided zero value; only present fields are applied.
type UpdateCourseDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Instructor  *string `json:"instructor"`
	Credits     *int    `json:"credits"`
}
