package genres

type ListGenresQuery struct {
	Limit  int     `query:"limit" default:"100" validate:"min=1,max=500"`
	Offset int     `query:"offset" default:"0" validate:"min=0"`
	Search *string `query:"search" mod:"trim"`
}

type CreateGenrePayload struct {
	Name string `json:"name" form:"name" mod:"trim" validate:"required,max=200"`
}

type UpdateGenrePayload struct {
	Name *string `json:"name,omitempty" form:"name" mod:"trim" validate:"omitempty,min=1,max=200"`
}
