package instances

type ListInstancesQuery struct {
	Limit      int     `query:"limit" default:"50" validate:"min=1,max=200"`
	Offset     int     `query:"offset" default:"0" validate:"min=0"`
	Status     *string `query:"status" validate:"omitempty,oneof=m o a r"`
	BookID     *int    `query:"book_id"`
	BorrowerID *int    `query:"borrower_id"`
}

type CreateInstancePayload struct {
	BookID     int    `json:"book_id" form:"book_id" validate:"required,min=1"`
	Imprint    string `json:"imprint" form:"imprint" mod:"trim" validate:"max=200"`
	DueBack    string `json:"due_back" form:"due_back" mod:"trim" validate:"date"`
	BorrowerID *int   `json:"borrower_id" form:"borrower_id" validate:"omitempty,min=1"`
	Status     string `json:"status" form:"status" default:"m" validate:"oneof=m o a r"`
}

// UpdateInstancePayload changes the fields that are present. An empty due_back
// or a borrower_id of 0 clears the field.
type UpdateInstancePayload struct {
	BookID     *int    `json:"book_id,omitempty" form:"book_id" validate:"omitempty,min=1"`
	Imprint    *string `json:"imprint,omitempty" form:"imprint" mod:"trim" validate:"omitempty,max=200"`
	DueBack    *string `json:"due_back,omitempty" form:"due_back" mod:"trim" validate:"omitempty,date"`
	BorrowerID *int    `json:"borrower_id,omitempty" form:"borrower_id" validate:"omitempty,min=0"`
	Status     *string `json:"status,omitempty" form:"status" validate:"omitempty,oneof=m o a r"`
}

type LendPayload struct {
	BorrowerID int    `json:"borrower_id" form:"borrower_id" validate:"required,min=1"`
	DueBack    string `json:"due_back" form:"due_back" mod:"trim" validate:"required,date"`
}
