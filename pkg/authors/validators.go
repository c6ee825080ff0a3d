package authors

// AuthorForm holds the editable fields of an author. Dates are YYYY-MM-DD and
// may be left empty.
type AuthorForm struct {
	FirstName   string `json:"first_name" form:"first_name" mod:"trim" validate:"required,max=100"`
	LastName    string `json:"last_name" form:"last_name" mod:"trim" validate:"required,max=100"`
	DateOfBirth string `json:"date_of_birth" form:"date_of_birth" mod:"trim" validate:"date"`
	DateOfDeath string `json:"date_of_death" form:"date_of_death" mod:"trim" validate:"date"`
}

// initialDateOfDeath pre-fills the create form.
const initialDateOfDeath = "2018-05-01"
