package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookInstance_IsOverdue(t *testing.T) {
	t.Parallel()

	today := NewDate(2024, 6, 1)
	yesterday := today.AddDays(-1)

	tests := []struct {
		name     string
		instance BookInstance
		overdue  bool
	}{
		{"due yesterday", BookInstance{Status: InstanceStatusOnLoan, DueBack: &yesterday}, true},
		{"due today", BookInstance{Status: InstanceStatusOnLoan, DueBack: &today}, false},
		{"no due date", BookInstance{Status: InstanceStatusOnLoan}, false},
		{"returned", BookInstance{Status: InstanceStatusAvailable, DueBack: &yesterday}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(tt *testing.T) {
			assert.Equal(tt, tc.overdue, tc.instance.IsOverdue(today))
		})
	}
}

func TestInstanceStatuses(t *testing.T) {
	t.Parallel()

	for _, status := range InstanceStatuses {
		assert.True(t, IsValidInstanceStatus(status))
	}
	assert.False(t, IsValidInstanceStatus("x"))
	assert.Equal(t, "On loan", InstanceStatusLabel(InstanceStatusOnLoan))
	assert.Equal(t, "Maintenance", (&BookInstance{Status: InstanceStatusMaintenance}).StatusLabel())
}

func TestBook_DisplayGenre(t *testing.T) {
	t.Parallel()

	book := &Book{Genres: []*Genre{{Name: "Fiction"}, {Name: "Horror"}, {Name: "Poetry"}, {Name: "Satire"}}}
	assert.Equal(t, "Fiction, Horror, Poetry", book.DisplayGenre())
	assert.Equal(t, "", (&Book{}).DisplayGenre())
}

func TestAuthor_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Butler, Octavia", (&Author{FirstName: "Octavia", LastName: "Butler"}).String())
}
