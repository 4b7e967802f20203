package entities

import "fmt"

// Name returns "Family, First", or an empty string unless both parts are set.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan always contains the " - " separator, with either side left
// empty when the date is unknown.
func (a Author) Lifespan() string {
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}

// URL is the canonical detail path of the author.
func (a Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

func (a Author) DateOfBirthFormatted() string {
	return FormatDate(a.DateOfBirth)
}

func (a Author) DateOfDeathFormatted() string {
	return FormatDate(a.DateOfDeath)
}

// DateOfBirthISO is the value used to pre-fill the edit form.
func (a Author) DateOfBirthISO() string {
	return ISODate(a.DateOfBirth)
}

// DateOfDeathISO is the value used to pre-fill the edit form.
func (a Author) DateOfDeathISO() string {
	return ISODate(a.DateOfDeath)
}
