package catalog

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// FieldError describes one failed rule on one submitted field.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
	Value string `json:"value"`
}

// NameRule is the length requirement for a genre name on one operation.
type NameRule struct {
	MinLength int
	Message   string
}

// GenreRules holds the create and update requirements separately. They
// are not the same by default: create accepts a single character while
// update requires three.
type GenreRules struct {
	Create NameRule
	Update NameRule
}

func DefaultGenreRules() GenreRules {
	return GenreRules{
		Create: NameRule{MinLength: 1, Message: "Genre name required"},
		Update: NameRule{MinLength: 3, Message: "Name must not be empty"},
	}
}

// WithMinLengths overrides the thresholds, keeping the messages.
func (r GenreRules) WithMinLengths(create, update int) GenreRules {
	r.Create.MinLength = create
	r.Update.MinLength = update
	return r
}

var (
	idPattern = regexp.MustCompile(`^[0-9]+$`)

	markupEscaper = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"'", "&#x27;",
		"<", "&lt;",
		">", "&gt;",
		"/", "&#x2F;",
		`\`, "&#x5C;",
		"`", "&#96;",
	)
)

// escapeText replaces markup characters with entities. Length rules run on
// the trimmed text before this, so entities never count towards them.
func escapeText(trimmed string) string {
	return markupEscaper.Replace(trimmed)
}

// collectErrors flattens ozzo errors into the field order given.
func collectErrors(err error, order []string, values map[string]string) []FieldError {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []FieldError{{Msg: err.Error()}}
	}
	return lo.FilterMap(order, func(field string, _ int) (FieldError, bool) {
		fieldErr, ok := errs[field]
		if !ok || fieldErr == nil {
			return FieldError{}, false
		}
		return FieldError{Msg: fieldErr.Error(), Param: field, Value: values[field]}, true
	})
}

func requiredText(rule NameRule) []validation.Rule {
	return []validation.Rule{
		validation.When(rule.MinLength > 0, validation.Required.Error(rule.Message)),
		validation.RuneLength(rule.MinLength, 0).Error(rule.Message),
	}
}

// --- Genre ---

// GenreForm is the genre form as submitted.
type GenreForm struct {
	Name string `form:"name" json:"name"`
}

// GenreInput is a validated genre form.
type GenreInput struct {
	Name string
}

type GenreValidation struct {
	Form   GenreForm // escaped values, used to re-render the form
	Input  *GenreInput
	Errors []FieldError
}

func ValidateGenre(form GenreForm, rule NameRule) GenreValidation {
	name := strings.TrimSpace(form.Name)
	err := validation.Errors{
		"name": validation.Validate(name, requiredText(rule)...),
	}.Filter()

	clean := GenreForm{Name: escapeText(name)}

	result := GenreValidation{
		Form:   clean,
		Errors: collectErrors(err, []string{"name"}, map[string]string{"name": clean.Name}),
	}
	if len(result.Errors) == 0 {
		result.Input = &GenreInput{Name: clean.Name}
	}
	return result
}

// --- Author ---

const maxAuthorNameLength = 100

// AuthorForm is the author form as submitted.
type AuthorForm struct {
	FirstName   string `form:"first_name" json:"first_name"`
	FamilyName  string `form:"family_name" json:"family_name"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death"`
}

// AuthorInput is a validated author form.
type AuthorInput struct {
	FirstName   string
	FamilyName  string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

type AuthorValidation struct {
	Form   AuthorForm
	Input  *AuthorInput
	Errors []FieldError
}

var authorFieldOrder = []string{"first_name", "family_name", "date_of_birth", "date_of_death"}

func ValidateAuthor(form AuthorForm) AuthorValidation {
	trimmed := AuthorForm{
		FirstName:   strings.TrimSpace(form.FirstName),
		FamilyName:  strings.TrimSpace(form.FamilyName),
		DateOfBirth: strings.TrimSpace(form.DateOfBirth),
		DateOfDeath: strings.TrimSpace(form.DateOfDeath),
	}

	err := validation.ValidateStruct(&trimmed,
		validation.Field(&trimmed.FirstName,
			validation.Required.Error("First name must be specified."),
			validation.RuneLength(1, maxAuthorNameLength).Error("First name must be at most 100 characters."),
		),
		validation.Field(&trimmed.FamilyName,
			validation.Required.Error("Family name must be specified."),
			validation.RuneLength(1, maxAuthorNameLength).Error("Family name must be at most 100 characters."),
		),
		validation.Field(&trimmed.DateOfBirth,
			validation.Date(entities.ISODateLayout).Error("Invalid date of birth"),
		),
		validation.Field(&trimmed.DateOfDeath,
			validation.Date(entities.ISODateLayout).Error("Invalid date of death"),
		),
	)

	clean := trimmed
	clean.FirstName = escapeText(trimmed.FirstName)
	clean.FamilyName = escapeText(trimmed.FamilyName)

	values := map[string]string{
		"first_name":    clean.FirstName,
		"family_name":   clean.FamilyName,
		"date_of_birth": clean.DateOfBirth,
		"date_of_death": clean.DateOfDeath,
	}
	result := AuthorValidation{
		Form:   clean,
		Errors: collectErrors(err, authorFieldOrder, values),
	}
	if len(result.Errors) == 0 {
		result.Input = &AuthorInput{
			FirstName:   clean.FirstName,
			FamilyName:  clean.FamilyName,
			DateOfBirth: parseISODate(clean.DateOfBirth),
			DateOfDeath: parseISODate(clean.DateOfDeath),
		}
	}
	return result
}

// Author returns the entity as typed, for re-rendering a rejected form.
func (f AuthorForm) Author(id uint) entities.Author {
	return entities.Author{
		ID:          id,
		FirstName:   f.FirstName,
		FamilyName:  f.FamilyName,
		DateOfBirth: parseISODate(f.DateOfBirth),
		DateOfDeath: parseISODate(f.DateOfDeath),
	}
}

func parseISODate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(entities.ISODateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// --- Book ---

// BookForm is the book form as submitted. Author and Genre carry IDs.
type BookForm struct {
	Title   string `form:"title" json:"title"`
	Summary string `form:"summary" json:"summary"`
	ISBN    string `form:"isbn" json:"isbn"`
	Author  string `form:"author" json:"author"`
	Genre   string `form:"genre" json:"genre"`
}

// BookInput is a validated book form. GenreID is nil when no genre was chosen.
type BookInput struct {
	Title    string
	Summary  string
	ISBN     string
	AuthorID uint
	GenreID  *uint
}

type BookValidation struct {
	Form   BookForm
	Input  *BookInput
	Errors []FieldError
}

var bookFieldOrder = []string{"title", "author", "summary", "isbn", "genre"}

// validID accepts decimal ids that fit a 32-bit key.
func validID(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if !idPattern.MatchString(s) {
			return errors.New(message)
		}
		if _, err := strconv.ParseUint(s, 10, 32); err != nil {
			return errors.New(message)
		}
		return nil
	})
}

func ValidateBook(form BookForm) BookValidation {
	trimmed := BookForm{
		Title:   strings.TrimSpace(form.Title),
		Summary: strings.TrimSpace(form.Summary),
		ISBN:    strings.TrimSpace(form.ISBN),
		Author:  strings.TrimSpace(form.Author),
		Genre:   strings.TrimSpace(form.Genre),
	}

	err := validation.ValidateStruct(&trimmed,
		validation.Field(&trimmed.Title, validation.Required.Error("Title must not be empty.")),
		validation.Field(&trimmed.Author,
			validation.Required.Error("Author must not be empty."),
			validID("Author must not be empty."),
		),
		validation.Field(&trimmed.ISBN, validation.RuneLength(0, 20).Error("ISBN must be at most 20 characters.")),
		validation.Field(&trimmed.Genre, validID("Invalid genre.")),
	)

	clean := trimmed
	clean.Title = escapeText(trimmed.Title)
	clean.Summary = escapeText(trimmed.Summary)
	clean.ISBN = escapeText(trimmed.ISBN)

	values := map[string]string{
		"title":   clean.Title,
		"author":  clean.Author,
		"summary": clean.Summary,
		"isbn":    clean.ISBN,
		"genre":   clean.Genre,
	}
	result := BookValidation{
		Form:   clean,
		Errors: collectErrors(err, bookFieldOrder, values),
	}
	if len(result.Errors) > 0 {
		return result
	}

	authorID, err := strconv.ParseUint(clean.Author, 10, 32)
	if err != nil {
		result.Errors = []FieldError{{Msg: "Author must not be empty.", Param: "author", Value: clean.Author}}
		return result
	}
	input := &BookInput{
		Title:    clean.Title,
		Summary:  clean.Summary,
		ISBN:     clean.ISBN,
		AuthorID: uint(authorID),
	}
	if clean.Genre != "" {
		genreID, err := strconv.ParseUint(clean.Genre, 10, 32)
		if err != nil {
			result.Errors = []FieldError{{Msg: "Invalid genre.", Param: "genre", Value: clean.Genre}}
			return result
		}
		id := uint(genreID)
		input.GenreID = &id
	}
	result.Input = input
	return result
}
