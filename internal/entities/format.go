package entities

import "time"

const (
	// MediumDateLayout renders dates like "Dec 16, 1775".
	MediumDateLayout = "Jan 2, 2006"
	// ISODateLayout is the layout accepted and produced by date form fields.
	ISODateLayout = "2006-01-02"
)

// FormatDate returns the medium display form of t, or "" when t is nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(MediumDateLayout)
}

// ISODate returns t as YYYY-MM-DD, or "" when t is nil.
func ISODate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISODateLayout)
}
