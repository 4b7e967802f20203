package catalog

import (
	"errors"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/database"
)

// Kind classifies the ways a catalog operation can end other than plain success.
type Kind int

const (
	KindNone Kind = iota
	// KindNotFound: the referenced entity does not exist.
	KindNotFound
	// KindValidationFailed: the form was rejected and re-rendered. Never returned as an error.
	KindValidationFailed
	// KindIntegrityGuard: a delete was refused because references remain. Never returned as an error.
	KindIntegrityGuard
	// KindStoreFailure: the store call itself failed.
	KindStoreFailure
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindValidationFailed:
		return "validation_failed"
	case KindIntegrityGuard:
		return "integrity_guard"
	case KindStoreFailure:
		return "store_failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by catalog operations for NotFound and StoreFailure.
type Error struct {
	Kind   Kind
	Op     string
	Entity string
	ID     uint
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindNotFound {
		return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err. Errors that did not come from the catalog
// are store failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var catalogErr *Error
	if errors.As(err, &catalogErr) {
		return catalogErr.Kind
	}
	return KindStoreFailure
}

func notFound(entity string, id uint) error {
	return &Error{Kind: KindNotFound, Op: "find " + entity, Entity: entity, ID: id, Err: database.ErrNotFound}
}

func storeFailure(op string, err error) error {
	var catalogErr *Error
	if errors.As(err, &catalogErr) {
		return err
	}
	return &Error{Kind: KindStoreFailure, Op: op, Err: err}
}

// lookupFailure turns a single-record lookup error into NotFound or StoreFailure.
func lookupFailure(entity string, id uint, err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return notFound(entity, id)
	}
	return storeFailure("find "+entity, err)
}
