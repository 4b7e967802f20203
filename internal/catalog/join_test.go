package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/locallibrary/internal/database"
)

func TestJoin_BothSucceed(t *testing.T) {
	a, b, err := join(context.Background(),
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (string, error) { return "two", nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 1, a)
	assert.Equal(t, "two", b)
}

func TestJoin_FirstErrorCancelsSibling(t *testing.T) {
	boom := errors.New("boom")
	cancelled := make(chan struct{})

	_, _, err := join(context.Background(),
		func(context.Context) (int, error) { return 0, boom },
		func(ctx context.Context) (int, error) {
			select {
			case <-ctx.Done():
				close(cancelled)
				return 0, ctx.Err()
			case <-time.After(5 * time.Second):
				return 0, nil
			}
		},
	)
	assert.ErrorIs(t, err, boom)

	select {
	case <-cancelled:
	default:
		t.Fatal("sibling lookup was not cancelled")
	}
}

func TestOptional(t *testing.T) {
	missing := optional(func(context.Context) (*int, error) { return nil, database.ErrNotFound })
	v, err := missing(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, v)

	boom := errors.New("boom")
	failing := optional(func(context.Context) (*int, error) { return nil, boom })
	_, err = failing(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNotFound, KindOf(notFound("genre", 1)))
	assert.Equal(t, KindStoreFailure, KindOf(errors.New("raw")))
	assert.Equal(t, KindNotFound, KindOf(storeFailure("wrap", notFound("genre", 1))))
	assert.Equal(t, "genre 1 not found", notFound("genre", 1).Error())
	assert.Equal(t, "not_found", KindNotFound.String())
}
