package draftstore_test

import (
	"errors"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/draftstore"
)

func TestPutThenGetRoundTripsPayload(t *testing.T) {
	store, err := draftstore.Open(t.TempDir())
	assert.NilError(t, err)

	id, expiresAt, err := store.Put([]byte("^XA^XZ"), time.Hour)
	assert.NilError(t, err)
	assert.Assert(t, id != "")
	assert.Assert(t, expiresAt.After(time.Now()))

	got, err := store.Get(id)
	assert.NilError(t, err)
	assert.Equal(t, string(got), "^XA^XZ")
}

func TestGetUnknownIDReturnsErrNotFound(t *testing.T) {
	store, err := draftstore.Open(t.TempDir())
	assert.NilError(t, err)
	_, err = store.Get("does-not-exist")
	assert.Assert(t, errors.Is(err, draftstore.ErrNotFound))
}

func TestGetExpiredDraftReturnsErrExpiredAndDeletesFile(t *testing.T) {
	store, err := draftstore.Open(t.TempDir())
	assert.NilError(t, err)

	id, _, err := store.Put([]byte("x"), -time.Second)
	assert.NilError(t, err)

	_, err = store.Get(id)
	assert.Assert(t, errors.Is(err, draftstore.ErrExpired))

	_, err = store.Get(id)
	assert.Assert(t, errors.Is(err, draftstore.ErrNotFound), "expired draft file should already be deleted")
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, err := draftstore.Open(t.TempDir())
	assert.NilError(t, err)
	id, _, err := store.Put([]byte("x"), time.Hour)
	assert.NilError(t, err)

	assert.NilError(t, store.Delete(id))
	assert.NilError(t, store.Delete(id))
}
