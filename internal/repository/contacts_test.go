package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"okravets/contacts-api/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db)
	ctx := context.Background()

	owner := newTestUser(t, db, "owner@example.com")
	other := newTestUser(t, db, "other@example.com")

	created, err := repo.Create(ctx, owner, testFields("Ann"))
	require.NoError(t, err)

	got, err := repo.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)

	_, err = repo.Get(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, other, created.ID, testFields("Eve"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Remove(ctx, other, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Still untouched for the real owner
	got, err = repo.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
}

func TestContactCreateValidatesFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db)
	owner := newTestUser(t, db, "owner@example.com")

	fields := testFields("")
	_, err := repo.Create(context.Background(), owner, fields)
	assert.ErrorIs(t, err, ErrInvalidFields)

	fields = testFields("Ann")
	fields.Phone = "12345678901234567890"
	_, err = repo.Create(context.Background(), owner, fields)
	assert.ErrorIs(t, err, ErrInvalidFields)
}

func TestContactUpdateReplacesFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com")

	created, err := repo.Create(ctx, owner, testFields("Ann"))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, owner, created.ID, &validators.ContactFields{
		FirstName: "Anna",
		LastName:  "Changed",
		Phone:     "987654",
		Birthday:  time.Date(1991, 1, 2, 0, 0, 0, 0, time.UTC),
		Inform:    "new note",
		Email:     "anna@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Anna", updated.FirstName)
	assert.Equal(t, "new note", updated.Inform)

	got, err := repo.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", got.Email)
}

func TestContactRemoveReturnsRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com")

	created, err := repo.Create(ctx, owner, testFields("Ann"))
	require.NoError(t, err)

	removed, err := repo.Remove(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Equal(t, "Ann", removed.FirstName)

	_, err = repo.Get(ctx, owner, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContactListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com")
	other := newTestUser(t, db, "other@example.com")

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, owner, testFields("Own"))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, other, testFields("Foreign"))
	require.NoError(t, err)

	all, err := repo.List(ctx, owner, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	for _, c := range all {
		assert.Equal(t, owner.ID, c.UserID)
	}

	page, err := repo.List(ctx, owner, 3, 100)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestContactSearchDispatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com")
	other := newTestUser(t, db, "other@example.com")

	fields := testFields("Ann")
	fields.Email = "x@example.com"
	created, err := repo.Create(ctx, owner, fields)
	require.NoError(t, err)

	// Same address on a foreign contact must stay invisible
	foreign := testFields("Bob")
	foreign.Email = "x@example.com"
	_, err = repo.Create(ctx, other, foreign)
	require.NoError(t, err)

	byEmail, err := repo.SearchBy(ctx, owner, "email", "x@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, created.ID, byEmail[0].ID)

	byFirst, err := repo.SearchBy(ctx, owner, "first_name", "Ann")
	require.NoError(t, err)
	assert.Len(t, byFirst, 1)

	byLast, err := repo.SearchBy(ctx, owner, "last_name", "Tester")
	require.NoError(t, err)
	assert.Len(t, byLast, 1)

	byID, err := repo.SearchBy(ctx, owner, "id", fmt.Sprint(created.ID))
	require.NoError(t, err)
	assert.Len(t, byID, 1)

	bogus, err := repo.SearchBy(ctx, owner, "bogus_field", "v")
	require.NoError(t, err)
	assert.Empty(t, bogus)

	nonNumeric, err := repo.SearchBy(ctx, owner, "id", "not-a-number")
	require.NoError(t, err)
	assert.Empty(t, nonNumeric)
}

func TestParseSearchField(t *testing.T) {
	tests := []struct {
		in   string
		want SearchField
	}{
		{"id", FieldID},
		{"first_name", FieldFirstName},
		{"last_name", FieldLastName},
		{"email", FieldEmail},
		{"", FieldUnknown},
		{"phone", FieldUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSearchField(tt.in), "field %q", tt.in)
	}
}

func TestUpcomingBirthdaysWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewContactRepo(db)
	ctx := context.Background()
	owner := newTestUser(t, db, "owner@example.com")

	soon := testFields("Soon")
	soon.Birthday = time.Now().UTC().AddDate(-30, 0, 3)
	_, err := repo.Create(ctx, owner, soon)
	require.NoError(t, err)

	far := testFields("Far")
	far.Birthday = time.Now().UTC().AddDate(-25, 6, 0)
	_, err = repo.Create(ctx, owner, far)
	require.NoError(t, err)

	within7, err := repo.UpcomingBirthdays(ctx, owner, 7)
	require.NoError(t, err)
	require.Len(t, within7, 1)
	assert.Equal(t, "Soon", within7[0].FirstName)

	within2, err := repo.UpcomingBirthdays(ctx, owner, 2)
	require.NoError(t, err)
	assert.Empty(t, within2)

	// Anything above a year behaves like a year
	capped, err := repo.UpcomingBirthdays(ctx, owner, 400)
	require.NoError(t, err)
	year, err := repo.UpcomingBirthdays(ctx, owner, 365)
	require.NoError(t, err)
	assert.Equal(t, len(year), len(capped))
	assert.Len(t, capped, 2)
}
