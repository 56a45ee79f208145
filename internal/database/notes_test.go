package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func createTestNote(t *testing.T, userID int64, title string) int64 {
	note, err := testStore.CreateNote(context.Background(), CreateNoteParams{
		UserID:          userID,
		Title:           title,
		Content:         strPtr("content of " + title),
		BackgroundColor: "#FFFFFF",
	})
	require.NoError(t, err)
	require.NotNil(t, note)
	return note.ID
}

func TestCreateNote(t *testing.T) {
	userID := createTestUser(t, "note_create_user")

	params := CreateNoteParams{
		UserID:          userID,
		Title:           "Groceries",
		Content:         strPtr("milk, eggs"),
		BackgroundColor: "#FDE68A",
	}

	note, err := testStore.CreateNote(context.Background(), params)
	require.NoError(t, err)
	require.NotNil(t, note)
	require.NotZero(t, note.ID)
	require.Equal(t, userID, note.UserID)
	require.Equal(t, "Groceries", note.Title)
	require.NotNil(t, note.Content)
	require.Equal(t, "milk, eggs", *note.Content)
	require.Equal(t, "#FDE68A", note.BackgroundColor)
	require.False(t, note.IsPinned)
	require.False(t, note.IsPublic)
	require.Nil(t, note.ShareToken)
	require.NotZero(t, note.CreatedAt)
}

func TestGetNoteByIDOwnership(t *testing.T) {
	ownerID := createTestUser(t, "note_owner")
	strangerID := createTestUser(t, "note_stranger")
	noteID := createTestNote(t, ownerID, "Private note")

	note, err := testStore.GetNoteByID(context.Background(), noteID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, note)
	require.Equal(t, "Private note", note.Title)

	note, err = testStore.GetNoteByID(context.Background(), noteID, strangerID)
	require.NoError(t, err)
	require.Nil(t, note)

	note, err = testStore.GetNoteByID(context.Background(), 999999, ownerID)
	require.NoError(t, err)
	require.Nil(t, note)
}

func TestListNotes(t *testing.T) {
	userID := createTestUser(t, "note_list_user")
	otherID := createTestUser(t, "note_list_other")

	createTestNote(t, userID, "Shopping list")
	pinnedID := createTestNote(t, userID, "Pinned ideas")
	createTestNote(t, otherID, "Someone else's note")

	pinned, err := testStore.GetNoteByID(context.Background(), pinnedID, userID)
	require.NoError(t, err)
	_, err = testStore.UpdateNote(context.Background(), UpdateNoteParams{
		ID:              pinned.ID,
		UserID:          userID,
		Title:           pinned.Title,
		Content:         pinned.Content,
		BackgroundColor: pinned.BackgroundColor,
		IsPinned:        true,
	})
	require.NoError(t, err)

	notes, err := testStore.ListNotes(context.Background(), ListNotesParams{UserID: userID})
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "Pinned ideas", notes[0].Title)

	notes, err = testStore.ListNotes(context.Background(), ListNotesParams{UserID: userID, Search: strPtr("shopping")})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "Shopping list", notes[0].Title)

	notes, err = testStore.ListNotes(context.Background(), ListNotesParams{UserID: userID, Pinned: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "Pinned ideas", notes[0].Title)

	notes, err = testStore.ListNotes(context.Background(), ListNotesParams{UserID: userID, Search: strPtr("nothing matches")})
	require.NoError(t, err)
	require.NotNil(t, notes)
	require.Len(t, notes, 0)
}

func TestUpdateNote(t *testing.T) {
	userID := createTestUser(t, "note_update_user")
	strangerID := createTestUser(t, "note_update_stranger")
	noteID := createTestNote(t, userID, "Draft")

	updated, err := testStore.UpdateNote(context.Background(), UpdateNoteParams{
		ID:              noteID,
		UserID:          userID,
		Title:           "Final",
		Content:         strPtr("rewritten"),
		BackgroundColor: "#BFDBFE",
		IsPinned:        true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "Final", updated.Title)
	require.Equal(t, "rewritten", *updated.Content)
	require.Equal(t, "#BFDBFE", updated.BackgroundColor)
	require.True(t, updated.IsPinned)
	require.NotNil(t, updated.UpdatedAt)

	notMine, err := testStore.UpdateNote(context.Background(), UpdateNoteParams{
		ID:              noteID,
		UserID:          strangerID,
		Title:           "Hijacked",
		BackgroundColor: "#FFFFFF",
	})
	require.NoError(t, err)
	require.Nil(t, notMine)
}

func TestDeleteNote(t *testing.T) {
	userID := createTestUser(t, "note_delete_user")
	strangerID := createTestUser(t, "note_delete_stranger")
	noteID := createTestNote(t, userID, "Disposable")

	deleted, err := testStore.DeleteNote(context.Background(), noteID, strangerID)
	require.NoError(t, err)
	require.False(t, deleted)

	deleted, err = testStore.DeleteNote(context.Background(), noteID, userID)
	require.NoError(t, err)
	require.True(t, deleted)

	note, err := testStore.GetNoteByID(context.Background(), noteID, userID)
	require.NoError(t, err)
	require.Nil(t, note)
}
