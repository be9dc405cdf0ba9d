package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/noteduco342/readgroup-backend/internal/models"
	"github.com/noteduco342/readgroup-backend/internal/repository"
	"github.com/noteduco342/readgroup-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateFindUpdate(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	repo := repository.NewUserRepository(testutil.NewTestDB(t))

	user := h.CreateTestUser("alice")
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	updated, err := repo.Update(ctx, user.ID, map[string]interface{}{"username": "alicia"})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)

	_, err = repo.Update(ctx, uuid.NewString(), map[string]interface{}{"username": "ghost"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.Update(ctx, uuid.NewString(), map[string]interface{}{})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_DuplicateUsernamesResolveToOldest(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	repo := repository.NewUserRepository(testutil.NewTestDB(t))

	first := h.CreateTestUser("dup")
	second := h.CreateTestUser("dup")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.FindByUsername(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGroupRepository_MembershipLifecycle(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	repo := repository.NewGroupRepository(testutil.NewTestDB(t))

	group := h.CreateTestGroup("alice", "Book Club")
	require.NoError(t, repo.Create(ctx, group))

	got, err := repo.FindByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, got.MemberIDs())

	require.NoError(t, repo.AddMember(ctx, group.ID, "bob"))
	require.NoError(t, repo.AddMember(ctx, group.ID, "bob"))

	got, err = repo.FindByID(ctx, group.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, got.MemberIDs())

	err = repo.AddMember(ctx, uuid.NewString(), "bob")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	renamed, err := repo.Update(ctx, group.ID, map[string]interface{}{"name": "Night Readers"})
	require.NoError(t, err)
	assert.Equal(t, "Night Readers", renamed.Name)
	assert.Len(t, renamed.Members, 2)

	_, err = repo.Update(ctx, uuid.NewString(), map[string]interface{}{"name": "x"})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestGroupRepository_ListForUser(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	repo := repository.NewGroupRepository(testutil.NewTestDB(t))

	g1 := h.CreateTestGroup("alice", "One")
	g2 := h.CreateTestGroup("bob", "Two", "alice")
	g3 := h.CreateTestGroup("bob", "Three")
	for _, g := range []*models.Group{g1, g2, g3} {
		require.NoError(t, repo.Create(ctx, g))
	}

	groups, err := repo.ListForUser(ctx, "alice")
	require.NoError(t, err)
	ids := []string{}
	for _, g := range groups {
		ids = append(ids, g.ID)
		assert.True(t, g.HasMember("alice"))
	}
	assert.ElementsMatch(t, []string{g1.ID, g2.ID}, ids)

	none, err := repo.ListForUser(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGroupRepository_DeleteRemovesMembers(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	db := testutil.NewTestDB(t)
	repo := repository.NewGroupRepository(db)

	group := h.CreateTestGroup("alice", "Gone", "bob")
	require.NoError(t, repo.Create(ctx, group))
	require.NoError(t, repo.Delete(ctx, group.ID))

	_, err := repo.FindByID(ctx, group.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var count int64
	require.NoError(t, db.Model(&models.GroupMember{}).Where("group_id = ?", group.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReadRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReadRepository(testutil.NewTestDB(t))

	read := &models.Read{ID: uuid.NewString(), Group: "g1", Name: "Dune"}
	other := &models.Read{ID: uuid.NewString(), Group: "g2", Name: "Emma"}
	require.NoError(t, repo.Create(ctx, read))
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.FindByID(ctx, read.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Name)
	assert.False(t, got.HasContent)

	list, err := repo.ListByGroup(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, read.ID, list[0].ID)

	updated, err := repo.Update(ctx, read.ID, map[string]interface{}{"has_content": true, "content_type": "text/plain"})
	require.NoError(t, err)
	assert.True(t, updated.HasContent)
	assert.Equal(t, "text/plain", updated.ContentType)

	require.NoError(t, repo.Delete(ctx, read.ID))
	_, err = repo.FindByID(ctx, read.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestMessageRepository_ListByReadUpToProgress(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	repo := repository.NewMessageRepository(testutil.NewTestDB(t))

	for _, m := range []*models.Message{
		h.CreateTestMessage("alice", "r1", 10, "early"),
		h.CreateTestMessage("alice", "r1", 50, "middle"),
		h.CreateTestMessage("bob", "r1", 80, "late"),
		h.CreateTestMessage("bob", "r2", 5, "other read"),
	} {
		require.NoError(t, repo.Create(ctx, m))
	}

	tests := []struct {
		name    string
		limit   float64
		content []string
	}{
		{"nothing before first", 5, []string{}},
		{"inclusive bound", 50, []string{"middle", "early"}},
		{"everything", 100, []string{"late", "middle", "early"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := repo.ListByReadUpToProgress(ctx, "r1", tt.limit)
			require.NoError(t, err)
			got := []string{}
			for _, m := range msgs {
				got = append(got, m.Content)
			}
			assert.Equal(t, tt.content, got)
		})
	}
}

func TestMessageRepository_FindDelete(t *testing.T) {
	ctx := context.Background()
	h := testutil.NewTestHelper(t)
	repo := repository.NewMessageRepository(testutil.NewTestDB(t))

	msg := h.CreateTestMessage("alice", "r1", 1, "hi")
	require.NoError(t, repo.Create(ctx, msg))

	got, err := repo.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)

	require.NoError(t, repo.Delete(ctx, msg.ID))
	_, err = repo.FindByID(ctx, msg.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProgressRepository_UpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	repo := repository.NewProgressRepository(db)

	_, err := repo.Get(ctx, "alice", "r1")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	first, err := repo.Upsert(ctx, &models.Progress{
		ID: models.ProgressID("alice", "r1"), Owner: "alice", Read: "r1", Progress: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 40.0, first.Progress)

	second, err := repo.Upsert(ctx, &models.Progress{
		ID: models.ProgressID("alice", "r1"), Owner: "alice", Read: "r1", Progress: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.0, second.Progress)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.Get(ctx, "alice", "r1")
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Progress)
}
