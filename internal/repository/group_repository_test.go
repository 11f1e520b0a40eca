package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"feedsng/internal/model"
	"feedsng/internal/repository"
	"feedsng/internal/repository/testutil"
)

func TestGroupRepository_CreateAndResolveMembers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewGroupRepository(db)
	ctx := context.Background()
	user := model.UserID(1)

	f1 := testutil.SeedFeed(t, db, "One", "http://1")
	f2 := testutil.SeedFeed(t, db, "Two", "http://2")

	group, err := repo.Create(ctx, user, "tech")
	require.NoError(t, err)
	require.NoError(t, repo.AddFeed(ctx, group.ID, f1.ID))
	require.NoError(t, repo.AddFeed(ctx, group.ID, f2.ID))
	require.NoError(t, repo.AddFeed(ctx, group.ID, f1.ID))

	got, err := repo.GetByID(ctx, user, group.ID)
	require.NoError(t, err)
	require.Equal(t, "tech", got.Name)
	require.ElementsMatch(t, []model.FeedID{f1.ID, f2.ID}, got.FeedIDs)

	_, err = repo.GetByID(ctx, model.UserID(2), group.ID)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGroupRepository_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewGroupRepository(db)
	ctx := context.Background()
	user := model.UserID(1)

	f1 := testutil.SeedFeed(t, db, "One", "http://1")
	testutil.SeedGroup(t, db, user, "b-group", f1.ID)
	testutil.SeedGroup(t, db, user, "a-empty")
	testutil.SeedGroup(t, db, model.UserID(2), "foreign", f1.ID)

	groups, err := repo.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "a-empty", groups[0].Name)
	require.Empty(t, groups[0].FeedIDs)
	require.Equal(t, "b-group", groups[1].Name)
	require.Equal(t, []model.FeedID{f1.ID}, groups[1].FeedIDs)
}

func TestGroupRepository_FindByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewGroupRepository(db)
	ctx := context.Background()

	missing, err := repo.FindByName(ctx, 1, "news")
	require.NoError(t, err)
	require.Nil(t, missing)

	created := testutil.SeedGroup(t, db, 1, "news")
	found, err := repo.FindByName(ctx, 1, "news")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.ID, found.ID)

	other, err := repo.FindByName(ctx, 2, "news")
	require.NoError(t, err)
	require.Nil(t, other)
}
