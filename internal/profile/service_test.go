package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Onlynfk/podground-backend-sub001/internal/repository"
)

const testPublicURL = "https://media.podground.io"

type fakeDirectoryRepo struct {
	profiles   map[string]repository.UserProfileRow
	signups    map[string]repository.SignupRow
	claims     map[string]repository.ClaimRow
	podcasts   map[string]repository.PodcastRefRow
	onboarded  map[string]bool
	visibility map[string]bool

	profilesErr   error
	visibilityErr error
	profileCalls  int
}

func (f *fakeDirectoryRepo) ProfilesByIDs(_ context.Context, ids []string) ([]repository.UserProfileRow, error) {
	f.profileCalls++
	if f.profilesErr != nil {
		return nil, f.profilesErr
	}
	rows := []repository.UserProfileRow{}
	for _, id := range ids {
		if row, ok := f.profiles[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeDirectoryRepo) SignupsByIDs(_ context.Context, ids []string) ([]repository.SignupRow, error) {
	rows := []repository.SignupRow{}
	for _, id := range ids {
		if row, ok := f.signups[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeDirectoryRepo) VerifiedClaimsByUserIDs(_ context.Context, ids []string) ([]repository.ClaimRow, error) {
	rows := []repository.ClaimRow{}
	for _, id := range ids {
		if row, ok := f.claims[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeDirectoryRepo) PodcastsByListenNotesIDs(_ context.Context, lnIDs []string) ([]repository.PodcastRefRow, error) {
	rows := []repository.PodcastRefRow{}
	for _, id := range lnIDs {
		if row, ok := f.podcasts[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeDirectoryRepo) CompletedOnboardingIDs(_ context.Context, ids []string) ([]string, error) {
	out := []string{}
	for _, id := range ids {
		if f.onboarded[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeDirectoryRepo) SearchVisibility(_ context.Context, userID string) (bool, error) {
	if f.visibilityErr != nil {
		return false, f.visibilityErr
	}
	v, ok := f.visibility[userID]
	if !ok {
		return false, repository.ErrSettingsNotFound
	}
	return v, nil
}

type fakeStorage struct {
	err   error
	calls int
}

func (f *fakeStorage) GetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://signed.podground.io/" + key + "?sig=abc", nil
}

func newTestService(repo *fakeDirectoryRepo, store *fakeStorage) *Service {
	return NewService(repo, store, NewCache(time.Hour, 100), testPublicURL, time.Hour)
}

func TestGetUsersByIDsNameFallbacks(t *testing.T) {
	repo := &fakeDirectoryRepo{
		profiles: map[string]repository.UserProfileRow{
			"u1": {UserID: "u1", FirstName: "Ada", LastName: "Lovelace"},
			"u2": {UserID: "u2", FirstName: "Grace"},
			"u3": {UserID: "u3", LastName: "Hopper"},
		},
		signups: map[string]repository.SignupRow{
			"u4": {UserID: "u4", Name: "Joan Clarke", Email: "joan@example.com"},
		},
	}
	svc := newTestService(repo, &fakeStorage{})

	profiles, err := svc.GetUsersByIDs(context.Background(), []string{"u1", "u2", "u3", "u4"})
	require.NoError(t, err)
	require.Len(t, profiles, 4)

	assert.Equal(t, "Ada Lovelace", profiles["u1"].Name)
	assert.Equal(t, "Grace", profiles["u2"].Name)
	assert.Equal(t, "Hopper", profiles["u3"].Name)
	assert.Equal(t, "Joan Clarke", profiles["u4"].Name)
	assert.Equal(t, "joan@example.com", profiles["u4"].Email)
}

func TestGetUsersByIDsOmitsUnknownUsers(t *testing.T) {
	repo := &fakeDirectoryRepo{
		profiles: map[string]repository.UserProfileRow{
			"u1": {UserID: "u1", FirstName: "Ada"},
		},
	}
	svc := newTestService(repo, &fakeStorage{})

	profiles, err := svc.GetUsersByIDs(context.Background(), []string{"u1", "ghost", ""})
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.Contains(t, profiles, "u1")
}

func TestGetUsersByIDsSignsBucketAvatars(t *testing.T) {
	repo := &fakeDirectoryRepo{
		profiles: map[string]repository.UserProfileRow{
			"u1": {UserID: "u1", FirstName: "Ada", AvatarURL: testPublicURL + "/avatars/u1.jpg"},
			"u2": {UserID: "u2", FirstName: "Grace", AvatarURL: "https://elsewhere.example.com/pic.jpg"},
		},
	}
	store := &fakeStorage{}
	svc := newTestService(repo, store)

	profiles, err := svc.GetUsersByIDs(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)

	assert.Equal(t, "https://signed.podground.io/avatars/u1.jpg?sig=abc", profiles["u1"].AvatarURL)
	assert.Equal(t, "https://elsewhere.example.com/pic.jpg", profiles["u2"].AvatarURL)
	assert.Equal(t, 1, store.calls)
}

func TestGetUsersByIDsKeepsStoredURLOnSigningFailure(t *testing.T) {
	repo := &fakeDirectoryRepo{
		profiles: map[string]repository.UserProfileRow{
			"u1": {UserID: "u1", FirstName: "Ada", AvatarURL: testPublicURL + "/avatars/u1.jpg"},
		},
	}
	svc := newTestService(repo, &fakeStorage{err: errors.New("presign failed")})

	profiles, err := svc.GetUsersByIDs(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, testPublicURL+"/avatars/u1.jpg", profiles["u1"].AvatarURL)
}

func TestGetUsersByIDsAttachesClaimedPodcast(t *testing.T) {
	repo := &fakeDirectoryRepo{
		profiles: map[string]repository.UserProfileRow{
			"u1": {UserID: "u1", FirstName: "Ada"},
		},
		claims: map[string]repository.ClaimRow{
			"u1": {UserID: "u1", ListenNotesID: "ln-9"},
		},
		podcasts: map[string]repository.PodcastRefRow{
			"ln-9": {ID: "pod-1", ListenNotesID: "ln-9", Title: "Tech Talk"},
		},
	}
	svc := newTestService(repo, &fakeStorage{})

	profiles, err := svc.GetUsersByIDs(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, "pod-1", profiles["u1"].PodcastID)
	assert.Equal(t, "Tech Talk", profiles["u1"].PodcastName)
}

func TestGetUsersByIDsServesRepeatsFromCache(t *testing.T) {
	repo := &fakeDirectoryRepo{
		profiles: map[string]repository.UserProfileRow{
			"u1": {UserID: "u1", FirstName: "Ada"},
		},
	}
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.GetUsersByIDs(context.Background(), []string{"u1"})
	require.NoError(t, err)
	_, err = svc.GetUsersByIDs(context.Background(), []string{"u1"})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.profileCalls)
}

func TestGetUsersByIDsPropagatesRepoErrors(t *testing.T) {
	repo := &fakeDirectoryRepo{profilesErr: errors.New("db down")}
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.GetUsersByIDs(context.Background(), []string{"u1"})
	assert.Error(t, err)
}

func TestInvalidateUserForcesReload(t *testing.T) {
	repo := &fakeDirectoryRepo{
		profiles: map[string]repository.UserProfileRow{
			"u1": {UserID: "u1", FirstName: "Ada"},
		},
	}
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.GetUsersByIDs(context.Background(), []string{"u1"})
	require.NoError(t, err)

	svc.InvalidateUser("u1")

	_, err = svc.GetUsersByIDs(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.profileCalls)
}

func TestFilterPlatformReady(t *testing.T) {
	repo := &fakeDirectoryRepo{
		onboarded: map[string]bool{"u1": true, "u2": true, "u4": true},
		claims: map[string]repository.ClaimRow{
			"u1": {UserID: "u1", ListenNotesID: "ln-1"},
			"u3": {UserID: "u3", ListenNotesID: "ln-3"},
			"u4": {UserID: "u4", ListenNotesID: "ln-4"},
		},
	}
	svc := newTestService(repo, &fakeStorage{})

	ready, err := svc.FilterPlatformReady(context.Background(), []string{"u4", "u1", "u2", "u3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u4", "u1"}, ready)
}

func TestFilterPlatformReadyEmptyInput(t *testing.T) {
	svc := newTestService(&fakeDirectoryRepo{}, &fakeStorage{})

	ready, err := svc.FilterPlatformReady(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ready)
}

func TestIsSearchable(t *testing.T) {
	repo := &fakeDirectoryRepo{
		visibility: map[string]bool{"hidden": false, "visible": true},
	}
	svc := newTestService(repo, &fakeStorage{})

	ctx := context.Background()
	assert.False(t, svc.IsSearchable(ctx, "hidden"))
	assert.True(t, svc.IsSearchable(ctx, "visible"))
	assert.True(t, svc.IsSearchable(ctx, "no-settings-row"))

	repo.visibilityErr = errors.New("db down")
	assert.True(t, svc.IsSearchable(ctx, "visible"))
}
