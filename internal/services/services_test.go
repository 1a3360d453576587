package services

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SketchShifter/workshelf_backend/internal/config"
	"github.com/SketchShifter/workshelf_backend/internal/models"
	"github.com/SketchShifter/workshelf_backend/internal/repository"
	"github.com/SketchShifter/workshelf_backend/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			TokenExpiry: time.Hour,
			BcryptCost:  bcrypt.MinCost,
		},
	}
}

// stubWorkRepository 固定のエラーを返すWorkRepository
type stubWorkRepository struct {
	err     error
	created *models.Work
	tags    []string
	filter  repository.SearchFilter
}

func (s *stubWorkRepository) CreateWithTags(_ context.Context, work *models.Work, tagNames []string) error {
	s.created, s.tags = work, tagNames
	work.ID = 1
	return s.err
}

func (s *stubWorkRepository) FindByID(context.Context, uint) (*models.Work, error) {
	return nil, s.err
}

func (s *stubWorkRepository) Search(_ context.Context, filter repository.SearchFilter) ([]models.Work, error) {
	s.filter = filter
	return []models.Work{}, s.err
}

func (s *stubWorkRepository) DeleteOwned(context.Context, uint, uint) error {
	return s.err
}

func TestWorkService_CreateValidation(t *testing.T) {
	repo := &stubWorkRepository{}
	svc := NewWorkService(repo, zap.NewNop())
	ctx := context.Background()

	cases := map[string]WorkInput{
		"missing pixiv id": {Title: "t", Type: "art"},
		"missing title":    {PixivID: "1", Type: "art"},
		"missing type":     {PixivID: "1", Title: "t"},
		"blank tag":        {PixivID: "1", Title: "t", Type: "art", Tags: []string{"cat", "  "}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Nil(t, repo.created)

	work, err := svc.Create(ctx, 9, WorkInput{PixivID: "1", Title: "t", Type: "art", Tags: []string{"cat"}})
	require.NoError(t, err)
	assert.EqualValues(t, 9, work.UserID)
	assert.Equal(t, []string{"cat"}, repo.tags)
}

func TestWorkService_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	notFound := NewWorkService(&stubWorkRepository{err: gorm.ErrRecordNotFound}, zap.NewNop())
	assert.ErrorIs(t, notFound.Delete(ctx, 1, 1), ErrWorkNotFound)

	broken := NewWorkService(&stubWorkRepository{err: errors.New("connection refused")}, zap.NewNop())
	err := broken.Delete(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrQuery)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = broken.Search(ctx, 1, "art", nil)
	assert.ErrorIs(t, err, ErrQuery)

	_, err = broken.Create(ctx, 1, WorkInput{PixivID: "1", Title: "t", Type: "art"})
	assert.ErrorIs(t, err, ErrQuery)
}

func TestWorkService_SearchPassesFilter(t *testing.T) {
	repo := &stubWorkRepository{}
	svc := NewWorkService(repo, zap.NewNop())

	_, err := svc.Search(context.Background(), 3, "", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Search(context.Background(), 3, "art", []string{"a", "a"})
	require.NoError(t, err)
	assert.Equal(t, repository.SearchFilter{UserID: 3, Type: "art", Tags: []string{"a", "a"}}, repo.filter)
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testConfig())
	ctx := context.Background()

	user, token, err := svc.Signup(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "password1", user.PasswordHash)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	_, _, err = svc.Signup(ctx, "alice", "another1")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, loginToken, err := svc.Login(ctx, "alice", "password1")
	require.NoError(t, err)
	loginID, err := svc.VerifyToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loginID)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.VerifyToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_SignupValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testConfig())

	_, _, err := svc.Signup(context.Background(), "   ", "password1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTagService_SuggestNeverNil(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTagService(repository.NewTagRepository(db))

	names, err := svc.Suggest(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestHealthService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewHealthService(db)

	status := svc.GetStatus(context.Background())
	assert.True(t, status.Healthy())
	assert.Equal(t, "ok", status.Database)
	assert.Equal(t, Version, status.Version)

	require.NoError(t, config.CloseDB(db))
	status = svc.GetStatus(context.Background())
	assert.False(t, status.Healthy())
	assert.Equal(t, "unavailable", status.Database)
}
