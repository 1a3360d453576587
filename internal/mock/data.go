package mock

import (
	"context"

	"github.com/pkg/errors"

	"github.com/SketchShifter/workshelf_backend/internal/services"
)

// SampleUser サンプルユーザー
type SampleUser struct {
	Username string
	Password string
	Works    []services.WorkInput
}

// Users サンプルデータ。ローカル開発と結合テストで使用する
var Users = []SampleUser{
	{
		Username: "johndoe",
		Password: "password",
		Works: []services.WorkInput{
			{PixivID: "81234567", Title: "Particle System", Type: "illust", Tags: []string{"generative", "particles"}},
			{PixivID: "81234568", Title: "Night Drive", Type: "illust", Tags: []string{"car", "night", "city"}},
			{PixivID: "81234569", Title: "Cat Nap", Type: "illust", Tags: []string{"cat", "animal"}},
			{PixivID: "81234570", Title: "Orbit", Type: "ugoira", Tags: []string{"animation", "3D"}},
		},
	},
	{
		Username: "janesmith",
		Password: "password",
		Works: []services.WorkInput{
			{PixivID: "92345678", Title: "Carnival", Type: "illust", Tags: []string{"car", "festival"}},
			{PixivID: "92345679", Title: "Tabby", Type: "illust", Tags: []string{"cat"}},
			{PixivID: "92345680", Title: "Spring Comic", Type: "manga", Tags: []string{"comedy", "school"}},
		},
	},
}

// Seed サンプルユーザーと作品を登録する。既に存在するユーザーはスキップ
func Seed(ctx context.Context, auth services.AuthService, works services.WorkService) (int, error) {
	created := 0
	for _, u := range Users {
		user, _, err := auth.Signup(ctx, u.Username, u.Password)
		if errors.Is(err, services.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return created, errors.Wrapf(err, "seed user %s", u.Username)
		}

		for _, w := range u.Works {
			if _, err := works.Create(ctx, user.ID, w); err != nil {
				return created, errors.Wrapf(err, "seed work %s", w.Title)
			}
			created++
		}
	}
	return created, nil
}
