package services

import (
	"github.com/pkg/errors"
)

// エラー分類。コントローラーでHTTPステータスに対応付ける
var (
	// ErrValidation 入力値が不正
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials ユーザー名またはパスワードが正しくない
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken トークンが無い・不正・期限切れ
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUsernameTaken ユーザー名が既に使用されている
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrWorkNotFound 作品が存在しないか所有者ではない
	ErrWorkNotFound = errors.New("work not found or not owned by user")
	// ErrUserNotFound ユーザーが存在しない
	ErrUserNotFound = errors.New("user not found")
	// ErrQuery ストレージ層のエラー
	ErrQuery = errors.New("query failed")
)

// queryError ストレージのエラーを ErrQuery として包む。原因はメッセージに残す
func queryError(err error, op string) error {
	return &wrappedError{kind: ErrQuery, cause: errors.Wrap(err, op)}
}

// validationError 入力エラーを ErrValidation として包む
func validationError(msg string) error {
	return &wrappedError{kind: ErrValidation, cause: errors.New(msg)}
}

type wrappedError struct {
	kind  error
	cause error
}

func (e *wrappedError) Error() string {
	return e.cause.Error()
}

func (e *wrappedError) Is(target error) bool {
	return target == e.kind
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}
