package repository

import "errors"

var ErrNotFound = errors.New("not found")

// unique制約違反（同一ユーザーのカート二重作成など）
var ErrDuplicate = errors.New("duplicate")
