package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	//ユニーク制約違反をusecaseへ伝える
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)
