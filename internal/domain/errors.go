package domain

import "errors"

// 存储层哨兵错误
var (
	ErrNotFound       = errors.New("user not found")
	ErrInvalidID      = errors.New("invalid user id")
	ErrDuplicateEmail = errors.New("duplicate email")
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindConflict
	KindInvalidID
	KindNotFound
)

// Error 统一业务错误，Msg 即返回给调用方的文本
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "user error"
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticated() error      { return &Error{Kind: KindUnauthenticated, Msg: "Unauthorized"} }
func Forbidden(msg string) error  { return &Error{Kind: KindForbidden, Msg: msg} }
func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }
func Conflict(msg string) error   { return &Error{Kind: KindConflict, Msg: msg} }
func InvalidID(msg string) error  { return &Error{Kind: KindInvalidID, Msg: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 非 *Error 一律按 Internal 处理
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
