package infra

import (
	"errors"
	"log/slog"

	"scooter-rental/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

const (
	KindNotFound       RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure      RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey   RepositoryErrorKind = "DUPLICATE_KEY"
	KindCheckViolation RepositoryErrorKind = "CHECK_VIOLATION"
)

// Postgres SQLSTATE codes the repositories distinguish.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgSerializationFailed = "40001"
	pgDeadlockDetected    = "40P01"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	slogger.Error("Repository error: "+msg, slog.String("kind", string(kind)), slog.Any("error", err))

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

// WrapPgErr is WrapRepoErr with the kind derived from the driver error.
func WrapPgErr(slogger *slog.Logger, msg string, err error) error {
	return WrapRepoErr(slogger, classify(err), msg, err)
}

// NotFound is an expected outcome and is not logged.
func NotFound(msg string) error {
	return RepositoryError{Kind: KindNotFound, msg: msg}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func classify(err error) RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return KindDuplicateKey
	case pgCheckViolation:
		return KindCheckViolation
	default:
		return KindDBFailure
	}
}

// IsRetryable reports whether the whole transaction can be replayed.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailed || pgErr.Code == pgDeadlockDetected
}
