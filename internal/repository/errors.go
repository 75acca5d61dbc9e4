package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var constraintMessages = map[string]string{
	"users_username_key":            "username already exists",
	"job_postings_user_id_fkey":     "user not found",
	"job_applications_job_id_fkey":  "job posting not found",
	"job_applications_user_id_fkey": "user not found",
}

// translate maps driver errors onto the domain taxonomy so that nothing driver
// specific reaches a response. notFound is the message used for sql.ErrNoRows.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError
	var netErr net.Error

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.NotFoundError(notFound)
	case errors.As(err, &pgErr):
		msg, known := constraintMessages[pgErr.ConstraintName]
		switch pgErr.Code {
		case pgUniqueViolation:
			if !known {
				msg = "duplicate value"
			}
			return domain.NewError(domain.KindValidation, msg, err)
		case pgForeignKeyViolation:
			if !known {
				msg = "referenced entity not found"
			}
			return domain.NewError(domain.KindNotFound, msg, err)
		}
		return domain.InternalError(err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &connErr),
		errors.As(err, &netErr):
		return domain.UnavailableError(err)
	default:
		return domain.InternalError(err)
	}
}

func expectAffected(res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, notFound)
	}
	if n == 0 {
		return domain.NotFoundError(notFound)
	}
	return nil
}
