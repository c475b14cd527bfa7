package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/reelbook/internal/diary/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, handle, address, password_hash, role, bio, verified,
	pending_code, code_expires_at, created_at, updated_at, last_login_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a         domain.Account
		role      string
		code      sql.NullString
		expires   sql.NullInt64
		lastLogin sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&a.ID, &a.Handle, &a.Address, &a.PasswordHash, &role, &a.Bio, &a.Verified,
		&code, &expires, &createdAt, &updatedAt, &lastLogin,
	); err != nil {
		return domain.Account{}, mapError(err)
	}
	a.Role = domain.Role(role)
	a.PendingCode = mapNullStringPtr(code)
	a.CodeExpiresAt = mapNullTimePtr(expires)
	a.CreatedAt = fromUnix(createdAt)
	a.UpdatedAt = fromUnix(updatedAt)
	a.LastLoginAt = mapNullTimePtr(lastLogin)
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Handle, a.Address, a.PasswordHash, string(a.Role), a.Bio, a.Verified,
		mapOptionalString(a.PendingCode), mapOptionalTime(a.CodeExpiresAt),
		toUnix(a.CreatedAt), toUnix(a.UpdatedAt), mapOptionalTime(a.LastLoginAt),
	)
	return mapError(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

func (r *accountsRepo) GetAccountByHandle(ctx context.Context, handle string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE handle = ?`, handle))
}

func (r *accountsRepo) GetAccountByAddress(ctx context.Context, address string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE address = ?`, address))
}

func (r *accountsRepo) SetPendingCode(ctx context.Context, id string, code domain.VerificationCode, now time.Time) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE accounts
		SET pending_code = ?, code_expires_at = ?, updated_at = ?
		WHERE id = ? AND verified = 0`,
		code.Code, toUnix(code.ExpiresAt), toUnix(now), id,
	))
}

func (r *accountsRepo) MarkVerified(ctx context.Context, id string, now time.Time) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE accounts
		SET verified = 1, pending_code = NULL, code_expires_at = NULL, updated_at = ?
		WHERE id = ?`,
		toUnix(now), id,
	))
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id, handle, address, bio string, now time.Time) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE accounts
		SET handle = ?, address = ?, bio = ?, updated_at = ?
		WHERE id = ?`,
		handle, address, bio, toUnix(now), id,
	))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, toUnix(now), id,
	))
}

func (r *accountsRepo) UpdateRole(ctx context.Context, id string, role domain.Role, now time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), toUnix(now), id,
	))
}

func (r *accountsRepo) TouchLastLogin(ctx context.Context, id string, now time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE accounts SET last_login_at = ? WHERE id = ?`,
		toUnix(now), id,
	))
}

func (r *accountsRepo) ClearExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET pending_code = NULL, code_expires_at = NULL
		WHERE pending_code IS NOT NULL AND code_expires_at < ?`,
		toUnix(now),
	)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}

func (r *accountsRepo) Search(ctx context.Context, query string, limit int) ([]domain.AccountSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, handle, bio FROM accounts
		WHERE handle LIKE '%' || ? || '%' ESCAPE '\'
		ORDER BY handle
		LIMIT ?`,
		escapeLike(query), limit,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return scanSummaries(rows)
}

// scanSummaries drains rows of (id, handle, bio) and closes them.
func scanSummaries(rows *sql.Rows) ([]domain.AccountSummary, error) {
	defer rows.Close()

	out := []domain.AccountSummary{}
	for rows.Next() {
		var s domain.AccountSummary
		if err := rows.Scan(&s.ID, &s.Handle, &s.Bio); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
