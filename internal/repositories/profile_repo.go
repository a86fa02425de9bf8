package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"restopos-api/internal/models"
)

type ProfileRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewProfileRepository(db *sqlx.DB, log *zap.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, log: log}
}

var _ Profiles = (*ProfileRepository)(nil)

// GetAssignedProfileName returns sql.ErrNoRows when the user is on no profile.
func (r *ProfileRepository) GetAssignedProfileName(ctx context.Context, user string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
SELECT pu.parent
FROM pos_profile_users pu
INNER JOIN pos_profiles p ON p.name = pu.parent
WHERE pu.user_name = ?
ORDER BY p.disabled ASC, pu.parent ASC
LIMIT 1`), user).Scan(&name)
	if err != nil {
		return "", err
	}
	return name, nil
}

func (r *ProfileRepository) GetProfile(ctx context.Context, name string) (*models.POSProfile, error) {
	r.log.Info("GetProfile START", zap.String("pos_profile", name))

	var p models.POSProfile
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
SELECT name, company, warehouse, cost_center, selling_price_list, disabled
FROM pos_profiles
WHERE name = ?`), name).Scan(
		&p.Name, &p.Company, &p.Warehouse, &p.CostCenter, &p.SellingPriceList, &p.Disabled,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
SELECT mode_of_payment, is_default, default_account
FROM pos_profile_payments
WHERE parent = ?
ORDER BY idx ASC`), name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Payments = []models.ProfilePayment{}
	for rows.Next() {
		var pay models.ProfilePayment
		var account sql.NullString
		if err := rows.Scan(&pay.ModeOfPayment, &pay.IsDefault, &account); err != nil {
			return nil, err
		}
		pay.DefaultAccount = account.String
		p.Payments = append(p.Payments, pay)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ProfileRepository) IsUserAssigned(ctx context.Context, profile, user string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
SELECT 1 FROM pos_profile_users WHERE parent = ? AND user_name = ? LIMIT 1`), profile, user).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetModeOfPaymentAccount returns "" when the mode has no account for the company.
func (r *ProfileRepository) GetModeOfPaymentAccount(ctx context.Context, mode, company string) (string, error) {
	var account string
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`
SELECT default_account FROM mode_of_payment_accounts WHERE parent = ? AND company = ?`), mode, company).Scan(&account)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return account, nil
}
