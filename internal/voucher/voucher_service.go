package voucher

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"time"

	vouchererrors "github.com/Ayabe1990/management-pro-project-sub001/internal/voucher/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, actorID string, req CreateVoucherRequest) (VoucherResponse, error)
	GetAll(ctx context.Context) ([]VoucherResponse, error)
	GetByID(ctx context.Context, id string) (VoucherResponse, error)
	Redeem(ctx context.Context, code string) (VoucherResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
	now  func() time.Time
}

type ServiceOption func(*service)

func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) { s.now = now }
}

func NewService(db *sql.DB, repo Repository, opts ...ServiceOption) Service {
	s := &service{db: db, repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// codeAlphabet excludes 0/O and 1/I so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return "VCH-" + string(buf), nil
}

func (s *service) Create(ctx context.Context, actorID string, req CreateVoucherRequest) (VoucherResponse, error) {
	issuedBy, err := uuid.Parse(actorID)
	if err != nil {
		return VoucherResponse{}, vouchererrors.ErrInvalidVoucherID
	}
	if req.Value <= 0 {
		return VoucherResponse{}, vouchererrors.ErrNonPositiveValue
	}
	expiresAt, err := time.Parse("2006-01-02", req.ExpiresAt)
	if err != nil {
		return VoucherResponse{}, vouchererrors.ErrInvalidDateFormat
	}

	code, err := generateCode()
	if err != nil {
		return VoucherResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VoucherResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v := &Voucher{
		ID:        uuid.New(),
		Code:      code,
		Value:     req.Value,
		ExpiresAt: expiresAt,
		IssuedBy:  issuedBy,
	}

	if err := qtx.Create(ctx, v); err != nil {
		return VoucherResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return VoucherResponse{}, err
	}

	return mapToResponse(*v), nil
}

func (s *service) GetAll(ctx context.Context) ([]VoucherResponse, error) {
	vouchers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		resp[i] = mapToResponse(v)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (VoucherResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return VoucherResponse{}, vouchererrors.ErrInvalidVoucherID
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VoucherResponse{}, vouchererrors.ErrVoucherNotFound
		}
		return VoucherResponse{}, err
	}

	return mapToResponse(*v), nil
}

// Redeem marks the voucher spent. A voucher is still redeemable on its
// expiry date; only later days reject it.
func (s *service) Redeem(ctx context.Context, code string) (VoucherResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return VoucherResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VoucherResponse{}, vouchererrors.ErrVoucherNotFound
		}
		return VoucherResponse{}, err
	}

	if v.Redeemed {
		return VoucherResponse{}, vouchererrors.ErrVoucherRedeemed
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.After(v.ExpiresAt) {
		return VoucherResponse{}, vouchererrors.ErrVoucherExpired
	}

	v.Redeemed = true
	v.RedeemedAt = &now

	if err := qtx.Update(ctx, v); err != nil {
		return VoucherResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return VoucherResponse{}, err
	}

	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return vouchererrors.ErrInvalidVoucherID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(v Voucher) VoucherResponse {
	resp := VoucherResponse{
		ID:        v.ID.String(),
		Code:      v.Code,
		Value:     v.Value,
		ExpiresAt: v.ExpiresAt.Format("2006-01-02"),
		Redeemed:  v.Redeemed,
		IssuedBy:  v.IssuedBy.String(),
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
	if v.RedeemedAt != nil {
		resp.RedeemedAt = v.RedeemedAt.Format(time.RFC3339)
	}
	return resp
}
