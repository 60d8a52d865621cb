package expense

import (
	"context"
	"fmt"
	"io"
	"time"

	"droneops/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ObjectStore is the subset of the S3 client used for receipt scans.
type ObjectStore interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, string, error)
	PutObject(ctx context.Context, key, contentType string, body io.Reader) error
	DeleteObject(ctx context.Context, key string) error
}

// Service manages the expense log.
type Service struct {
	db    *gorm.DB
	store ObjectStore
}

func NewService(db *gorm.DB, store ObjectStore) *Service {
	return &Service{db: db, store: store}
}

// Input carries the create/update parameters for an expense.
type Input struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Notes       string
	CreatedBy   *uuid.UUID
}

func (in Input) validate() error {
	if in.Date.IsZero() {
		return common.NewValidationError("date is required")
	}
	if !in.Amount.IsPositive() {
		return common.NewValidationError("amount must be positive")
	}
	if in.Description == "" {
		return common.NewValidationError("description is required")
	}
	return nil
}

func (s *Service) Create(in Input) (*Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e := Expense{
		Date:        in.Date,
		Amount:      in.Amount,
		Description: in.Description,
		Notes:       in.Notes,
		CreatedByID: in.CreatedBy,
	}
	if err := s.db.Create(&e).Error; err != nil {
		return nil, err
	}
	e.HasReceipt = false
	return &e, nil
}

func (s *Service) Update(id uuid.UUID, in Input) (*Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var e Expense
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "expense")
	}
	e.Date = in.Date
	e.Amount = in.Amount
	e.Description = in.Description
	e.Notes = in.Notes
	if err := s.db.Save(&e).Error; err != nil {
		return nil, err
	}
	e.HasReceipt = e.ReceiptKey != ""
	return &e, nil
}

func (s *Service) Get(id uuid.UUID) (*Expense, error) {
	var e Expense
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "expense")
	}
	e.HasReceipt = e.ReceiptKey != ""
	return &e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var e Expense
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		return common.WrapNotFound(err, "expense")
	}
	if e.ReceiptKey != "" && s.store != nil {
		if err := s.store.DeleteObject(ctx, e.ReceiptKey); err != nil {
			return err
		}
	}
	return s.db.Delete(&e).Error
}

// List returns expenses in a date range, newest first, with the range total.
func (s *Service) List(from, to *time.Time) ([]Expense, decimal.Decimal, error) {
	query := s.db.Model(&Expense{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date < ?", to.AddDate(0, 0, 1))
	}

	var expenses []Expense
	if err := query.Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for i := range expenses {
		expenses[i].HasReceipt = expenses[i].ReceiptKey != ""
		total = total.Add(expenses[i].Amount)
	}
	return expenses, total, nil
}

// AttachReceipt uploads a receipt scan, replacing any previous one.
func (s *Service) AttachReceipt(ctx context.Context, id uuid.UUID, contentType string, body io.Reader) (*Expense, error) {
	if s.store == nil {
		return nil, common.NewValidationError("receipt storage is not configured")
	}
	var e Expense
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		return nil, common.WrapNotFound(err, "expense")
	}
	key := fmt.Sprintf("receipts/%s", e.ID)
	if err := s.store.PutObject(ctx, key, contentType, body); err != nil {
		return nil, err
	}
	if err := s.db.Model(&e).Update("receipt_key", key).Error; err != nil {
		return nil, err
	}
	e.ReceiptKey = key
	e.HasReceipt = true
	return &e, nil
}

// GetReceipt downloads the receipt scan of one expense.
func (s *Service) GetReceipt(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	var e Expense
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		return nil, "", common.WrapNotFound(err, "expense")
	}
	if e.ReceiptKey == "" {
		return nil, "", common.NewNotFoundError("receipt")
	}
	if s.store == nil {
		return nil, "", common.NewValidationError("receipt storage is not configured")
	}
	body, contentType, err := s.store.GetObject(ctx, e.ReceiptKey)
	if err != nil {
		return nil, "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read receipt data: %w", err)
	}
	return data, contentType, nil
}
