// services/payment_service.go
package services

import (
	"errors"
	"time"

	"ispnet-backend/models"
	"ispnet-backend/utils"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentService maintains the recurring billing invariant: at most one
// pending payment per contract, advancing monthly from the last due date
// (or the contract start) until the contract end date is reached.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// EnsurePendingPayment materializes the contract's next unpaid billing
// period. It is a no-op when the contract does not exist, a pending payment
// already exists, or the contract is fully billed.
func (s *PaymentService) EnsurePendingPayment(contractID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		err := tx.Preload("Plan").First(&contract, contractID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var pendingCount int64
		if err := tx.Model(&models.Payment{}).
			Where("contract_id = ? AND status = ?", contractID, models.PaymentPending).
			Count(&pendingCount).Error; err != nil {
			return err
		}
		if pendingCount > 0 {
			return nil
		}

		var lastPayment models.Payment
		dueDate := utils.NextBillingDate(contract.StartDate)
		err = tx.Where("contract_id = ?", contractID).
			Order("due_date DESC").
			First(&lastPayment).Error
		if err == nil {
			dueDate = utils.NextBillingDate(lastPayment.DueDate)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if dueDate.After(contract.EndDate) {
			return nil
		}

		payment := models.Payment{
			ContractID: contractID,
			Amount:     contract.Plan.MonthlyPrice,
			Status:     models.PaymentPending,
			DueDate:    dueDate,
			Method:     models.PaymentMethodUnspecified,
		}
		return tx.Create(&payment).Error
	})
}

// MarkPaid processes a payment and immediately re-runs the scheduler so the
// following period's pending entry exists.
func (s *PaymentService) MarkPaid(paymentID uint, method string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&payment, paymentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		payment.Status = models.PaymentPaid
		payment.Method = method
		payment.PaidAt = &now
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.EnsurePendingPayment(payment.ContractID); err != nil {
		return nil, err
	}
	return &payment, nil
}
