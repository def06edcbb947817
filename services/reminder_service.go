// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationDueSoon = "due_soon"
	NotificationOverdue = "overdue"
)

// How far ahead of the due date customers get a heads-up
const dueSoonWindowDays = 7

// ReminderService runs the daily billing sweep: it materializes pending
// payments for every active contract and notifies customers whose payment
// is due soon or overdue.
type ReminderService struct {
	db       *gorm.DB
	payments *PaymentService
	client   *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db:       db,
		payments: NewPaymentService(db),
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.RunDailyBilling)

	c.Start()
	log.Println("Billing scheduler started")
}

func (s *ReminderService) RunDailyBilling() {
	log.Println("Starting daily billing processing...")

	var contracts []models.Contract
	if err := s.db.Find(&contracts, "status = ?", models.ContractActive).Error; err != nil {
		log.Printf("Failed to fetch active contracts: %v", err)
		return
	}

	for _, contract := range contracts {
		if err := s.payments.EnsurePendingPayment(contract.ID); err != nil {
			log.Printf("Contract %d: failed to generate payment: %v", contract.ID, err)
		}
	}

	s.SendDueReminders()

	log.Println("Daily billing processing completed")
}

// SendDueReminders notifies customers with a pending payment that is
// overdue or falls due within the reminder window.
func (s *ReminderService) SendDueReminders() {
	horizon := utils.BeginningOfDay(time.Now()).AddDate(0, 0, dueSoonWindowDays)

	var payments []models.Payment
	err := s.db.Preload("Contract.Customer").
		Where("status = ? AND due_date <= ?", models.PaymentPending, horizon).
		Find(&payments).Error
	if err != nil {
		log.Printf("Failed to fetch due payments: %v", err)
		return
	}

	for _, payment := range payments {
		customer := payment.Contract.Customer
		if customer.Phone == "" {
			continue
		}

		// At most one reminder per payment per day
		var sentToday int64
		s.db.Model(&models.NotificationLog{}).
			Where("payment_id = ? AND sent_at >= ?", payment.ID, utils.BeginningOfDay(time.Now())).
			Count(&sentToday)
		if sentToday > 0 {
			continue
		}

		notifType := NotificationDueSoon
		message := fmt.Sprintf("Hi %s, your internet service payment of %.2f is due on %s.",
			customer.Name, payment.Amount, payment.DueDate.Format("2006-01-02"))
		if payment.DueDate.Before(time.Now()) {
			notifType = NotificationOverdue
			message = fmt.Sprintf("Hi %s, your internet service payment of %.2f was due on %s. Please pay to avoid service interruption.",
				customer.Name, payment.Amount, payment.DueDate.Format("2006-01-02"))
		}

		// WhatsApp when the phone is in E.164 format, SMS otherwise
		channel := "sms"
		to := customer.Phone
		if strings.HasPrefix(customer.Phone, "+") {
			to = "whatsapp:" + customer.Phone
			channel = "whatsapp"
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(message)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		resp, err := s.client.Api.CreateMessage(params)
		status := "sent"
		errorMsg := ""

		if err != nil {
			log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
			status = "failed"
			errorMsg = err.Error()
		} else if resp.Sid != nil {
			log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
		} else {
			log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
		}

		notifLog := models.NotificationLog{
			PaymentID:  payment.ID,
			CustomerID: customer.ID,
			Type:       notifType,
			Message:    message,
			Status:     status,
			ErrorMsg:   errorMsg,
			Channel:    channel,
			SentAt:     time.Now(),
		}

		if err := s.db.Create(&notifLog).Error; err != nil {
			log.Printf("Failed to log reminder for payment %d: %v", payment.ID, err)
		}
	}
}
