package service

import (
	"driveschool_backend/internal/config"
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/util"
	"driveschool_backend/pkg/logger"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// EmailService sends plain-text notifications. Delivery is fire and
// forget: a failed send is logged and never fails the request that
// triggered it.
type EmailService struct {
	Cfg *config.SMTPConfig
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{Cfg: &cfg.SMTP}
}

func (s *EmailService) send(to, subject, body string) {
	if !s.Cfg.Enabled {
		return
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", s.Cfg.Host, s.Cfg.Port)
		msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
			s.Cfg.FromName, s.Cfg.FromAddress, to, subject, body)

		auth := smtp.PlainAuth("", s.Cfg.Username, s.Cfg.Password, s.Cfg.Host)
		if err := smtp.SendMail(addr, auth, s.Cfg.FromAddress, []string{to}, []byte(msg)); err != nil {
			logger.Log.Error("Failed to send email",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}

func (s *EmailService) SendBookingRequested(to string, booking *model.Booking) {
	subject := "New lesson request"
	body := fmt.Sprintf("A student has requested a lesson on %s.\nPickup: %s\n",
		booking.StartTime.Format(util.TimeFormat), booking.PickupLocation)
	s.send(to, subject, body)
}

func (s *EmailService) SendBookingConfirmed(to string, booking *model.Booking) {
	subject := "Lesson confirmed"
	body := fmt.Sprintf("Your lesson on %s has been confirmed.\nPickup: %s\n",
		booking.StartTime.Format(util.TimeFormat), booking.PickupLocation)
	s.send(to, subject, body)
}
