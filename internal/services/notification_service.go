// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/firenoc/firenoc-backend/internal/config"
	"github.com/firenoc/firenoc-backend/internal/models"
)

// NotificationService writes in-app notification rows and sends the matching
// emails. The row is written synchronously on the caller's connection (or
// transaction) so list endpoints see it immediately; email delivery runs on a
// goroutine and a failure there only logs.
type NotificationService struct {
	db    *gorm.DB
	email config.EmailConfig
}

func NewNotificationService(db *gorm.DB, email config.EmailConfig) *NotificationService {
	return &NotificationService{db: db, email: email}
}

func (s *NotificationService) Create(tx *gorm.DB, userID uuid.UUID, title, message string, ntype models.NotificationType, actionURL string) (*models.Notification, error) {
	if tx == nil {
		tx = s.db
	}

	notification := &models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      ntype,
		ActionURL: actionURL,
	}

	if err := tx.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// NotifyInspectionScheduled tells the applicant when and where the officer
// will arrive.
func (s *NotificationService) NotifyInspectionScheduled(tx *gorm.DB, applicant *models.User, appNumber, date, timeSlot, buildingName string) error {
	message := fmt.Sprintf("Your inspection for application %s is scheduled for %s at %s. Building: %s",
		appNumber, date, timeSlot, buildingName)

	_, err := s.Create(tx, applicant.ID, "Inspection Scheduled", message, models.NotificationTypeInfo, "/applications")
	if err != nil {
		return err
	}

	go s.sendEmail(applicant.Email, "Inspection Scheduled", message)
	return nil
}

// NotifyInspectionCompleted tells the applicant the inspection result is in.
func (s *NotificationService) NotifyInspectionCompleted(tx *gorm.DB, applicant *models.User, appNumber, score string) error {
	message := fmt.Sprintf("The inspection for your application %s has been completed. Score: %s. Decision pending.",
		appNumber, score)

	_, err := s.Create(tx, applicant.ID, "Inspection Completed", message, models.NotificationTypeInfo, "/applications")
	if err != nil {
		return err
	}

	go s.sendEmail(applicant.Email, "Inspection Completed", message)
	return nil
}

// NotifyApplicationApproved carries the freshly minted certificate number.
func (s *NotificationService) NotifyApplicationApproved(tx *gorm.DB, applicant *models.User, appNumber, nocNumber string) error {
	message := fmt.Sprintf("Your application %s has been approved. Your NOC Number: %s", appNumber, nocNumber)

	_, err := s.Create(tx, applicant.ID, "NOC Approved", message, models.NotificationTypeSuccess, "/certificates")
	if err != nil {
		return err
	}

	go s.sendEmail(applicant.Email, "NOC Approved", message)
	return nil
}

// NotifyApplicationRejected carries the officer's stated reason.
func (s *NotificationService) NotifyApplicationRejected(tx *gorm.DB, applicant *models.User, appNumber, reason string) error {
	message := fmt.Sprintf("Your application %s was rejected. Reason: %s", appNumber, reason)

	_, err := s.Create(tx, applicant.ID, "NOC Rejected", message, models.NotificationTypeError, "/applications")
	if err != nil {
		return err
	}

	go s.sendEmail(applicant.Email, "NOC Rejected", message)
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

var emailTemplate = template.Must(template.New("email").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #b91c1c;">{{.Title}}</h2>
  <p>{{.Message}}</p>
  <hr>
  <p style="font-size: 12px; color: #888;">
    This is an automated message from the Fire NOC Portal. Please do not reply.
  </p>
</body>
</html>
`))

func (s *NotificationService) sendEmail(to, subject, message string) {
	if s.email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Debug("SMTP not configured, skipping email")
		return
	}

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, map[string]string{
		"Title":   subject,
		"Message": message,
	}); err != nil {
		logrus.WithError(err).Error("Failed to render email template")
		return
	}

	msg := []byte("From: " + s.email.FromName + " <" + s.email.FromEmail + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		body.String())

	addr := s.email.SMTPHost + ":" + s.email.SMTPPort
	auth := smtp.PlainAuth("", s.email.SMTPUsername, s.email.SMTPPassword, s.email.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.email.FromEmail, []string{to}, msg); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
	}
}
