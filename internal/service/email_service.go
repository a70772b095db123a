package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/repository"
)

// EmailSvc is an implementation of the service.EmailService interface
type EmailSvc struct {
	repos  *repository.Repository
	logger *logrus.Logger
	config *configs.Config
}

// NewEmailService creates a new EmailSvc
func NewEmailService(deps Dependencies) *EmailSvc {
	return &EmailSvc{
		repos:  deps.Repos,
		logger: deps.Logger,
		config: deps.Config,
	}
}

// SendApplicationApproved notifies a borrower that their loan was approved
// and disbursed
func (s *EmailSvc) SendApplicationApproved(ctx context.Context, userID int, loan *models.Loan) error {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	// Skip if email is empty
	if user.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Loan Approved: %s", loan.LoanNumber)

	body := fmt.Sprintf(`
	<h2>Loan Approved</h2>
	<p>Dear %s,</p>

	<p>Congratulations! Your loan application has been approved and disbursed:</p>

	<table style="border-collapse: collapse; width: 100%%;">
		<tr>
			<td style="padding: 8px; border: 1px solid #ddd;"><strong>Loan Number:</strong></td>
			<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
		</tr>
		<tr>
			<td style="padding: 8px; border: 1px solid #ddd;"><strong>Principal Amount:</strong></td>
			<td style="padding: 8px; border: 1px solid #ddd;">%.2f</td>
		</tr>
		<tr>
			<td style="padding: 8px; border: 1px solid #ddd;"><strong>Interest Rate:</strong></td>
			<td style="padding: 8px; border: 1px solid #ddd;">%.2f%% per annum</td>
		</tr>
		<tr>
			<td style="padding: 8px; border: 1px solid #ddd;"><strong>Tenure:</strong></td>
			<td style="padding: 8px; border: 1px solid #ddd;">%d months</td>
		</tr>
		<tr>
			<td style="padding: 8px; border: 1px solid #ddd;"><strong>Monthly EMI:</strong></td>
			<td style="padding: 8px; border: 1px solid #ddd;">%.2f</td>
		</tr>
		<tr>
			<td style="padding: 8px; border: 1px solid #ddd;"><strong>Total Payable:</strong></td>
			<td style="padding: 8px; border: 1px solid #ddd;">%.2f</td>
		</tr>
		<tr>
			<td style="padding: 8px; border: 1px solid #ddd;"><strong>Disbursed Date:</strong></td>
			<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
		</tr>
	</table>

	<p>Your first installment is due one month after the disbursement date.</p>

	<p>
	Best regards,<br>
	Lending Office Team
	</p>
	`,
		user.Name,
		loan.LoanNumber,
		loan.PrincipalAmount,
		loan.InterestRate,
		loan.TenureMonths,
		loan.EMIAmount,
		loan.TotalPayable,
		loan.DisbursedDate.Format("2006-01-02"),
	)

	if err := s.sendEmail(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Approval email sent to %s for loan %d", user.Email, loan.ID)

	return nil
}

// SendPaymentReceived notifies a borrower that a payment was recorded
func (s *EmailSvc) SendPaymentReceived(ctx context.Context, userID int, payment *models.Payment, loan *models.Loan) error {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Payment Received: %s", payment.PaymentNumber)

	body := fmt.Sprintf(`
	<h2>Payment Received</h2>
	<p>Dear %s,</p>

	<p>We have received a payment of %.2f against loan %s.</p>

	<p>Payment reference: %s<br>
	Date: %s</p>

	<p>
	Best regards,<br>
	Lending Office Team
	</p>
	`,
		user.Name,
		payment.Amount,
		loan.LoanNumber,
		payment.PaymentNumber,
		time.Now().Format("2006-01-02 15:04:05"),
	)

	if err := s.sendEmail(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Payment email sent to %s for payment %s", user.Email, payment.PaymentNumber)

	return nil
}

// SendPaymentReminder sends a reminder for an overdue installment
func (s *EmailSvc) SendPaymentReminder(ctx context.Context, userID int, installment *models.Installment, loan *models.Loan) error {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Email == "" {
		return nil
	}

	daysOverdue := int(time.Now().Sub(installment.DueDate).Hours() / 24)

	subject := fmt.Sprintf("OVERDUE Payment Reminder: Loan %s", loan.LoanNumber)

	body := fmt.Sprintf(`
	<h2>Payment Overdue</h2>
	<p>Dear %s,</p>

	<p style="color: red; font-weight: bold;">
		Installment #%d of loan %s is OVERDUE by %d days.
	</p>

	<p>Amount due: %.2f<br>
	Late fee accrued: %.2f<br>
	Original due date: %s</p>

	<p>Please make the payment as soon as possible to avoid further late fees.</p>

	<p>
	Best regards,<br>
	Lending Office Team
	</p>
	`,
		user.Name,
		installment.InstallmentNumber,
		loan.LoanNumber,
		daysOverdue,
		installment.EMIAmount,
		installment.LateFee,
		installment.DueDate.Format("2006-01-02"),
	)

	if err := s.sendEmail(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Reminder email sent to %s for installment %d", user.Email, installment.ID)

	return nil
}

// SendLoanClosed congratulates a borrower on fully repaying a loan
func (s *EmailSvc) SendLoanClosed(ctx context.Context, userID int, loan *models.Loan) error {
	user, err := s.repos.User.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Loan Closed: %s", loan.LoanNumber)

	body := fmt.Sprintf(`
	<h2>Loan Fully Repaid</h2>
	<p>Dear %s,</p>

	<p>Congratulations! Loan %s has been fully repaid and is now closed.</p>

	<p>Thank you for your business.</p>

	<p>
	Best regards,<br>
	Lending Office Team
	</p>
	`,
		user.Name,
		loan.LoanNumber,
	)

	if err := s.sendEmail(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Loan closed email sent to %s for loan %d", user.Email, loan.ID)

	return nil
}

// sendEmail sends an email using the SMTP server
func (s *EmailSvc) sendEmail(to, subject, body string) error {
	// Create a new message
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.Email.SenderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	// Create a new dialer
	d := gomail.NewDialer(
		s.config.Email.SMTPHost,
		s.config.Email.SMTPPort,
		s.config.Email.SMTPUser,
		s.config.Email.SMTPPassword,
	)

	// Send the email
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
