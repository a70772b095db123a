package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/repository"
)

// StatementSvc is an implementation of the service.StatementService interface
type StatementSvc struct {
	repos  *repository.Repository
	logger *logrus.Logger
	config *configs.Config
}

// NewStatementService creates a new StatementSvc
func NewStatementService(deps Dependencies) *StatementSvc {
	return &StatementSvc{
		repos:  deps.Repos,
		logger: deps.Logger,
		config: deps.Config,
	}
}

// BuildPDF renders a loan statement with the full repayment schedule as PDF
func (s *StatementSvc) BuildPDF(ctx context.Context, loanID int, userID int, role models.Role) ([]byte, error) {
	loan, installments, err := s.loadStatement(ctx, loanID, userID, role)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Loan Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Loan Number: %s", loan.LoanNumber))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Principal: %.2f", loan.PrincipalAmount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Interest Rate: %.2f%% p.a.", loan.InterestRate))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Tenure: %d months", loan.TenureMonths))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("EMI: %.2f", loan.EMIAmount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Outstanding Balance: %.2f", loan.OutstandingBalance))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", loan.Status))
	pdf.Ln(8)

	// Schedule table
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(10, 6, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Due Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "EMI", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Principal", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Interest", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Paid", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Late Fee", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, inst := range installments {
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", inst.InstallmentNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, inst.DueDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", inst.EMIAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", inst.PrincipalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", inst.InterestAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", inst.PaidAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", inst.LateFee), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, string(inst.Status), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// BuildXLSX renders a loan statement with the full repayment schedule as XLSX
func (s *StatementSvc) BuildXLSX(ctx context.Context, loanID int, userID int, role models.Role) ([]byte, error) {
	loan, installments, err := s.loadStatement(ctx, loanID, userID, role)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	summarySheet := "summary"
	scheduleSheet := "schedule"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(scheduleSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Loan Statement")
	_ = f.SetCellValue(summarySheet, "A3", "Loan Number")
	_ = f.SetCellValue(summarySheet, "B3", loan.LoanNumber)
	_ = f.SetCellValue(summarySheet, "A4", "Principal")
	_ = f.SetCellValue(summarySheet, "B4", loan.PrincipalAmount)
	_ = f.SetCellValue(summarySheet, "A5", "Interest Rate (% p.a.)")
	_ = f.SetCellValue(summarySheet, "B5", loan.InterestRate)
	_ = f.SetCellValue(summarySheet, "A6", "Tenure (months)")
	_ = f.SetCellValue(summarySheet, "B6", loan.TenureMonths)
	_ = f.SetCellValue(summarySheet, "A7", "EMI")
	_ = f.SetCellValue(summarySheet, "B7", loan.EMIAmount)
	_ = f.SetCellValue(summarySheet, "A8", "Total Payable")
	_ = f.SetCellValue(summarySheet, "B8", loan.TotalPayable)
	_ = f.SetCellValue(summarySheet, "A9", "Outstanding Balance")
	_ = f.SetCellValue(summarySheet, "B9", loan.OutstandingBalance)
	_ = f.SetCellValue(summarySheet, "A10", "Status")
	_ = f.SetCellValue(summarySheet, "B10", string(loan.Status))

	headers := []string{"#", "Due Date", "EMI", "Principal", "Interest", "Paid", "Late Fee", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(scheduleSheet, cell, h)
	}

	for i, inst := range installments {
		row := i + 2
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("A%d", row), inst.InstallmentNumber)
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("B%d", row), inst.DueDate.Format("2006-01-02"))
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("C%d", row), inst.EMIAmount)
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("D%d", row), inst.PrincipalAmount)
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("E%d", row), inst.InterestAmount)
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("F%d", row), inst.PaidAmount)
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("G%d", row), inst.LateFee)
		_ = f.SetCellValue(scheduleSheet, fmt.Sprintf("H%d", row), string(inst.Status))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render XLSX: %w", err)
	}

	return buf.Bytes(), nil
}

// loadStatement loads a loan and its schedule, enforcing ownership for borrowers
func (s *StatementSvc) loadStatement(ctx context.Context, loanID int, userID int, role models.Role) (*models.Loan, []*models.Installment, error) {
	loan, err := s.repos.Loan.GetByID(ctx, loanID)
	if err != nil {
		return nil, nil, fmt.Errorf("loan not found: %w", err)
	}

	if role != models.RoleAdmin && loan.UserID != userID {
		return nil, nil, errors.New("access denied: loan belongs to another user")
	}

	installments, err := s.repos.Installment.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get repayment schedule: %w", err)
	}

	return loan, installments, nil
}
