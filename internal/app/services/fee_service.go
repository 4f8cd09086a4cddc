package services

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// FeeService applies payments against the running fee balance of students
type FeeService struct {
	tx          Transactor
	studentRepo StudentRepository
	logger      zerolog.Logger
}

// NewFeeService creates a new FeeService
func NewFeeService(tx Transactor, studentRepo StudentRepository, logger zerolog.Logger) *FeeService {
	return &FeeService{
		tx:          tx,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// RecordPayment adds amount to the student's paid fees. A payment larger than
// the remaining balance is rejected whole and nothing changes.
func (s *FeeService) RecordPayment(ctx context.Context, studentID int64, amount float64) (*models.Student, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	var updated *models.Student
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		student, err := s.studentRepo.GetStudentForUpdate(ctx, studentID)
		if err != nil {
			return err
		}

		// compared as floats first so cents never sees an amount outside int64
		if student.FeesPaid+amount > student.FeesDue+0.005 || cents(student.FeesPaid+amount) > cents(student.FeesDue) {
			return apperrors.NewOverPaymentError(student.Balance())
		}

		paid := float64(cents(student.FeesPaid+amount)) / 100
		if err := s.studentRepo.UpdateFeesPaid(ctx, studentID, paid); err != nil {
			return err
		}
		student.FeesPaid = paid
		updated = student
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrOverPayment) {
			s.logger.Warn().Int64("studentID", studentID).Float64("amount", amount).Msg("Payment rejected")
		}
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Float64("amount", amount).Float64("feesPaid", updated.FeesPaid).Msg("Payment recorded")
	return updated, nil
}

// GetStudentFees returns the student with current due and paid amounts
func (s *FeeService) GetStudentFees(ctx context.Context, studentID int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByUserID(ctx, studentID)
}

// Balance is the amount the student still owes
func (s *FeeService) Balance(ctx context.Context, studentID int64) (float64, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return student.Balance(), nil
}

// ListStudentFees lists every student with fee amounts
func (s *FeeService) ListStudentFees(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.ListStudents(ctx)
}

// cents rounds an amount to whole cents
func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
