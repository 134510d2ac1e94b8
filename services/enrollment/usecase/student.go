package usecase

import (
	"context"
	"time"

	"enrollment/domain"
)

type studentUseCase struct {
	repo    domain.StudentRepo
	TimeOut time.Duration
}

func NewStudentUseCase(repo domain.StudentRepo, to time.Duration) domain.StudentUseCase {
	return &studentUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (su *studentUseCase) GetStudentByID(ctx context.Context, childID uint) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	return su.repo.GetStudentByID(ctx, childID)
}

func (su *studentUseCase) GetAllStudents(ctx context.Context, filter domain.StudentFilter) (*[]domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	return su.repo.GetAllStudents(ctx, filter)
}
