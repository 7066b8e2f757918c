package assignment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
)

var (
	ErrInvalidRole     = errors.New("role must be admin, manager or staff")
	ErrAlreadyAssigned = errors.New("user is already assigned to this society")
)

var assignableRoles = map[string]bool{
	"admin":   true,
	"manager": true,
	"staff":   true,
}

type Service interface {
	Assign(ctx context.Context, userID, pacsID uint, role string, actorID uint, ip string) (*Assignment, error)
	ListMySocieties(ctx context.Context, userID uint) ([]AssignedSociety, error)
	ListStaff(ctx context.Context, pacsID uint) ([]StaffMember, error)
	ChangeRole(ctx context.Context, assignmentID uint, role string, actorID uint, ip string) error
	Revoke(ctx context.Context, assignmentID uint, actorID uint, ip string) error

	// RoleFor implements the middleware assignment check
	RoleFor(ctx context.Context, userID, pacsID uint) (string, bool, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) Assign(ctx context.Context, userID, pacsID uint, role string, actorID uint, ip string) (*Assignment, error) {
	if !assignableRoles[role] {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.GetByUserAndPacs(ctx, userID, pacsID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a := &Assignment{UserID: userID, PacsID: pacsID, Role: role}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, &pacsID, "ASSIGN_USER",
		map[string]interface{}{"target_user_id": userID, "role": role}, ip, "success")

	return a, nil
}

func (s *service) ListMySocieties(ctx context.Context, userID uint) ([]AssignedSociety, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListStaff(ctx context.Context, pacsID uint) ([]StaffMember, error) {
	return s.repo.ListByPacs(ctx, pacsID)
}

func (s *service) ChangeRole(ctx context.Context, assignmentID uint, role string, actorID uint, ip string) error {
	if !assignableRoles[role] {
		return ErrInvalidRole
	}

	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateRole(ctx, assignmentID, role); err != nil {
		return err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, &a.PacsID, "CHANGE_ASSIGNMENT_ROLE",
		map[string]interface{}{"target_user_id": a.UserID, "role": role}, ip, "success")

	return nil
}

func (s *service) Revoke(ctx context.Context, assignmentID uint, actorID uint, ip string) error {
	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, assignmentID); err != nil {
		return err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, &a.PacsID, "REVOKE_ASSIGNMENT",
		map[string]interface{}{"target_user_id": a.UserID}, ip, "success")

	return nil
}

func (s *service) RoleFor(ctx context.Context, userID, pacsID uint) (string, bool, error) {
	a, err := s.repo.GetByUserAndPacs(ctx, userID, pacsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return a.Role, true, nil
}
