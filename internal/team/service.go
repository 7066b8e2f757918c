package team

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/utils"
)

var ErrNotFound = errors.New("team member not found")

type MemberInput struct {
	FullName     string  `json:"full_name" binding:"required"`
	Designation  string  `json:"designation"`
	Bio          string  `json:"bio"`
	PhotoURL     *string `json:"photo_url"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	IsLeadership *bool   `json:"is_leadership"`
	DisplayOrder *int    `json:"display_order"`
	IsVisible    *bool   `json:"is_visible"`
}

type Service interface {
	Create(ctx context.Context, pacsID uint, slug string, in MemberInput, actorID uint, ip string) (*TeamMember, error)
	Get(ctx context.Context, pacsID, id uint) (*TeamMember, error)
	List(ctx context.Context, pacsID uint, visibleOnly bool) ([]TeamMember, error)
	Update(ctx context.Context, pacsID uint, slug string, id uint, in MemberInput, actorID uint, ip string) (*TeamMember, error)
	Delete(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) notifyChange(ctx context.Context, actorID, pacsID uint, slug, action string, details map[string]interface{}, ip string) {
	_ = s.auditSvc.LogAction(ctx, &actorID, &pacsID, action, details, ip, "success")
	utils.PublishContentEvent(utils.ContentEvent{
		PacsID:   pacsID,
		Slug:     slug,
		Resource: "team_member",
		Action:   action,
	})
}

func (s *service) Create(ctx context.Context, pacsID uint, slug string, in MemberInput, actorID uint, ip string) (*TeamMember, error) {
	m := &TeamMember{
		PacsID:      pacsID,
		FullName:    in.FullName,
		Designation: in.Designation,
		Bio:         in.Bio,
		PhotoURL:    in.PhotoURL,
		Phone:       in.Phone,
		Email:       in.Email,
		IsVisible:   true,
	}
	if in.IsLeadership != nil {
		m.IsLeadership = *in.IsLeadership
	}
	if in.DisplayOrder != nil {
		m.DisplayOrder = *in.DisplayOrder
	}
	if in.IsVisible != nil {
		m.IsVisible = *in.IsVisible
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_TEAM_MEMBER",
		map[string]interface{}{"member_id": m.ID, "name": m.FullName}, ip)
	return m, nil
}

func (s *service) Get(ctx context.Context, pacsID, id uint) (*TeamMember, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *service) List(ctx context.Context, pacsID uint, visibleOnly bool) ([]TeamMember, error) {
	return s.repo.List(ctx, pacsID, visibleOnly)
}

func (s *service) Update(ctx context.Context, pacsID uint, slug string, id uint, in MemberInput, actorID uint, ip string) (*TeamMember, error) {
	m, err := s.Get(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}
	m.FullName = in.FullName
	m.Designation = in.Designation
	m.Bio = in.Bio
	if in.PhotoURL != nil {
		m.PhotoURL = in.PhotoURL
	}
	m.Phone = in.Phone
	m.Email = in.Email
	if in.IsLeadership != nil {
		m.IsLeadership = *in.IsLeadership
	}
	if in.DisplayOrder != nil {
		m.DisplayOrder = *in.DisplayOrder
	}
	if in.IsVisible != nil {
		m.IsVisible = *in.IsVisible
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_TEAM_MEMBER",
		map[string]interface{}{"member_id": m.ID, "name": m.FullName}, ip)
	return m, nil
}

func (s *service) Delete(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	if _, err := s.Get(ctx, pacsID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_TEAM_MEMBER",
		map[string]interface{}{"member_id": id}, ip)
	return nil
}
