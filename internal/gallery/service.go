package gallery

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/utils"
)

var ErrNotFound = errors.New("gallery item not found")

type ItemInput struct {
	ImageURL  string `json:"image_url" binding:"required"`
	Caption   string `json:"caption"`
	IsVisible *bool  `json:"is_visible"`
}

type Service interface {
	Create(ctx context.Context, pacsID uint, slug string, in ItemInput, actorID uint, ip string) (*GalleryItem, error)
	Get(ctx context.Context, pacsID, id uint) (*GalleryItem, error)
	List(ctx context.Context, pacsID uint, visibleOnly bool) ([]GalleryItem, error)
	Update(ctx context.Context, pacsID uint, slug string, id uint, in ItemInput, actorID uint, ip string) (*GalleryItem, error)
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
		Resource: "gallery_item",
		Action:   action,
	})
}

func (s *service) Create(ctx context.Context, pacsID uint, slug string, in ItemInput, actorID uint, ip string) (*GalleryItem, error) {
	g := &GalleryItem{
		PacsID:    pacsID,
		ImageURL:  in.ImageURL,
		Caption:   in.Caption,
		IsVisible: true,
	}
	if in.IsVisible != nil {
		g.IsVisible = *in.IsVisible
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_GALLERY_ITEM",
		map[string]interface{}{"item_id": g.ID}, ip)
	return g, nil
}

func (s *service) Get(ctx context.Context, pacsID, id uint) (*GalleryItem, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if g.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *service) List(ctx context.Context, pacsID uint, visibleOnly bool) ([]GalleryItem, error) {
	return s.repo.List(ctx, pacsID, visibleOnly)
}

func (s *service) Update(ctx context.Context, pacsID uint, slug string, id uint, in ItemInput, actorID uint, ip string) (*GalleryItem, error) {
	g, err := s.Get(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}
	g.ImageURL = in.ImageURL
	g.Caption = in.Caption
	if in.IsVisible != nil {
		g.IsVisible = *in.IsVisible
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_GALLERY_ITEM",
		map[string]interface{}{"item_id": g.ID}, ip)
	return g, nil
}

func (s *service) Delete(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	if _, err := s.Get(ctx, pacsID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_GALLERY_ITEM",
		map[string]interface{}{"item_id": id}, ip)
	return nil
}
