package society

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/middleware"
	"github.com/sharath018/pacs-portal-backend/utils"
)

var (
	ErrInvalidSlug     = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrReservedSlug    = errors.New("slug is reserved")
	ErrSlugTaken       = errors.New("slug is already in use")
	ErrInvalidTemplate = errors.New("template type must be 1, 2 or 3")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Service interface {
	Create(ctx context.Context, input CreateInput, actorID uint, ip string) (*Pacs, error)
	GetByID(ctx context.Context, id uint) (*Pacs, error)
	GetBySlug(ctx context.Context, slug string) (*Pacs, error)
	List(ctx context.Context) ([]Pacs, error)
	Update(ctx context.Context, id uint, input UpdateInput, actorID uint, ip string) (*Pacs, error)
	SetTemplate(ctx context.Context, id uint, templateType int, actorID uint, ip string) error
	Delete(ctx context.Context, id uint, actorID uint, ip string) error

	// ResolveSlug implements the middleware society lookup
	ResolveSlug(ctx context.Context, slug string) (middleware.PacsRef, bool, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

type CreateInput struct {
	Slug            string
	Name            string
	District        string
	State           string
	Address         string
	Phone           string
	Email           string
	History         string
	ServicesSummary string
	ImpactSummary   string
	EstablishedYear *int
	MemberCount     *int
	TemplateType    int
}

// UpdateInput carries optional fields; nil means "leave unchanged"
type UpdateInput struct {
	Name            *string
	District        *string
	State           *string
	Address         *string
	Phone           *string
	Email           *string
	History         *string
	ServicesSummary *string
	ImpactSummary   *string
	EstablishedYear *int
	MemberCount     *int
	CoverImageURL   *string
	HeaderImageURL  *string
	LogoURL         *string
	Latitude        *float64
	Longitude       *float64
	MapEmbedURL     *string
}

// ValidateSlug applies the format and reservation rules
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	if IsReservedSlug(slug) {
		return ErrReservedSlug
	}
	return nil
}

func (s *service) Create(ctx context.Context, in CreateInput, actorID uint, ip string) (*Pacs, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	templateType := in.TemplateType
	if templateType < TemplateMin || templateType > TemplateMax {
		templateType = TemplateMin
	}

	pacs := &Pacs{
		Slug:            slug,
		Name:            in.Name,
		District:        in.District,
		State:           in.State,
		Address:         in.Address,
		Phone:           in.Phone,
		Email:           in.Email,
		History:         in.History,
		ServicesSummary: in.ServicesSummary,
		ImpactSummary:   in.ImpactSummary,
		EstablishedYear: in.EstablishedYear,
		MemberCount:     in.MemberCount,
		TemplateType:    templateType,
	}

	if err := s.repo.Create(ctx, pacs); err != nil {
		return nil, err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, &pacs.ID, "CREATE_SOCIETY",
		map[string]interface{}{"slug": pacs.Slug, "name": pacs.Name}, ip, "success")

	return pacs, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Pacs, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Pacs, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) List(ctx context.Context) ([]Pacs, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateInput, actorID uint, ip string) (*Pacs, error) {
	pacs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		pacs.Name = *in.Name
	}
	if in.District != nil {
		pacs.District = *in.District
	}
	if in.State != nil {
		pacs.State = *in.State
	}
	if in.Address != nil {
		pacs.Address = *in.Address
	}
	if in.Phone != nil {
		pacs.Phone = *in.Phone
	}
	if in.Email != nil {
		pacs.Email = *in.Email
	}
	if in.History != nil {
		pacs.History = *in.History
	}
	if in.ServicesSummary != nil {
		pacs.ServicesSummary = *in.ServicesSummary
	}
	if in.ImpactSummary != nil {
		pacs.ImpactSummary = *in.ImpactSummary
	}
	if in.EstablishedYear != nil {
		pacs.EstablishedYear = in.EstablishedYear
	}
	if in.MemberCount != nil {
		pacs.MemberCount = in.MemberCount
	}
	if in.CoverImageURL != nil {
		pacs.CoverImageURL = in.CoverImageURL
	}
	if in.HeaderImageURL != nil {
		pacs.HeaderImageURL = in.HeaderImageURL
	}
	if in.LogoURL != nil {
		pacs.LogoURL = in.LogoURL
	}
	if in.Latitude != nil {
		pacs.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		pacs.Longitude = in.Longitude
	}
	if in.MapEmbedURL != nil {
		pacs.MapEmbedURL = in.MapEmbedURL
	}

	if err := s.repo.Update(ctx, pacs); err != nil {
		return nil, err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, &pacs.ID, "UPDATE_SOCIETY",
		map[string]interface{}{"slug": pacs.Slug}, ip, "success")

	utils.PublishContentEvent(utils.ContentEvent{
		PacsID: pacs.ID, Slug: pacs.Slug, Resource: "society", Action: "update",
	})

	return pacs, nil
}

func (s *service) SetTemplate(ctx context.Context, id uint, templateType int, actorID uint, ip string) error {
	if templateType < TemplateMin || templateType > TemplateMax {
		return ErrInvalidTemplate
	}

	pacs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTemplateType(ctx, id, templateType); err != nil {
		return err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, &id, "SET_TEMPLATE",
		map[string]interface{}{"slug": pacs.Slug, "template_type": templateType}, ip, "success")

	utils.PublishContentEvent(utils.ContentEvent{
		PacsID: id, Slug: pacs.Slug, Resource: "template", Action: "update",
	})

	return nil
}

func (s *service) Delete(ctx context.Context, id uint, actorID uint, ip string) error {
	pacs, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	_ = s.auditSvc.LogAction(ctx, &actorID, nil, "DELETE_SOCIETY",
		map[string]interface{}{"slug": pacs.Slug, "name": pacs.Name}, ip, "success")

	utils.PublishContentEvent(utils.ContentEvent{
		PacsID: id, Slug: pacs.Slug, Resource: "society", Action: "delete",
	})

	return nil
}

func (s *service) ResolveSlug(ctx context.Context, slug string) (middleware.PacsRef, bool, error) {
	pacs, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.PacsRef{}, false, nil
		}
		return middleware.PacsRef{}, false, err
	}
	return middleware.PacsRef{ID: pacs.ID, Slug: pacs.Slug}, true, nil
}
