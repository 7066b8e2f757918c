package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/auditlog"
	"github.com/sharath018/pacs-portal-backend/utils"
)

var ErrNotFound = errors.New("item not found")

type ServiceInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IconName    string `json:"icon_name"`
	IsVisible   *bool  `json:"is_visible"`
}

type MachineryInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	RatePerDay  *float64 `json:"rate_per_day"`
	RateUnit    string   `json:"rate_unit"`
	ImageURL    *string  `json:"image_url"`
	IsAvailable *bool    `json:"is_available"`
	IsVisible   *bool    `json:"is_visible"`
}

type FertilizerInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Unit        string   `json:"unit"`
	InStock     *bool    `json:"in_stock"`
	IsVisible   *bool    `json:"is_visible"`
}

type ProcurementInput struct {
	CropName  string   `json:"crop_name" binding:"required"`
	Season    string   `json:"season"`
	Rate      *float64 `json:"rate"`
	Unit      string   `json:"unit"`
	Notes     string   `json:"notes"`
	IsVisible *bool    `json:"is_visible"`
}

type PDSShopInput struct {
	ShopNumber   string `json:"shop_number"`
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Timings      string `json:"timings"`
	IsVisible    *bool  `json:"is_visible"`
}

type Service interface {
	CreateService(ctx context.Context, pacsID uint, slug string, in ServiceInput, actorID uint, ip string) (*PacsService, error)
	GetService(ctx context.Context, pacsID, id uint) (*PacsService, error)
	ListServices(ctx context.Context, pacsID uint, visibleOnly bool) ([]PacsService, error)
	UpdateService(ctx context.Context, pacsID uint, slug string, id uint, in ServiceInput, actorID uint, ip string) (*PacsService, error)
	DeleteService(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error

	CreateMachinery(ctx context.Context, pacsID uint, slug string, in MachineryInput, actorID uint, ip string) (*Machinery, error)
	GetMachineryItem(ctx context.Context, pacsID, id uint) (*Machinery, error)
	ListMachinery(ctx context.Context, pacsID uint, visibleOnly bool) ([]Machinery, error)
	UpdateMachinery(ctx context.Context, pacsID uint, slug string, id uint, in MachineryInput, actorID uint, ip string) (*Machinery, error)
	DeleteMachinery(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error

	CreateFertilizer(ctx context.Context, pacsID uint, slug string, in FertilizerInput, actorID uint, ip string) (*Fertilizer, error)
	GetFertilizer(ctx context.Context, pacsID, id uint) (*Fertilizer, error)
	ListFertilizers(ctx context.Context, pacsID uint, visibleOnly bool) ([]Fertilizer, error)
	UpdateFertilizer(ctx context.Context, pacsID uint, slug string, id uint, in FertilizerInput, actorID uint, ip string) (*Fertilizer, error)
	DeleteFertilizer(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error

	CreateProcurement(ctx context.Context, pacsID uint, slug string, in ProcurementInput, actorID uint, ip string) (*Procurement, error)
	GetProcurement(ctx context.Context, pacsID, id uint) (*Procurement, error)
	ListProcurements(ctx context.Context, pacsID uint, visibleOnly bool) ([]Procurement, error)
	UpdateProcurement(ctx context.Context, pacsID uint, slug string, id uint, in ProcurementInput, actorID uint, ip string) (*Procurement, error)
	DeleteProcurement(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error

	CreatePDSShop(ctx context.Context, pacsID uint, slug string, in PDSShopInput, actorID uint, ip string) (*PDSShop, error)
	GetPDSShop(ctx context.Context, pacsID, id uint) (*PDSShop, error)
	ListPDSShops(ctx context.Context, pacsID uint, visibleOnly bool) ([]PDSShop, error)
	UpdatePDSShop(ctx context.Context, pacsID uint, slug string, id uint, in PDSShopInput, actorID uint, ip string) (*PDSShop, error)
	DeletePDSShop(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error

	CountVisiblePDSShops(ctx context.Context, pacsID uint) (int64, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc}
}

func (s *service) notifyChange(ctx context.Context, actorID, pacsID uint, slug, action, resource string, details map[string]interface{}, ip string) {
	_ = s.auditSvc.LogAction(ctx, &actorID, &pacsID, action, details, ip, "success")
	utils.PublishContentEvent(utils.ContentEvent{
		PacsID:   pacsID,
		Slug:     slug,
		Resource: resource,
		Action:   action,
	})
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ======================
// 🔹 Services
// ======================

func (s *service) CreateService(ctx context.Context, pacsID uint, slug string, in ServiceInput, actorID uint, ip string) (*PacsService, error) {
	v := &PacsService{
		PacsID:      pacsID,
		Title:       in.Title,
		Description: in.Description,
		IconName:    ResolveIcon(in.IconName),
		IsVisible:   true,
	}
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.CreateService(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_SERVICE", "service",
		map[string]interface{}{"service_id": v.ID, "title": v.Title}, ip)
	return v, nil
}

func (s *service) GetService(ctx context.Context, pacsID, id uint) (*PacsService, error) {
	v, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if v.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *service) ListServices(ctx context.Context, pacsID uint, visibleOnly bool) ([]PacsService, error) {
	return s.repo.ListServices(ctx, pacsID, visibleOnly)
}

func (s *service) UpdateService(ctx context.Context, pacsID uint, slug string, id uint, in ServiceInput, actorID uint, ip string) (*PacsService, error) {
	v, err := s.GetService(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}
	v.Title = in.Title
	v.Description = in.Description
	v.IconName = ResolveIcon(in.IconName)
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.UpdateService(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_SERVICE", "service",
		map[string]interface{}{"service_id": v.ID, "title": v.Title}, ip)
	return v, nil
}

func (s *service) DeleteService(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	if _, err := s.GetService(ctx, pacsID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_SERVICE", "service",
		map[string]interface{}{"service_id": id}, ip)
	return nil
}

// ======================
// 🔹 Machinery
// ======================

func (s *service) CreateMachinery(ctx context.Context, pacsID uint, slug string, in MachineryInput, actorID uint, ip string) (*Machinery, error) {
	v := &Machinery{
		PacsID:      pacsID,
		Name:        in.Name,
		Description: in.Description,
		RatePerDay:  in.RatePerDay,
		RateUnit:    in.RateUnit,
		ImageURL:    in.ImageURL,
		IsAvailable: true,
		IsVisible:   true,
	}
	if in.IsAvailable != nil {
		v.IsAvailable = *in.IsAvailable
	}
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.CreateMachinery(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_MACHINERY", "machinery",
		map[string]interface{}{"machinery_id": v.ID, "name": v.Name}, ip)
	return v, nil
}

func (s *service) GetMachineryItem(ctx context.Context, pacsID, id uint) (*Machinery, error) {
	v, err := s.repo.GetMachinery(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if v.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *service) ListMachinery(ctx context.Context, pacsID uint, visibleOnly bool) ([]Machinery, error) {
	return s.repo.ListMachinery(ctx, pacsID, visibleOnly)
}

func (s *service) UpdateMachinery(ctx context.Context, pacsID uint, slug string, id uint, in MachineryInput, actorID uint, ip string) (*Machinery, error) {
	v, err := s.GetMachineryItem(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}
	v.Name = in.Name
	v.Description = in.Description
	v.RatePerDay = in.RatePerDay
	v.RateUnit = in.RateUnit
	if in.ImageURL != nil {
		v.ImageURL = in.ImageURL
	}
	if in.IsAvailable != nil {
		v.IsAvailable = *in.IsAvailable
	}
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.UpdateMachinery(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_MACHINERY", "machinery",
		map[string]interface{}{"machinery_id": v.ID, "name": v.Name}, ip)
	return v, nil
}

func (s *service) DeleteMachinery(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	if _, err := s.GetMachineryItem(ctx, pacsID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteMachinery(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_MACHINERY", "machinery",
		map[string]interface{}{"machinery_id": id}, ip)
	return nil
}

// ======================
// 🔹 Fertilizers
// ======================

func (s *service) CreateFertilizer(ctx context.Context, pacsID uint, slug string, in FertilizerInput, actorID uint, ip string) (*Fertilizer, error) {
	v := &Fertilizer{
		PacsID:      pacsID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Unit:        in.Unit,
		InStock:     true,
		IsVisible:   true,
	}
	if in.InStock != nil {
		v.InStock = *in.InStock
	}
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.CreateFertilizer(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_FERTILIZER", "fertilizer",
		map[string]interface{}{"fertilizer_id": v.ID, "name": v.Name}, ip)
	return v, nil
}

func (s *service) GetFertilizer(ctx context.Context, pacsID, id uint) (*Fertilizer, error) {
	v, err := s.repo.GetFertilizer(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if v.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *service) ListFertilizers(ctx context.Context, pacsID uint, visibleOnly bool) ([]Fertilizer, error) {
	return s.repo.ListFertilizers(ctx, pacsID, visibleOnly)
}

func (s *service) UpdateFertilizer(ctx context.Context, pacsID uint, slug string, id uint, in FertilizerInput, actorID uint, ip string) (*Fertilizer, error) {
	v, err := s.GetFertilizer(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}
	v.Name = in.Name
	v.Description = in.Description
	v.Price = in.Price
	v.Unit = in.Unit
	if in.InStock != nil {
		v.InStock = *in.InStock
	}
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.UpdateFertilizer(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_FERTILIZER", "fertilizer",
		map[string]interface{}{"fertilizer_id": v.ID, "name": v.Name}, ip)
	return v, nil
}

func (s *service) DeleteFertilizer(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	if _, err := s.GetFertilizer(ctx, pacsID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteFertilizer(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_FERTILIZER", "fertilizer",
		map[string]interface{}{"fertilizer_id": id}, ip)
	return nil
}

// ======================
// 🔹 Procurement
// ======================

func (s *service) CreateProcurement(ctx context.Context, pacsID uint, slug string, in ProcurementInput, actorID uint, ip string) (*Procurement, error) {
	v := &Procurement{
		PacsID:    pacsID,
		CropName:  in.CropName,
		Season:    in.Season,
		Rate:      in.Rate,
		Unit:      in.Unit,
		Notes:     in.Notes,
		IsVisible: true,
	}
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.CreateProcurement(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_PROCUREMENT", "procurement",
		map[string]interface{}{"procurement_id": v.ID, "crop": v.CropName}, ip)
	return v, nil
}

func (s *service) GetProcurement(ctx context.Context, pacsID, id uint) (*Procurement, error) {
	v, err := s.repo.GetProcurement(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if v.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *service) ListProcurements(ctx context.Context, pacsID uint, visibleOnly bool) ([]Procurement, error) {
	return s.repo.ListProcurements(ctx, pacsID, visibleOnly)
}

func (s *service) UpdateProcurement(ctx context.Context, pacsID uint, slug string, id uint, in ProcurementInput, actorID uint, ip string) (*Procurement, error) {
	v, err := s.GetProcurement(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}
	v.CropName = in.CropName
	v.Season = in.Season
	v.Rate = in.Rate
	v.Unit = in.Unit
	v.Notes = in.Notes
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.UpdateProcurement(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_PROCUREMENT", "procurement",
		map[string]interface{}{"procurement_id": v.ID, "crop": v.CropName}, ip)
	return v, nil
}

func (s *service) DeleteProcurement(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	if _, err := s.GetProcurement(ctx, pacsID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProcurement(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_PROCUREMENT", "procurement",
		map[string]interface{}{"procurement_id": id}, ip)
	return nil
}

// ======================
// 🔹 PDS shops
// ======================

func (s *service) CreatePDSShop(ctx context.Context, pacsID uint, slug string, in PDSShopInput, actorID uint, ip string) (*PDSShop, error) {
	v := &PDSShop{
		PacsID:       pacsID,
		ShopNumber:   in.ShopNumber,
		Name:         in.Name,
		Address:      in.Address,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		Timings:      in.Timings,
		IsVisible:    true,
	}
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.CreatePDSShop(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "CREATE_PDS_SHOP", "pds_shop",
		map[string]interface{}{"shop_id": v.ID, "name": v.Name}, ip)
	return v, nil
}

func (s *service) GetPDSShop(ctx context.Context, pacsID, id uint) (*PDSShop, error) {
	v, err := s.repo.GetPDSShop(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if v.PacsID != pacsID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *service) ListPDSShops(ctx context.Context, pacsID uint, visibleOnly bool) ([]PDSShop, error) {
	return s.repo.ListPDSShops(ctx, pacsID, visibleOnly)
}

func (s *service) UpdatePDSShop(ctx context.Context, pacsID uint, slug string, id uint, in PDSShopInput, actorID uint, ip string) (*PDSShop, error) {
	v, err := s.GetPDSShop(ctx, pacsID, id)
	if err != nil {
		return nil, err
	}
	v.ShopNumber = in.ShopNumber
	v.Name = in.Name
	v.Address = in.Address
	v.ContactName = in.ContactName
	v.ContactPhone = in.ContactPhone
	v.Timings = in.Timings
	if in.IsVisible != nil {
		v.IsVisible = *in.IsVisible
	}
	if err := s.repo.UpdatePDSShop(ctx, v); err != nil {
		return nil, err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "UPDATE_PDS_SHOP", "pds_shop",
		map[string]interface{}{"shop_id": v.ID, "name": v.Name}, ip)
	return v, nil
}

func (s *service) DeletePDSShop(ctx context.Context, pacsID uint, slug string, id uint, actorID uint, ip string) error {
	if _, err := s.GetPDSShop(ctx, pacsID, id); err != nil {
		return err
	}
	if err := s.repo.DeletePDSShop(ctx, id); err != nil {
		return err
	}
	s.notifyChange(ctx, actorID, pacsID, slug, "DELETE_PDS_SHOP", "pds_shop",
		map[string]interface{}{"shop_id": id}, ip)
	return nil
}

func (s *service) CountVisiblePDSShops(ctx context.Context, pacsID uint) (int64, error) {
	return s.repo.CountVisiblePDSShops(ctx, pacsID)
}
