package catalog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Services
	CreateService(ctx context.Context, v *PacsService) error
	GetService(ctx context.Context, id uint) (*PacsService, error)
	ListServices(ctx context.Context, pacsID uint, visibleOnly bool) ([]PacsService, error)
	UpdateService(ctx context.Context, v *PacsService) error
	DeleteService(ctx context.Context, id uint) error

	// Machinery
	CreateMachinery(ctx context.Context, v *Machinery) error
	GetMachinery(ctx context.Context, id uint) (*Machinery, error)
	ListMachinery(ctx context.Context, pacsID uint, visibleOnly bool) ([]Machinery, error)
	UpdateMachinery(ctx context.Context, v *Machinery) error
	DeleteMachinery(ctx context.Context, id uint) error

	// Fertilizers
	CreateFertilizer(ctx context.Context, v *Fertilizer) error
	GetFertilizer(ctx context.Context, id uint) (*Fertilizer, error)
	ListFertilizers(ctx context.Context, pacsID uint, visibleOnly bool) ([]Fertilizer, error)
	UpdateFertilizer(ctx context.Context, v *Fertilizer) error
	DeleteFertilizer(ctx context.Context, id uint) error

	// Procurement
	CreateProcurement(ctx context.Context, v *Procurement) error
	GetProcurement(ctx context.Context, id uint) (*Procurement, error)
	ListProcurements(ctx context.Context, pacsID uint, visibleOnly bool) ([]Procurement, error)
	UpdateProcurement(ctx context.Context, v *Procurement) error
	DeleteProcurement(ctx context.Context, id uint) error

	// PDS shops
	CreatePDSShop(ctx context.Context, v *PDSShop) error
	GetPDSShop(ctx context.Context, id uint) (*PDSShop, error)
	ListPDSShops(ctx context.Context, pacsID uint, visibleOnly bool) ([]PDSShop, error)
	UpdatePDSShop(ctx context.Context, v *PDSShop) error
	DeletePDSShop(ctx context.Context, id uint) error

	CountVisiblePDSShops(ctx context.Context, pacsID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func scopeList(q *gorm.DB, pacsID uint, visibleOnly bool) *gorm.DB {
	q = q.Where("pacs_id = ?", pacsID)
	if visibleOnly {
		q = q.Where("is_visible = ?", true)
	}
	return q.Order("created_at")
}

// ======================
// 🔹 Services
// ======================

func (r *repository) CreateService(ctx context.Context, v *PacsService) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetService(ctx context.Context, id uint) (*PacsService, error) {
	var v PacsService
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *repository) ListServices(ctx context.Context, pacsID uint, visibleOnly bool) ([]PacsService, error) {
	var items []PacsService
	err := scopeList(r.db.WithContext(ctx), pacsID, visibleOnly).Find(&items).Error
	return items, err
}

func (r *repository) UpdateService(ctx context.Context, v *PacsService) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) DeleteService(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&PacsService{}, id).Error
}

// ======================
// 🔹 Machinery
// ======================

func (r *repository) CreateMachinery(ctx context.Context, v *Machinery) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetMachinery(ctx context.Context, id uint) (*Machinery, error) {
	var v Machinery
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *repository) ListMachinery(ctx context.Context, pacsID uint, visibleOnly bool) ([]Machinery, error) {
	var items []Machinery
	err := scopeList(r.db.WithContext(ctx), pacsID, visibleOnly).Find(&items).Error
	return items, err
}

func (r *repository) UpdateMachinery(ctx context.Context, v *Machinery) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) DeleteMachinery(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Machinery{}, id).Error
}

// ======================
// 🔹 Fertilizers
// ======================

func (r *repository) CreateFertilizer(ctx context.Context, v *Fertilizer) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetFertilizer(ctx context.Context, id uint) (*Fertilizer, error) {
	var v Fertilizer
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *repository) ListFertilizers(ctx context.Context, pacsID uint, visibleOnly bool) ([]Fertilizer, error) {
	var items []Fertilizer
	err := scopeList(r.db.WithContext(ctx), pacsID, visibleOnly).Find(&items).Error
	return items, err
}

func (r *repository) UpdateFertilizer(ctx context.Context, v *Fertilizer) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) DeleteFertilizer(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Fertilizer{}, id).Error
}

// ======================
// 🔹 Procurement
// ======================

func (r *repository) CreateProcurement(ctx context.Context, v *Procurement) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetProcurement(ctx context.Context, id uint) (*Procurement, error) {
	var v Procurement
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *repository) ListProcurements(ctx context.Context, pacsID uint, visibleOnly bool) ([]Procurement, error) {
	var items []Procurement
	err := scopeList(r.db.WithContext(ctx), pacsID, visibleOnly).Find(&items).Error
	return items, err
}

func (r *repository) UpdateProcurement(ctx context.Context, v *Procurement) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) DeleteProcurement(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Procurement{}, id).Error
}

// ======================
// 🔹 PDS shops
// ======================

func (r *repository) CreatePDSShop(ctx context.Context, v *PDSShop) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetPDSShop(ctx context.Context, id uint) (*PDSShop, error) {
	var v PDSShop
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *repository) ListPDSShops(ctx context.Context, pacsID uint, visibleOnly bool) ([]PDSShop, error) {
	var items []PDSShop
	err := scopeList(r.db.WithContext(ctx), pacsID, visibleOnly).Find(&items).Error
	return items, err
}

func (r *repository) UpdatePDSShop(ctx context.Context, v *PDSShop) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) DeletePDSShop(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&PDSShop{}, id).Error
}

func (r *repository) CountVisiblePDSShops(ctx context.Context, pacsID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PDSShop{}).
		Where("pacs_id = ? AND is_visible = ?", pacsID, true).
		Count(&count).Error
	return count, err
}
