package publicsite

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/catalog"
	"github.com/sharath018/pacs-portal-backend/internal/gallery"
	"github.com/sharath018/pacs-portal-backend/internal/scheme"
	"github.com/sharath018/pacs-portal-backend/internal/society"
	"github.com/sharath018/pacs-portal-backend/internal/team"
)

var ErrNotFound = errors.New("society not found")

const (
	pageCachePrefix = "page:"
	pageCacheTTL    = 10 * time.Minute
)

// ServiceCard is one card of the services section. Synthetic cards for
// loans, deposits and PDS shops appear here when the society has any.
type ServiceCard struct {
	ID          uint   `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Link        string `json:"link,omitempty"`
}

// Sections tells the template which blocks to render; empty sections
// are omitted entirely rather than shown blank
type Sections struct {
	About       bool `json:"about"`
	Services    bool `json:"services"`
	Machinery   bool `json:"machinery"`
	Fertilizers bool `json:"fertilizers"`
	Procurement bool `json:"procurement"`
	Team        bool `json:"team"`
	Gallery     bool `json:"gallery"`
	Location    bool `json:"location"`
}

// PageData is everything one public society page needs, aggregated in a
// single pass and cached as a unit
type PageData struct {
	Society      society.Pacs          `json:"society"`
	Theme        Theme                 `json:"theme"`
	Services     []ServiceCard         `json:"services"`
	Machinery    []catalog.Machinery   `json:"machinery"`
	Fertilizers  []catalog.Fertilizer  `json:"fertilizers"`
	Procurements []catalog.Procurement `json:"procurements"`
	Team         []team.TeamMember     `json:"team"`
	Gallery      []gallery.GalleryItem `json:"gallery"`
	LoanCount    int64                 `json:"loan_count"`
	DepositCount int64                 `json:"deposit_count"`
	PDSShopCount int64                 `json:"pds_shop_count"`
	Sections     Sections              `json:"sections"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

// DirectoryEntry is one row of the public society directory
type DirectoryEntry struct {
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	District string  `json:"district"`
	State    string  `json:"state"`
	LogoURL  *string `json:"logo_url"`
}

type Service interface {
	// BuildPage assembles a society page. preview > 0 overrides the
	// stored design and bypasses the cache in both directions.
	BuildPage(ctx context.Context, slug string, preview int) (*PageData, error)
	Directory(ctx context.Context) ([]DirectoryEntry, error)

	LoanSchemes(ctx context.Context, slug string) (*society.Pacs, []scheme.LoanScheme, error)
	LoanSchemeDetail(ctx context.Context, slug string, id uint) (*society.Pacs, *scheme.LoanScheme, []scheme.LoanApplicationStep, error)
	DepositSchemes(ctx context.Context, slug string) (*society.Pacs, []scheme.DepositScheme, error)
	PDSShops(ctx context.Context, slug string) (*society.Pacs, []catalog.PDSShop, error)
	ServiceDetail(ctx context.Context, slug string, id uint) (*society.Pacs, *catalog.PacsService, error)
	AllLoans(ctx context.Context) ([]scheme.LoanListing, error)

	InvalidateSlug(ctx context.Context, slug string) error
}

type service struct {
	societies society.Service
	schemes   scheme.Service
	items     catalog.Service
	team      team.Service
	gallery   gallery.Service
	cache     PageCache
}

func NewService(societies society.Service, schemes scheme.Service, items catalog.Service, teamSvc team.Service, gallerySvc gallery.Service, cache PageCache) Service {
	return &service{
		societies: societies,
		schemes:   schemes,
		items:     items,
		team:      teamSvc,
		gallery:   gallerySvc,
		cache:     cache,
	}
}

func (s *service) resolve(ctx context.Context, slug string) (*society.Pacs, error) {
	pacs, err := s.societies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pacs, nil
}

func (s *service) BuildPage(ctx context.Context, slug string, preview int) (*PageData, error) {
	usePreview := preview >= society.TemplateMin && preview <= society.TemplateMax

	if !usePreview {
		if cached, found, err := s.cache.Get(ctx, pageCachePrefix+slug); err == nil && found {
			var page PageData
			if err := json.Unmarshal(cached, &page); err == nil {
				return &page, nil
			}
		}
	}

	pacs, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, err
	}

	page, err := s.assemble(ctx, pacs)
	if err != nil {
		return nil, err
	}

	if usePreview {
		page.Theme = ThemeFor(preview)
		return page, nil
	}

	if payload, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, pageCachePrefix+slug, payload, pageCacheTTL); err != nil {
			log.Printf("⚠️ Could not cache page for %s: %v", slug, err)
		}
	}

	return page, nil
}

func (s *service) assemble(ctx context.Context, pacs *society.Pacs) (*PageData, error) {
	services, err := s.items.ListServices(ctx, pacs.ID, true)
	if err != nil {
		return nil, err
	}
	machinery, err := s.items.ListMachinery(ctx, pacs.ID, true)
	if err != nil {
		return nil, err
	}
	fertilizers, err := s.items.ListFertilizers(ctx, pacs.ID, true)
	if err != nil {
		return nil, err
	}
	procurements, err := s.items.ListProcurements(ctx, pacs.ID, true)
	if err != nil {
		return nil, err
	}
	members, err := s.team.List(ctx, pacs.ID, true)
	if err != nil {
		return nil, err
	}
	photos, err := s.gallery.List(ctx, pacs.ID, true)
	if err != nil {
		return nil, err
	}
	loanCount, depositCount, err := s.schemes.CountActive(ctx, pacs.ID)
	if err != nil {
		return nil, err
	}
	shopCount, err := s.items.CountVisiblePDSShops(ctx, pacs.ID)
	if err != nil {
		return nil, err
	}

	cards := make([]ServiceCard, 0, len(services)+3)
	for _, v := range services {
		cards = append(cards, ServiceCard{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Icon:        catalog.ResolveIcon(v.IconName),
			Link:        "/" + pacs.Slug + "/service/" + strconv.FormatUint(uint64(v.ID), 10),
		})
	}

	// Societies with schemes or shops get navigation cards without the
	// admin having to create them by hand
	if loanCount > 0 {
		cards = append(cards, ServiceCard{
			Title:       "Loan Schemes",
			Description: "Crop and term loans offered by the society",
			Icon:        "credit",
			Link:        "/" + pacs.Slug + "/loans",
		})
	}
	if depositCount > 0 {
		cards = append(cards, ServiceCard{
			Title:       "Deposit Schemes",
			Description: "Savings and fixed deposit products",
			Icon:        "credit",
			Link:        "/" + pacs.Slug + "/deposits",
		})
	}
	if shopCount > 0 {
		cards = append(cards, ServiceCard{
			Title:       "PDS Shops",
			Description: "Fair price shops run by the society",
			Icon:        "pds",
			Link:        "/" + pacs.Slug + "/pds-shops",
		})
	}

	page := &PageData{
		Society:      *pacs,
		Theme:        ThemeFor(pacs.TemplateType),
		Services:     cards,
		Machinery:    machinery,
		Fertilizers:  fertilizers,
		Procurements: procurements,
		Team:         members,
		Gallery:      photos,
		LoanCount:    loanCount,
		DepositCount: depositCount,
		PDSShopCount: shopCount,
		GeneratedAt:  time.Now(),
	}

	page.Sections = Sections{
		About:       pacs.History != "" || pacs.ImpactSummary != "" || pacs.EstablishedYear != nil,
		Services:    len(cards) > 0,
		Machinery:   len(machinery) > 0,
		Fertilizers: len(fertilizers) > 0,
		Procurement: len(procurements) > 0,
		Team:        len(members) > 0,
		Gallery:     len(photos) > 0,
		Location:    pacs.MapEmbedURL != nil || (pacs.Latitude != nil && pacs.Longitude != nil),
	}

	return page, nil
}

func (s *service) Directory(ctx context.Context) ([]DirectoryEntry, error) {
	societies, err := s.societies.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]DirectoryEntry, 0, len(societies))
	for _, p := range societies {
		entries = append(entries, DirectoryEntry{
			Slug:     p.Slug,
			Name:     p.Name,
			District: p.District,
			State:    p.State,
			LogoURL:  p.LogoURL,
		})
	}
	return entries, nil
}

func (s *service) LoanSchemes(ctx context.Context, slug string) (*society.Pacs, []scheme.LoanScheme, error) {
	pacs, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	schemes, err := s.schemes.ListActiveLoans(ctx, pacs.ID)
	if err != nil {
		return nil, nil, err
	}
	return pacs, schemes, nil
}

func (s *service) LoanSchemeDetail(ctx context.Context, slug string, id uint) (*society.Pacs, *scheme.LoanScheme, []scheme.LoanApplicationStep, error) {
	pacs, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, nil, nil, err
	}
	ls, err := s.schemes.GetLoan(ctx, pacs.ID, id)
	if err != nil {
		if errors.Is(err, scheme.ErrNotFound) {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, err
	}
	if !ls.IsActive {
		return nil, nil, nil, ErrNotFound
	}
	steps, err := s.schemes.ListSteps(ctx, pacs.ID, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return pacs, ls, steps, nil
}

func (s *service) DepositSchemes(ctx context.Context, slug string) (*society.Pacs, []scheme.DepositScheme, error) {
	pacs, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	schemes, err := s.schemes.ListActiveDeposits(ctx, pacs.ID)
	if err != nil {
		return nil, nil, err
	}
	return pacs, schemes, nil
}

func (s *service) PDSShops(ctx context.Context, slug string) (*society.Pacs, []catalog.PDSShop, error) {
	pacs, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	shops, err := s.items.ListPDSShops(ctx, pacs.ID, true)
	if err != nil {
		return nil, nil, err
	}
	return pacs, shops, nil
}

// ServiceDetail returns 404 semantics for ids that exist but belong to a
// different society
func (s *service) ServiceDetail(ctx context.Context, slug string, id uint) (*society.Pacs, *catalog.PacsService, error) {
	pacs, err := s.resolve(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.items.GetService(ctx, pacs.ID, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if !item.IsVisible {
		return nil, nil, ErrNotFound
	}
	return pacs, item, nil
}

func (s *service) AllLoans(ctx context.Context) ([]scheme.LoanListing, error) {
	return s.schemes.ListAllActiveLoans(ctx)
}

func (s *service) InvalidateSlug(ctx context.Context, slug string) error {
	return s.cache.Delete(ctx, pageCachePrefix+slug)
}
