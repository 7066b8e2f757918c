package publicsite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sharath018/pacs-portal-backend/internal/catalog"
	"github.com/sharath018/pacs-portal-backend/internal/gallery"
	"github.com/sharath018/pacs-portal-backend/internal/scheme"
	"github.com/sharath018/pacs-portal-backend/internal/society"
	"github.com/sharath018/pacs-portal-backend/internal/team"
)

// The fakes embed their interface so only the methods the renderer
// touches need real bodies.

type fakeSocieties struct {
	society.Service
	pacs map[string]society.Pacs
}

func (f *fakeSocieties) GetBySlug(_ context.Context, slug string) (*society.Pacs, error) {
	p, ok := f.pacs[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := p
	return &cp, nil
}

type fakeSchemes struct {
	scheme.Service
	loans    int64
	deposits int64
}

func (f *fakeSchemes) CountActive(context.Context, uint) (int64, int64, error) {
	return f.loans, f.deposits, nil
}

type fakeCatalog struct {
	catalog.Service
	services     []catalog.PacsService
	machinery    []catalog.Machinery
	fertilizers  []catalog.Fertilizer
	procurements []catalog.Procurement
	shops        int64
}

func (f *fakeCatalog) ListServices(context.Context, uint, bool) ([]catalog.PacsService, error) {
	return f.services, nil
}

func (f *fakeCatalog) ListMachinery(context.Context, uint, bool) ([]catalog.Machinery, error) {
	return f.machinery, nil
}

func (f *fakeCatalog) ListFertilizers(context.Context, uint, bool) ([]catalog.Fertilizer, error) {
	return f.fertilizers, nil
}

func (f *fakeCatalog) ListProcurements(context.Context, uint, bool) ([]catalog.Procurement, error) {
	return f.procurements, nil
}

func (f *fakeCatalog) CountVisiblePDSShops(context.Context, uint) (int64, error) {
	return f.shops, nil
}

type fakeTeam struct {
	team.Service
	members []team.TeamMember
}

func (f *fakeTeam) List(context.Context, uint, bool) ([]team.TeamMember, error) {
	return f.members, nil
}

type fakeGallery struct {
	gallery.Service
	items []gallery.GalleryItem
}

func (f *fakeGallery) List(context.Context, uint, bool) ([]gallery.GalleryItem, error) {
	return f.items, nil
}

type fakeCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.gets++
	payload, ok := f.store[key]
	return payload, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	f.sets++
	f.store[key] = payload
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	return nil
}

type fixture struct {
	societies *fakeSocieties
	schemes   *fakeSchemes
	items     *fakeCatalog
	cache     *fakeCache
	svc       Service
}

func newFixture() *fixture {
	societies := &fakeSocieties{pacs: map[string]society.Pacs{
		"green-valley": {
			ID:           7,
			Slug:         "green-valley",
			Name:         "Green Valley PACS",
			TemplateType: 2,
			History:      "Registered in 1962",
		},
	}}
	schemes := &fakeSchemes{}
	items := &fakeCatalog{}
	cache := newFakeCache()

	return &fixture{
		societies: societies,
		schemes:   schemes,
		items:     items,
		cache:     cache,
		svc:       NewService(societies, schemes, items, &fakeTeam{}, &fakeGallery{}, cache),
	}
}

func TestBuildPageUsesStoredTemplate(t *testing.T) {
	f := newFixture()

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Theme.Number)
	assert.Equal(t, "Harvest", page.Theme.Name)
	assert.Equal(t, 1, f.cache.sets)
	assert.Contains(t, f.cache.store, "page:green-valley")
}

func TestBuildPageUnknownSlug(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BuildPage(context.Background(), "no-such-society", 0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.cache.store)
}

func TestBuildPagePreviewOverridesThemeAndSkipsCache(t *testing.T) {
	f := newFixture()

	// A stale cached copy must not leak into a preview render
	f.cache.store["page:green-valley"] = []byte(`{"theme":{"number":2}}`)

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Theme.Number)
	assert.Equal(t, "Minimal", page.Theme.Name)

	// No cache read, no cache write, stale entry untouched
	assert.Equal(t, 0, f.cache.gets)
	assert.Equal(t, 0, f.cache.sets)
	assert.JSONEq(t, `{"theme":{"number":2}}`, string(f.cache.store["page:green-valley"]))
}

func TestBuildPageOutOfRangePreviewFallsBack(t *testing.T) {
	f := newFixture()

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 9)
	require.NoError(t, err)

	// 9 is not a valid design, so the stored template renders and the
	// result is cached like any plain request
	assert.Equal(t, 2, page.Theme.Number)
	assert.Equal(t, 1, f.cache.gets)
	assert.Equal(t, 1, f.cache.sets)
}

func TestBuildPageServesCachedCopy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.BuildPage(ctx, "green-valley", 0)
	require.NoError(t, err)

	// Rename the society underneath the cache; the next render must
	// still serve the cached copy
	p := f.societies.pacs["green-valley"]
	p.Name = "Renamed PACS"
	f.societies.pacs["green-valley"] = p

	second, err := f.svc.BuildPage(ctx, "green-valley", 0)
	require.NoError(t, err)
	assert.Equal(t, first.Society.Name, second.Society.Name)
	assert.Equal(t, 1, f.cache.sets)

	// Eviction forces a rebuild that sees the new name
	require.NoError(t, f.svc.InvalidateSlug(ctx, "green-valley"))
	third, err := f.svc.BuildPage(ctx, "green-valley", 0)
	require.NoError(t, err)
	assert.Equal(t, "Renamed PACS", third.Society.Name)
	assert.Equal(t, 2, f.cache.sets)
}

func TestSectionsOmitEmptyBlocks(t *testing.T) {
	f := newFixture()

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 0)
	require.NoError(t, err)

	assert.True(t, page.Sections.About) // history text present
	assert.False(t, page.Sections.Services)
	assert.False(t, page.Sections.Machinery)
	assert.False(t, page.Sections.Fertilizers)
	assert.False(t, page.Sections.Procurement)
	assert.False(t, page.Sections.Team)
	assert.False(t, page.Sections.Gallery)
	assert.False(t, page.Sections.Location)
}

func TestSectionsRenderWhenDataExists(t *testing.T) {
	f := newFixture()
	f.items.machinery = []catalog.Machinery{{ID: 1, Name: "Tractor"}}
	f.items.fertilizers = []catalog.Fertilizer{{ID: 1, Name: "Urea"}}

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 0)
	require.NoError(t, err)
	assert.True(t, page.Sections.Machinery)
	assert.True(t, page.Sections.Fertilizers)
	assert.False(t, page.Sections.Team)
}

func TestSyntheticCardsRequirePositiveCounts(t *testing.T) {
	f := newFixture()

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 0)
	require.NoError(t, err)
	assert.Empty(t, page.Services)
	assert.False(t, page.Sections.Services)
}

func TestSyntheticCardsAppearWithCounts(t *testing.T) {
	f := newFixture()
	f.schemes.loans = 2
	f.schemes.deposits = 0
	f.items.shops = 1

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 0)
	require.NoError(t, err)

	titles := make([]string, 0, len(page.Services))
	links := map[string]string{}
	for _, card := range page.Services {
		titles = append(titles, card.Title)
		links[card.Title] = card.Link
	}

	assert.Contains(t, titles, "Loan Schemes")
	assert.Contains(t, titles, "PDS Shops")
	assert.NotContains(t, titles, "Deposit Schemes")
	assert.Equal(t, "/green-valley/loans", links["Loan Schemes"])
	assert.Equal(t, "/green-valley/pds-shops", links["PDS Shops"])

	assert.Equal(t, int64(2), page.LoanCount)
	assert.Equal(t, int64(1), page.PDSShopCount)
	assert.True(t, page.Sections.Services)
}

func TestAdminServicesBecomeLinkedCards(t *testing.T) {
	f := newFixture()
	f.items.services = []catalog.PacsService{
		{ID: 12, Title: "Crop Insurance", Description: "Kharif cover", IconName: "insurance"},
		{ID: 13, Title: "Odd One", IconName: "no-such-icon"},
	}

	page, err := f.svc.BuildPage(context.Background(), "green-valley", 0)
	require.NoError(t, err)
	require.Len(t, page.Services, 2)

	assert.Equal(t, "insurance", page.Services[0].Icon)
	assert.Equal(t, "/green-valley/service/12", page.Services[0].Link)
	assert.Equal(t, "generic", page.Services[1].Icon)
}
