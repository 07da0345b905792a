package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	infraRepo "github.com/quotecraft/quotecraft-api/internal/infrastructure/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Component{},
		&entity.Assembly{},
		&entity.AssemblyComponent{},
		&entity.LaborType{},
		&entity.Quotation{},
		&entity.QuotationSystem{},
		&entity.QuotationItem{},
		&entity.NumberSequence{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db        *gorm.DB
	quotation *QuotationService
	item      *ItemService
	catalog   *CatalogService
	snapshot  *SnapshotService
	user      entity.User
}

func testDefaults() PricingDefaults {
	return PricingDefaults{
		MarginPercent: 25,
		DayRateILS:    1200,
		RateUSDToILS:  3.70,
		RateEURToILS:  4.00,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	db := setupTestDB(t, t.Name())

	quotationRepo := infraRepo.NewQuotationRepository(db)
	componentRepo := infraRepo.NewComponentRepository(db)
	assemblyRepo := infraRepo.NewAssemblyRepository(db)
	laborTypeRepo := infraRepo.NewLaborTypeRepository(db)
	sequenceRepo := infraRepo.NewSequenceRepository(db)

	snapshots := NewSnapshotService(componentRepo, assemblyRepo, laborTypeRepo)
	numbering := NewNumberingService(sequenceRepo)
	defaults := testDefaults()

	env := &testEnv{
		db:        db,
		quotation: NewQuotationService(quotationRepo, numbering, defaults),
		item:      NewItemService(quotationRepo, snapshots),
		catalog:   NewCatalogService(componentRepo, assemblyRepo, laborTypeRepo, snapshots, defaults),
		snapshot:  snapshots,
		user:      entity.User{FirstName: "Test", LastName: "User", Email: "test@example.com", Password: "hash"},
	}
	if err := db.Create(&env.user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return env
}

func (e *testEnv) createQuotation(t *testing.T, systems ...string) *entity.Quotation {
	q, err := e.quotation.Create(context.Background(), CreateQuotationInput{
		OwnerID:      e.user.ID,
		CustomerName: "Acme Industrial",
		SystemNames:  systems,
	})
	if err != nil {
		t.Fatalf("create quotation: %v", err)
	}
	return q
}

func (e *testEnv) createComponent(t *testing.T, name string, cost float64, currency enum.Currency) *entity.Component {
	component := &entity.Component{
		Manufacturer: "Siemens",
		PartNumber:   "PN-" + name,
		Name:         name,
		Cost:         cost,
		Currency:     currency,
		Active:       true,
	}
	if err := e.catalog.CreateComponent(context.Background(), component); err != nil {
		t.Fatalf("create component: %v", err)
	}
	return component
}
