package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	infraRepo "github.com/quotecraft/quotecraft-api/internal/infrastructure/repository"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
)

func TestQuotationServiceCreateDefaults(t *testing.T) {
	env := newTestEnv(t)

	q := env.createQuotation(t, "Line A", "Line B")

	if q.Number != "QT-000001" {
		t.Fatalf("expected number QT-000001, got %s", q.Number)
	}
	if q.Version != 1 {
		t.Fatalf("expected version 1, got %d", q.Version)
	}
	if q.Status != enum.QuotationStatusDraft {
		t.Fatalf("expected draft status, got %v", q.Status)
	}
	if q.MarginPercent != 25 || q.DayRateILS != 1200 {
		t.Fatalf("expected defaults applied, got margin=%v dayRate=%v", q.MarginPercent, q.DayRateILS)
	}
	if q.RateUSDToILS != 3.70 || q.RateEURToILS != 4.00 {
		t.Fatalf("expected default rates, got %v / %v", q.RateUSDToILS, q.RateEURToILS)
	}
	if len(q.Systems) != 2 {
		t.Fatalf("expected 2 systems, got %d", len(q.Systems))
	}
	for i, sys := range q.Systems {
		if sys.DisplayOrder != i+1 {
			t.Fatalf("system %d has display order %d", i, sys.DisplayOrder)
		}
	}

	q2 := env.createQuotation(t)
	if q2.Number != "QT-000002" {
		t.Fatalf("expected number QT-000002, got %s", q2.Number)
	}
}

func TestQuotationServiceCreateRejectsInvalidInputs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.quotation.Create(ctx, CreateQuotationInput{
		OwnerID:      env.user.ID,
		CustomerName: "Acme",
		RateUSDToILS: -1,
	}); !errors.Is(err, apperror.ErrInvalidRate) {
		t.Fatalf("expected invalid rate error, got %v", err)
	}

	margin := 100.0
	if _, err := env.quotation.Create(ctx, CreateQuotationInput{
		OwnerID:       env.user.ID,
		CustomerName:  "Acme",
		MarginPercent: &margin,
	}); err == nil {
		t.Fatal("expected error for margin of 100")
	}
}

func TestQuotationServiceUpdateParametersMarginRecalc(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	component := env.createComponent(t, "PLC", 100, enum.CurrencyUSD)

	res, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	// 25% margin of price over a 100 USD cost
	if got := res.Item.UnitPrice.USD; got != 133.33 {
		t.Fatalf("expected unit price 133.33, got %v", got)
	}

	margin := 30.0
	updated, err := env.quotation.UpdateParameters(ctx, UpdateParametersInput{
		ID:            q.ID,
		Version:       q.Version,
		MarginPercent: &margin,
	})
	if err != nil {
		t.Fatalf("update parameters: %v", err)
	}

	item := updated.Systems[0].Items[0]
	if item.UnitPrice.USD != 142.86 {
		t.Fatalf("expected unit price 142.86 after margin change, got %v", item.UnitPrice.USD)
	}
	if updated.TotalPrice.USD != 142.86 {
		t.Fatalf("expected quotation total 142.86, got %v", updated.TotalPrice.USD)
	}
}

func TestQuotationServiceMSRPToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")

	msrp := 150.0
	msrpCur := enum.CurrencyUSD
	component := &entity.Component{
		Manufacturer: "Allen-Bradley",
		PartNumber:   "PN-Servo",
		Name:         "Servo",
		Cost:         100,
		Currency:     enum.CurrencyUSD,
		MSRPPrice:    &msrp,
		MSRPCurrency: &msrpCur,
		Active:       true,
	}
	if err := env.catalog.CreateComponent(ctx, component); err != nil {
		t.Fatalf("create component: %v", err)
	}

	res, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if res.Item.UnitPrice.USD != 133.33 {
		t.Fatalf("margin mode price expected, got %v", res.Item.UnitPrice.USD)
	}

	useMSRP := true
	updated, err := env.quotation.UpdateParameters(ctx, UpdateParametersInput{
		ID:      q.ID,
		Version: q.Version,
		UseMSRP: &useMSRP,
	})
	if err != nil {
		t.Fatalf("toggle msrp: %v", err)
	}
	item := updated.Systems[0].Items[0]
	if item.UnitPrice.USD != 150 {
		t.Fatalf("expected MSRP price 150, got %v", item.UnitPrice.USD)
	}
	if item.UnitCost.USD != 100 {
		t.Fatalf("cost must not change on mode toggle, got %v", item.UnitCost.USD)
	}

	useMSRP = false
	updated, err = env.quotation.UpdateParameters(ctx, UpdateParametersInput{
		ID:      q.ID,
		Version: q.Version,
		UseMSRP: &useMSRP,
	})
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if got := updated.Systems[0].Items[0].UnitPrice.USD; got != 133.33 {
		t.Fatalf("expected margin price restored, got %v", got)
	}
}

func TestQuotationServiceUpdateParametersStaleVersion(t *testing.T) {
	env := newTestEnv(t)

	q := env.createQuotation(t, "Main")

	name := "Renamed"
	_, err := env.quotation.UpdateParameters(context.Background(), UpdateParametersInput{
		ID:           q.ID,
		Version:      q.Version + 1,
		CustomerName: &name,
	})
	if !errors.Is(err, apperror.ErrStaleVersion) {
		t.Fatalf("expected stale version error, got %v", err)
	}

	// Omitting the version does not bypass the check.
	_, err = env.quotation.UpdateParameters(context.Background(), UpdateParametersInput{
		ID:           q.ID,
		CustomerName: &name,
	})
	if !errors.Is(err, apperror.ErrStaleVersion) {
		t.Fatalf("expected stale version error for omitted version, got %v", err)
	}
}

func TestQuotationServiceConcurrentEditorsSecondSaveFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	repo := infraRepo.NewQuotationRepository(env.db)

	editorA, err := repo.GetWithTree(ctx, q.ID)
	if err != nil || editorA == nil {
		t.Fatalf("load editor A copy: %v", err)
	}
	editorB, err := repo.GetWithTree(ctx, q.ID)
	if err != nil || editorB == nil {
		t.Fatalf("load editor B copy: %v", err)
	}

	editorA.CustomerName = "Editor A"
	if err := repo.SaveTree(ctx, editorA); err != nil {
		t.Fatalf("first save: %v", err)
	}

	editorB.CustomerName = "Editor B"
	if err := repo.SaveTree(ctx, editorB); !errors.Is(err, apperror.ErrStaleVersion) {
		t.Fatalf("expected stale version error on second save, got %v", err)
	}

	stored, err := repo.GetWithTree(ctx, q.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.CustomerName != "Editor A" {
		t.Fatalf("first editor's write was overwritten, got customer %q", stored.CustomerName)
	}
	if stored.LockVersion != editorA.LockVersion {
		t.Fatalf("expected lock version %d, got %d", editorA.LockVersion, stored.LockVersion)
	}
	if stored.Version != 1 {
		t.Fatalf("document version moved on save, got %d", stored.Version)
	}

	// Reloading gives the loser a fresh lock version to save against.
	editorB, err = repo.GetWithTree(ctx, q.ID)
	if err != nil {
		t.Fatalf("reload editor B copy: %v", err)
	}
	editorB.CustomerName = "Editor B"
	if err := repo.SaveTree(ctx, editorB); err != nil {
		t.Fatalf("save after reload: %v", err)
	}
}

func TestQuotationServiceNewVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	component := env.createComponent(t, "HMI", 250, enum.CurrencyEUR)
	if _, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:    2,
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	next, err := env.quotation.NewVersion(ctx, q.ID)
	if err != nil {
		t.Fatalf("new version: %v", err)
	}

	if next.ID == q.ID {
		t.Fatal("new version must have a fresh ID")
	}
	if next.Number != q.Number {
		t.Fatalf("number must carry over, got %s vs %s", next.Number, q.Number)
	}
	if next.Version != 2 {
		t.Fatalf("expected version 2, got %d", next.Version)
	}
	if next.Status != enum.QuotationStatusDraft {
		t.Fatalf("new version must start as draft, got %v", next.Status)
	}
	if len(next.Systems) != 1 || len(next.Systems[0].Items) != 1 {
		t.Fatal("tree must be copied")
	}
	if next.Systems[0].ID == q.Systems[0].ID {
		t.Fatal("copied system must have a fresh ID")
	}

	source, err := env.quotation.GetQuotation(ctx, q.ID)
	if err != nil {
		t.Fatalf("reload source: %v", err)
	}
	if source.Version != 1 || len(source.Systems[0].Items) != 1 {
		t.Fatal("source quotation must be untouched")
	}
}

func TestQuotationServiceUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t)
	if err := env.quotation.UpdateStatus(ctx, q.ID, enum.QuotationStatusSent); err != nil {
		t.Fatalf("update status: %v", err)
	}

	reloaded, err := env.quotation.GetQuotation(ctx, q.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != enum.QuotationStatusSent {
		t.Fatalf("expected sent status, got %v", reloaded.Status)
	}

	if err := env.quotation.UpdateStatus(ctx, q.ID, enum.QuotationStatus(42)); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

type failingSequenceRepo struct{}

func (failingSequenceRepo) Increment(_ context.Context, _, _ string) (int64, error) {
	return 0, errors.New("sequence table unavailable")
}

func TestNumberingServiceFallback(t *testing.T) {
	numbering := NewNumberingService(failingSequenceRepo{})

	number := numbering.Next(context.Background(), "scope", DocTypeQuotation)
	if !strings.HasPrefix(number, "QT-F") {
		t.Fatalf("expected fallback number with QT-F prefix, got %s", number)
	}
}

func TestNumberingServiceScopesAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	other := entity.User{FirstName: "Other", LastName: "User", Email: "other@example.com", Password: "hash"}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	first := env.createQuotation(t)
	if first.Number != "QT-000001" {
		t.Fatalf("expected QT-000001, got %s", first.Number)
	}

	otherQ, err := env.quotation.Create(ctx, CreateQuotationInput{
		OwnerID:      other.ID,
		CustomerName: "Second Owner",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if otherQ.Number != "QT-000001" {
		t.Fatalf("each owner has its own sequence, got %s", otherQ.Number)
	}
}
