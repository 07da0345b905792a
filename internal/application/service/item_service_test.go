package service

import (
	"context"
	"errors"
	"testing"

	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/pkg/apperror"
)

func TestItemServiceAddComponentItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	component := env.createComponent(t, "PLC", 100, enum.CurrencyUSD)

	res, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:    2,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if res.IncompleteAssembly {
		t.Fatal("component add must not flag incomplete assembly")
	}

	item := res.Item
	if item.ItemType != enum.ItemTypeComponent {
		t.Fatalf("expected component item, got %v", item.ItemType)
	}
	if item.Name != "PLC" {
		t.Fatalf("expected snapshotted name, got %s", item.Name)
	}
	if item.OriginCurrency != enum.CurrencyUSD {
		t.Fatalf("expected USD origin, got %v", item.OriginCurrency)
	}
	if item.UnitCost.USD != 100 || item.UnitCost.ILS != 370 || item.UnitCost.EUR != 92.5 {
		t.Fatalf("unexpected spread cost: %+v", item.UnitCost)
	}
	if item.DisplayOrder != 1 {
		t.Fatalf("expected display order 1, got %d", item.DisplayOrder)
	}
	// 25% default margin of price: 100 / 0.75
	if item.UnitPrice.USD != 133.33 {
		t.Fatalf("expected unit price 133.33, got %v", item.UnitPrice.USD)
	}
	if item.TotalPrice.USD != 266.66 {
		t.Fatalf("expected total price 266.66, got %v", item.TotalPrice.USD)
	}
	if res.Quotation.TotalCost.USD != 200 {
		t.Fatalf("expected quotation total cost 200, got %v", res.Quotation.TotalCost.USD)
	}
}

func TestItemServiceAddItemRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	component := env.createComponent(t, "PLC", 100, enum.CurrencyUSD)

	_, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:    0,
	})
	if !errors.Is(err, apperror.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity error, got %v", err)
	}

	_, err = env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Quantity:    1,
	})
	if err == nil {
		t.Fatal("expected error when neither ref nor custom data is given")
	}

	badMargin := 150.0
	_, err = env.item.AddItem(ctx, AddItemInput{
		QuotationID:   q.ID,
		SystemID:      q.Systems[0].ID,
		Ref:           &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:      1,
		MarginPercent: &badMargin,
	})
	if err == nil {
		t.Fatal("expected error for margin override outside [0, 100)")
	}
}

func TestItemServiceAddUnresolvableRef(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	component := env.createComponent(t, "Ghost", 10, enum.CurrencyUSD)
	if err := env.catalog.DeleteComponent(ctx, component.ID); err != nil {
		t.Fatalf("delete component: %v", err)
	}

	_, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:    1,
	})
	if err == nil {
		t.Fatal("expected snapshot unavailable error, item must never default to zero cost")
	}
}

func TestItemServiceAddAssembly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	motor := env.createComponent(t, "Motor", 100, enum.CurrencyUSD)
	drive := env.createComponent(t, "Drive", 50, enum.CurrencyUSD)

	assembly := &entity.Assembly{
		Name:     "Drive train",
		Currency: enum.CurrencyUSD,
		Members: []entity.AssemblyComponent{
			{ComponentID: motor.ID, Quantity: 2},
			{ComponentID: drive.ID, Quantity: 1},
		},
	}
	if err := env.catalog.CreateAssembly(ctx, assembly); err != nil {
		t.Fatalf("create assembly: %v", err)
	}

	res, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeAssembly, ID: assembly.ID},
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("add assembly item: %v", err)
	}
	if res.IncompleteAssembly {
		t.Fatal("assembly is complete, no warning expected")
	}
	if res.Item.ItemType != enum.ItemTypeAssembly {
		t.Fatalf("expected assembly item, got %v", res.Item.ItemType)
	}
	if res.Item.UnitCost.USD != 250 {
		t.Fatalf("expected rolled-up cost 250, got %v", res.Item.UnitCost.USD)
	}
}

func TestItemServiceIncompleteAssemblyBecomesCustom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	motor := env.createComponent(t, "Motor", 100, enum.CurrencyUSD)
	ghost := env.createComponent(t, "Ghost", 75, enum.CurrencyUSD)

	assembly := &entity.Assembly{
		Name:     "Partial kit",
		Currency: enum.CurrencyUSD,
		Members: []entity.AssemblyComponent{
			{ComponentID: motor.ID, Quantity: 1},
			{ComponentID: ghost.ID, Quantity: 1},
		},
	}
	if err := env.catalog.CreateAssembly(ctx, assembly); err != nil {
		t.Fatalf("create assembly: %v", err)
	}
	if err := env.catalog.DeleteComponent(ctx, ghost.ID); err != nil {
		t.Fatalf("delete component: %v", err)
	}

	res, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeAssembly, ID: assembly.ID},
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if !res.IncompleteAssembly {
		t.Fatal("expected incomplete assembly warning")
	}
	if res.Item.ItemType != enum.ItemTypeCustom {
		t.Fatalf("incomplete assembly must be stored as custom, got %v", res.Item.ItemType)
	}
	if res.Item.AssemblyID == nil || *res.Item.AssemblyID != assembly.ID {
		t.Fatal("frozen item keeps the assembly reference")
	}
	// resolvable members still priced
	if res.Item.UnitCost.USD != 100 {
		t.Fatalf("expected partial cost 100, got %v", res.Item.UnitCost.USD)
	}
}

func TestItemServiceSnapshotSurvivesCatalogEdit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	component := env.createComponent(t, "PLC", 100, enum.CurrencyUSD)
	if _, err := env.item.AddItem(ctx, AddItemInput{
		QuotationID: q.ID,
		SystemID:    q.Systems[0].ID,
		Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
		Quantity:    1,
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	component.Cost = 999
	if err := env.catalog.UpdateComponent(ctx, component); err != nil {
		t.Fatalf("update component: %v", err)
	}

	reloaded, err := env.quotation.GetQuotation(ctx, q.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Systems[0].Items[0].UnitCost.USD; got != 100 {
		t.Fatalf("snapshot must survive catalog edits, got %v", got)
	}
}

func TestItemServiceQuantityEditRescalesOnly(t *testing.T) {
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

	qty := 3.0
	updated, err := env.item.UpdateItem(ctx, UpdateItemInput{
		QuotationID: q.ID,
		ItemID:      res.Item.ID,
		Quantity:    &qty,
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}

	item := updated.Systems[0].Items[0]
	if item.UnitPrice.USD != 133.33 {
		t.Fatalf("unit price must be untouched by quantity edit, got %v", item.UnitPrice.USD)
	}
	if item.TotalPrice.USD != 399.99 {
		t.Fatalf("expected total 399.99, got %v", item.TotalPrice.USD)
	}
	if updated.TotalCost.USD != 300 {
		t.Fatalf("expected quotation cost total 300, got %v", updated.TotalCost.USD)
	}

	bad := 0.0
	if _, err := env.item.UpdateItem(ctx, UpdateItemInput{
		QuotationID: q.ID,
		ItemID:      res.Item.ID,
		Quantity:    &bad,
	}); !errors.Is(err, apperror.ErrInvalidQuantity) {
		t.Fatalf("expected invalid quantity error, got %v", err)
	}
}

func TestItemServicePriceEditBackDerivesMargin(t *testing.T) {
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

	price := 150.0
	updated, err := env.item.UpdateItem(ctx, UpdateItemInput{
		QuotationID: q.ID,
		ItemID:      res.Item.ID,
		UnitPrice:   &price,
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}

	item := updated.Systems[0].Items[0]
	if item.MarginPercent == nil {
		t.Fatal("price edit must be stored as a margin override")
	}
	// margin that reproduces 150 over 100: 33.33%
	if *item.MarginPercent < 33.32 || *item.MarginPercent > 33.34 {
		t.Fatalf("expected derived margin near 33.33, got %v", *item.MarginPercent)
	}
	if item.UnitPrice.USD < 149.99 || item.UnitPrice.USD > 150.01 {
		t.Fatalf("expected unit price to hold at 150, got %v", item.UnitPrice.USD)
	}

	// a later margin change must not disturb the overridden item
	margin := 40.0
	after, err := env.quotation.UpdateParameters(ctx, UpdateParametersInput{
		ID:            q.ID,
		Version:       q.Version,
		MarginPercent: &margin,
	})
	if err != nil {
		t.Fatalf("update parameters: %v", err)
	}
	if got := after.Systems[0].Items[0].UnitPrice.USD; got < 149.99 || got > 150.01 {
		t.Fatalf("override must survive quotation margin change, got %v", got)
	}
}

func TestItemServiceDeleteItemRenumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	var ids []entity.QuotationItem
	for _, name := range []string{"A", "B", "C"} {
		component := env.createComponent(t, name, 10, enum.CurrencyUSD)
		res, err := env.item.AddItem(ctx, AddItemInput{
			QuotationID: q.ID,
			SystemID:    q.Systems[0].ID,
			Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
			Quantity:    1,
		})
		if err != nil {
			t.Fatalf("add item %s: %v", name, err)
		}
		ids = append(ids, *res.Item)
	}

	updated, err := env.item.DeleteItem(ctx, q.ID, ids[1].ID)
	if err != nil {
		t.Fatalf("delete item: %v", err)
	}

	items := updated.Systems[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "A" || items[1].Name != "C" {
		t.Fatalf("unexpected order: %s, %s", items[0].Name, items[1].Name)
	}
	for i, item := range items {
		if item.DisplayOrder != i+1 {
			t.Fatalf("display order must be dense, item %d has %d", i, item.DisplayOrder)
		}
	}

	reloaded, err := env.quotation.GetQuotation(ctx, q.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Systems[0].Items) != 2 {
		t.Fatalf("deletion must persist, got %d items", len(reloaded.Systems[0].Items))
	}
}

func TestItemServiceMoveItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "Main")
	var last entity.QuotationItem
	for _, name := range []string{"A", "B", "C"} {
		component := env.createComponent(t, name, 10, enum.CurrencyUSD)
		res, err := env.item.AddItem(ctx, AddItemInput{
			QuotationID: q.ID,
			SystemID:    q.Systems[0].ID,
			Ref:         &CatalogRef{ItemType: enum.ItemTypeComponent, ID: component.ID},
			Quantity:    1,
		})
		if err != nil {
			t.Fatalf("add item %s: %v", name, err)
		}
		last = *res.Item
	}

	updated, err := env.item.MoveItem(ctx, q.ID, last.ID, 1)
	if err != nil {
		t.Fatalf("move item: %v", err)
	}

	items := updated.Systems[0].Items
	want := []string{"C", "A", "B"}
	for i, name := range want {
		if items[i].Name != name || items[i].DisplayOrder != i+1 {
			t.Fatalf("position %d: got %s order %d", i+1, items[i].Name, items[i].DisplayOrder)
		}
	}
}

func TestItemServiceSystems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q := env.createQuotation(t, "First")

	updated, err := env.item.AddSystem(ctx, q.ID, "Second")
	if err != nil {
		t.Fatalf("add system: %v", err)
	}
	if len(updated.Systems) != 2 || updated.Systems[1].DisplayOrder != 2 {
		t.Fatalf("unexpected systems: %+v", updated.Systems)
	}

	updated, err = env.item.RenameSystem(ctx, q.ID, updated.Systems[0].ID, "Renamed")
	if err != nil {
		t.Fatalf("rename system: %v", err)
	}
	if updated.Systems[0].Name != "Renamed" {
		t.Fatalf("rename did not stick: %s", updated.Systems[0].Name)
	}

	updated, err = env.item.DeleteSystem(ctx, q.ID, updated.Systems[0].ID)
	if err != nil {
		t.Fatalf("delete system: %v", err)
	}
	if len(updated.Systems) != 1 || updated.Systems[0].Name != "Second" {
		t.Fatalf("unexpected systems after delete: %+v", updated.Systems)
	}
	if updated.Systems[0].DisplayOrder != 1 {
		t.Fatalf("system order must be renumbered, got %d", updated.Systems[0].DisplayOrder)
	}
}
