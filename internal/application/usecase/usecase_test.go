package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/inventory"
	"github.com/jhoicas/stocky-api/internal/application/usecase"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
	"github.com/jhoicas/stocky-api/internal/infrastructure/memory"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

const testActor = "admin-1"

func newCatalog(t *testing.T) (*memory.Store, *usecase.SupplierUseCase, *usecase.ItemUseCase) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	rec := activity.NewRecorder(logger.Nop())
	suppliers := usecase.NewSupplierUseCase(store, repos.Suppliers, rec)
	items := usecase.NewItemUseCase(store, repos.Items, inventory.NewStockLedger(repos.Stock), rec)
	return store, suppliers, items
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplier_CreateYList(t *testing.T) {
	store, suppliers, _ := newCatalog(t)
	ctx := context.Background()

	_, err := suppliers.Create(ctx, testActor, dto.CreateSupplierRequest{Name: "Lenovo"})
	require.NoError(t, err)
	_, err = suppliers.Create(ctx, testActor, dto.CreateSupplierRequest{Name: "  Dell "})
	require.NoError(t, err)

	list, err := suppliers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dell", list[0].Name)
	assert.Len(t, store.ActivityLog(), 2)

	_, err = suppliers.Create(ctx, testActor, dto.CreateSupplierRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplier_GetInexistenteDevuelveNil(t *testing.T) {
	_, suppliers, _ := newCatalog(t)

	out, err := suppliers.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestItem_CreateConProveedorInexistente(t *testing.T) {
	_, _, items := newCatalog(t)

	_, err := items.Create(context.Background(), testActor, dto.CreateItemRequest{
		Name: "Portátil", Category: "IT", DefaultSupplierID: "00000000-0000-0000-0000-000000000099",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_ListConStockDerivado(t *testing.T) {
	store, suppliers, items := newCatalog(t)
	ctx := context.Background()
	sup, err := suppliers.Create(ctx, testActor, dto.CreateSupplierRequest{Name: "Dell"})
	require.NoError(t, err)
	price := decimal.NewFromInt(900)
	laptop, err := items.Create(ctx, testActor, dto.CreateItemRequest{
		Name: "Portátil", Category: "IT", DefaultSupplierID: sup.ID, DefaultUnitPrice: &price, Site: "Madrid",
	})
	require.NoError(t, err)
	_, err = items.Create(ctx, testActor, dto.CreateItemRequest{Name: "Silla", Category: "Mobiliario"})
	require.NoError(t, err)

	store.PutSerial(entity.Serial{ID: "s1", ItemID: laptop.ID, SerialNumber: "SN1", State: entity.InStock{}})
	store.PutSerial(entity.Serial{ID: "s2", ItemID: laptop.ID, SerialNumber: "SN2", State: entity.InStock{}})
	store.PutSerial(entity.Serial{ID: "s3", ItemID: laptop.ID, SerialNumber: "SN3", State: entity.AssignedTo{UserID: "u"}})

	list, err := items.List(ctx, repository.ItemFilter{Category: "IT"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Stock)

	got, err := items.GetByID(ctx, laptop.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	bySearch, err := items.List(ctx, repository.ItemFilter{Search: "sil"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, 0, bySearch[0].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjuntos
// ──────────────────────────────────────────────────────────────────────────────

func newFiles(t *testing.T, maxBytes int64) (*memory.Store, *usecase.FileUseCase) {
	t.Helper()
	store := memory.NewStore()
	store.PutItem(entity.Item{ID: "item-1", Name: "Portátil", Category: "IT"})
	uc := usecase.NewFileUseCase(store, store.Repositories().Files, activity.NewRecorder(nil), maxBytes)
	return store, uc
}

func TestFile_UploadListDownloadDelete(t *testing.T) {
	_, uc := newFiles(t, 1024)
	ctx := context.Background()

	up, err := uc.Upload(ctx, testActor, usecase.UploadInput{
		EntityType: entity.FileEntityItem, EntityID: "item-1",
		Filename: "../../ficha.pdf", Mime: "application/pdf", Content: []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ficha.pdf", up.Filename)
	assert.Equal(t, int64(8), up.Size)
	assert.Equal(t, "/api/files/"+up.ID+"/download", up.DownloadURL)

	list, err := uc.List(ctx, entity.FileEntityItem, "item-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	f, err := uc.Download(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), f.Content)

	require.NoError(t, uc.Delete(ctx, testActor, up.ID))
	assert.ErrorIs(t, uc.Delete(ctx, testActor, up.ID), domain.ErrNotFound)
}

func TestFile_UploadValidaciones(t *testing.T) {
	_, uc := newFiles(t, 4)
	ctx := context.Background()

	_, err := uc.Upload(ctx, testActor, usecase.UploadInput{EntityType: "supplier", EntityID: "x", Filename: "a", Content: []byte("a")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upload(ctx, testActor, usecase.UploadInput{EntityType: entity.FileEntityItem, EntityID: "item-1", Filename: "a", Content: []byte("12345")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "supera el límite")

	_, err = uc.Upload(ctx, testActor, usecase.UploadInput{EntityType: entity.FileEntityOrder, EntityID: "nope", Filename: "a", Content: []byte("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
