package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestCreateCategory_PorDefectoEsCocina(t *testing.T) {
	s := testutil.NewStore()
	uc := NewMenuUseCase(s.Categories(), s.MenuItems())

	out, err := uc.CreateCategory(context.Background(), "org-1", dto.CategoryRequest{Name: " Mains "})
	require.NoError(t, err)
	assert.Equal(t, "Mains", out.Name)
	assert.True(t, out.IsKitchen)
	assert.Equal(t, entity.StationKitchen, out.Station)

	bar, err := uc.CreateCategory(context.Background(), "org-1", dto.CategoryRequest{Name: "Beers", IsKitchen: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, entity.StationBar, bar.Station)

	_, err = uc.CreateCategory(context.Background(), "org-1", dto.CategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateItem_AplicaValoresPorDefecto(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	cat := testutil.SeedCategory(t, s, org.ID, "Beers", false)
	uc := NewMenuUseCase(s.Categories(), s.MenuItems())

	out, err := uc.CreateItem(context.Background(), org.ID, dto.CreateMenuItemRequest{
		Name: "Tusker", Price: decimal.NewFromInt(300), CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.StockQuantity)
	assert.Equal(t, entity.DefaultLowStockThreshold, out.LowStockThreshold)
	assert.Equal(t, entity.DefaultEmoji, out.Emoji)
	assert.True(t, out.Available)
	assert.False(t, out.IsKitchenItem, "hereda la estación de la categoría")
	assert.Equal(t, "Beers", out.CategoryName)
	assert.True(t, out.LowStock)
	assert.Equal(t, "KES 300.00", out.PriceFormatted)
}

func TestCreateItem_Validaciones(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	cat := testutil.SeedCategory(t, s, org.ID, "Beers", false)
	uc := NewMenuUseCase(s.Categories(), s.MenuItems())
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, org.ID, dto.CreateMenuItemRequest{Name: "", Price: decimal.NewFromInt(10), CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, org.ID, dto.CreateMenuItemRequest{Name: "Gratis", Price: decimal.Zero, CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, org.ID, dto.CreateMenuItemRequest{Name: "X", Price: decimal.NewFromInt(10), CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateItem(ctx, org.ID, dto.CreateMenuItemRequest{
		Name: "X", Price: decimal.NewFromInt(10), CategoryID: cat.ID, StockQuantity: ptr(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateItem_CategoriaDeOtraOrganizacion(t *testing.T) {
	s := testutil.NewStore()
	other := testutil.SeedCategory(t, s, "org-2", "Ajena", true)
	uc := NewMenuUseCase(s.Categories(), s.MenuItems())

	_, err := uc.CreateItem(context.Background(), "org-1", dto.CreateMenuItemRequest{
		Name: "X", Price: decimal.NewFromInt(10), CategoryID: other.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItem_Parcial(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	cat := testutil.SeedCategory(t, s, org.ID, "Food", true)
	item := testutil.SeedMenuItem(t, s, org.ID, cat.ID, "Chips", 150)
	uc := NewMenuUseCase(s.Categories(), s.MenuItems())

	out, err := uc.UpdateItem(context.Background(), org.ID, item.ID, dto.UpdateMenuItemRequest{
		Price: ptr(decimal.NewFromInt(180)), Emoji: ptr("🍟"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Chips", out.Name)
	assert.True(t, decimal.NewFromInt(180).Equal(out.Price))
	assert.Equal(t, "🍟", out.Emoji)
	assert.Equal(t, 50, out.StockQuantity, "el stock no se edita por esta vía")

	_, err = uc.UpdateItem(context.Background(), org.ID, item.ID, dto.UpdateMenuItemRequest{Name: ptr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateItem(context.Background(), org.ID, "nope", dto.UpdateMenuItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListItems_SoloDisponibles(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	cat := testutil.SeedCategory(t, s, org.ID, "Food", true)
	a := testutil.SeedMenuItem(t, s, org.ID, cat.ID, "Chips", 150)
	testutil.SeedMenuItem(t, s, org.ID, cat.ID, "Ugali", 100)
	uc := NewMenuUseCase(s.Categories(), s.MenuItems())
	ctx := context.Background()

	_, err := uc.SetAvailability(ctx, org.ID, a.ID, false)
	require.NoError(t, err)

	all, err := uc.ListItems(ctx, org.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	orderable, err := uc.ListItems(ctx, org.ID, true)
	require.NoError(t, err)
	require.Len(t, orderable, 1)
	assert.Equal(t, "Ugali", orderable[0].Name)
}

func TestDeleteCategory_ItemsQuedanSinCategoria(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	cat := testutil.SeedCategory(t, s, org.ID, "Beers", false)
	item := testutil.SeedMenuItem(t, s, org.ID, cat.ID, "Tusker", 300)
	uc := NewMenuUseCase(s.Categories(), s.MenuItems())
	ctx := context.Background()

	require.NoError(t, uc.DeleteCategory(ctx, org.ID, cat.ID))
	assert.ErrorIs(t, uc.DeleteCategory(ctx, org.ID, cat.ID), domain.ErrNotFound)

	m, err := s.MenuItems().GetByID(ctx, org.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Empty(t, m.CategoryID)
	assert.True(t, m.IsKitchenItem, "sin categoría se enruta a cocina")
}

func TestLowStock(t *testing.T) {
	s := testutil.NewStore()
	org := testutil.SeedOrganization(t, s, "Bar")
	cat := testutil.SeedCategory(t, s, org.ID, "Food", true)
	low := testutil.SeedMenuItem(t, s, org.ID, cat.ID, "Samosa", 50)
	testutil.SeedMenuItem(t, s, org.ID, cat.ID, "Chips", 150)
	require.NoError(t, s.MenuItems().AdjustStock(context.Background(), org.ID, low.ID, -45))

	out, err := NewMenuUseCase(s.Categories(), s.MenuItems()).LowStock(context.Background(), org.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Samosa", out[0].Name)
}
