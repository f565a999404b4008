package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stasha-pos/internal/application/dto"
	"github.com/jhoicas/stasha-pos/internal/domain"
	"github.com/jhoicas/stasha-pos/internal/domain/entity"
	"github.com/jhoicas/stasha-pos/internal/domain/repository"
)

// MenuUseCase administración de categorías e ítems del menú.
type MenuUseCase struct {
	categories repository.CategoryRepository
	items      repository.MenuItemRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(categories repository.CategoryRepository, items repository.MenuItemRepository) *MenuUseCase {
	return &MenuUseCase{categories: categories, items: items}
}

// ListCategories categorías por nombre.
func (uc *MenuUseCase) ListCategories(ctx context.Context, orgID string) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}

// CreateCategory crea una categoría; sin is_kitchen se enruta a cocina.
func (uc *MenuUseCase) CreateCategory(ctx context.Context, orgID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	c := &entity.Category{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Name:      name,
		IsKitchen: in.IsKitchen == nil || *in.IsKitchen,
		CreatedAt: time.Now(),
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

// UpdateCategory renombra y/o cambia la estación. Los ítems siguen la estación de su categoría.
func (uc *MenuUseCase) UpdateCategory(ctx context.Context, orgID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	if in.IsKitchen != nil {
		c.IsKitchen = *in.IsKitchen
	}
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.FromCategory(c)
	return &out, nil
}

// DeleteCategory borra la categoría; sus ítems quedan sin categoría.
func (uc *MenuUseCase) DeleteCategory(ctx context.Context, orgID, id string) error {
	c, err := uc.categories.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.categories.Delete(ctx, orgID, id)
}

// ListItems menú completo u ordenable (onlyAvailable).
func (uc *MenuUseCase) ListItems(ctx context.Context, orgID string, onlyAvailable bool) ([]dto.MenuItemResponse, error) {
	list, err := uc.items.ListByOrg(ctx, orgID, onlyAvailable)
	if err != nil {
		return nil, err
	}
	return dto.FromMenuItems(list), nil
}

// LowStock ítems en o por debajo de su umbral.
func (uc *MenuUseCase) LowStock(ctx context.Context, orgID string) ([]dto.MenuItemResponse, error) {
	list, err := uc.items.ListLowStock(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return dto.FromMenuItems(list), nil
}

// CreateItem crea un ítem. Nombre, precio > 0 y categoría son obligatorios;
// el resto toma los valores por defecto (stock 0, umbral 10, emoji, disponible).
func (uc *MenuUseCase) CreateItem(ctx context.Context, orgID string, in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CategoryID == "" {
		return nil, fmt.Errorf("%w: name y category_id son requeridos", domain.ErrInvalidInput)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price_kes debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if err := uc.ensureCategory(ctx, orgID, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.MenuItem{
		ID:                uuid.New().String(),
		OrgID:             orgID,
		CategoryID:        in.CategoryID,
		Name:              name,
		Price:             in.Price,
		LowStockThreshold: entity.DefaultLowStockThreshold,
		Emoji:             entity.DefaultEmoji,
		Available:         true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock_quantity no puede ser negativo", domain.ErrInvalidInput)
		}
		m.StockQuantity = *in.StockQuantity
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrInvalidInput)
		}
		m.LowStockThreshold = *in.LowStockThreshold
	}
	if e := strings.TrimSpace(in.Emoji); e != "" {
		m.Emoji = e
	}
	if in.Available != nil {
		m.Available = *in.Available
	}
	if err := uc.items.Create(ctx, m); err != nil {
		return nil, err
	}
	return uc.reload(ctx, orgID, m.ID)
}

// UpdateItem edición parcial. El stock no se edita aquí: cambia por ventas, compras y ajustes.
func (uc *MenuUseCase) UpdateItem(ctx context.Context, orgID, id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	m, err := uc.items.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		m.Name = name
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price_kes debe ser mayor que cero", domain.ErrInvalidInput)
		}
		m.Price = *in.Price
	}
	if in.CategoryID != nil && *in.CategoryID != m.CategoryID {
		if *in.CategoryID != "" {
			if err := uc.ensureCategory(ctx, orgID, *in.CategoryID); err != nil {
				return nil, err
			}
		}
		m.CategoryID = *in.CategoryID
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrInvalidInput)
		}
		m.LowStockThreshold = *in.LowStockThreshold
	}
	if in.Emoji != nil && strings.TrimSpace(*in.Emoji) != "" {
		m.Emoji = strings.TrimSpace(*in.Emoji)
	}
	if in.Available != nil {
		m.Available = *in.Available
	}
	m.UpdatedAt = time.Now()
	if err := uc.items.Update(ctx, m); err != nil {
		return nil, err
	}
	return uc.reload(ctx, orgID, id)
}

// SetAvailability marca el ítem como disponible o agotado.
func (uc *MenuUseCase) SetAvailability(ctx context.Context, orgID, id string, available bool) (*dto.MenuItemResponse, error) {
	if err := uc.items.SetAvailability(ctx, orgID, id, available); err != nil {
		return nil, err
	}
	return uc.reload(ctx, orgID, id)
}

// DeleteItem elimina el ítem. Los pedidos conservan su copia en el JSON de ítems.
func (uc *MenuUseCase) DeleteItem(ctx context.Context, orgID, id string) error {
	m, err := uc.items.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.items.Delete(ctx, orgID, id)
}

func (uc *MenuUseCase) ensureCategory(ctx context.Context, orgID, categoryID string) error {
	c, err := uc.categories.GetByID(ctx, orgID, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
	}
	return nil
}

func (uc *MenuUseCase) reload(ctx context.Context, orgID, id string) (*dto.MenuItemResponse, error) {
	m, err := uc.items.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromMenuItem(m)
	return &out, nil
}
