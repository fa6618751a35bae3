package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/smart_shopper/internal/models"
)

// ItemInput is one line of a list being built: the product fields plus the
// store it was seen in.
type ItemInput struct {
	Name     string
	Price    float64
	Category string
	Store    string
	Location string
}

// CreateListWithItems inserts the list and every store/product row in one
// transaction; a failure on any item rolls back everything, including the
// list row itself.
func (r *GormRepo) CreateListWithItems(ctx context.Context, list *models.List, items []ItemInput) (int, error) {
	created := 0
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(list).Error; err != nil {
			return err
		}

		for _, item := range items {
			store := models.Store{Name: item.Store, Location: item.Location}
			if err := tx.Where("store_name = ? AND location = ?", item.Store, item.Location).
				FirstOrCreate(&store).Error; err != nil {
				return err
			}

			product := models.Product{
				Name:     item.Name,
				Price:    item.Price,
				Category: item.Category,
				StoreID:  store.ID,
				ListID:   list.ID,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *GormRepo) Lists(ctx context.Context) ([]models.List, error) {
	lists := []models.List{}
	if err := r.DB.WithContext(ctx).Order("list_id ASC").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *GormRepo) ListsByUser(ctx context.Context, userID uint) ([]models.List, error) {
	lists := []models.List{}
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("list_id ASC").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *GormRepo) ListByID(ctx context.Context, id uint) (*models.List, error) {
	var list models.List
	if err := r.DB.WithContext(ctx).First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *GormRepo) UpdateList(ctx context.Context, id uint, name *string, userID *uint) (*models.List, error) {
	var list models.List
	if err := r.DB.WithContext(ctx).First(&list, id).Error; err != nil {
		return nil, err
	}

	if name != nil {
		list.Name = *name
	}
	if userID != nil {
		list.UserID = *userID
	}

	if err := r.DB.WithContext(ctx).Save(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteList cascades: the list's products go in the same transaction.
// Stores are shared between lists after dedup and stay.
func (r *GormRepo) DeleteList(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.List{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddProduct fails fast when the list is missing instead of inserting a
// product with a dangling list reference.
func (r *GormRepo) AddProduct(ctx context.Context, listID uint, item ItemInput) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.List
		if err := tx.First(&list, listID).Error; err != nil {
			return err
		}

		store := models.Store{Name: item.Store, Location: item.Location}
		if err := tx.Where("store_name = ? AND location = ?", item.Store, item.Location).
			FirstOrCreate(&store).Error; err != nil {
			return err
		}

		product = models.Product{
			Name:     item.Name,
			Price:    item.Price,
			Category: item.Category,
			StoreID:  store.ID,
			ListID:   listID,
		}
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductsByList(ctx context.Context, listID uint) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.DB.WithContext(ctx).Where("list_id = ?", listID).
		Order("product_id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) CombinedView(ctx context.Context, listID uint) ([]models.CombinedRow, error) {
	rows := []models.CombinedRow{}
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Select("products.product_id, products.product_name, products.price, products.category, products.list_id, products.store_id, stores.store_name, stores.location").
		Joins("JOIN stores ON stores.store_id = products.store_id").
		Where("products.list_id = ?", listID).
		Order("products.product_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) CountProducts(ctx context.Context, listID uint) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("list_id = ?", listID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
