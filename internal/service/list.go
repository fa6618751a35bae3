package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/smart_shopper/internal/geo"
	"github.com/Skotchmaster/smart_shopper/internal/logging"
	"github.com/Skotchmaster/smart_shopper/internal/models"
	"github.com/Skotchmaster/smart_shopper/internal/mykafka"
	"github.com/Skotchmaster/smart_shopper/internal/repo"
)

type ListService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	Router   *geo.Client
}

type CreateListResult struct {
	ListID           uint
	UserID           uint
	CreatedItemCount int
}

func (s *ListService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "list_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

func (s *ListService) CreateList(ctx context.Context, name string, items []repo.ItemInput, userID uint) (*CreateListResult, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for i := range items {
		if items[i].Name == "" {
			return nil, fmt.Errorf("%w: items[%d].name required", ErrValidation, i)
		}
		if items[i].Store == "" {
			return nil, fmt.Errorf("%w: items[%d].store required", ErrValidation, i)
		}
		if items[i].Price <= 0 {
			return nil, fmt.Errorf("%w: items[%d].price must be > 0", ErrValidation, i)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	list := &models.List{Name: name, UserID: userID}
	created, err := s.Repo.CreateListWithItems(ctx, list, items)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(list.ID), map[string]any{
		"type":   "list_created",
		"listID": list.ID,
		"userID": userID,
		"items":  created,
	})

	return &CreateListResult{ListID: list.ID, UserID: userID, CreatedItemCount: created}, nil
}

func (s *ListService) Lists(ctx context.Context) ([]models.List, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()
	return s.Repo.Lists(ctx)
}

// ListsForUser returns an empty slice, never an error, when the user has no
// lists yet.
func (s *ListService) ListsForUser(ctx context.Context, userID uint) ([]models.List, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()
	return s.Repo.ListsByUser(ctx, userID)
}

func (s *ListService) UpdateList(ctx context.Context, id uint, name *string, userID *uint) (*models.List, error) {
	if name != nil && *name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	list, err := s.Repo.UpdateList(ctx, id, name, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: list %d", ErrNotFound, id)
		}
		return nil, err
	}
	return list, nil
}

func (s *ListService) DeleteList(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	if err := s.Repo.DeleteList(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: list %d", ErrNotFound, id)
		}
		return err
	}

	s.publish(ctx, fmt.Sprint(id), map[string]any{
		"type":   "list_deleted",
		"listID": id,
	})
	return nil
}

func (s *ListService) AddProduct(ctx context.Context, listID uint, item repo.ItemInput) (*models.Product, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("%w: productName required", ErrValidation)
	}
	if item.Price <= 0 {
		return nil, fmt.Errorf("%w: price required", ErrValidation)
	}
	if item.Category == "" {
		return nil, fmt.Errorf("%w: category required", ErrValidation)
	}
	if item.Store == "" {
		return nil, fmt.Errorf("%w: storeName required", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	product, err := s.Repo.AddProduct(ctx, listID, item)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
		}
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(listID), map[string]any{
		"type":      "product_added",
		"listID":    listID,
		"productID": product.ID,
	})
	return product, nil
}

func (s *ListService) ProductsForList(ctx context.Context, listID uint) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()
	return s.Repo.ProductsByList(ctx, listID)
}

// CombinedView joins products with their stores. When from is set each row
// gets a best-effort distance: OSRM driving distance first, straight-line
// haversine when routing fails, null when the location does not parse.
// A collaborator failure never fails the view itself.
func (s *ListService) CombinedView(ctx context.Context, listID uint, from *geo.Point) ([]models.CombinedRow, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeoutSeconds*time.Second)
	defer cancel()

	rows, err := s.Repo.CombinedView(dbCtx, listID)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return rows, nil
	}

	l := logging.FromContext(ctx)
	for i := range rows {
		dest, err := geo.ParsePoint(rows[i].Location)
		if err != nil {
			continue
		}

		if s.Router != nil {
			if d, err := s.Router.RouteDistance(ctx, *from, dest); err == nil {
				rows[i].DistanceM = &d
				continue
			} else {
				l.Warn("route_distance_unavailable", "store", rows[i].StoreName, "error", err)
			}
		}

		d := geo.Haversine(*from, dest)
		rows[i].DistanceM = &d
	}
	return rows, nil
}
