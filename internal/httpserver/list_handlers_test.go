package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/smart_shopper/internal/models"
	"github.com/Skotchmaster/smart_shopper/internal/transport"
)

func createGroceriesList(t *testing.T, env *testEnv) transport.CreateListResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Groceries",
		"userId": 1,
		"items": []map[string]any{
			{"name": "Milk", "price": 1.50, "store": "StoreX", "location": "51.5, -0.1"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[transport.CreateListResponse](t, rec)
}

func TestCreateListCreatesAllRows(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Weekly shop",
		"userId": 1,
		"items": []map[string]any{
			{"name": "Milk", "price": 1.50, "store": "StoreX"},
			{"name": "Bread", "price": 1.35, "store": "FreshMart"},
			{"name": "Eggs", "price": 3.15, "store": "CornerGrocer"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode[transport.CreateListResponse](t, rec)
	require.NotZero(t, resp.ListID)
	require.Equal(t, uint(1), resp.UserID)
	require.Equal(t, 3, resp.CreatedItemCount)

	var products []models.Product
	require.NoError(t, env.DB.Where("list_id = ?", resp.ListID).Find(&products).Error)
	require.Len(t, products, 3)
	for _, p := range products {
		require.Equal(t, resp.ListID, p.ListID)
		require.NotZero(t, p.StoreID)
	}

	var storeCount int64
	require.NoError(t, env.DB.Model(&models.Store{}).Count(&storeCount).Error)
	require.EqualValues(t, 3, storeCount)
}

func TestCreateListValidationWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	// Second item is missing its store: the whole call must be rejected
	// before any row is written.
	rec := env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Broken",
		"userId": 1,
		"items": []map[string]any{
			{"name": "Milk", "price": 1.50, "store": "StoreX"},
			{"name": "Bread", "price": 1.35},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	for _, model := range []any{&models.List{}, &models.Product{}, &models.Store{}} {
		var count int64
		require.NoError(t, env.DB.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}
}

func TestCreateListEmptyItems(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Empty",
		"userId": 1,
		"items":  []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateListScenario(t *testing.T) {
	env := newTestEnv(t)

	user := env.registerUser(t, "a@b.com", "pw123456")

	recLogin := env.do(t, http.MethodPost, "/login", map[string]string{
		"email":    "a@b.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, recLogin.Code)
	login := decode[map[string]any](t, recLogin)
	require.Equal(t, "a@b.com", login["email"])

	recList := env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Groceries",
		"userId": user.ID,
		"items": []map[string]any{
			{"name": "Milk", "price": 1.50, "store": "StoreX"},
		},
	})
	require.Equal(t, http.StatusCreated, recList.Code)
	created := decode[transport.CreateListResponse](t, recList)
	require.NotZero(t, created.ListID)

	recProducts := env.do(t, http.MethodGet, fmt.Sprintf("/products/%d", created.ListID), nil)
	require.Equal(t, http.StatusOK, recProducts.Code)
	products := decode[[]models.Product](t, recProducts)
	require.Len(t, products, 1)
	require.Equal(t, "Milk", products[0].Name)
	require.InDelta(t, 1.50, products[0].Price, 0.001)
}

func TestStoreRowsDeduplicated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Same store twice",
		"userId": 1,
		"items": []map[string]any{
			{"name": "Milk", "price": 1.50, "store": "StoreX", "location": "51.5, -0.1"},
			{"name": "Butter", "price": 2.19, "store": "StoreX", "location": "51.5, -0.1"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var storeCount int64
	require.NoError(t, env.DB.Model(&models.Store{}).Count(&storeCount).Error)
	require.EqualValues(t, 1, storeCount)

	var products []models.Product
	require.NoError(t, env.DB.Find(&products).Error)
	require.Len(t, products, 2)
	require.Equal(t, products[0].StoreID, products[1].StoreID)
}

func TestGetListsForUser(t *testing.T) {
	env := newTestEnv(t)

	// No lists yet: empty array, not 404.
	rec := env.do(t, http.MethodGet, "/lists/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Mine",
		"userId": 7,
		"items":  []map[string]any{{"name": "Milk", "price": 1.50, "store": "StoreX"}},
	})
	env.do(t, http.MethodPost, "/lists", map[string]any{
		"name":   "Someone else's",
		"userId": 8,
		"items":  []map[string]any{{"name": "Milk", "price": 1.50, "store": "StoreX"}},
	})

	rec = env.do(t, http.MethodGet, "/lists/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lists := decode[[]models.List](t, rec)
	require.Len(t, lists, 1)
	require.Equal(t, "Mine", lists[0].Name)
}

func TestUpdateList(t *testing.T) {
	env := newTestEnv(t)
	created := createGroceriesList(t, env)

	rec := env.do(t, http.MethodPut, fmt.Sprintf("/lists/%d", created.ListID), map[string]any{
		"name": "Renamed",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[models.List](t, rec)
	require.Equal(t, "Renamed", list.Name)
	require.Equal(t, uint(1), list.UserID)

	recMissing := env.do(t, http.MethodPut, "/lists/999", map[string]any{"name": "X"})
	require.Equal(t, http.StatusNotFound, recMissing.Code)
}

func TestDeleteListCascades(t *testing.T) {
	env := newTestEnv(t)
	created := createGroceriesList(t, env)

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/lists/%d", created.ListID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listCount, productCount int64
	require.NoError(t, env.DB.Model(&models.List{}).Count(&listCount).Error)
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&productCount).Error)
	require.Zero(t, listCount)
	require.Zero(t, productCount)

	recMissing := env.do(t, http.MethodDelete, fmt.Sprintf("/lists/%d", created.ListID), nil)
	require.Equal(t, http.StatusNotFound, recMissing.Code)
}

func TestAddProduct(t *testing.T) {
	env := newTestEnv(t)
	created := createGroceriesList(t, env)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/products/%d", created.ListID), map[string]any{
		"productName": "Cheddar 400g",
		"price":       3.50,
		"category":    "Dairy & Eggs",
		"storeName":   "StoreX",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode[models.Product](t, rec)
	require.NotZero(t, product.ID)
	require.Equal(t, created.ListID, product.ListID)
	require.NotZero(t, product.StoreID)
}

func TestAddProductMissingPriceWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	created := createGroceriesList(t, env)

	var before int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&before).Error)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/products/%d", created.ListID), map[string]any{
		"productName": "Cheddar 400g",
		"category":    "Dairy & Eggs",
		"storeName":   "StoreX",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	recProducts := env.do(t, http.MethodGet, fmt.Sprintf("/products/%d", created.ListID), nil)
	products := decode[[]models.Product](t, recProducts)
	require.EqualValues(t, before, len(products))
}

func TestAddProductToMissingList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/products/999", map[string]any{
		"productName": "Milk",
		"price":       1.50,
		"category":    "Dairy & Eggs",
		"storeName":   "StoreX",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCombinedData(t *testing.T) {
	env := newTestEnv(t)
	created := createGroceriesList(t, env)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/combinedData/%d", created.ListID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rows := decode[[]models.CombinedRow](t, rec)
	require.Len(t, rows, 1)
	require.Equal(t, "Milk", rows[0].Name)
	require.Equal(t, "StoreX", rows[0].StoreName)
	require.Equal(t, "51.5, -0.1", rows[0].Location)
	require.Nil(t, rows[0].DistanceM)
}

func TestCombinedDataEmptyList(t *testing.T) {
	env := newTestEnv(t)
	created := createGroceriesList(t, env)

	// Delete the only product so the list is empty but still exists.
	require.NoError(t, env.DB.Where("list_id = ?", created.ListID).Delete(&models.Product{}).Error)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/combinedData/%d", created.ListID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestCombinedDataWithDistance(t *testing.T) {
	env := newTestEnv(t)
	created := createGroceriesList(t, env)

	// No OSRM client configured: distance falls back to haversine.
	rec := env.do(t, http.MethodGet, fmt.Sprintf("/combinedData/%d?from=51.5,-0.2", created.ListID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rows := decode[[]models.CombinedRow](t, rec)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].DistanceM)
	// 0.1 degree of longitude at 51.5N is roughly 7km.
	require.InDelta(t, 6900, *rows[0].DistanceM, 300)

	recBad := env.do(t, http.MethodGet, fmt.Sprintf("/combinedData/%d?from=notapoint", created.ListID), nil)
	require.Equal(t, http.StatusBadRequest, recBad.Code)
}
