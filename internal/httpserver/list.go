package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/smart_shopper/internal/geo"
	"github.com/Skotchmaster/smart_shopper/internal/logging"
	"github.com/Skotchmaster/smart_shopper/internal/repo"
	"github.com/Skotchmaster/smart_shopper/internal/service"
	"github.com/Skotchmaster/smart_shopper/internal/transport"
)

type ListHTTP struct {
	Svc *service.ListService
}

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not an integer")
	}
	return uint(v), nil
}

func (h *ListHTTP) CreateList(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.create_list")

	var req transport.CreateListRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_list_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items := make([]repo.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = repo.ItemInput{
			Name:     item.Name,
			Price:    item.Price,
			Category: item.Category,
			Store:    item.Store,
			Location: item.Location,
		}
	}

	result, err := h.Svc.CreateList(ctx, req.Name, items, req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_list_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_list_error", "status", 500, "reason", "cannot create list", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create list")
	}

	l.Info("create_list_success", "list_id", result.ListID, "items", result.CreatedItemCount)
	return c.JSON(http.StatusCreated, transport.CreateListResponse{
		ListID:           result.ListID,
		UserID:           result.UserID,
		CreatedItemCount: result.CreatedItemCount,
	})
}

func (h *ListHTTP) GetLists(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.get_lists")

	lists, err := h.Svc.Lists(ctx)
	if err != nil {
		l.Error("get_lists_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve lists")
	}
	return c.JSON(http.StatusOK, lists)
}

// GetListsForUser returns an empty array, not 404, when the user has no
// lists.
func (h *ListHTTP) GetListsForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.get_lists_for_user")

	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	lists, err := h.Svc.ListsForUser(ctx, userID)
	if err != nil {
		l.Error("get_lists_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve lists")
	}
	return c.JSON(http.StatusOK, lists)
}

func (h *ListHTTP) UpdateList(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.update_list")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateListRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_list_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	list, err := h.Svc.UpdateList(ctx, id, req.Name, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_list_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_list_error", "status", 404, "reason", "list not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "list not found")
		default:
			l.Error("update_list_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update list")
		}
	}

	l.Info("update_list_success", "list_id", id)
	return c.JSON(http.StatusOK, list)
}

func (h *ListHTTP) DeleteList(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.delete_list")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteList(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_list_error", "status", 404, "reason", "list not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "list not found")
		}
		l.Error("delete_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete list")
	}

	l.Info("delete_list_success", "list_id", id)
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

func (h *ListHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.add_product")

	listID, err := parseID(c, "listId")
	if err != nil {
		return err
	}

	var req transport.AddProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item := repo.ItemInput{
		Name:     req.ProductName,
		Category: req.Category,
		Store:    req.StoreName,
		Location: req.StoreLocation,
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	product, err := h.Svc.AddProduct(ctx, listID, item)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("add_product_error", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			l.Warn("add_product_error", "status", 404, "reason", "list not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "list not found")
		default:
			l.Error("add_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to add product")
		}
	}

	l.Info("add_product_success", "list_id", listID, "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ListHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.get_products")

	listID, err := parseID(c, "listId")
	if err != nil {
		return err
	}

	products, err := h.Svc.ProductsForList(ctx, listID)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve products")
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ListHTTP) CombinedData(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.combined_data")

	listID, err := parseID(c, "listId")
	if err != nil {
		return err
	}

	var from *geo.Point
	if raw := c.QueryParam("from"); raw != "" {
		p, err := geo.ParsePoint(raw)
		if err != nil {
			l.Warn("combined_data_error", "status", 400, "reason", "bad from param", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "from must be \"lat, lon\"")
		}
		from = &p
	}

	rows, err := h.Svc.CombinedView(ctx, listID, from)
	if err != nil {
		l.Error("combined_data_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to retrieve combined data")
	}
	return c.JSON(http.StatusOK, rows)
}
