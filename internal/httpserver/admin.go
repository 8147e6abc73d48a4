package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leopar/marketplace/internal/authz"
	"github.com/leopar/marketplace/internal/logging"
	"github.com/leopar/marketplace/internal/repo"
	"github.com/leopar/marketplace/internal/service"
	"github.com/leopar/marketplace/internal/session"
)

type AdminHTTP struct {
	Catalog  *service.CatalogService
	Sessions *session.Manager
}

// gate resolves the session and runs the admin decision. It answers the
// request itself on anything but Ok, so callers just stop.
func (h *AdminHTTP) gate(c echo.Context) (session.Session, bool, error) {
	var sess session.Session
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		resolved, err := h.Sessions.Resolve(c.Request().Context(), cookie.Value)
		if err != nil {
			return session.Session{}, false, c.String(http.StatusInternalServerError, "internal error")
		}
		sess = resolved
	}

	if d := authz.RequireAdmin(sess); d != authz.Ok {
		return sess, false, c.String(http.StatusForbidden, "admin only")
	}
	return sess, true, nil
}

func (h *AdminHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_dashboard")

	_, ok, err := h.gate(c)
	if !ok {
		return err
	}

	products, err := h.Catalog.List(ctx)
	if err != nil {
		l.Error("list_error", "status", 500, "error", err)
		return c.String(http.StatusInternalServerError, "internal error")
	}

	return renderPage(c, http.StatusOK, "dashboard", dashboardData{Products: products})
}

func productForm(c echo.Context) (service.ProductInput, error) {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return service.ProductInput{}, errors.Join(service.ErrValidation, err)
	}
	return service.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Image:       c.FormValue("image"),
		Seller:      c.FormValue("seller"),
	}, nil
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_product_new")

	_, ok, err := h.gate(c)
	if !ok {
		return err
	}

	in, err := productForm(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "invalid price")
	}

	if _, err := h.Catalog.Create(ctx, in); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.String(http.StatusBadRequest, err.Error())
		}
		l.Error("create_error", "status", 500, "error", err)
		return c.String(http.StatusInternalServerError, "internal error")
	}

	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *AdminHTTP) EditProductPage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_product_edit_page")

	_, ok, err := h.gate(c)
	if !ok {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.String(http.StatusNotFound, "product not found")
	}

	product, err := h.Catalog.Get(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return c.String(http.StatusNotFound, "product not found")
		}
		l.Error("get_error", "status", 500, "error", err)
		return c.String(http.StatusInternalServerError, "internal error")
	}

	return renderPage(c, http.StatusOK, "edit", editData{Product: product})
}

func (h *AdminHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_product_edit")

	_, ok, err := h.gate(c)
	if !ok {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.String(http.StatusNotFound, "product not found")
	}

	in, err := productForm(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "invalid price")
	}

	if _, err := h.Catalog.Update(ctx, uint(id), in); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return c.String(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrValidation):
			return c.String(http.StatusBadRequest, err.Error())
		default:
			l.Error("update_error", "status", 500, "error", err)
			return c.String(http.StatusInternalServerError, "internal error")
		}
	}

	return c.Redirect(http.StatusFound, "/admin/dashboard")
}
