// Package mockapi serves an in-memory copy of the shop backend for local
// development and tests.
package mockapi

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"storedash/internal/domain"
	"storedash/internal/validation"
)

// BasePath is where the routes are mounted
const BasePath = "/api/v1"

// Server is the mock backend
type Server struct {
	app       *fiber.App
	store     *store
	validator validation.Validator
}

// New builds the fiber app over a copy of seed
func New(seed *Seed) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "storedash mock-api",
			DisableStartupMessage: true,
		}),
		store:     newStore(seed),
		validator: validation.New(),
	}
	s.routes()
	return s
}

// App exposes the fiber app, mainly for adaptor based tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("MockAPI: listening on %s%s", addr, BasePath)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("MockAPI: shutting down")
		return s.app.Shutdown()
	}
}

func (s *Server) routes() {
	api := s.app.Group(BasePath)

	api.Get("/categories/get-category", s.listCategories)
	api.Post("/categories/create-category", s.createCategory)
	api.Put("/categories/update-category/:slug", s.updateCategory)
	api.Delete("/categories/delete-category/:slug", s.deleteCategory)

	api.Get("/product/get-products", s.listProducts)
	api.Put("/product/update-productinfo/:slug", s.updateProduct)
	api.Delete("/product/delete-product/:slug", s.deleteProduct)

	api.Get("/order/get-orders", s.listOrders)
	api.Get("/order/get-order/:invoiceId", s.getOrder)
	api.Delete("/order/delete-order/:invoiceId", s.deleteOrder)
}

func ok(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var verr *validation.ValidationError
	switch {
	case errors.Is(err, errNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, errConflict):
		status = fiber.StatusConflict
	case errors.As(err, &verr):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": message})
}

func (s *Server) listCategories(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "", s.store.listCategories())
}

func (s *Server) createCategory(c *fiber.Ctx) error {
	var in domain.Category
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body: "+err.Error())
	}
	if err := s.validator.Category(in); err != nil {
		return fail(c, err)
	}
	cat, err := s.store.createCategory(in.Name, in.Description)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "Category created", cat)
}

func (s *Server) updateCategory(c *fiber.Ctx) error {
	var in domain.Category
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body: "+err.Error())
	}
	if err := s.validator.Category(in); err != nil {
		return fail(c, err)
	}
	cat, err := s.store.updateCategory(c.Params("slug"), in.Name, in.Description)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Category updated", cat)
}

func (s *Server) deleteCategory(c *fiber.Ctx) error {
	if err := s.store.deleteCategory(c.Params("slug")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Category deleted", nil)
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "", s.store.listProducts())
}

func (s *Server) updateProduct(c *fiber.Ctx) error {
	var in domain.ProductPayload
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body: "+err.Error())
	}
	if err := s.validator.Product(in); err != nil {
		return fail(c, err)
	}
	p, err := s.store.updateProduct(c.Params("slug"), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Product updated", p)
}

func (s *Server) deleteProduct(c *fiber.Ctx) error {
	if err := s.store.deleteProduct(c.Params("slug")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Product deleted", nil)
}

func (s *Server) listOrders(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, "", s.store.listOrders())
}

func (s *Server) getOrder(c *fiber.Ctx) error {
	o, err := s.store.getOrder(c.Params("invoiceId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "", o)
}

func (s *Server) deleteOrder(c *fiber.Ctx) error {
	if err := s.store.deleteOrder(c.Params("invoiceId")); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "Order deleted", nil)
}
