package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/leopar/marketplace/internal/events"
	"github.com/leopar/marketplace/internal/logging"
	"github.com/leopar/marketplace/internal/models"
	"github.com/leopar/marketplace/internal/repo"
	"github.com/leopar/marketplace/internal/search"
)

var ErrValidation = errors.New("validation failed")

// CatalogService owns the product lifecycle. It performs no authorization
// checks; handlers gate admin access before calling in.
type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Seller      string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) ListPage(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return s.Repo.ListProductsPage(ctx, offset, limit)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProductByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create")

	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Seller:      in.Seller,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		l.Error("create_failed", "error", err)
		return nil, err
	}

	if err := search.IndexProduct(ctx, s.ES, product); err != nil {
		l.Error("es_index_error", "product_id", product.ID, "error", err)
	}

	event := map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	}
	if err := s.Producer.PublishEvent(ctx, events.ProductTopic, fmt.Sprint(product.ID), event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("product_created", "product_id", product.ID)
	return product, nil
}

// Update replaces all five mutable fields at once even when only one
// changed. ErrNotFound when the id does not exist; no row is created.
func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update", "product_id", id)

	if err := in.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Seller:      in.Seller,
	}
	if err := s.Repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("update_failed", "reason", "not found")
			return nil, repo.ErrNotFound
		}
		l.Error("update_failed", "error", err)
		return nil, err
	}

	if err := search.IndexProduct(ctx, s.ES, product); err != nil {
		l.Error("es_index_error", "error", err)
	}

	event := map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	}
	if err := s.Producer.PublishEvent(ctx, events.ProductTopic, fmt.Sprint(product.ID), event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	l.Info("product_updated")
	return product, nil
}
