package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopcart/internal/common"
	"github.com/dmitrijs2005/shopcart/internal/dbx"
	"github.com/dmitrijs2005/shopcart/internal/server/models"
	"github.com/dmitrijs2005/shopcart/internal/server/repositories/repomanager"
)

// SampleItems is the demo catalog created by Seed on an empty database.
var SampleItems = []models.Item{
	{Name: "iPhone 14", Description: "Latest Apple smartphone with advanced features", Price: 999.99},
	{Name: "Samsung Galaxy S23", Description: "Android flagship phone with excellent camera", Price: 899.99},
	{Name: "MacBook Pro", Description: "Professional laptop from Apple for developers", Price: 1999.99},
	{Name: "Dell XPS 13", Description: "Ultrabook perfect for students and professionals", Price: 1299.99},
	{Name: "Nike Air Max", Description: "Comfortable running shoes for daily use", Price: 129.99},
	{Name: "Adidas Ultraboost", Description: "Premium athletic shoes for serious runners", Price: 149.99},
	{Name: "Sony WH-1000XM4", Description: "Noise-canceling wireless headphones", Price: 349.99},
	{Name: "Apple Watch Series 8", Description: "Smartwatch with health monitoring features", Price: 399.99},
}

type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

// List returns every item in id order. Never nil.
func (s *CatalogService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.repomanager.Items(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" || item.Price < 0 {
		return nil, common.ErrorValidation
	}

	out, err := s.repomanager.Items(s.db).Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating item: %w", err)
	}
	return out, nil
}

// Seed inserts SampleItems in one transaction when the catalog is empty and
// returns the number of items created.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	return dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (int, error) {
		repo := s.repomanager.Items(tx)

		n, err := repo.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("error counting items: %w", err)
		}
		if n > 0 {
			return 0, nil
		}

		for i := range SampleItems {
			item := SampleItems[i]
			if _, err := repo.Create(ctx, &item); err != nil {
				return 0, fmt.Errorf("error creating item %q: %w", item.Name, err)
			}
		}
		return len(SampleItems), nil
	})
}
