package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Stats is the precomputed dashboard panel. Values are computed on every
// call so sequential loads reflect fixture or live-data changes.
type Stats struct {
	TotalItems     int64   `json:"total_items"`
	DistinctBrands int64   `json:"distinct_brands"`
	LowStockItems  int64   `json:"low_stock_items"`
	DiscountRules  int64   `json:"discount_rules"`
	AveragePrice   float64 `json:"average_price"`
}

// Placeholder syntax differs across the supported drivers, so the
// threshold is inlined rather than bound.
const lowStockQuery = `SELECT COUNT(*) FROM inventory WHERE quantity < 10`

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory`).Scan(&stats.TotalItems); err != nil {
		return Stats{}, fmt.Errorf("count inventory: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT brand) FROM inventory`).Scan(&stats.DistinctBrands); err != nil {
		return Stats{}, fmt.Errorf("count brands: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		lowStockQuery).Scan(&stats.LowStockItems); err != nil {
		return Stats{}, fmt.Errorf("count low stock: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM discounts`).Scan(&stats.DiscountRules); err != nil {
		return Stats{}, fmt.Errorf("count discounts: %w", err)
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx,
		`SELECT AVG(price) FROM inventory`).Scan(&avg); err != nil {
		return Stats{}, fmt.Errorf("average price: %w", err)
	}
	if avg.Valid {
		stats.AveragePrice = avg.Float64
	}
	return stats, nil
}
