// Package fixture seeds a demo inventory so the service can run without
// a live store database (duckdb demo mode, or migrate -seed).
package fixture

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/stockpilot/stockpilot/internal/schema"
)

type InventoryRow struct {
	ID       int
	Brand    string
	Color    string
	Size     string
	Quantity int
	Price    float64
}

type DiscountRow struct {
	ID          int
	ItemRef     int
	DiscountPct float64
	MinQty      int
}

// Inventory is a small deterministic catalog covering the query shapes
// the few-shot examples exercise: brand/color/size lookups, low stock,
// and discounted items.
var Inventory = []InventoryRow{
	{1, "Nike", "Black", "L", 25, 21.99},
	{2, "Nike", "White", "M", 8, 21.99},
	{3, "Nike", "Red", "S", 14, 19.49},
	{4, "Adidas", "Black", "M", 30, 18.99},
	{5, "Adidas", "Blue", "XL", 5, 22.50},
	{6, "Puma", "Green", "L", 12, 16.75},
	{7, "Puma", "Black", "S", 3, 15.99},
	{8, "Levis", "White", "L", 40, 27.00},
	{9, "Levis", "Grey", "M", 18, 27.00},
	{10, "Uniqlo", "Navy", "S", 60, 12.90},
}

var Discounts = []DiscountRow{
	{1, 4, 15.0, 1},
	{2, 5, 20.0, 3},
	{3, 8, 10.0, 2},
	{4, 10, 5.0, 1},
}

// ApplySchema creates the two tables when they do not exist yet.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range splitStatements(schema.DDL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Apply creates the two tables and loads the seed rows. Statements use
// literal values so the same SQL runs on all three drivers.
func Apply(ctx context.Context, db *sql.DB) error {
	if err := ApplySchema(ctx, db); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM discounts`); err != nil {
		return fmt.Errorf("clear discounts: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("clear inventory: %w", err)
	}

	for _, row := range Inventory {
		stmt := fmt.Sprintf(
			`INSERT INTO inventory (id, brand, color, size, quantity, price) VALUES (%d, '%s', '%s', '%s', %d, %.2f)`,
			row.ID, row.Brand, row.Color, row.Size, row.Quantity, row.Price,
		)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed inventory row %d: %w", row.ID, err)
		}
	}
	for _, row := range Discounts {
		stmt := fmt.Sprintf(
			`INSERT INTO discounts (id, item_ref, discount_pct, min_qty) VALUES (%d, %d, %.2f, %d)`,
			row.ID, row.ItemRef, row.DiscountPct, row.MinQty,
		)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed discount row %d: %w", row.ID, err)
		}
	}
	return nil
}

func splitStatements(ddl string) []string {
	parts := strings.Split(ddl, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			statements = append(statements, trimmed)
		}
	}
	return statements
}
