// Package schema holds the static description of the store database that
// is embedded into model prompts. The tables are owned by the store's
// operational systems; this service only reads them.
package schema

const (
	TableInventory = "inventory"
	TableDiscounts = "discounts"
)

// Reference is the textual schema handed to the language model.
const Reference = `Table: inventory
- id (INTEGER, PRIMARY KEY)
- brand (VARCHAR): manufacturer brand name
- color (VARCHAR): item color
- size (VARCHAR): one of XS, S, M, L, XL, XXL
- quantity (INTEGER): units currently in stock
- price (DECIMAL): price per item in dollars

Table: discounts
- id (INTEGER, PRIMARY KEY)
- item_ref (INTEGER): references inventory.id
- discount_pct (DECIMAL): discount percentage off the item price
- min_qty (INTEGER): minimum purchase quantity for the discount to apply`

// DDL creates the two tables. CREATE TABLE IF NOT EXISTS parses on all
// three supported drivers (mysql, postgres, duckdb).
const DDL = `CREATE TABLE IF NOT EXISTS inventory (
    id       INTEGER PRIMARY KEY,
    brand    VARCHAR(64)  NOT NULL,
    color    VARCHAR(32)  NOT NULL,
    size     VARCHAR(8)   NOT NULL,
    quantity INTEGER      NOT NULL,
    price    DECIMAL(8,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS discounts (
    id           INTEGER PRIMARY KEY,
    item_ref     INTEGER      NOT NULL REFERENCES inventory(id),
    discount_pct DECIMAL(5,2) NOT NULL,
    min_qty      INTEGER      NOT NULL
);`

// FewShot pairs a question with the SQL the model should produce for it.
type FewShot struct {
	Question string
	SQL      string
}

// Examples are embedded into every translation prompt. They demonstrate
// the discount join, LOWER() comparisons, and aggregate shapes.
var Examples = []FewShot{
	{
		Question: "Do we have any black t-shirts in large?",
		SQL: "SELECT brand, color, size, quantity, price FROM inventory " +
			"WHERE LOWER(color) = 'black' AND LOWER(size) = 'l'",
	},
	{
		Question: "What's the cheapest shirt we sell?",
		SQL: "SELECT brand, color, size, price FROM inventory " +
			"ORDER BY price ASC LIMIT 1",
	},
	{
		Question: "Any discounts on Adidas?",
		SQL: "SELECT i.brand, i.color, i.size, i.price, d.discount_pct, d.min_qty " +
			"FROM inventory i JOIN discounts d ON d.item_ref = i.id " +
			"WHERE LOWER(i.brand) = 'adidas'",
	},
	{
		Question: "How many units do we have per brand?",
		SQL: "SELECT brand, SUM(quantity) AS total_units FROM inventory " +
			"GROUP BY brand ORDER BY total_units DESC",
	},
}
