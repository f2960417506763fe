package sqlguard

import (
	"errors"
	"testing"
)

func TestCheckAllowsSelectAndWith(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SELECT * FROM inventory", "SELECT * FROM inventory"},
		{"  select brand from inventory;  ", "select brand from inventory"},
		{"WITH cheap AS (SELECT * FROM inventory WHERE price < 10) SELECT * FROM cheap", "WITH cheap AS (SELECT * FROM inventory WHERE price < 10) SELECT * FROM cheap"},
		{"WITH a AS (SELECT id FROM inventory), b AS (SELECT id FROM discounts) SELECT * FROM a JOIN b ON a.id = b.id", "WITH a AS (SELECT id FROM inventory), b AS (SELECT id FROM discounts) SELECT * FROM a JOIN b ON a.id = b.id"},
		{"SELECT 1;;", "SELECT 1"},
	}
	for _, tc := range cases {
		got, err := Check(tc.in)
		if err != nil {
			t.Fatalf("Check(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Check(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCheckRejectsWriteStatements(t *testing.T) {
	cases := []string{
		"INSERT INTO inventory VALUES (1, 'nike', 'black', 'L', 5, 19.99)",
		"UPDATE inventory SET quantity = 0",
		"DELETE FROM discounts",
		"DROP TABLE inventory",
		"TRUNCATE inventory",
		"GRANT ALL ON inventory TO intern",
	}
	for _, sql := range cases {
		_, err := Check(sql)
		var notAllowed *NotAllowedError
		if !errors.As(err, &notAllowed) {
			t.Fatalf("Check(%q) error = %v, want NotAllowedError", sql, err)
		}
	}
}

func TestCheckRejectsDataModifyingCTE(t *testing.T) {
	cases := []struct {
		sql     string
		keyword string
	}{
		{"WITH doomed AS (SELECT id FROM inventory) DELETE FROM inventory WHERE id IN (SELECT id FROM doomed)", "DELETE"},
		{"WITH src AS (SELECT * FROM discounts) INSERT INTO inventory SELECT * FROM src", "INSERT"},
		{"WITH target AS (SELECT id FROM inventory) UPDATE inventory SET quantity = 0 WHERE id IN (SELECT id FROM target)", "UPDATE"},
		{"WITH src AS (SELECT * FROM discounts) MERGE INTO inventory USING src ON (inventory.id = src.item_ref) WHEN MATCHED THEN DELETE", "MERGE"},
	}
	for _, tc := range cases {
		_, err := Check(tc.sql)
		var notAllowed *NotAllowedError
		if !errors.As(err, &notAllowed) {
			t.Fatalf("Check(%q) error = %v, want NotAllowedError", tc.sql, err)
		}
		if notAllowed.Keyword != tc.keyword {
			t.Fatalf("Check(%q) keyword = %q, want %q", tc.sql, notAllowed.Keyword, tc.keyword)
		}
	}
}

func TestCheckIgnoresKeywordsInsideStringsAndSubqueries(t *testing.T) {
	cases := []string{
		"SELECT * FROM inventory WHERE brand = 'delete'",
		`WITH cheap AS (SELECT * FROM inventory WHERE brand = 'update me') SELECT * FROM cheap`,
		`WITH names AS (SELECT brand FROM inventory WHERE color = "delete") SELECT * FROM names`,
	}
	for _, sql := range cases {
		if _, err := Check(sql); err != nil {
			t.Fatalf("Check(%q) error = %v, want nil", sql, err)
		}
	}
}

func TestCheckAllowsSemicolonInsideStringLiteral(t *testing.T) {
	sql := "SELECT * FROM inventory WHERE brand = 'a;b'"
	got, err := Check(sql)
	if err != nil {
		t.Fatalf("Check(%q) error = %v", sql, err)
	}
	if got != sql {
		t.Fatalf("Check(%q) = %q", sql, got)
	}
}

func TestCheckRejectsEmpty(t *testing.T) {
	for _, sql := range []string{"", "   ", ";;", " ; "} {
		if _, err := Check(sql); !errors.Is(err, ErrEmptyStatement) {
			t.Fatalf("Check(%q) error = %v, want ErrEmptyStatement", sql, err)
		}
	}
}

func TestCheckRejectsMultipleStatements(t *testing.T) {
	sql := "SELECT 1; DELETE FROM inventory"
	if _, err := Check(sql); !errors.Is(err, ErrMultipleStatement) {
		t.Fatalf("Check(%q) error = %v, want ErrMultipleStatement", sql, err)
	}
}
