package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trovekart/storefront-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInitialSchemaContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_initial_schema.sql")

	checks := []string{
		"CREATE TABLE cart_lines",
		"CONSTRAINT idx_cart_lines_user_product UNIQUE (user_id, product_id)",
		"CHECK (quantity >= 1)",
		"CREATE TABLE orders",
		"delivery_address jsonb NOT NULL",
		"status order_status NOT NULL DEFAULT 'pending'",
		"phone text NOT NULL UNIQUE",
		"DROP TABLE IF EXISTS orders",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOutboxMigrationContainsPartialIndex(t *testing.T) {
	content := readMigration(t, "*_outbox_events.sql")

	checks := []string{
		"CREATE TABLE outbox_events",
		"WHERE published_at IS NULL",
		"CREATE UNIQUE INDEX ux_outbox_events_event_aggregate",
		"WHERE event_type = 'order_created'",
		"DROP TABLE IF EXISTS outbox_events",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
