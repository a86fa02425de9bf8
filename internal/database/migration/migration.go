package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type migrationStep struct {
	Name    string
	SQL     string
	Indexes []tableIndex
}

// tableIndex is declared inline on MySQL, which has no CREATE INDEX IF NOT
// EXISTS, and as a separate guarded statement on Postgres.
type tableIndex struct {
	Name    string
	Table   string
	Columns string
}

// sentinelTable is created by the last step, so an interrupted run is
// retried from the start on the next boot.
const sentinelTable = "schema_migrations"

// {{datetime}} is swapped per driver: DATETIME on MySQL, TIMESTAMP on Postgres.
var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  name       VARCHAR(140) PRIMARY KEY,
  full_name  VARCHAR(140) NOT NULL DEFAULT '',
  api_token  VARCHAR(140) NOT NULL UNIQUE,
  enabled    SMALLINT     NOT NULL DEFAULT 1
)`,
	},
	{
		Name: "create_table_pos_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS pos_profiles (
  name               VARCHAR(140) PRIMARY KEY,
  company            VARCHAR(140) NOT NULL,
  warehouse          VARCHAR(140) NOT NULL DEFAULT '',
  cost_center        VARCHAR(140) NOT NULL DEFAULT '',
  selling_price_list VARCHAR(140) NOT NULL DEFAULT '',
  disabled           SMALLINT     NOT NULL DEFAULT 0
)`,
	},
	{
		Name: "create_table_pos_profile_users",
		SQL: `CREATE TABLE IF NOT EXISTS pos_profile_users (
  parent    VARCHAR(140) NOT NULL,
  user_name VARCHAR(140) NOT NULL,
  PRIMARY KEY (parent, user_name)
)`,
	},
	{
		Name: "create_table_pos_profile_payments",
		SQL: `CREATE TABLE IF NOT EXISTS pos_profile_payments (
  parent          VARCHAR(140) NOT NULL,
  idx             INT          NOT NULL,
  mode_of_payment VARCHAR(140) NOT NULL,
  is_default      SMALLINT     NOT NULL DEFAULT 0,
  default_account VARCHAR(140),
  PRIMARY KEY (parent, idx)
)`,
	},
	{
		Name: "create_table_mode_of_payment_accounts",
		SQL: `CREATE TABLE IF NOT EXISTS mode_of_payment_accounts (
  parent          VARCHAR(140) NOT NULL,
  company         VARCHAR(140) NOT NULL,
  default_account VARCHAR(140) NOT NULL,
  PRIMARY KEY (parent, company)
)`,
	},
	{
		Name: "create_table_pos_opening_entries",
		SQL: `CREATE TABLE IF NOT EXISTS pos_opening_entries (
  name              VARCHAR(140) PRIMARY KEY,
  pos_profile       VARCHAR(140) NOT NULL,
  user_name         VARCHAR(140) NOT NULL,
  company           VARCHAR(140) NOT NULL,
  period_start_date {{datetime}} NOT NULL,
  status            VARCHAR(20)  NOT NULL DEFAULT 'Open',
  pos_closing_entry VARCHAR(140),
  docstatus         SMALLINT     NOT NULL DEFAULT 0
)`,
		Indexes: []tableIndex{
			{Name: "idx_pos_opening_entries_user", Table: "pos_opening_entries", Columns: "pos_profile, user_name, status"},
		},
	},
	{
		Name: "create_table_pos_opening_balance_details",
		SQL: `CREATE TABLE IF NOT EXISTS pos_opening_balance_details (
  parent          VARCHAR(140)   NOT NULL,
  idx             INT            NOT NULL,
  mode_of_payment VARCHAR(140)   NOT NULL,
  opening_amount  DECIMAL(18, 2) NOT NULL DEFAULT 0,
  PRIMARY KEY (parent, idx)
)`,
	},
	{
		Name: "create_table_pos_closing_entries",
		SQL: `CREATE TABLE IF NOT EXISTS pos_closing_entries (
  name              VARCHAR(140)   PRIMARY KEY,
  pos_opening_entry VARCHAR(140)   NOT NULL UNIQUE,
  pos_profile       VARCHAR(140)   NOT NULL,
  user_name         VARCHAR(140)   NOT NULL,
  company           VARCHAR(140)   NOT NULL,
  period_start_date {{datetime}}   NOT NULL,
  period_end_date   {{datetime}}   NOT NULL,
  grand_total       DECIMAL(18, 2) NOT NULL DEFAULT 0,
  net_total         DECIMAL(18, 2) NOT NULL DEFAULT 0,
  total_quantity    DECIMAL(18, 3) NOT NULL DEFAULT 0,
  docstatus         SMALLINT       NOT NULL DEFAULT 0
)`,
	},
	{
		Name: "create_table_pos_closing_transactions",
		SQL: `CREATE TABLE IF NOT EXISTS pos_closing_transactions (
  parent       VARCHAR(140)   NOT NULL,
  idx          INT            NOT NULL,
  pos_invoice  VARCHAR(140)   NOT NULL,
  grand_total  DECIMAL(18, 2) NOT NULL DEFAULT 0,
  posting_date DATE           NOT NULL,
  PRIMARY KEY (parent, idx)
)`,
	},
	{
		Name: "create_table_pos_closing_reconciliations",
		SQL: `CREATE TABLE IF NOT EXISTS pos_closing_reconciliations (
  parent          VARCHAR(140)   NOT NULL,
  idx             INT            NOT NULL,
  mode_of_payment VARCHAR(140)   NOT NULL,
  opening_amount  DECIMAL(18, 2) NOT NULL DEFAULT 0,
  expected_amount DECIMAL(18, 2) NOT NULL DEFAULT 0,
  closing_amount  DECIMAL(18, 2) NOT NULL DEFAULT 0,
  PRIMARY KEY (parent, idx)
)`,
	},
	{
		Name: "create_table_items",
		SQL: `CREATE TABLE IF NOT EXISTS items (
  item_code     VARCHAR(140)   PRIMARY KEY,
  item_name     VARCHAR(140)   NOT NULL DEFAULT '',
  image         TEXT,
  standard_rate DECIMAL(18, 2) NOT NULL DEFAULT 0,
  disabled      SMALLINT       NOT NULL DEFAULT 0,
  is_sales_item SMALLINT       NOT NULL DEFAULT 1
)`,
	},
	{
		Name: "create_table_item_barcodes",
		SQL: `CREATE TABLE IF NOT EXISTS item_barcodes (
  barcode VARCHAR(140) PRIMARY KEY,
  parent  VARCHAR(140) NOT NULL
)`,
	},
	{
		Name: "create_table_item_prices",
		SQL: `CREATE TABLE IF NOT EXISTS item_prices (
  item_code       VARCHAR(140)   NOT NULL,
  price_list      VARCHAR(140)   NOT NULL,
  price_list_rate DECIMAL(18, 2) NOT NULL DEFAULT 0,
  PRIMARY KEY (item_code, price_list)
)`,
	},
	{
		Name: "create_table_restaurant_tables",
		SQL: `CREATE TABLE IF NOT EXISTS restaurant_tables (
  name    VARCHAR(140) PRIMARY KEY,
  company VARCHAR(140) NOT NULL,
  status  VARCHAR(20)  NOT NULL DEFAULT 'Available'
)`,
	},
	{
		Name: "create_table_customers",
		SQL: `CREATE TABLE IF NOT EXISTS customers (
  name           VARCHAR(140) PRIMARY KEY,
  customer_name  VARCHAR(140) NOT NULL,
  customer_group VARCHAR(140) NOT NULL DEFAULT '',
  territory      VARCHAR(140) NOT NULL DEFAULT ''
)`,
	},
	{
		Name: "create_table_kitchen_order_tickets",
		SQL: `CREATE TABLE IF NOT EXISTS kitchen_order_tickets (
  name          VARCHAR(140) PRIMARY KEY,
  table_name    VARCHAR(140) NOT NULL,
  company       VARCHAR(140) NOT NULL,
  customer_name VARCHAR(140),
  order_time    {{datetime}} NOT NULL,
  docstatus     SMALLINT     NOT NULL DEFAULT 0
)`,
		Indexes: []tableIndex{
			{Name: "idx_kitchen_order_tickets_table", Table: "kitchen_order_tickets", Columns: "table_name, company, docstatus"},
		},
	},
	{
		Name: "create_table_kot_items",
		SQL: `CREATE TABLE IF NOT EXISTS kot_items (
  parent              VARCHAR(140)   NOT NULL,
  idx                 INT            NOT NULL,
  item_code           VARCHAR(140)   NOT NULL,
  item_name           VARCHAR(140),
  qty                 DECIMAL(18, 3) NOT NULL DEFAULT 0,
  rate                DECIMAL(18, 2) NOT NULL DEFAULT 0,
  discount_percentage DECIMAL(6, 3)  NOT NULL DEFAULT 0,
  description         TEXT,
  PRIMARY KEY (parent, idx)
)`,
	},
	{
		Name: "create_table_pos_invoices",
		SQL: `CREATE TABLE IF NOT EXISTS pos_invoices (
  name              VARCHAR(140)   PRIMARY KEY,
  pos_opening_entry VARCHAR(140)   NOT NULL,
  pos_profile       VARCHAR(140)   NOT NULL,
  customer          VARCHAR(140)   NOT NULL,
  company           VARCHAR(140)   NOT NULL,
  restaurant_table  VARCHAR(140),
  posting_date      DATE           NOT NULL,
  update_stock      SMALLINT       NOT NULL DEFAULT 1,
  total_qty         DECIMAL(18, 3) NOT NULL DEFAULT 0,
  net_total         DECIMAL(18, 2) NOT NULL DEFAULT 0,
  grand_total       DECIMAL(18, 2) NOT NULL DEFAULT 0,
  paid_amount       DECIMAL(18, 2) NOT NULL DEFAULT 0,
  change_amount     DECIMAL(18, 2) NOT NULL DEFAULT 0,
  docstatus         SMALLINT       NOT NULL DEFAULT 0
)`,
		Indexes: []tableIndex{
			{Name: "idx_pos_invoices_opening", Table: "pos_invoices", Columns: "pos_opening_entry, docstatus"},
		},
	},
	{
		Name: "create_table_pos_invoice_items",
		SQL: `CREATE TABLE IF NOT EXISTS pos_invoice_items (
  parent              VARCHAR(140)   NOT NULL,
  idx                 INT            NOT NULL,
  item_code           VARCHAR(140)   NOT NULL,
  item_name           VARCHAR(140),
  qty                 DECIMAL(18, 3) NOT NULL DEFAULT 0,
  price_list_rate     DECIMAL(18, 2) NOT NULL DEFAULT 0,
  discount_percentage DECIMAL(6, 3)  NOT NULL DEFAULT 0,
  rate                DECIMAL(18, 2) NOT NULL DEFAULT 0,
  amount              DECIMAL(18, 2) NOT NULL DEFAULT 0,
  warehouse           VARCHAR(140),
  cost_center         VARCHAR(140),
  PRIMARY KEY (parent, idx)
)`,
	},
	{
		Name: "create_table_pos_invoice_payments",
		SQL: `CREATE TABLE IF NOT EXISTS pos_invoice_payments (
  parent          VARCHAR(140)   NOT NULL,
  idx             INT            NOT NULL,
  mode_of_payment VARCHAR(140)   NOT NULL,
  account         VARCHAR(140),
  amount          DECIMAL(18, 2) NOT NULL DEFAULT 0,
  PRIMARY KEY (parent, idx)
)`,
	},
	{
		Name: "create_table_naming_series",
		SQL: `CREATE TABLE IF NOT EXISTS naming_series (
  name    VARCHAR(140) PRIMARY KEY,
  current INT          NOT NULL DEFAULT 0
)`,
	},
	{
		Name: "create_table_schema_migrations",
		SQL: `CREATE TABLE IF NOT EXISTS schema_migrations (
  version    INT          PRIMARY KEY,
  applied_at {{datetime}} NOT NULL
)`,
	},
}

var sentinelQueries = map[string]string{
	"mysql": `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = '` + sentinelTable + `'`,
	"pgx":   `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = '` + sentinelTable + `'`,
}

func isPostgres(driver string) bool {
	return driver == "pgx" || driver == "postgres"
}

// renderStep returns the statements for step on driver. Every statement is
// safe to run against a schema that already has it.
func renderStep(driver string, step migrationStep) []string {
	datetime := "DATETIME"
	if isPostgres(driver) {
		datetime = "TIMESTAMP"
	}
	create := strings.ReplaceAll(step.SQL, "{{datetime}}", datetime)
	if len(step.Indexes) == 0 {
		return []string{create}
	}

	if isPostgres(driver) {
		stmts := []string{create}
		for _, idx := range step.Indexes {
			stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.Name, idx.Table, idx.Columns))
		}
		return stmts
	}

	var b strings.Builder
	b.WriteString(strings.TrimSuffix(create, "\n)"))
	for _, idx := range step.Indexes {
		fmt.Fprintf(&b, ",\n  INDEX %s (%s)", idx.Name, idx.Columns)
	}
	b.WriteString("\n)")
	return []string{b.String()}
}

// EnsureMigrated runs every step until the schema_migrations sentinel table
// exists. Steps are idempotent, so a run that failed part way is simply
// repeated.
func EnsureMigrated(ctx context.Context, db *sqlx.DB, log *zap.Logger) error {
	start := time.Now()
	driver := db.DriverName()
	log = log.With(zap.String("component", "database"), zap.String("driver", driver))

	log.Info("db_migration_check")

	sentinel, ok := sentinelQueries[driver]
	if !ok {
		sentinel = sentinelQueries["mysql"]
	}

	var count int
	if err := db.QueryRowContext(ctx, sentinel).Scan(&count); err != nil {
		log.Error("db_migration_failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if count > 0 {
		log.Info("db_migration_skip", zap.String("msg", "schema already exists"), zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		for _, stmt := range renderStep(driver, step) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				log.Error("db_migration_failed",
					zap.String("migration_step", step.Name),
					zap.Error(err),
					zap.Duration("elapsed", time.Since(start)),
				)
				return fmt.Errorf("migration step %s failed: %w", step.Name, err)
			}
		}
		log.Info("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Duration("step_elapsed", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success", zap.Int("steps", len(steps)), zap.Duration("elapsed", time.Since(start)))
	return nil
}
