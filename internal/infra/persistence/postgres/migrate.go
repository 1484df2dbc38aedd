package postgres

import (
	"context"
	"fmt"
	"regexp"

	"canteen/internal/errors"
	"canteen/internal/infra/persistence/model"

	"gorm.io/gorm"
)

var channelNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// changeTriggers lists, per table, the columns copied into the notify payload.
var changeTriggers = []struct {
	table   string
	columns []string
}{
	{table: "orders", columns: []string{"id", "student_id", "status", "order_number"}},
	{table: "order_items", columns: []string{"id", "order_id"}},
	{table: "notifications", columns: []string{"id", "user_id", "is_read"}},
}

const changeNotifyFunction = `
CREATE OR REPLACE FUNCTION canteen_notify_change() RETURNS trigger AS $$
DECLARE
	rec  jsonb;
	cols jsonb := '{}'::jsonb;
	col  text;
BEGIN
	IF TG_OP = 'DELETE' THEN
		rec := to_jsonb(OLD);
	ELSE
		rec := to_jsonb(NEW);
	END IF;
	FOREACH col IN ARRAY TG_ARGV LOOP
		cols := cols || jsonb_build_object(col, rec ->> col);
	END LOOP;
	PERFORM pg_notify(%s, jsonb_build_object(
		'id', gen_random_uuid(),
		'table', TG_TABLE_NAME,
		'type', TG_OP,
		'columns', cols,
		'record', rec,
		'committed_at', now()
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`

// MigrateOptions controls schema migration.
type MigrateOptions struct {
	// ChangeTriggers installs pg_notify triggers for the realtime listener.
	ChangeTriggers bool
	Channel        string
}

// Migrate creates or updates the schema, and optionally the change-notify triggers.
func Migrate(ctx context.Context, db *gorm.DB, opts MigrateOptions) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to auto-migrate schema")
	}

	if !opts.ChangeTriggers {
		return nil
	}

	if !channelNamePattern.MatchString(opts.Channel) {
		return errors.Errorf("invalid notify channel name %q", opts.Channel)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf(changeNotifyFunction, quoteLiteral(opts.Channel))).Error; err != nil {
			return errors.Wrap(err, "failed to create change notify function")
		}

		for _, trigger := range changeTriggers {
			name := trigger.table + "_notify_change"
			if err := tx.Exec(fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s", name, trigger.table)).Error; err != nil {
				return errors.Wrapf(err, "failed to drop trigger %s", name)
			}

			args := ""
			for i, column := range trigger.columns {
				if i > 0 {
					args += ", "
				}
				args += quoteLiteral(column)
			}

			stmt := fmt.Sprintf(
				"CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH ROW EXECUTE FUNCTION canteen_notify_change(%s)",
				name, trigger.table, args,
			)
			if err := tx.Exec(stmt).Error; err != nil {
				return errors.Wrapf(err, "failed to create trigger %s", name)
			}
		}

		return nil
	})
}

// quoteLiteral quotes identifiers already checked against channelNamePattern
// or taken from changeTriggers.
func quoteLiteral(s string) string {
	return "'" + s + "'"
}
