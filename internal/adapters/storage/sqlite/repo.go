package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hylla/assetdex/internal/app"
	"github.com/hylla/assetdex/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository stores organizations, assets and their relations in sqlite.
type Repository struct {
	db *sql.DB
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a private in-memory database.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// Every pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the schema when missing.
func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS organizations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			FOREIGN KEY(organization_id) REFERENCES organizations(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY(organization_id) REFERENCES organizations(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS locations (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY(organization_id) REFERENCES organizations(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS kits (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY(organization_id) REFERENCES organizations(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			profile_picture TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS team_members (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL,
			user_id TEXT,
			FOREIGN KEY(organization_id) REFERENCES organizations(id) ON DELETE CASCADE,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE SET NULL
		);`,
		`CREATE TABLE IF NOT EXISTS custom_fields (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			name TEXT NOT NULL,
			help_text TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			options_json TEXT NOT NULL DEFAULT '[]',
			active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			UNIQUE(organization_id, name),
			FOREIGN KEY(organization_id) REFERENCES organizations(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS assets (
			id TEXT PRIMARY KEY,
			organization_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			qr_id TEXT NOT NULL,
			status TEXT NOT NULL,
			valuation REAL,
			available_to_book INTEGER NOT NULL DEFAULT 0,
			main_image TEXT NOT NULL DEFAULT '',
			main_image_expiration TEXT,
			thumbnail_image TEXT NOT NULL DEFAULT '',
			category_id TEXT,
			location_id TEXT,
			kit_id TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY(organization_id) REFERENCES organizations(id) ON DELETE CASCADE,
			FOREIGN KEY(category_id) REFERENCES categories(id) ON DELETE SET NULL,
			FOREIGN KEY(location_id) REFERENCES locations(id) ON DELETE SET NULL,
			FOREIGN KEY(kit_id) REFERENCES kits(id) ON DELETE SET NULL
		);`,
		`CREATE TABLE IF NOT EXISTS asset_tags (
			asset_id TEXT NOT NULL,
			tag_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY(asset_id, tag_id),
			FOREIGN KEY(asset_id) REFERENCES assets(id) ON DELETE CASCADE,
			FOREIGN KEY(tag_id) REFERENCES tags(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS custodies (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL UNIQUE,
			team_member_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY(asset_id) REFERENCES assets(id) ON DELETE CASCADE,
			FOREIGN KEY(team_member_id) REFERENCES team_members(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			name TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			alert_at TEXT NOT NULL,
			FOREIGN KEY(asset_id) REFERENCES assets(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS custom_field_values (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			custom_field_id TEXT NOT NULL,
			value_json TEXT NOT NULL,
			UNIQUE(asset_id, custom_field_id),
			FOREIGN KEY(asset_id) REFERENCES assets(id) ON DELETE CASCADE,
			FOREIGN KEY(custom_field_id) REFERENCES custom_fields(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_assets_org_created ON assets(organization_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_asset ON reminders(asset_id);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// CreateOrganization inserts an organization.
func (r *Repository) CreateOrganization(ctx context.Context, org domain.Organization) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organizations(id, name, currency, created_at)
		VALUES (?, ?, ?, ?)
	`, org.ID, org.Name, org.Currency, ts(org.CreatedAt))
	return err
}

// GetOrganization returns one organization.
func (r *Repository) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, currency, created_at
		FROM organizations
		WHERE id = ?
	`, id)
	return scanOrganization(row)
}

// ListOrganizations lists organizations oldest first.
func (r *Repository) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, currency, created_at
		FROM organizations
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, org)
	}
	return out, rows.Err()
}

// CreateCategory inserts a category.
func (r *Repository) CreateCategory(ctx context.Context, orgID string, c domain.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories(id, organization_id, name, color) VALUES (?, ?, ?, ?)
	`, c.ID, orgID, c.Name, c.Color)
	return err
}

// CreateTag inserts a tag.
func (r *Repository) CreateTag(ctx context.Context, orgID string, t domain.Tag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags(id, organization_id, name) VALUES (?, ?, ?)
	`, t.ID, orgID, t.Name)
	return err
}

// CreateLocation inserts a location.
func (r *Repository) CreateLocation(ctx context.Context, orgID string, l domain.Location) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO locations(id, organization_id, name) VALUES (?, ?, ?)
	`, l.ID, orgID, l.Name)
	return err
}

// CreateKit inserts a kit.
func (r *Repository) CreateKit(ctx context.Context, orgID string, k domain.Kit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kits(id, organization_id, name) VALUES (?, ?, ?)
	`, k.ID, orgID, k.Name)
	return err
}

// CreateTeamMember inserts a team member and its linked user, if any.
func (r *Repository) CreateTeamMember(ctx context.Context, orgID string, m domain.TeamMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var userID any
	if m.User != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users(id, first_name, last_name, profile_picture) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name, profile_picture = excluded.profile_picture
		`, m.User.ID, m.User.FirstName, m.User.LastName, m.User.ProfilePicture); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		userID = m.User.ID
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO team_members(id, organization_id, name, user_id) VALUES (?, ?, ?, ?)
	`, m.ID, orgID, m.Name, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateCustomField inserts a custom field definition.
func (r *Repository) CreateCustomField(ctx context.Context, f domain.CustomField) error {
	optionsJSON, err := json.Marshal(f.Options)
	if err != nil {
		return fmt.Errorf("encode custom field options: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO custom_fields(id, organization_id, name, help_text, type, options_json, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.OrganizationID, f.Name, f.HelpText, string(f.Type), string(optionsJSON), boolInt(f.Active), ts(f.CreatedAt))
	return err
}

// ListCustomFields lists an organization's custom fields in creation order.
func (r *Repository) ListCustomFields(ctx context.Context, orgID string, includeInactive bool) ([]domain.CustomField, error) {
	query := `
		SELECT id, organization_id, name, help_text, type, options_json, active, created_at
		FROM custom_fields
		WHERE organization_id = ?
	`
	if !includeInactive {
		query += ` AND active = 1`
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.CustomField{}
	for rows.Next() {
		var (
			f          domain.CustomField
			fieldType  string
			optionsRaw string
			active     int
			createdRaw string
		)
		if err := rows.Scan(&f.ID, &f.OrganizationID, &f.Name, &f.HelpText, &fieldType, &optionsRaw, &active, &createdRaw); err != nil {
			return nil, err
		}
		f.Type = domain.CustomFieldType(fieldType)
		f.Active = active != 0
		f.CreatedAt = parseTS(createdRaw)
		if err := json.Unmarshal([]byte(optionsRaw), &f.Options); err != nil {
			return nil, fmt.Errorf("decode options_json: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateAsset inserts an asset with its tag links and custom field values.
func (r *Repository) CreateAsset(ctx context.Context, a domain.Asset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	categoryID, locationID, kitID := assetRelationIDs(a)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO assets(
			id, organization_id, title, description, qr_id, status, valuation, available_to_book,
			main_image, main_image_expiration, thumbnail_image, category_id, location_id, kit_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.OrganizationID, a.Title, a.Description, a.QRID, string(a.Status), nullableFloat(a.Valuation), boolInt(a.AvailableToBook),
		a.MainImage, nullableTS(a.MainImageExpiration), a.ThumbnailImage, categoryID, locationID, kitID,
		ts(a.CreatedAt), ts(a.UpdatedAt),
	); err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	for i, tag := range a.Tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO asset_tags(asset_id, tag_id, position) VALUES (?, ?, ?)
		`, a.ID, tag.ID, i); err != nil {
			return fmt.Errorf("insert asset tag: %w", err)
		}
	}
	for _, v := range a.CustomFields {
		valueJSON, err := json.Marshal(v.Value)
		if err != nil {
			return fmt.Errorf("encode custom field value: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO custom_field_values(id, asset_id, custom_field_id, value_json) VALUES (?, ?, ?, ?)
		`, v.ID, a.ID, v.CustomField.ID, string(valueJSON)); err != nil {
			return fmt.Errorf("insert custom field value: %w", err)
		}
	}
	return tx.Commit()
}

// AssignCustody records (or replaces) the custodian of an asset.
func (r *Repository) AssignCustody(ctx context.Context, c domain.Custody) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO custodies(id, asset_id, team_member_id, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(asset_id) DO UPDATE SET id = excluded.id, team_member_id = excluded.team_member_id, created_at = excluded.created_at
	`, c.ID, c.AssetID, c.Custodian.ID, ts(c.CreatedAt))
	return err
}

// CreateReminder inserts a reminder.
func (r *Repository) CreateReminder(ctx context.Context, rem domain.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders(id, asset_id, name, message, alert_at) VALUES (?, ?, ?, ?, ?)
	`, rem.ID, rem.AssetID, rem.Name, rem.Message, ts(rem.AlertAt))
	return err
}

// ListIndexAssets returns the organization's assets, newest first, with every
// relation the index renders.
func (r *Repository) ListIndexAssets(ctx context.Context, orgID string, now time.Time) ([]domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a.id, a.organization_id, a.title, a.description, a.qr_id, a.status, a.valuation, a.available_to_book,
			a.main_image, a.main_image_expiration, a.thumbnail_image, a.created_at, a.updated_at,
			c.id, c.name, c.color,
			l.id, l.name,
			k.id, k.name,
			cu.id, cu.created_at, tm.id, tm.name,
			u.id, u.first_name, u.last_name, u.profile_picture
		FROM assets a
		LEFT JOIN categories c ON c.id = a.category_id
		LEFT JOIN locations l ON l.id = a.location_id
		LEFT JOIN kits k ON k.id = a.kit_id
		LEFT JOIN custodies cu ON cu.asset_id = a.id
		LEFT JOIN team_members tm ON tm.id = cu.team_member_id
		LEFT JOIN users u ON u.id = tm.user_id
		WHERE a.organization_id = ?
		ORDER BY a.created_at DESC, a.id ASC
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Asset{}
	index := map[string]int{}
	for rows.Next() {
		asset, err := scanIndexAsset(rows)
		if err != nil {
			return nil, err
		}
		index[asset.ID] = len(out)
		out = append(out, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, orgID, out, index); err != nil {
		return nil, err
	}
	if err := r.attachCustomFields(ctx, orgID, out, index); err != nil {
		return nil, err
	}
	if err := r.attachUpcomingReminders(ctx, orgID, now, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) attachTags(ctx context.Context, orgID string, assets []domain.Asset, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT at.asset_id, t.id, t.name
		FROM asset_tags at
		JOIN tags t ON t.id = at.tag_id
		JOIN assets a ON a.id = at.asset_id
		WHERE a.organization_id = ?
		ORDER BY at.asset_id, at.position
	`, orgID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var assetID string
		var tag domain.Tag
		if err := rows.Scan(&assetID, &tag.ID, &tag.Name); err != nil {
			return err
		}
		if i, ok := index[assetID]; ok {
			assets[i].Tags = append(assets[i].Tags, tag)
		}
	}
	return rows.Err()
}

func (r *Repository) attachCustomFields(ctx context.Context, orgID string, assets []domain.Asset, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.asset_id, v.id, v.value_json,
			f.id, f.organization_id, f.name, f.help_text, f.type, f.options_json, f.active, f.created_at
		FROM custom_field_values v
		JOIN custom_fields f ON f.id = v.custom_field_id
		JOIN assets a ON a.id = v.asset_id
		WHERE a.organization_id = ? AND f.active = 1
		ORDER BY v.asset_id, f.created_at, f.rowid
	`, orgID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			assetID    string
			v          domain.CustomFieldValue
			valueRaw   string
			fieldType  string
			optionsRaw string
			active     int
			createdRaw string
		)
		if err := rows.Scan(
			&assetID, &v.ID, &valueRaw,
			&v.CustomField.ID, &v.CustomField.OrganizationID, &v.CustomField.Name, &v.CustomField.HelpText,
			&fieldType, &optionsRaw, &active, &createdRaw,
		); err != nil {
			return err
		}
		v.CustomField.Type = domain.CustomFieldType(fieldType)
		v.CustomField.Active = active != 0
		v.CustomField.CreatedAt = parseTS(createdRaw)
		if err := json.Unmarshal([]byte(optionsRaw), &v.CustomField.Options); err != nil {
			return fmt.Errorf("decode options_json: %w", err)
		}
		value, err := decodeFieldValue(valueRaw)
		if err != nil {
			return err
		}
		v.Value = value
		if i, ok := index[assetID]; ok {
			assets[i].CustomFields = append(assets[i].CustomFields, v)
		}
	}
	return rows.Err()
}

func (r *Repository) attachUpcomingReminders(ctx context.Context, orgID string, now time.Time, assets []domain.Asset, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rem.id, rem.asset_id, rem.name, rem.message, rem.alert_at
		FROM reminders rem
		JOIN assets a ON a.id = rem.asset_id
		WHERE a.organization_id = ?
	`, orgID)
	if err != nil {
		return err
	}
	defer rows.Close()
	now = now.UTC()
	for rows.Next() {
		var rem domain.Reminder
		var alertRaw string
		if err := rows.Scan(&rem.ID, &rem.AssetID, &rem.Name, &rem.Message, &alertRaw); err != nil {
			return err
		}
		rem.AlertAt = parseTS(alertRaw)
		if rem.AlertAt.Before(now) {
			continue
		}
		i, ok := index[rem.AssetID]
		if !ok {
			continue
		}
		if current := assets[i].UpcomingReminder; current == nil || rem.AlertAt.Before(current.AlertAt) {
			assets[i].UpcomingReminder = &rem
		}
	}
	return rows.Err()
}

// scanner matches *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrganization(s scanner) (domain.Organization, error) {
	var (
		org        domain.Organization
		createdRaw string
	)
	if err := s.Scan(&org.ID, &org.Name, &org.Currency, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Organization{}, app.ErrNotFound
		}
		return domain.Organization{}, err
	}
	org.CreatedAt = parseTS(createdRaw)
	return org, nil
}

func scanIndexAsset(s scanner) (domain.Asset, error) {
	var (
		a                                 domain.Asset
		status                            string
		valuation                         sql.NullFloat64
		available                         int
		expirationRaw                     sql.NullString
		createdRaw, updatedRaw            string
		catID, catName, catColor          sql.NullString
		locID, locName                    sql.NullString
		kitID, kitName                    sql.NullString
		custodyID, custodyCreated         sql.NullString
		memberID, memberName              sql.NullString
		userID, firstName, lastName, pict sql.NullString
	)
	if err := s.Scan(
		&a.ID, &a.OrganizationID, &a.Title, &a.Description, &a.QRID, &status, &valuation, &available,
		&a.MainImage, &expirationRaw, &a.ThumbnailImage, &createdRaw, &updatedRaw,
		&catID, &catName, &catColor,
		&locID, &locName,
		&kitID, &kitName,
		&custodyID, &custodyCreated, &memberID, &memberName,
		&userID, &firstName, &lastName, &pict,
	); err != nil {
		return domain.Asset{}, err
	}
	a.Status = domain.AssetStatus(status)
	if valuation.Valid {
		v := valuation.Float64
		a.Valuation = &v
	}
	a.AvailableToBook = available != 0
	a.MainImageExpiration = parseNullTS(expirationRaw)
	a.CreatedAt = parseTS(createdRaw)
	a.UpdatedAt = parseTS(updatedRaw)
	if catID.Valid {
		a.Category = &domain.Category{ID: catID.String, Name: catName.String, Color: catColor.String}
	}
	if locID.Valid {
		a.Location = &domain.Location{ID: locID.String, Name: locName.String}
	}
	if kitID.Valid {
		a.Kit = &domain.Kit{ID: kitID.String, Name: kitName.String}
	}
	if custodyID.Valid && memberID.Valid {
		member := domain.TeamMember{ID: memberID.String, Name: memberName.String}
		if userID.Valid {
			member.User = &domain.User{ID: userID.String, FirstName: firstName.String, LastName: lastName.String, ProfilePicture: pict.String}
		}
		a.Custody = &domain.Custody{
			ID:        custodyID.String,
			AssetID:   a.ID,
			Custodian: member,
			CreatedAt: parseTS(custodyCreated.String),
		}
	}
	return a, nil
}

// decodeFieldValue keeps numbers as json.Number so amounts survive exactly.
func decodeFieldValue(raw string) (domain.CustomFieldRaw, error) {
	var value domain.CustomFieldRaw
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return domain.CustomFieldRaw{}, fmt.Errorf("decode value_json: %w", err)
	}
	return value, nil
}

func assetRelationIDs(a domain.Asset) (categoryID, locationID, kitID any) {
	if a.Category != nil {
		categoryID = a.Category.ID
	}
	if a.Location != nil {
		locationID = a.Location.ID
	}
	if a.Kit != nil {
		kitID = a.Kit.ID
	}
	return categoryID, locationID, kitID
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// ts handles ts.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// nullableTS handles nullable ts.
func nullableTS(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTS parses input into a normalized form.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

// parseNullTS parses input into a normalized form.
func parseNullTS(v sql.NullString) *time.Time {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return nil
	}
	ts := parseTS(v.String)
	return &ts
}
