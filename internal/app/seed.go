package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hylla/assetdex/internal/domain"
)

// SeedResult reports what SeedDemo wrote.
type SeedResult struct {
	Organization domain.Organization
	Created      bool
	Assets       int
}

// SeedDemo writes a demo organization unless one already exists.
func (s *Service) SeedDemo(ctx context.Context, currency string) (SeedResult, error) {
	orgs, err := s.repo.ListOrganizations(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("list organizations: %w", err)
	}
	if len(orgs) > 0 {
		return SeedResult{Organization: orgs[0]}, nil
	}

	now := s.clock().UTC()
	org, err := domain.NewOrganization(s.idGen(), "Demo workshop", currency, now)
	if err != nil {
		return SeedResult{}, err
	}
	if err := s.repo.CreateOrganization(ctx, org); err != nil {
		return SeedResult{}, fmt.Errorf("create organization: %w", err)
	}

	seed := demoSeed{svc: s, org: org, now: now}
	count, err := seed.run(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	s.logger.Info("seeded demo organization", "org", org.ID, "assets", count)
	return SeedResult{Organization: org, Created: true, Assets: count}, nil
}

type demoSeed struct {
	svc *Service
	org domain.Organization
	now time.Time

	categories map[string]*domain.Category
	tags       map[string]domain.Tag
	locations  map[string]*domain.Location
	kits       map[string]*domain.Kit
	members    map[string]domain.TeamMember
	fields     map[string]domain.CustomField
}

type demoAsset struct {
	title       string
	description string
	status      domain.AssetStatus
	valuation   float64
	bookable    bool
	category    string
	tags        []string
	location    string
	kit         string
	custodian   string
	thumbnail   string
	reminder    *demoReminder
	fields      map[string]string
	ageDays     int
}

type demoReminder struct {
	name    string
	message string
	inDays  int
}

func (d *demoSeed) run(ctx context.Context) (int, error) {
	d.categories = map[string]*domain.Category{}
	for _, c := range [][2]string{{"Power tools", "#f79009"}, {"Laptops", "#2e90fa"}, {"Cameras", "#ee46bc"}} {
		category, err := domain.NewCategory(d.svc.idGen(), c[0], c[1])
		if err != nil {
			return 0, err
		}
		if err := d.svc.repo.CreateCategory(ctx, d.org.ID, category); err != nil {
			return 0, fmt.Errorf("create category: %w", err)
		}
		d.categories[category.Name] = &category
	}

	d.tags = map[string]domain.Tag{}
	for _, name := range []string{"fragile", "loaner", "battery", "studio", "field"} {
		tag := domain.Tag{ID: d.svc.idGen(), Name: name}
		if err := d.svc.repo.CreateTag(ctx, d.org.ID, tag); err != nil {
			return 0, fmt.Errorf("create tag: %w", err)
		}
		d.tags[name] = tag
	}

	d.locations = map[string]*domain.Location{}
	for _, name := range []string{"Main warehouse", "Studio B"} {
		location := domain.Location{ID: d.svc.idGen(), Name: name}
		if err := d.svc.repo.CreateLocation(ctx, d.org.ID, location); err != nil {
			return 0, fmt.Errorf("create location: %w", err)
		}
		d.locations[name] = &location
	}

	d.kits = map[string]*domain.Kit{}
	kit := domain.Kit{ID: d.svc.idGen(), Name: "Interview kit"}
	if err := d.svc.repo.CreateKit(ctx, d.org.ID, kit); err != nil {
		return 0, fmt.Errorf("create kit: %w", err)
	}
	d.kits[kit.Name] = &kit

	d.members = map[string]domain.TeamMember{}
	for _, m := range []domain.TeamMember{
		{ID: d.svc.idGen(), Name: "Front desk"},
		{ID: d.svc.idGen(), Name: "jordan", User: &domain.User{ID: d.svc.idGen(), FirstName: "Jordan", LastName: "Reyes"}},
	} {
		if err := d.svc.repo.CreateTeamMember(ctx, d.org.ID, m); err != nil {
			return 0, fmt.Errorf("create team member: %w", err)
		}
		d.members[m.Name] = m
	}

	d.fields = map[string]domain.CustomField{}
	for _, in := range []domain.CustomFieldInput{
		{Name: "Serial number", Type: domain.CustomFieldTypeText},
		{Name: "Manual", Type: domain.CustomFieldTypeText, HelpText: "Link to the vendor manual"},
		{Name: "Maintenance notes", Type: domain.CustomFieldTypeMultilineText},
		{Name: "Replacement cost", Type: domain.CustomFieldTypeAmount},
		{Name: "Warranty until", Type: domain.CustomFieldTypeDate},
		{Name: "Insured", Type: domain.CustomFieldTypeBoolean},
		{Name: "Condition", Type: domain.CustomFieldTypeOption, Options: []string{"New", "Good", "Worn"}},
	} {
		in.ID = d.svc.idGen()
		in.OrganizationID = d.org.ID
		field, err := domain.NewCustomField(in, d.now)
		if err != nil {
			return 0, err
		}
		if err := d.svc.repo.CreateCustomField(ctx, field); err != nil {
			return 0, fmt.Errorf("create custom field: %w", err)
		}
		d.fields[field.Name] = field
	}

	assets := demoAssets()
	for _, item := range assets {
		if err := d.createAsset(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(assets), nil
}

func (d *demoSeed) createAsset(ctx context.Context, item demoAsset) error {
	valuation := item.valuation
	in := domain.AssetInput{
		ID:              d.svc.idGen(),
		OrganizationID:  d.org.ID,
		Title:           item.title,
		Description:     item.description,
		Status:          item.status,
		AvailableToBook: item.bookable,
		ThumbnailImage:  item.thumbnail,
		Category:        d.categories[item.category],
		Location:        d.locations[item.location],
		Kit:             d.kits[item.kit],
	}
	if valuation > 0 {
		in.Valuation = &valuation
	}
	for _, name := range item.tags {
		in.Tags = append(in.Tags, d.tags[name])
	}
	for name, raw := range item.fields {
		field := d.fields[name]
		value, err := domain.ParseCustomFieldRaw(field.Type, raw)
		if err != nil {
			return fmt.Errorf("seed field %q: %w", name, err)
		}
		in.CustomFields = append(in.CustomFields, domain.CustomFieldValue{ID: d.svc.idGen(), CustomField: field, Value: value})
	}
	asset, err := domain.NewAsset(in, d.now.AddDate(0, 0, -item.ageDays))
	if err != nil {
		return err
	}
	if err := d.svc.repo.CreateAsset(ctx, asset); err != nil {
		return fmt.Errorf("create asset: %w", err)
	}

	if item.custodian != "" {
		custody := domain.Custody{
			ID:        d.svc.idGen(),
			AssetID:   asset.ID,
			Custodian: d.members[item.custodian],
			CreatedAt: d.now,
		}
		if err := d.svc.repo.AssignCustody(ctx, custody); err != nil {
			return fmt.Errorf("assign custody: %w", err)
		}
	}
	if item.reminder != nil {
		reminder, err := domain.NewReminder(d.svc.idGen(), asset.ID, item.reminder.name, item.reminder.message, d.now.AddDate(0, 0, item.reminder.inDays))
		if err != nil {
			return err
		}
		if err := d.svc.repo.CreateReminder(ctx, reminder); err != nil {
			return fmt.Errorf("create reminder: %w", err)
		}
	}
	return nil
}

func demoAssets() []demoAsset {
	return []demoAsset{
		{
			title:       "Cordless drill 18V",
			description: "Brushless drill with two batteries and a fast charger. Keep the batteries above 20% between jobs.",
			status:      domain.AssetStatusAvailable,
			valuation:   189.99,
			bookable:    true,
			category:    "Power tools",
			tags:        []string{"battery", "loaner", "field"},
			location:    "Main warehouse",
			fields: map[string]string{
				"Serial number":     "DR-18-00421",
				"Manual":            "https://example.com/manuals/drill-18v.pdf",
				"Maintenance notes": "## Service log\n\n- Replaced chuck in **March**\n- Battery B swollen, retired",
				"Replacement cost":  "229.5",
				"Insured":           "true",
				"Condition":         "Good",
			},
			ageDays:  120,
			reminder: &demoReminder{name: "Battery check", message: "Cycle both batteries and log their capacity.", inDays: 7},
		},
		{
			title:       "MacBook Pro 14",
			description: "M3 Pro, 36GB. Assigned to the design team.",
			status:      domain.AssetStatusInCustody,
			valuation:   2499,
			category:    "Laptops",
			tags:        []string{"fragile"},
			custodian:   "jordan",
			fields: map[string]string{
				"Serial number":  "C02XK1ABCD",
				"Warranty until": "2027-09-30",
				"Insured":        "true",
				"Condition":      "New",
			},
			ageDays: 45,
		},
		{
			title:       "Mirrorless camera body with a very long descriptive name for the rental shelf",
			description: "Full-frame body.\nShips with strap, two batteries and a 128GB card.\nCheck sensor for dust after every shoot.",
			status:      domain.AssetStatusCheckedOut,
			valuation:   1899,
			bookable:    true,
			category:    "Cameras",
			tags:        []string{"fragile", "studio", "loaner", "battery"},
			location:    "Studio B",
			kit:         "Interview kit",
			custodian:   "Front desk",
			fields: map[string]string{
				"Replacement cost": "2100",
				"Manual":           "see shelf binder",
			},
			ageDays:  300,
			reminder: &demoReminder{name: "Sensor clean", message: "Book the sensor clean with the vendor before the festival season.", inDays: 21},
		},
		{
			title:   "Label printer",
			status:  domain.AssetStatusAvailable,
			ageDays: 3,
		},
	}
}
