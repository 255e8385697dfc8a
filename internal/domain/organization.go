package domain

import (
	"strings"
	"time"
)

// Organization represents the tenant that owns assets and custom fields.
type Organization struct {
	ID        string
	Name      string
	Currency  string
	CreatedAt time.Time
}

// NewOrganization constructs a new value for this package.
func NewOrganization(id, name, currency string, now time.Time) (Organization, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if id == "" {
		return Organization{}, ErrInvalidID
	}
	if name == "" {
		return Organization{}, ErrInvalidName
	}
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return Organization{}, ErrInvalidCurrency
	}
	return Organization{
		ID:        id,
		Name:      name,
		Currency:  currency,
		CreatedAt: now.UTC(),
	}, nil
}

// Category groups assets and carries the badge color used in the index.
type Category struct {
	ID    string
	Name  string
	Color string
}

// NewCategory constructs a new value for this package.
func NewCategory(id, name, color string) (Category, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if id == "" {
		return Category{}, ErrInvalidID
	}
	if name == "" {
		return Category{}, ErrInvalidName
	}
	if !IsHexColor(color) {
		return Category{}, ErrInvalidColor
	}
	return Category{ID: id, Name: name, Color: color}, nil
}

// Tag labels an asset.
type Tag struct {
	ID   string
	Name string
}

// Location is where an asset is kept.
type Location struct {
	ID   string
	Name string
}

// Kit bundles several assets under one name.
type Kit struct {
	ID   string
	Name string
}

// IsHexColor reports whether the value looks like #rgb or #rrggbb.
func IsHexColor(v string) bool {
	if !strings.HasPrefix(v, "#") {
		return false
	}
	hex := v[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
