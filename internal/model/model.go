package model

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryBooks       Category = "Books"
	CategorySports      Category = "Sports"
	CategoryFurniture   Category = "Furniture"
	CategoryClothing    Category = "Clothing"
	CategoryOthers      Category = "Others"
)

func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryBooks,
		CategorySports,
		CategoryFurniture,
		CategoryClothing,
		CategoryOthers,
	}
}

// ParseCategory accepts any casing ("electronics", "Electronics").
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s", s)
}

type ItemStatus string

const (
	StatusAvailable ItemStatus = "available"
	StatusRented    ItemStatus = "rented"
)

// User is the profile shape the server returns. The password is write-only
// and never appears on the wire coming back.
type User struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	HostelRoom  string `json:"hostelRoom"`
	PhoneNumber string `json:"phoneNumber"`
}

type Item struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Price       float64    `json:"price"` // per-day rate
	Images      []string   `json:"images"`
	Status      ItemStatus `json:"status"`
	Owner       User       `json:"owner"`

	// Set iff Status == StatusRented; the server is authoritative.
	CurrentRenter *User      `json:"currentRenter,omitempty"`
	RentalEndDate *time.Time `json:"rentalEndDate,omitempty"`
}

// IsOwnedBy and IsRentedBy exist purely for conditional rendering.
// They are not a security boundary; the server enforces eligibility on
// every transition.
func (it Item) IsOwnedBy(userID string) bool {
	return userID != "" && it.Owner.ID == userID
}

func (it Item) IsRentedBy(userID string) bool {
	return userID != "" && it.CurrentRenter != nil && it.CurrentRenter.ID == userID
}
