package entity

import "strings"

// Customer is the canonical projection of a portal customer record.
// Records are re-fetched per session and never mutated locally.
type Customer struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_Id,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Key returns the identifier the portal expects on mutation calls.
// The alternate customer_Id column is preferred over id when present.
func (c *Customer) Key() string {
	if c.CustomerID != "" {
		return c.CustomerID
	}
	return c.ID
}

// DisplayName builds a human-readable name from whichever name fields
// are populated, falling back to "Unknown".
func (c *Customer) DisplayName() string {
	full := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if full != "" {
		return full
	}
	if c.Name != "" {
		return c.Name
	}
	return "Unknown"
}

// MatchesSearch reports whether the customer matches a free-text search
// term against the name and email fields, case-insensitively.
func (c *Customer) MatchesSearch(term string) bool {
	t := strings.ToLower(term)
	for _, field := range []string{c.Name, c.FirstName, c.LastName, c.Email} {
		if field != "" && strings.Contains(strings.ToLower(field), t) {
			return true
		}
	}
	return false
}
