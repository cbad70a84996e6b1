package tenantkit

import "github.com/google/uuid"

// Tenant represents a tenant record with the minimal information needed
// for request-scoped operations. Meta carries deployment-specific
// attributes that the core never interprets.
//
// A Tenant returned by a Store is treated as an immutable value; stores
// return defensive copies so that handlers cannot mutate shared state.
type Tenant struct {
	ID   string         `json:"id" yaml:"id"`
	Name string         `json:"name" yaml:"name"`
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// New creates a tenant with a generated unique identifier.
func New(name string) *Tenant {
	return &Tenant{ID: uuid.NewString(), Name: name}
}

// Clone returns a deep copy of the tenant.
func (t *Tenant) Clone() *Tenant {
	if t == nil {
		return nil
	}
	c := &Tenant{ID: t.ID, Name: t.Name}
	if t.Meta != nil {
		c.Meta = make(map[string]any, len(t.Meta))
		for k, v := range t.Meta {
			c.Meta[k] = v
		}
	}
	return c
}
