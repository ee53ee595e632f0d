package listing

import (
	"strings"
	"time"

	"github.com/staylodge/service-reservation/internal/common/domain"
)

// Provider is a user who offers listings. Its ID is shared with the identity system.
type Provider struct {
	id           string
	displayName  string
	listingCount int
	createdAt    time.Time
}

// NewProvider provisions a provider with no listings.
func NewProvider(id, displayName string, now time.Time) (*Provider, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("provider ID is required")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, domain.NewValidationError("display name is required")
	}
	return &Provider{id: id, displayName: displayName, createdAt: now.UTC()}, nil
}

// ReconstructProvider rebuilds a Provider from persistence data.
func ReconstructProvider(id, displayName string, listingCount int, createdAt time.Time) *Provider {
	return &Provider{id: id, displayName: displayName, listingCount: listingCount, createdAt: createdAt}
}

func (p *Provider) ID() string           { return p.id }
func (p *Provider) DisplayName() string  { return p.displayName }
func (p *Provider) ListingCount() int    { return p.listingCount }
func (p *Provider) CreatedAt() time.Time { return p.createdAt }
