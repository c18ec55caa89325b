// internal/core/ports/catalog.go
package ports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ammerola/picking-be/internal/core/domain"
)

// PageRequest selects one page of the upstream item listing
type PageRequest struct {
	Token  string
	TeamID string
	Cursor string
	Limit  int
}

// CatalogClient fetches pages of the upstream item listing.
// A non-2xx upstream response is reported as *CatalogStatusError.
type CatalogClient interface {
	FetchPage(ctx context.Context, req PageRequest) (*domain.CatalogPage, error)
}

// CredentialProvider supplies the catalog token and team id.
// Empty values are valid results and mean "not configured".
type CredentialProvider interface {
	BoxHeroCredentials(ctx context.Context) (token, teamID string, err error)
}

// CatalogStatusError is a non-success HTTP status from the catalog
type CatalogStatusError struct {
	StatusCode int
	Body       string
}

func (e *CatalogStatusError) Error() string {
	return fmt.Sprintf("catalog responded %d", e.StatusCode)
}

// IsAuth reports a credentials rejection
func (e *CatalogStatusError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
