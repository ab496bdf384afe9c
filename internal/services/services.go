// Package services groups the REST operations of the hotel API by resource.
// Every method is a direct pass-through to the session client with a fixed
// method, path, and payload; callers validate input and interpret errors.
package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/hongminglow/hotel-admin/internal/apiclient"
)

// Requester is the slice of the session client the façade needs.
type Requester interface {
	DoJSON(ctx context.Context, method, path string, body, out any, opts ...apiclient.RequestOption) error
}

var _ Requester = (*apiclient.Client)(nil)

// Services bundles all operation groups around one requester.
type Services struct {
	Auth     *Auth
	Hotels   *Hotels
	Rooms    *Rooms
	Bookings *Bookings
	Reviews  *Reviews
}

// New wires every group to r.
func New(r Requester) *Services {
	return &Services{
		Auth:     &Auth{r: r},
		Hotels:   &Hotels{r: r},
		Rooms:    &Rooms{r: r},
		Bookings: &Bookings{r: r},
		Reviews:  &Reviews{r: r},
	}
}

// path joins escaped segments into an API path.
func path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}
