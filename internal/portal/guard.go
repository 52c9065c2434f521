package portal

import (
	"context"
	"strings"

	"github.com/glowbook/salon-booking/internal/core/domain"
)

// Area is a guarded section of the portal.
type Area string

const (
	AreaPublic   Area = "public"
	AreaCustomer Area = "customer"
	AreaAdmin    Area = "admin"
)

var customerPrefixes = []string{"/dashboard", "/appointments", "/book", "/profile"}

// adminOnly lists admin sub-routes closed to staff.
var adminOnly = []string{"/admin/settings", "/admin/staff", "/admin/services"}

// AreaOf classifies path.
func AreaOf(path string) Area {
	if hasPrefix(path, "/admin") {
		return AreaAdmin
	}
	for _, p := range customerPrefixes {
		if hasPrefix(path, p) {
			return AreaCustomer
		}
	}
	return AreaPublic
}

// Decision is the outcome of a navigation check. Redirect is empty when
// the navigation may proceed.
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// Decide checks navigation to path for user, which is nil when nobody is
// signed in.
func Decide(user *domain.User, path string) Decision {
	switch AreaOf(path) {
	case AreaCustomer:
		if user == nil || user.Role != domain.RoleCustomer {
			return Decision{Redirect: LoginPath}
		}
	case AreaAdmin:
		if user == nil || !user.Role.IsBackOffice() {
			return Decision{Redirect: LoginPath}
		}
		for _, p := range adminOnly {
			if hasPrefix(path, p) && user.Role != domain.RoleAdmin {
				return Decision{Redirect: AdminDashboardPath}
			}
		}
	}
	return Decision{}
}

// Guard resolves the current user before deciding.
type Guard struct {
	auth *AuthStore
}

func NewGuard(auth *AuthStore) *Guard {
	return &Guard{auth: auth}
}

func (g *Guard) Check(ctx context.Context, path string) (Decision, error) {
	if AreaOf(path) == AreaPublic {
		return Decision{}, nil
	}
	user, err := g.auth.CurrentUser(ctx)
	if err != nil {
		return Decision{}, err
	}
	return Decide(user, path), nil
}

// hasPrefix matches whole path segments, so /admin does not match /administer.
func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
