package auth

import (
	"net/http"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/httpx"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
	"github.com/dulcesamigas/pos-backend/internal/modules/user"
)

// requirement is what the policy demands for one (resource, action).
type requirement struct {
	adminOnly  bool
	role       string // exact role match, e.g. driver routes
	permission string // section flag; admins short-circuit to allow
}

type policyKey struct {
	resource string
	action   string
}

// policy is the single authorization table. Every guarded route maps
// to exactly one entry; missing entries deny.
var policy = map[policyKey]requirement{}

func init() {
	crudActions := []string{
		crud.ActionRead, crud.ActionWrite, crud.ActionDelete,
		crud.ActionTrash, crud.ActionRestore, crud.ActionPurge,
	}

	for _, resource := range []string{"productos", "toppings", "jarabes", "clientes", "ventas"} {
		for _, action := range crudActions {
			req := requirement{permission: resource}
			switch action {
			case crud.ActionTrash, crud.ActionRestore, crud.ActionPurge:
				req = requirement{permission: "papelera"}
			}
			policy[policyKey{resource, action}] = req
		}
	}

	// Account management is reserved to administrators.
	for _, action := range crudActions {
		policy[policyKey{"usuarios", action}] = requirement{adminOnly: true}
	}

	policy[policyKey{"pedidos", crud.ActionRead}] = requirement{permission: "pedidos"}
	policy[policyKey{"pedidos", crud.ActionWrite}] = requirement{permission: "pedidos"}

	// Delivery routes are bound to the driver role itself, not a flag.
	policy[policyKey{"repartidor", crud.ActionRead}] = requirement{role: user.RoleDriver}
	policy[policyKey{"repartidor", crud.ActionWrite}] = requirement{role: user.RoleDriver}
}

// Authorize evaluates the policy table for the caller.
func Authorize(p *Principal, resource, action string) error {
	req, ok := policy[policyKey{resource, action}]
	if !ok {
		return apperr.Errorf(apperr.Forbidden, "no policy for %s/%s", resource, action)
	}

	switch {
	case req.role != "":
		if p.Role != req.role {
			return apperr.Errorf(apperr.Forbidden, "requires role %q", req.role)
		}
	case req.adminOnly:
		if p.Role != user.RoleAdmin {
			return apperr.E(apperr.Forbidden, "requires administrator role")
		}
	default:
		if p.Role != user.RoleAdmin && !p.Permissions[req.permission] {
			return apperr.Errorf(apperr.Forbidden, "missing permission %q", req.permission)
		}
	}
	return nil
}

// Require returns the guard middleware for one (resource, action). It
// matches the crud.Guard signature.
func Require(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				httpx.Error(w, apperr.E(apperr.Forbidden, "missing credentials"))
				return
			}
			if err := Authorize(p, resource, action); err != nil {
				httpx.Error(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
