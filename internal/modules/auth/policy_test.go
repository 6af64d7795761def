package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
	"github.com/dulcesamigas/pos-backend/internal/modules/user"
)

func seller(perms ...string) *Principal {
	m := map[string]bool{}
	for _, p := range perms {
		m[p] = true
	}
	return &Principal{Username: "sofia", Role: user.RoleSeller, Permissions: m}
}

func TestAdminShortCircuitsPermissionChecks(t *testing.T) {
	admin := &Principal{Username: "admin", Role: user.RoleAdmin}

	assert.NoError(t, Authorize(admin, "productos", crud.ActionWrite))
	assert.NoError(t, Authorize(admin, "ventas", crud.ActionPurge))
	assert.NoError(t, Authorize(admin, "usuarios", crud.ActionRead))
}

func TestSellerNeedsSectionFlag(t *testing.T) {
	assert.NoError(t, Authorize(seller("productos"), "productos", crud.ActionWrite))
	assert.Error(t, Authorize(seller("productos"), "clientes", crud.ActionWrite))
	assert.Error(t, Authorize(seller(), "productos", crud.ActionRead))
}

func TestTrashActionsNeedPapelera(t *testing.T) {
	withVentas := seller("ventas")
	assert.NoError(t, Authorize(withVentas, "ventas", crud.ActionDelete))
	assert.Error(t, Authorize(withVentas, "ventas", crud.ActionPurge))
	assert.Error(t, Authorize(withVentas, "ventas", crud.ActionRestore))

	withTrash := seller("ventas", "papelera")
	assert.NoError(t, Authorize(withTrash, "ventas", crud.ActionTrash))
	assert.NoError(t, Authorize(withTrash, "ventas", crud.ActionPurge))
}

func TestUsuariosIsAdminOnlyEvenWithFlag(t *testing.T) {
	err := Authorize(seller("usuarios"), "usuarios", crud.ActionRead)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestDriverRoutesRequireDriverRole(t *testing.T) {
	driver := &Principal{Username: "pepe", Role: user.RoleDriver}
	assert.NoError(t, Authorize(driver, "repartidor", crud.ActionRead))

	assert.Error(t, Authorize(seller("pedidos"), "repartidor", crud.ActionRead))

	// the delivery routes are role-bound, not admin-overridable
	admin := &Principal{Role: user.RoleAdmin}
	assert.Error(t, Authorize(admin, "repartidor", crud.ActionWrite))
}

func TestUnknownResourceDenies(t *testing.T) {
	admin := &Principal{Role: user.RoleAdmin}
	err := Authorize(admin, "reportes", crud.ActionRead)
	assert.Error(t, err)
}
