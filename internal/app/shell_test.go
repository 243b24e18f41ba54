package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtdstore-client/internal/models"
	"mtdstore-client/internal/services"
)

func TestParseCommands(t *testing.T) {
	sh := &Shell{}

	tests := []struct {
		line string
		want Action
	}{
		{"login alice secret", LoginAction{Username: "alice", Password: "secret"}},
		{"logout", LogoutAction{}},
		{"refresh", RefreshAction{}},
		{"back", BackAction{}},
		{"buy 7", SelectProductAction{ProductID: 7}},
		{"+", IncreaseQuantityAction{}},
		{"-", DecreaseQuantityAction{}},
		{"qty 3", SetQuantityAction{Quantity: 3}},
		{"place", PlaceOrderAction{}},
		{"pay", ConfirmPaymentAction{}},
		{"cancel", CancelPaymentAction{}},
		{"orders", ShowOrderHistoryAction{}},
		{"products", ShowSellerTabAction{Tab: TabMyProducts}},
		{"sales", ShowSellerTabAction{Tab: TabSalesAnalytics}},
		{"upi", ShowUPISettingsAction{}},
		{"set ramesh@okaxis", SaveUPIAction{UPIID: "ramesh@okaxis"}},
		{"delete 4", DeleteProductAction{ProductID: 4}},
		{"adduser dave pw seller", AddUserAction{Username: "dave", Password: "pw", Role: models.RoleSeller}},
		{"rmuser dave", RemoveUserAction{Username: "dave"}},
	}
	for _, tc := range tests {
		got, err := sh.parse(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, got, tc.line)
	}
}

func TestParseProductCommands(t *testing.T) {
	sh := &Shell{}

	got, err := sh.parse("add Tomatoes 40 100 fresh from the farm")
	require.NoError(t, err)
	assert.Equal(t, AddProductAction{Form: services.ProductForm{
		Name:        "Tomatoes",
		Description: "fresh from the farm",
		Price:       40,
		Quantity:    100,
	}}, got)

	got, err = sh.parse("edit 7 Tomatoes 45 80 still fresh")
	require.NoError(t, err)
	assert.Equal(t, EditProductAction{ProductID: 7, Form: services.ProductForm{
		Name:        "Tomatoes",
		Description: "still fresh",
		Price:       45,
		Quantity:    80,
	}}, got)
}

func TestParseErrors(t *testing.T) {
	sh := &Shell{}

	badLines := []string{
		"login alice",
		"buy",
		"buy seven",
		"qty many",
		"set",
		"add Tomatoes cheap 100",
		"edit x Tomatoes 45 80",
		"adduser dave pw",
		"rmuser",
	}
	for _, line := range badLines {
		_, err := sh.parse(line)
		assert.Error(t, err, line)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	sh := &Shell{}
	action, err := sh.parse("dance")
	require.NoError(t, err)
	assert.Nil(t, action)
}

func TestShellScriptedSession(t *testing.T) {
	_, ctrl, out := newControllerFixture(t)

	script := strings.Join([]string{
		"login alice secret",
		"buy 7",
		"+",
		"+",
		"place",
		"pay",
		"logout",
		"exit",
	}, "\n")

	sh := NewShell(ctrl, strings.NewReader(script), out)
	require.NoError(t, sh.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Welcome back, alice!")
	assert.Contains(t, output, "Quantity: 3 kg  |  Total: ₹150.00")
	assert.Contains(t, output, "Payment successful! Transaction")
	assert.Contains(t, output, "Logged out successfully")
	assert.Equal(t, ViewLogin, ctrl.View())
}

func TestShellIgnoresBlankLinesAndUnknowns(t *testing.T) {
	_, ctrl, out := newControllerFixture(t)

	script := "\n\ndance\nexit\n"
	sh := NewShell(ctrl, strings.NewReader(script), out)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "Commands depend on the current view:")
	assert.Equal(t, ViewLogin, ctrl.View())
}
