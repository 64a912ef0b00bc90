package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// Helper to build a gin context carrying the given query string
func newQueryContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/listings?"+rawQuery, nil)
	return c, w
}

// Test ParseQuantity
func TestParseQuantity(t *testing.T) {
	t.Run("missing_parameter_defaults_to_zero", func(t *testing.T) {
		c, w := newQueryContext(t, "")

		quantity, ok := ParseQuantity(c, "ListListingsHandler")
		require.True(t, ok)
		require.Zero(t, quantity)
		require.Zero(t, w.Body.Len())
	})

	t.Run("integer_parameter_parsed", func(t *testing.T) {
		c, w := newQueryContext(t, "quantity=7")

		quantity, ok := ParseQuantity(c, "ListListingsHandler")
		require.True(t, ok)
		require.Equal(t, 7, quantity)
		require.Zero(t, w.Body.Len())
	})

	t.Run("non_integer_reported_under_calling_handler", func(t *testing.T) {
		hook := test.NewGlobal()
		defer hook.Reset()
		c, w := newQueryContext(t, "quantity=abc")

		quantity, ok := ParseQuantity(c, "OwnListingsHandler")
		require.False(t, ok)
		require.Zero(t, quantity)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Quantity must be an integer")

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Contains(t, entry.Message, "OwnListingsHandler")
		require.Equal(t, "OwnListingsHandler", entry.Data["handler"])
	})
}
