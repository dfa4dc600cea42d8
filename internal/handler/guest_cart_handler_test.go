package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuestCartEcho() *echo.Echo {
	e := echo.New()
	NewGuestCartHandler(config.Config{GoEnv: "test"}).RegisterRoutes(e)
	return e
}

func doGuestRequest(e *echo.Echo, method, target, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func guestCartCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == guestCartCookieName {
			return c
		}
	}
	return nil
}

func decodeGuestCart(t *testing.T, rec *httptest.ResponseRecorder) usecase.GuestCartData {
	t.Helper()
	var data usecase.GuestCartData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	return data
}

func TestGuestCartHandler_GetEmpty(t *testing.T) {
	e := newGuestCartEcho()

	rec := doGuestRequest(e, http.MethodGet, "/guest-cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeGuestCart(t, rec)
	assert.Empty(t, data.Items)
	assert.Equal(t, int64(0), data.Total)
}

func TestGuestCartHandler_AddThenGetViaCookie(t *testing.T) {
	e := newGuestCartEcho()

	rec := doGuestRequest(e, http.MethodPost, "/guest-cart",
		`{"product_id":10,"name":"Bowl","artisan_name":"Maria","price":8900,"quantity":2}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := guestCartCookie(rec)
	require.NotNil(t, cookie, "add should write the guest-cart cookie")
	assert.True(t, cookie.HttpOnly)

	// 受け取ったcookieで再訪
	rec = doGuestRequest(e, http.MethodGet, "/guest-cart", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeGuestCart(t, rec)
	require.Len(t, data.Items, 1)
	assert.Equal(t, int64(10), data.Items[0].ProductID)
	assert.Equal(t, int64(2), data.Items[0].Quantity)
	assert.Equal(t, int64(17800), data.Total)
	assert.Equal(t, int64(2), data.ItemCount)
}

func TestGuestCartHandler_UpdateQuantity(t *testing.T) {
	e := newGuestCartEcho()

	rec := doGuestRequest(e, http.MethodPost, "/guest-cart",
		`{"product_id":10,"name":"Bowl","price":1000,"quantity":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := guestCartCookie(rec)
	require.NotNil(t, cookie)

	rec = doGuestRequest(e, http.MethodPut, "/guest-cart",
		`{"product_id":10,"quantity":4}`, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeGuestCart(t, rec)
	require.Len(t, data.Items, 1)
	assert.Equal(t, int64(4), data.Items[0].Quantity)
	assert.Equal(t, int64(4000), data.Total)
}

func TestGuestCartHandler_UpdateZeroQuantityRejected(t *testing.T) {
	e := newGuestCartEcho()

	rec := doGuestRequest(e, http.MethodPost, "/guest-cart",
		`{"product_id":10,"name":"Bowl","price":1000,"quantity":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := guestCartCookie(rec)

	rec = doGuestRequest(e, http.MethodPut, "/guest-cart",
		`{"product_id":10,"quantity":0}`, []*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuestCartHandler_Remove(t *testing.T) {
	e := newGuestCartEcho()

	rec := doGuestRequest(e, http.MethodPost, "/guest-cart",
		`{"product_id":10,"name":"Bowl","price":1000,"quantity":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := guestCartCookie(rec)

	rec = doGuestRequest(e, http.MethodDelete, "/guest-cart?product_id=10", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeGuestCart(t, rec).Items)

	// product_id無しは400
	rec = doGuestRequest(e, http.MethodDelete, "/guest-cart", "", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuestCartHandler_ClearExpiresCookie(t *testing.T) {
	e := newGuestCartEcho()

	rec := doGuestRequest(e, http.MethodPost, "/guest-cart",
		`{"product_id":10,"name":"Bowl","price":1000,"quantity":1}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := guestCartCookie(rec)

	rec = doGuestRequest(e, http.MethodPost, "/guest-cart/clear", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	expired := guestCartCookie(rec)
	require.NotNil(t, expired)
	assert.Equal(t, "", expired.Value)
	assert.Negative(t, expired.MaxAge)
}

// base64でないcookieは空カート扱いになる
func TestGuestCartHandler_CorruptCookieReadsAsEmpty(t *testing.T) {
	e := newGuestCartEcho()

	rec := doGuestRequest(e, http.MethodGet, "/guest-cart", "",
		[]*http.Cookie{{Name: guestCartCookieName, Value: "%%%not-base64%%%"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeGuestCart(t, rec).Items)
}

// base64は正しいが中身が壊れている場合も空カート扱い
func TestGuestCartHandler_CorruptJSONReadsAsEmpty(t *testing.T) {
	e := newGuestCartEcho()

	broken := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	rec := doGuestRequest(e, http.MethodGet, "/guest-cart", "",
		[]*http.Cookie{{Name: guestCartCookieName, Value: broken}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeGuestCart(t, rec).Items)
}
