package http

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAppErrorWrapsUnderlying(t *testing.T) {
	base := fmt.Errorf("disk full")
	err := InternalError("store subscription").WithError(base)

	if !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("message = %q, want wrapped cause", err.Error())
	}
	if !errors.Is(err, base) {
		t.Fatal("wrapped error must unwrap to its cause")
	}
}

func TestAppErrorResponseEnvelope(t *testing.T) {
	c, rec := newTestContext()
	if err := AppErrorResponse(c, TooManyRequestsError("slow down")); err != nil {
		t.Fatal(err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"status":429`) || !strings.Contains(body, "ERR_RATE_LIMITED") {
		t.Fatalf("body = %s", body)
	}
}

func TestAppErrorResponseFallsBackToInternal(t *testing.T) {
	c, rec := newTestContext()
	if err := AppErrorResponse(c, fmt.Errorf("boom")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Body.String(), `"status":500`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
