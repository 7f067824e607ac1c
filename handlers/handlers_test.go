package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/retail_backend/utils"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r)
	r.NoRoute(NotFoundHandler)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// These requests are rejected before any database access.
func TestInvoiceRequestsRejectedBeforePersistence(t *testing.T) {
	r := newTestRouter()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		field  string
	}{
		{"malformed json", http.MethodPost, "/invoices", `{"customer_name":`, ""},
		{"missing customer", http.MethodPost, "/invoices",
			`{"payment_mode":"Cash","items":[{"name":"a","rate":"10","quantity":1,"gst_percentage":"18"}]}`, "customer_name"},
		{"no items", http.MethodPost, "/invoices", `{"customer_name":"Asha","payment_mode":"Cash","items":[]}`, "items"},
		{"negative rate", http.MethodPost, "/invoices",
			`{"customer_name":"Asha","payment_mode":"Cash","items":[{"name":"a","rate":-5,"quantity":1,"gst_percentage":18}]}`, "items[0].rate"},
		{"rate finer than stored", http.MethodPost, "/invoices",
			`{"customer_name":"Asha","payment_mode":"Cash","items":[{"name":"a","rate":"10.12345","quantity":3,"gst_percentage":"18"}]}`, "items[0].rate"},
		{"missing customer on update", http.MethodPut, "/invoices/4",
			`{"payment_mode":"Cash","items":[{"name":"a","rate":"10","quantity":1,"gst_percentage":"18"}]}`, "customer_name"},
		{"bad payment mode", http.MethodPost, "/invoices",
			`{"customer_name":"Asha","payment_mode":"Cheque","items":[{"name":"a","rate":5,"quantity":1,"gst_percentage":18}]}`, "payment_mode"},
		{"bad id on update", http.MethodPut, "/invoices/abc", `{}`, "id"},
		{"bad id on get", http.MethodGet, "/invoices/0", "", "id"},
		{"bad id on delete", http.MethodDelete, "/invoices/-3", "", "id"},
		{"bad invoice number", http.MethodGet, "/invoices/by-number?number=INV-1", "", "invoice_number"},
		{"bad list payment mode", http.MethodGet, "/invoices?payment_mode=Cheque", "", "payment_mode"},
		{"bad list limit", http.MethodGet, "/invoices?limit=x", "", "limit"},
		{"bad report date", http.MethodGet, "/reports/invoice-stats?from=01-04-2025", "", "from"},
		{"inverted report range", http.MethodGet, "/reports/gst-summary?from=2025-05-01&to=2025-04-01", "", "from"},
		{"missing setting value", http.MethodPut, "/settings/cash_gst_mode", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.method, tt.path, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status %d, body %s", w.Code, w.Body.String())
			}
			if tt.field == "" {
				return
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["field"] != tt.field {
				t.Fatalf("field %v, want %s (body %s)", body["field"], tt.field, w.Body.String())
			}
		})
	}
}

func TestRespondErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err        error
		status     int
		ginErrors  int
		exposeText bool
	}{
		{utils.NewValidationError("customer_name", "is required"), http.StatusBadRequest, 0, true},
		{utils.NewPreconditionError("quantity", "must be greater than zero"), http.StatusBadRequest, 0, true},
		{utils.NewNotFoundError("invoice 4"), http.StatusNotFound, 0, true},
		{utils.NewConflictError("duplicate invoice number"), http.StatusConflict, 0, true},
		{errors.New("connection refused"), http.StatusInternalServerError, 1, false},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tt.err)
		if w.Code != tt.status {
			t.Fatalf("%v: status %d, want %d", tt.err, w.Code, tt.status)
		}
		if len(c.Errors) != tt.ginErrors {
			t.Fatalf("%v: %d gin errors", tt.err, len(c.Errors))
		}
		if strings.Contains(w.Body.String(), tt.err.Error()) != tt.exposeText {
			t.Fatalf("%v: body %s", tt.err, w.Body.String())
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	w := doRequest(newTestRouter(), http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
}
