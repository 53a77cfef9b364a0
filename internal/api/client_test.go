package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dormshare-cli/internal/model"
)

func TestListItemsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/items" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"data":[{"_id":"i1","title":"Guitar","category":"Others","price":50,"status":"available"}]}`)
	}))
	defer srv.Close()

	items, err := New(srv.URL).ListItems(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != "i1" || items[0].Title != "Guitar" {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestListItemsSendsFilterQuery(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListItems(context.Background(), ListFilter{Search: "lamp", Category: model.CategoryElectronics}); err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if got := gotQuery["search"]; len(got) != 1 || got[0] != "lamp" {
		t.Fatalf("search param: %v", gotQuery)
	}
	if got := gotQuery["category"]; len(got) != 1 || got[0] != "Electronics" {
		t.Fatalf("category param: %v", gotQuery)
	}

	// No filter means no query string at all.
	gotQuery = nil
	if _, err := c.ListItems(context.Background(), ListFilter{}); err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(gotQuery) != 0 {
		t.Fatalf("expected empty query, got %v", gotQuery)
	}
}

func TestBearerTokenHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.ListItems(context.Background(), ListFilter{}); err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous request carried auth header %q", gotAuth)
	}

	c.Token = "tok-123"
	if _, err := c.ListItems(context.Background(), ListFilter{}); err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestServerErrorMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Invalid credentials"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), Credentials{Email: "a@b.c", Password: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Error() != "Invalid credentials" {
		t.Fatalf("unexpected error: status=%d msg=%q", apiErr.Status, apiErr.Error())
	}
}

func TestErrorFallbackWhenBodyHasNoMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Me(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "request failed: Bad Gateway" {
		t.Fatalf("unexpected fallback message: %q", err.Error())
	}
}

func TestRentItemSendsEndDate(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody struct {
		EndDate time.Time `json:"endDate"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprint(w, `{"data":{"_id":"i1","status":"rented"}}`)
	}))
	defer srv.Close()

	end := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	it, err := New(srv.URL).RentItem(context.Background(), "i1", end)
	if err != nil {
		t.Fatalf("RentItem: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/items/i1/rent" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if !gotBody.EndDate.Equal(end) {
		t.Fatalf("endDate: got %v, want %v", gotBody.EndDate, end)
	}
	if it.Status != model.StatusRented {
		t.Fatalf("expected rented item back, got %q", it.Status)
	}
}

func TestDeleteItemUsesDeleteVerb(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		fmt.Fprint(w, `{"message":"Item deleted"}`)
	}))
	defer srv.Close()

	if err := New(srv.URL).DeleteItem(context.Background(), "i9"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/items/i9" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestUpdateItemOmitsUnchangedFields(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprint(w, `{"data":{"_id":"i1","title":"New title"}}`)
	}))
	defer srv.Close()

	title := "New title"
	if _, err := New(srv.URL).UpdateItem(context.Background(), "i1", ItemPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if raw["title"] != "New title" {
		t.Fatalf("title missing from patch: %v", raw)
	}
	for _, k := range []string{"description", "category", "price", "images"} {
		if _, present := raw[k]; present {
			t.Fatalf("unchanged field %q leaked into patch: %v", k, raw)
		}
	}
}

func TestLoginReturnsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"token":"tok-1","user":{"_id":"u1","name":"Asha","email":"asha@hostel.edu"}}`)
	}))
	defer srv.Close()

	sess, err := New(srv.URL).Login(context.Background(), Credentials{Email: "asha@hostel.edu", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != "tok-1" || sess.User.ID != "u1" || sess.User.Name != "Asha" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}
