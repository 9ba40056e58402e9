//go:build functional

package functional

import (
	"net/http"
	"testing"

	"github.com/dkrylov/items-api/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func TestFunctional_ListSeedItems(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodGet, "/", nil)

	// Assert
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}

	items := decodeItems(t, body)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != 1 || *items[0].Name != "Kalem" {
		t.Errorf("items[0] = %+v, want {1 Kalem}", items[0])
	}
	if items[1].ID != 2 || *items[1].Name != "Defter" {
		t.Errorf("items[1] = %+v, want {2 Defter}", items[1])
	}
}

func TestFunctional_GetItem(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodGet, "/1", nil)

	// Assert
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}

	item := decodeItem(t, body)
	if item.ID != 1 || *item.Name != "Kalem" {
		t.Errorf("item = %+v, want {1 Kalem}", item)
	}
}

func TestFunctional_GetItem_NotFound(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	paths := []string{"/42", "/abc", "/0", "/-1"}

	for _, path := range paths {
		// Act
		status, body := ts.do(http.MethodGet, path, nil)

		// Assert - malformed and absent ids are the same 404
		if status != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want %d", path, status, http.StatusNotFound)
			continue
		}
		if msg := decodeMessage(t, body); msg.Message != model.MessageItemNotFound {
			t.Errorf("GET %s message = %q, want %q", path, msg.Message, model.MessageItemNotFound)
		}
	}
}

func TestFunctional_CreateItem(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodPost, "/", map[string]any{"name": "Silgi"})

	// Assert
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want %d", status, http.StatusCreated)
	}

	item := decodeItem(t, body)
	if item.ID != 3 || *item.Name != "Silgi" {
		t.Errorf("item = %+v, want {3 Silgi}", item)
	}

	// The new item shows up at the end of the list
	_, listBody := ts.do(http.MethodGet, "/", nil)
	items := decodeItems(t, listBody)
	if len(items) != 3 {
		t.Fatalf("got %d items after create, want 3", len(items))
	}
	if items[2].ID != 3 {
		t.Errorf("items[2].ID = %d, want 3", items[2].ID)
	}
}

func TestFunctional_CreateItem_NullName(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodPost, "/", map[string]any{})

	// Assert - name passes through as null
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want %d", status, http.StatusCreated)
	}

	item := decodeItem(t, body)
	if item.ID != 3 {
		t.Errorf("id = %d, want 3", item.ID)
	}
	if item.Name != nil {
		t.Errorf("name = %v, want null", *item.Name)
	}
}

func TestFunctional_UpdateItem(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodPut, "/2", map[string]any{"name": "Defter2"})

	// Assert
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}

	item := decodeItem(t, body)
	if item.ID != 2 || *item.Name != "Defter2" {
		t.Errorf("item = %+v, want {2 Defter2}", item)
	}

	// Change is visible on a subsequent read
	_, getBody := ts.do(http.MethodGet, "/2", nil)
	got := decodeItem(t, getBody)
	if *got.Name != "Defter2" {
		t.Errorf("stored name = %s, want Defter2", *got.Name)
	}
}

func TestFunctional_UpdateItem_EmptyNameKeepsExisting(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	bodies := []map[string]any{
		{"name": ""},
		{"name": nil},
		{},
	}

	for _, reqBody := range bodies {
		// Act
		status, body := ts.do(http.MethodPut, "/2", reqBody)

		// Assert - empty, null, and absent all mean "keep the old name"
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}

		item := decodeItem(t, body)
		if *item.Name != "Defter" {
			t.Errorf("name = %s, want Defter (body %v)", *item.Name, reqBody)
		}
	}
}

func TestFunctional_UpdateItem_NotFound(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodPut, "/42", map[string]any{"name": "anything"})

	// Assert
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, http.StatusNotFound)
	}
	if msg := decodeMessage(t, body); msg.Message != model.MessageItemNotFound {
		t.Errorf("message = %q, want %q", msg.Message, model.MessageItemNotFound)
	}
}

func TestFunctional_DeleteItem(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodDelete, "/1", nil)

	// Assert
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}
	if msg := decodeMessage(t, body); msg.Message != model.MessageItemDeleted {
		t.Errorf("message = %q, want %q", msg.Message, model.MessageItemDeleted)
	}

	// The item is gone
	getStatus, _ := ts.do(http.MethodGet, "/1", nil)
	if getStatus != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want %d", getStatus, http.StatusNotFound)
	}

	_, listBody := ts.do(http.MethodGet, "/", nil)
	if items := decodeItems(t, listBody); len(items) != 1 {
		t.Errorf("got %d items after delete, want 1", len(items))
	}
}

func TestFunctional_DeleteItem_NotFound(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, body := ts.do(http.MethodDelete, "/42", nil)

	// Assert - failed delete leaves the store unchanged
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, http.StatusNotFound)
	}
	if msg := decodeMessage(t, body); msg.Message != model.MessageItemNotFound {
		t.Errorf("message = %q, want %q", msg.Message, model.MessageItemNotFound)
	}

	_, listBody := ts.do(http.MethodGet, "/", nil)
	if items := decodeItems(t, listBody); len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestFunctional_FullScenario(t *testing.T) {
	// Arrange - the seed walk: create, update, delete, re-check
	ts := NewTestServer(t)

	// Act / Assert
	status, body := ts.do(http.MethodPost, "/", map[string]any{"name": "Silgi"})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", status, http.StatusCreated)
	}
	created := decodeItem(t, body)
	if created.ID != 3 || *created.Name != "Silgi" {
		t.Fatalf("created = %+v, want {3 Silgi}", created)
	}

	status, body = ts.do(http.MethodPut, "/2", map[string]any{"name": "Defter2"})
	if status != http.StatusOK {
		t.Fatalf("update status = %d, want %d", status, http.StatusOK)
	}
	updated := decodeItem(t, body)
	if updated.ID != 2 || *updated.Name != "Defter2" {
		t.Fatalf("updated = %+v, want {2 Defter2}", updated)
	}

	status, _ = ts.do(http.MethodDelete, "/1", nil)
	if status != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", status, http.StatusOK)
	}

	status, _ = ts.do(http.MethodGet, "/1", nil)
	if status != http.StatusNotFound {
		t.Errorf("GET /1 status = %d, want %d", status, http.StatusNotFound)
	}

	status, body = ts.do(http.MethodGet, "/2", nil)
	if status != http.StatusOK {
		t.Fatalf("GET /2 status = %d, want %d", status, http.StatusOK)
	}
	got := decodeItem(t, body)
	if got.ID != 2 || *got.Name != "Defter2" {
		t.Errorf("GET /2 = %+v, want {2 Defter2}", got)
	}
}

func TestFunctional_DuplicateIDAfterDeleteCreate(t *testing.T) {
	// Arrange - the count-based id generation resurfaces an existing id
	// after a delete/create sequence; this is observable behavior, not a
	// bug to fix here
	ts := NewTestServer(t)

	// Act
	status, _ := ts.do(http.MethodDelete, "/1", nil)
	if status != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", status, http.StatusOK)
	}

	status, body := ts.do(http.MethodPost, "/", map[string]any{"name": "Silgi"})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", status, http.StatusCreated)
	}

	// Assert
	created := decodeItem(t, body)
	if created.ID != 2 {
		t.Errorf("created id = %d, want 2", created.ID)
	}

	_, listBody := ts.do(http.MethodGet, "/", nil)
	items := decodeItems(t, listBody)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != 2 || items[1].ID != 2 {
		t.Errorf("ids = [%d %d], want duplicate [2 2]", items[0].ID, items[1].ID)
	}
}

func TestFunctional_InvalidJSONBody(t *testing.T) {
	// Arrange
	ts := NewTestServer(t)

	// Act
	status, _ := ts.do(http.MethodPost, "/", strPtr("{not json"))

	// Assert - a JSON-encoded string is a valid body but wrong shape
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
	}
}
