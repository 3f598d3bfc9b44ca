package hospital

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 5*time.Second), srv
}

func TestCreate_ReturnsAssignedID(t *testing.T) {
	var gotBody map[string]any
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/hospitals/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"h-42"}`))
	}))
	defer srv.Close()

	phone := "111"
	id, err := client.Create(context.Background(), CreateRequest{
		Name:            "Apollo",
		Address:         "Mumbai",
		Phone:           &phone,
		CreationBatchID: "batch-1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != "h-42" {
		t.Errorf("Create() id = %q, want %q", id, "h-42")
	}

	if gotBody["name"] != "Apollo" || gotBody["address"] != "Mumbai" {
		t.Errorf("payload = %v, missing name/address", gotBody)
	}
	if gotBody["creation_batch_id"] != "batch-1" {
		t.Errorf("payload creation_batch_id = %v, want batch-1", gotBody["creation_batch_id"])
	}
}

func TestCreate_NumericIDNormalized(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":17}`))
	}))
	defer srv.Close()

	id, err := client.Create(context.Background(), CreateRequest{Name: "A", Address: "B"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != "17" {
		t.Errorf("Create() id = %q, want %q", id, "17")
	}
}

func TestCreate_NilPhoneSerializesAsNull(t *testing.T) {
	var raw string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		raw = string(body)
		w.Write([]byte(`{"id":"x"}`))
	}))
	defer srv.Close()

	if _, err := client.Create(context.Background(), CreateRequest{Name: "A", Address: "B"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("invalid payload JSON: %v", err)
	}
	if v, present := decoded["phone"]; !present || v != nil {
		t.Errorf("phone = %v (present=%v), want explicit null", v, present)
	}
}

func TestCreate_StatusErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		transient bool
	}{
		{"client error is terminal", http.StatusUnprocessableEntity, false},
		{"server error is transient", http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", tt.status)
			}))
			defer srv.Close()

			_, err := client.Create(context.Background(), CreateRequest{Name: "A", Address: "B"})
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("Create() error = %v, want *StatusError", err)
			}
			if se.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.status)
			}
			if se.Transient() != tt.transient {
				t.Errorf("Transient() = %v, want %v", se.Transient(), tt.transient)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := client.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestGet_PassesDocumentThrough(t *testing.T) {
	doc := `{"id":"h-1","name":"Apollo","active":true,"extra_field":"kept"}`
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hospitals/h-1" {
			t.Errorf("path = %q, want /hospitals/h-1", r.URL.Path)
		}
		w.Write([]byte(doc))
	}))
	defer srv.Close()

	raw, err := client.Get(context.Background(), "h-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(raw) != doc {
		t.Errorf("Get() = %s, want verbatim document", raw)
	}
	if !ActiveFlag(raw) {
		t.Error("ActiveFlag() = false, want true")
	}
}

func TestDelete_NotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if err := client.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestActivateBatch(t *testing.T) {
	t.Run("no body by default", func(t *testing.T) {
		var gotBody []byte
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch {
				t.Errorf("method = %s, want PATCH", r.Method)
			}
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		if err := client.ActivateBatch(context.Background(), "b-1", nil); err != nil {
			t.Fatalf("ActivateBatch() error = %v", err)
		}
		if len(gotBody) != 0 {
			t.Errorf("body = %q, want empty", gotBody)
		}
	})

	t.Run("deactivation sends active false", func(t *testing.T) {
		var gotBody []byte
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		inactive := false
		if err := client.ActivateBatch(context.Background(), "b-1", &inactive); err != nil {
			t.Fatalf("ActivateBatch() error = %v", err)
		}
		if string(gotBody) != `{"active":false}` {
			t.Errorf("body = %q, want {\"active\":false}", gotBody)
		}
	})

	t.Run("failure surfaces status", func(t *testing.T) {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		}))
		defer srv.Close()

		err := client.ActivateBatch(context.Background(), "b-1", nil)
		var se *StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
			t.Errorf("ActivateBatch() error = %v, want 400 StatusError", err)
		}
	})
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(&StatusError{StatusCode: 409}) {
		t.Error("IsTerminal(409) = false, want true")
	}
	if IsTerminal(&StatusError{StatusCode: 503}) {
		t.Error("IsTerminal(503) = true, want false")
	}
	if IsTerminal(errors.New("connection refused")) {
		t.Error("IsTerminal(transport error) = true, want false")
	}
}
