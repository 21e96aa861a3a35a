package snipeit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snipelabel/internal/services"
	"snipelabel/internal/snipeit"
)

func TestParseItemType(t *testing.T) {
	cases := []struct {
		input   string
		want    snipeit.ItemType
		segment string
		wantErr bool
	}{
		{input: "assets", want: snipeit.ItemAssets, segment: "hardware"},
		{input: " Assets ", want: snipeit.ItemAssets, segment: "hardware"},
		{input: "accessories", want: snipeit.ItemAccessories, segment: "accessories"},
		{input: "consumables", want: snipeit.ItemConsumables, segment: "consumables"},
		{input: "components", want: snipeit.ItemComponents, segment: "components"},
		{input: "gadgets", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := snipeit.ParseItemType(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseItemType(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseItemType(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseItemType(%q) = %q, want %q", tc.input, got, tc.want)
		}
		if got.APISegment() != tc.segment {
			t.Errorf("%q APISegment = %q, want %q", got, got.APISegment(), tc.segment)
		}
	}
}

func TestFetchSendsAuthAndDecodesRecord(t *testing.T) {
	var gotPath, gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"asset_tag": "00400", "model": {"number": 12}}`))
	}))
	defer server.Close()

	client, err := snipeit.New(server.URL, "secret", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	record, err := client.Fetch(context.Background(), snipeit.ItemAssets, "400")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotPath != "/api/v1/hardware/400" {
		t.Fatalf("request path = %q, want /api/v1/hardware/400", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("accept header = %q", gotAccept)
	}
	if record["asset_tag"] != "00400" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestFetchServerReportedErrorSurfacesMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "messages": ["not found"]}`))
	}))
	defer server.Close()

	client, err := snipeit.New(server.URL, "secret", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Fetch(context.Background(), snipeit.ItemAssets, "999")
	if !errors.Is(err, services.ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}

	var remoteErr *snipeit.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %T", err)
	}
	if len(remoteErr.Messages) != 1 || remoteErr.Messages[0] != "not found" {
		t.Fatalf("messages = %v, want [not found]", remoteErr.Messages)
	}
}

func TestFetchErrorMessagesObjectForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status": "error", "messages": {"asset_tag": ["tag taken"], "serial": "bad serial"}}`))
	}))
	defer server.Close()

	client, err := snipeit.New(server.URL, "secret", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Fetch(context.Background(), snipeit.ItemComponents, "5")
	var remoteErr *snipeit.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %v", err)
	}
	want := []string{"asset_tag: tag taken", "serial: bad serial"}
	if len(remoteErr.Messages) != len(want) {
		t.Fatalf("messages = %v, want %v", remoteErr.Messages, want)
	}
	for i := range want {
		if remoteErr.Messages[i] != want[i] {
			t.Fatalf("messages = %v, want %v", remoteErr.Messages, want)
		}
	}
}

func TestFetchNonJSONFailureStatusBecomesRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := snipeit.New(server.URL, "secret", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Fetch(context.Background(), snipeit.ItemAssets, "1")
	if !errors.Is(err, services.ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
}

func TestFetchTimeoutClassifiesTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, err := snipeit.New(server.URL, "secret", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.Fetch(context.Background(), snipeit.ItemAssets, "1")
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestFetchRejectsEmptyItemID(t *testing.T) {
	client, err := snipeit.New("https://snipe.example.com", "secret", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Fetch(context.Background(), snipeit.ItemAssets, "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := snipeit.New("", "key", time.Second); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := snipeit.New("https://snipe.example.com", "  ", time.Second); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
