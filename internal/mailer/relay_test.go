package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRelayVerifyEnvelope(t *testing.T) {
	var got relayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(relayResponse{Success: true})
	}))
	defer srv.Close()

	tr := NewRelayTransport(srv.URL, nil)
	res := tr.Verify(context.Background(), Settings{
		Host: "smtp.example.com", Port: 587, Secure: true,
		Username: "u", Password: "p", From: "Empresa <e@x.com>",
	})

	if !res.Success {
		t.Fatalf("verify failed: %q", res.Error)
	}
	if got.Smtp.Host != "smtp.example.com" || got.Smtp.Port != 587 || !got.Smtp.Secure {
		t.Fatalf("smtp block: %+v", got.Smtp)
	}
	if got.Smtp.Auth.User != "u" || got.Smtp.Auth.Pass != "p" {
		t.Fatalf("auth block: %+v", got.Smtp.Auth)
	}
	if got.Smtp.From != "Empresa <e@x.com>" {
		t.Fatalf("from: %q", got.Smtp.From)
	}
	if got.Email != nil {
		t.Fatalf("verify must not carry an email block")
	}
}

func TestRelaySendEnvelope(t *testing.T) {
	var got relayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(relayResponse{Success: true})
	}))
	defer srv.Close()

	tr := NewRelayTransport(srv.URL, nil)
	res := tr.Send(context.Background(),
		Settings{Host: "smtp.example.com", Username: "u", Password: "p"},
		Message{To: "a@x.com", Subject: "s", HTML: "<p>x</p>"},
	)

	if !res.Success {
		t.Fatalf("send failed: %q", res.Error)
	}
	if got.Email == nil || got.Email.To != "a@x.com" || got.Email.Subject != "s" || got.Email.HTML != "<p>x</p>" {
		t.Fatalf("email block: %+v", got.Email)
	}
}

func TestRelayStructuredFailurePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(relayResponse{Success: false, Error: ErrConnectFailed})
	}))
	defer srv.Close()

	tr := NewRelayTransport(srv.URL, nil)
	res := tr.Verify(context.Background(), Settings{Host: "smtp.fail.test", Username: "u", Password: "p"})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Error != ErrConnectFailed {
		t.Fatalf("got %q", res.Error)
	}
}

func TestRelayBreakerIgnoresRefusedConfigurations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(relayResponse{Success: false, Error: ErrSendFailed})
	}))
	defer srv.Close()

	tr := NewRelayTransport(srv.URL, nil)
	// Well past the failure threshold; every call still reaches the relay
	// because a structured refusal is not a transport fault.
	for i := 0; i < 10; i++ {
		res := tr.Send(context.Background(),
			Settings{Host: "smtp.fail.test", Username: "u", Password: "p"},
			Message{To: "a@x.com", Subject: "s", HTML: "<p>x</p>"},
		)
		if res.Error != ErrSendFailed {
			t.Fatalf("call %d: got %q", i, res.Error)
		}
	}
	if tr.breaker.Open() {
		t.Fatalf("breaker opened on refused configurations")
	}
}

func TestRelayUnreachableOpensBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	tr := NewRelayTransport(srv.URL, nil)
	for i := 0; i < 5; i++ {
		res := tr.Verify(context.Background(), Settings{Host: "smtp.example.com", Username: "u", Password: "p"})
		if res.Success {
			t.Fatalf("expected failure against a dead relay")
		}
	}
	if !tr.breaker.Open() {
		t.Fatalf("breaker still closed after repeated transport failures")
	}

	res := tr.Verify(context.Background(), Settings{Host: "smtp.example.com", Username: "u", Password: "p"})
	if res.Success || res.Error == "" {
		t.Fatalf("open breaker should fail fast with an error, got %+v", res)
	}
}
