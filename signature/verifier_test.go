package signature

import (
	"strconv"
	"testing"
	"time"
)

func TestVerify_RoundTrip(t *testing.T) {
	v := New("shhh-secret")
	now := time.Unix(1700000000, 0)
	v.Clock = func() time.Time { return now }

	ts := strconv.FormatInt(now.Unix(), 10)
	body := []byte(`{"type":"url_verification","challenge":"abc"}`)
	sig := v.Sign(ts, body)

	if err := v.Verify(ts, sig, body); err != nil {
		t.Fatalf("Verify() = %v, want nil", err)
	}
}

func TestVerify_BitFlipInBodyFails(t *testing.T) {
	v := New("shhh-secret")
	now := time.Unix(1700000000, 0)
	v.Clock = func() time.Time { return now }

	ts := strconv.FormatInt(now.Unix(), 10)
	body := []byte(`{"type":"url_verification"}`)
	sig := v.Sign(ts, body)

	tampered := []byte(`{"type":"url_verificatioN"}`)
	if err := v.Verify(ts, sig, tampered); err != ErrInvalidSignature {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestVerify_BitFlipInSignatureFails(t *testing.T) {
	v := New("shhh-secret")
	now := time.Unix(1700000000, 0)
	v.Clock = func() time.Time { return now }

	ts := strconv.FormatInt(now.Unix(), 10)
	body := []byte(`hello`)
	sig := v.Sign(ts, body)
	tamperedSig := sig[:len(sig)-1] + "0"

	if err := v.Verify(ts, tamperedSig, body); err != ErrInvalidSignature {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestVerify_ExpiredTimestamp(t *testing.T) {
	v := New("shhh-secret")
	now := time.Unix(1700000000, 0)
	v.Clock = func() time.Time { return now }

	old := now.Add(-10 * time.Minute)
	ts := strconv.FormatInt(old.Unix(), 10)
	body := []byte("hello")
	sig := v.Sign(ts, body)

	if err := v.Verify(ts, sig, body); err != ErrExpired {
		t.Fatalf("err = %v, want ErrExpired", err)
	}
}

func TestVerify_MissingHeaders(t *testing.T) {
	v := New("secret")
	if err := v.Verify("", "v0=abc", []byte("x")); err != ErrMissingHeaders {
		t.Fatalf("err = %v, want ErrMissingHeaders", err)
	}
	if err := v.Verify("123", "", []byte("x")); err != ErrMissingHeaders {
		t.Fatalf("err = %v, want ErrMissingHeaders", err)
	}
}
