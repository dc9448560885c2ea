package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify_ServerStatus(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"not found ignores body", 404, `{"detail":"missing trip"}`, MsgNotFound},
		{"not found empty body", 404, "", MsgNotFound},
		{"internal ignores body", 500, `{"detail":"生成旅行计划失败: boom"}`, MsgInternal},
		{"detail wins", 418, `{"detail":"teapot"}`, "teapot"},
		{"no detail", 418, `{"error":"teapot"}`, "request failed (418)"},
		{"empty detail", 418, `{"detail":""}`, "request failed (418)"},
		{"non-string detail", 422, `{"detail":[{"loc":["body","city"]}]}`, "request failed (422)"},
		{"non-json body", 503, "<html>down</html>", "request failed (503)"},
		{"redirect not followed", 302, "", "request failed (302)"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ue := Classify(FromResponse(tc.status, []byte(tc.body)))
			if ue == nil {
				t.Fatalf("expected error for status %d", tc.status)
			}
			if ue.Error() != tc.want {
				t.Fatalf("message = %q, want %q", ue.Error(), tc.want)
			}
			if ue.StatusCode != tc.status || ue.Kind != KindServerStatus {
				t.Fatalf("unexpected classification: %+v", ue)
			}
		})
	}
}

func TestClassify_Success(t *testing.T) {
	t.Parallel()
	for _, status := range []int{200, 201, 204, 299} {
		if ue := Classify(FromResponse(status, nil)); ue != nil {
			t.Fatalf("status %d classified as error: %v", status, ue)
		}
	}
}

func TestClassify_NetworkAndSetup(t *testing.T) {
	t.Parallel()
	ue := Classify(Network(fmt.Errorf("dial tcp 127.0.0.1:1: connect: connection refused")))
	if ue.Message != MsgUnreachable || ue.Kind != KindNetwork || ue.StatusCode != 0 {
		t.Fatalf("network: %+v", ue)
	}

	ue = Classify(Setup(fmt.Errorf("json: unsupported type: chan int")))
	if ue.Message != "json: unsupported type: chan int" || ue.Kind != KindRequestSetup {
		t.Fatalf("setup: %+v", ue)
	}

	ue = Classify(Setup(nil))
	if ue.Message != MsgUnknown || ue.Kind != KindUnknown {
		t.Fatalf("setup nil: %+v", ue)
	}
	ue = Classify(Setup(errors.New("")))
	if ue.Message != MsgUnknown || ue.Kind != KindUnknown {
		t.Fatalf("setup empty: %+v", ue)
	}
}

func TestUserError_Is(t *testing.T) {
	t.Parallel()
	err := error(&UserError{Kind: KindNetwork, Message: MsgUnreachable})
	if !errors.Is(err, ErrNetwork) {
		t.Fatal("expected ErrNetwork match")
	}
	if errors.Is(err, ErrServerStatus) {
		t.Fatal("unexpected ErrServerStatus match")
	}
	wrapped := fmt.Errorf("cli: %w", err)
	var ue *UserError
	if !errors.As(wrapped, &ue) || ue.Kind != KindNetwork {
		t.Fatalf("errors.As failed: %v", wrapped)
	}
}

func TestRewrap(t *testing.T) {
	t.Parallel()
	if Rewrap(nil, "x") != nil {
		t.Fatal("nil error must stay nil")
	}

	orig := &UserError{Kind: KindServerStatus, Message: "teapot", StatusCode: 418}
	got := Rewrap(orig, "failed to generate trip plan")
	if got.Message != "teapot" || got.StatusCode != 418 || got.Kind != KindServerStatus {
		t.Fatalf("classified message lost: %+v", got)
	}
	if got == orig {
		t.Fatal("rewrap must produce a fresh value")
	}

	got = Rewrap(&UserError{Kind: KindUnknown}, "health check failed")
	if got.Message != "health check failed" {
		t.Fatalf("fallback not applied: %+v", got)
	}

	// Rewrapping a rewrapped error adds no layer.
	twice := Rewrap(Rewrap(orig, "a"), "b")
	if twice.Message != "teapot" {
		t.Fatalf("double rewrap changed message: %q", twice.Message)
	}

	got = Rewrap(errors.New("plain"), "fallback")
	if got.Message != "plain" || got.Kind != KindUnknown {
		t.Fatalf("plain error: %+v", got)
	}
}

func TestKindStrings(t *testing.T) {
	t.Parallel()
	if KindNetwork.String() != "NetworkError" || Kind(42).String() != "Kind(42)" {
		t.Fatal("unexpected Kind strings")
	}
	if OutcomeSetupFailure.String() != "setup_failure" || OutcomeKind(9).String() != "outcome(9)" {
		t.Fatal("unexpected OutcomeKind strings")
	}
}
