package probe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arhrid/agent-translator/internal/probe"
)

func TestProbe(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Probe Suite")
}

var _ = Describe("Check", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("should succeed against a responsive backend", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/languages" {
				w.Write([]byte(`[{"code":"en"},{"code":"es"}]`))
				return
			}
			http.NotFound(w, r)
		}))
		defer server.Close()

		Expect(probe.Check(ctx, server.URL, time.Second)).To(Succeed())
	})

	It("should fail against a backend returning an error status", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		Expect(probe.Check(ctx, server.URL, time.Second)).NotTo(Succeed())
	})

	It("should fail against an unreachable backend", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		deadURL := server.URL
		server.Close()

		Expect(probe.Check(ctx, deadURL, time.Second)).NotTo(Succeed())
	})

	It("should fail when the backend is slower than the timeout", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer server.Close()

		Expect(probe.Check(ctx, server.URL, 50*time.Millisecond)).NotTo(Succeed())
	})
})
