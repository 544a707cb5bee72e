package grpc

import (
	"context"
	"database/sql"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/config"
	"github.com/dmitrijs2005/jobportal/internal/server/metrics"
	"github.com/dmitrijs2005/jobportal/internal/server/notify"
	"github.com/dmitrijs2005/jobportal/internal/server/repositories/memrepo"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
	_ "modernc.org/sqlite"
)

const testSecret = "secret"

type testEnv struct {
	t       *testing.T
	ctx     context.Context
	store   *memrepo.Store
	svc     Services
	metrics *metrics.Metrics
	conn    *grpc.ClientConn
}

// newTestEnv serves real services backed by an in-memory store over a
// bufconn listener.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := memrepo.New()
	m := metrics.New()
	log := logging.Nop{}
	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	sink := notify.NewStoreSink(db, store, log)

	svc := Services{
		Identity:      services.NewIdentityService(db, store),
		Auth:          services.NewAuthService(db, store, cfg, log),
		Jobs:          services.NewJobService(db, store, m, log),
		Applications:  services.NewApplicationService(db, store, sink, m, log),
		CVs:           services.NewCVService(db, store, nil),
		SavedJobs:     services.NewSavedJobService(db, store),
		Notifications: services.NewNotificationService(db, store),
		Dashboard:     services.NewDashboardService(db, store),
		Admin:         services.NewAdminService(db, store, sink, m, log),
	}

	srv := NewGRPCServer("bufnet", log, svc, m, testSecret)
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})

	return &testEnv{
		t:       t,
		ctx:     context.Background(),
		store:   store,
		svc:     svc,
		metrics: m,
		conn:    conn,
	}
}

// call invokes method, authenticated when token is not empty.
func (e *testEnv) call(token, method string, req, resp any) error {
	ctx := e.ctx
	if token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)
	}
	return e.conn.Invoke(ctx, FullMethod(method), req, resp)
}

func (e *testEnv) mustCall(token, method string, req, resp any) {
	e.t.Helper()
	if err := e.call(token, method, req, resp); err != nil {
		e.t.Fatalf("%s: %v", method, err)
	}
}

// signUp registers an account and logs it in.
func (e *testEnv) signUp(email, role, company string) (*User, string) {
	e.t.Helper()
	var u User
	e.mustCall("", "Register", &RegisterRequest{
		Email:       email,
		Password:    "pass-" + email,
		FirstName:   "Test",
		Role:        role,
		CompanyName: company,
	}, &u)
	return &u, e.login(email, "pass-"+email)
}

func (e *testEnv) login(email, password string) string {
	e.t.Helper()
	var tokens TokenResponse
	e.mustCall("", "Login", &LoginRequest{Email: email, Password: password}, &tokens)
	return tokens.AccessToken
}

func (e *testEnv) adminToken() string {
	e.t.Helper()
	if _, _, err := e.svc.Admin.InitAdmin(e.ctx, "root@example.com", "root-pass", "Root", ""); err != nil {
		e.t.Fatalf("InitAdmin: %v", err)
	}
	return e.login("root@example.com", "root-pass")
}

func (e *testEnv) scrape() string {
	e.t.Helper()
	rec := httptest.NewRecorder()
	e.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		e.t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, Services{}, nil, testSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, Services{}, nil, testSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func TestPing_OK(t *testing.T) {
	e := newTestEnv(t)

	var resp PingResponse
	e.mustCall("", "Ping", &PingRequest{}, &resp)
	if resp.Status != "OK" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
}

func TestMetricsInterceptor_RecordsCalls(t *testing.T) {
	e := newTestEnv(t)

	e.mustCall("", "Ping", &PingRequest{}, &PingResponse{})
	_ = e.call("", "Me", &Empty{}, &User{})

	body := e.scrape()
	for _, want := range []string{
		`jobportal_rpc_requests_total{code="OK",method="/jobportal.v1.JobPortal/Ping"} 1`,
		`jobportal_rpc_requests_total{code="Unauthenticated",method="/jobportal.v1.JobPortal/Me"} 1`,
		"jobportal_rpc_requests_in_flight 0",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
