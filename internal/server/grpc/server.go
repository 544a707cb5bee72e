// Package grpc exposes the job portal services as the gRPC service
// jobportal.v1.JobPortal. Messages are plain Go structs carried by a JSON
// codec; clients select it with the "json" content-subtype.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/jobportal/internal/logging"
	"github.com/dmitrijs2005/jobportal/internal/server/metrics"
	"github.com/dmitrijs2005/jobportal/internal/server/services"
	"google.golang.org/grpc"
)

// Services groups the business services behind the transport.
type Services struct {
	Identity      *services.IdentityService
	Auth          *services.AuthService
	Jobs          *services.JobService
	Applications  *services.ApplicationService
	CVs           *services.CVService
	SavedJobs     *services.SavedJobService
	Notifications *services.NotificationService
	Dashboard     *services.DashboardService
	Admin         *services.AdminService
}

type GRPCServer struct {
	address   string
	svc       Services
	metrics   *metrics.Metrics
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, m *metrics.Metrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		svc:       svc,
		metrics:   m,
		logger:    l.With("module", "grpc_server"),
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor),
	)
	srv.RegisterService(&serviceDesc, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
