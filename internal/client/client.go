// Package client is a Go client for the jobportal.v1.JobPortal gRPC
// service.
//
// A Client keeps the token pair issued by Login, attaches the access token to
// every call through an interceptor, and transparently refreshes it once when
// the server reports it expired. Failed calls are mapped back to the sentinel
// errors of package common, so callers can match them with errors.Is.
//
// Methods not wrapped here are reachable through Invoke with the request and
// response types of the server's grpc package.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/jobportal/internal/common"
	jobgrpc "github.com/dmitrijs2005/jobportal/internal/server/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type Client struct {
	conn *grpc.ClientConn

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// New connects to target. Extra options are applied after the defaults
// (plaintext transport, JSON content-subtype).
func New(target string, opts ...grpc.DialOption) (*Client, error) {
	c := &Client{}

	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(jobgrpc.CodecName)),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}

	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Tokens returns the current token pair.
func (c *Client) Tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// SetTokens restores a token pair saved from an earlier session.
func (c *Client) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = access, refresh
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *Client) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := c.Tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	var tokens jobgrpc.TokenResponse
	if err := invoker(withAccessToken(ctx, ""), jobgrpc.FullMethod("RefreshToken"),
		&jobgrpc.RefreshTokenRequest{RefreshToken: refresh}, &tokens, cc, opts...); err != nil {
		return err
	}
	c.SetTokens(tokens.AccessToken, tokens.RefreshToken)

	return invoker(withAccessToken(ctx, tokens.AccessToken), method, req, reply, cc, opts...)
}

var codeErrors = map[codes.Code]error{
	codes.NotFound:           common.ErrorNotFound,
	codes.PermissionDenied:   common.ErrorAccessDenied,
	codes.Unauthenticated:    common.ErrorUnauthorized,
	codes.AlreadyExists:      common.ErrorConflict,
	codes.InvalidArgument:    common.ErrorValidation,
	codes.FailedPrecondition: common.ErrorAccountNotApproved,
	codes.Unimplemented:      common.ErrorUnsupported,
	codes.Internal:           common.ErrorInternal,
	codes.Unavailable:        ErrUnavailable,
	codes.DeadlineExceeded:   ErrUnavailable,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	if sentinel, found := codeErrors[st.Code()]; found {
		return fmt.Errorf("%w: %s", sentinel, st.Message())
	}
	return fmt.Errorf("rpc error: %w", err)
}

// Invoke calls the named JobPortal method, e.g. "ApproveJob".
func (c *Client) Invoke(ctx context.Context, method string, req, resp any) error {
	return mapError(c.conn.Invoke(ctx, jobgrpc.FullMethod(method), req, resp))
}
