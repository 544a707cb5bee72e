package client

import (
	"context"

	jobgrpc "github.com/dmitrijs2005/jobportal/internal/server/grpc"
)

func (c *Client) Ping(ctx context.Context) error {
	var resp jobgrpc.PingResponse
	if err := c.Invoke(ctx, "Ping", &jobgrpc.PingRequest{}, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req *jobgrpc.RegisterRequest) (*jobgrpc.User, error) {
	var u jobgrpc.User
	if err := c.Invoke(ctx, "Register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and keeps the issued token pair for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var tokens jobgrpc.TokenResponse
	if err := c.Invoke(ctx, "Login", &jobgrpc.LoginRequest{Email: email, Password: password}, &tokens); err != nil {
		return err
	}
	c.SetTokens(tokens.AccessToken, tokens.RefreshToken)
	return nil
}

// Logout revokes the refresh token and forgets both tokens.
func (c *Client) Logout(ctx context.Context) error {
	_, refresh := c.Tokens()
	if refresh != "" {
		if err := c.Invoke(ctx, "Logout", &jobgrpc.RefreshTokenRequest{RefreshToken: refresh}, &jobgrpc.Empty{}); err != nil {
			return err
		}
	}
	c.SetTokens("", "")
	return nil
}

func (c *Client) Me(ctx context.Context) (*jobgrpc.User, error) {
	var u jobgrpc.User
	if err := c.Invoke(ctx, "Me", &jobgrpc.Empty{}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListOpenJobs(ctx context.Context, limit, offset int) ([]*jobgrpc.Job, error) {
	var resp jobgrpc.JobList
	if err := c.Invoke(ctx, "ListOpenJobs", &jobgrpc.PageRequest{Limit: limit, Offset: offset}, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*jobgrpc.Job, error) {
	var j jobgrpc.Job
	if err := c.Invoke(ctx, "GetJob", &jobgrpc.JobRequest{JobID: jobID}, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *Client) Apply(ctx context.Context, req *jobgrpc.ApplyRequest) (*jobgrpc.Application, error) {
	var a jobgrpc.Application
	if err := c.Invoke(ctx, "ApplyForJob", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) ListMyApplications(ctx context.Context, limit, offset int) ([]*jobgrpc.Application, error) {
	var resp jobgrpc.ApplicationList
	if err := c.Invoke(ctx, "ListMyApplications", &jobgrpc.PageRequest{Limit: limit, Offset: offset}, &resp); err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

func (c *Client) ListNotifications(ctx context.Context, limit, offset int) ([]*jobgrpc.Notification, error) {
	var resp jobgrpc.NotificationList
	if err := c.Invoke(ctx, "ListNotifications", &jobgrpc.PageRequest{Limit: limit, Offset: offset}, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

func (c *Client) CountUnreadNotifications(ctx context.Context) (int64, error) {
	var resp jobgrpc.CountResponse
	if err := c.Invoke(ctx, "CountUnreadNotifications", &jobgrpc.Empty{}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
