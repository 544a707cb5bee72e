package grpc

import (
	"context"
)

func (s *GRPCServer) SaveCV(ctx context.Context, req *CVFields) (*CV, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	cv, err := s.svc.CVs.SaveCV(ctx, actor, req.input())
	if err != nil {
		return nil, err
	}
	return cvFrom(cv), nil
}

// RequestCVUpload registers a CV and returns the URL the client PUTs the
// file to.
func (s *GRPCServer) RequestCVUpload(ctx context.Context, req *CVFields) (*CVUploadResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	cv, url, err := s.svc.CVs.RequestUpload(ctx, actor, req.input())
	if err != nil {
		return nil, err
	}
	return &CVUploadResponse{CV: cvFrom(cv), UploadURL: url}, nil
}

func (s *GRPCServer) UpdateCV(ctx context.Context, req *UpdateCVRequest) (*CV, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	cv, err := s.svc.CVs.UpdateCV(ctx, actor, req.CVID, req.input())
	if err != nil {
		return nil, err
	}
	return cvFrom(cv), nil
}

func (s *GRPCServer) DeleteCV(ctx context.Context, req *CVRequest) (*Empty, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.CVs.DeleteCV(ctx, actor, req.CVID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *GRPCServer) ListCVs(ctx context.Context, _ *Empty) (*CVList, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.CVs.ListCVs(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := &CVList{CVs: make([]*CV, 0, len(list))}
	for i := range list {
		out.CVs = append(out.CVs, cvFrom(&list[i]))
	}
	return out, nil
}

func (s *GRPCServer) GetCVDownloadURL(ctx context.Context, req *CVRequest) (*URLResponse, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	url, err := s.svc.CVs.DownloadURL(ctx, actor, req.CVID)
	if err != nil {
		return nil, err
	}
	return &URLResponse{URL: url}, nil
}
