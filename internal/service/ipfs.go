package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AlexZinkM/scf-launchpad/internal/client"
	"github.com/AlexZinkM/scf-launchpad/internal/common"
	"github.com/AlexZinkM/scf-launchpad/internal/metrics"
	"github.com/AlexZinkM/scf-launchpad/internal/model"
)

// pinBurst is the number of pins allowed back to back.
const pinBurst = 3

// IPFSService pins documents through Pinata on behalf of the browser, which
// never sees the Pinata credentials.
type IPFSService struct {
	log     *zap.SugaredLogger
	pinata  *client.PinataClient
	limiter *rate.Limiter
	metrics *metrics.Metrics
}

// NewIPFSService creates an IPFSService allowing perMinute pins per minute.
// perMinute <= 0 disables the limit.
func NewIPFSService(pinata *client.PinataClient, perMinute int, m *metrics.Metrics, log *zap.SugaredLogger) *IPFSService {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &IPFSService{
		log:     log.Named("ipfs-service"),
		pinata:  pinata,
		limiter: rate.NewLimiter(limit, pinBurst),
		metrics: m,
	}
}

// Pin stores the request content on IPFS.
func (s *IPFSService) Pin(ctx context.Context, req model.PinRequest) (model.PinResponse, error) {
	if err := req.Validate(); err != nil {
		return model.PinResponse{}, fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}
	return s.pin(ctx, req.Content, req.Name, req.Keyvalues)
}

// PinProject stores the public document of p on IPFS and returns its hash.
func (s *IPFSService) PinProject(ctx context.Context, p model.StoredProject) (string, error) {
	doc := model.ProjectDocument{
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		TargetAmount:  p.TargetAmount,
		APY:           p.APY,
		RiskLevel:     p.RiskLevel,
		Duration:      p.Duration,
		MinInvestment: p.MinInvestment,
		TeamSize:      p.TeamSize,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
	res, err := s.pin(ctx, doc, "project-"+p.Name, map[string]string{"type": "scf-project"})
	if err != nil {
		return "", err
	}
	return res.IpfsHash, nil
}

func (s *IPFSService) pin(ctx context.Context, data any, name string, keyvalues map[string]string) (model.PinResponse, error) {
	if !s.limiter.Allow() {
		return model.PinResponse{}, fmt.Errorf("%w: pin rate limit reached", common.ErrRateLimited)
	}

	res, err := s.pinata.PinJSON(ctx, data, name, keyvalues)
	s.metrics.IPFSPin(err == nil)
	if err != nil {
		s.log.Warnw("Pin failed", "name", name, "error", err)
		return model.PinResponse{}, err
	}
	s.log.Infow("Document pinned", "name", name, "hash", res.IpfsHash, "size", res.PinSize)
	return model.PinResponse{
		IpfsHash:  res.IpfsHash,
		PinSize:   res.PinSize,
		Timestamp: res.Timestamp,
		URL:       s.pinata.GatewayURL(res.IpfsHash),
	}, nil
}

// Fetch reads a pinned JSON document from the gateway.
func (s *IPFSService) Fetch(ctx context.Context, hash string) (json.RawMessage, error) {
	return s.pinata.Fetch(ctx, hash)
}

// Pins lists the pinned documents.
func (s *IPFSService) Pins(ctx context.Context) ([]client.Pin, error) {
	return s.pinata.ListPins(ctx)
}
