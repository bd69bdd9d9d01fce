package location

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/Ayupanchal18/Renters-sub007/internal/common/errors"
	commonhttp "github.com/Ayupanchal18/Renters-sub007/internal/common/http"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
)

// PositionProvider determines the caller's current coordinates. Failures
// must carry one of the coded geolocation errors so callers can distinguish
// denied access, unavailable position, and timeouts.
type PositionProvider interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// IPPositionProvider estimates position from the caller's IP address using
// an ip-api style lookup service.
type IPPositionProvider struct {
	baseURL string
	client  *commonhttp.Client
}

func NewIPPositionProvider(baseURL string, timeout time.Duration) *IPPositionProvider {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &IPPositionProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  commonhttp.NewClient(timeout),
	}
}

func (p *IPPositionProvider) CurrentPosition(ctx context.Context) (Position, error) {
	var resp struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	err := p.client.GetJSON(ctx, p.baseURL+"/json", &resp)
	if err != nil {
		return Position{}, classifyPositionError(err)
	}
	if resp.Status == "fail" {
		return Position{}, apperrors.NewGeoPositionUnavailableError(resp.Message)
	}
	return Position{
		Coordinates: Coordinates{Lat: resp.Lat, Lng: resp.Lon},
		// IP geolocation is city-level at best.
		Accuracy: 25000,
	}, nil
}

func classifyPositionError(err error) error {
	var statusErr *commonhttp.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.NewGeoPermissionDeniedError(statusErr.Error())
		default:
			return apperrors.NewGeoPositionUnavailableError(statusErr.Error())
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewGeoTimeoutError(err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewGeoTimeoutError(err.Error())
	}

	return apperrors.NewGeoUnknownError(err)
}

// Service combines position detection with the reverse-geocoding chain to
// answer "where am I" with a place name, never raw coordinates.
type Service struct {
	positions PositionProvider
	resolver  *Resolver
	logger    logger.Logger
}

func NewService(positions PositionProvider, resolver *Resolver, log logger.Logger) *Service {
	return &Service{
		positions: positions,
		resolver:  resolver,
		logger:    log.WithFields(map[string]interface{}{"component": "location-service"}),
	}
}

func (s *Service) CurrentLocation(ctx context.Context) (Location, error) {
	pos, err := s.positions.CurrentPosition(ctx)
	if err != nil {
		return Location{}, err
	}

	s.logger.Debug("position acquired", map[string]interface{}{
		"accuracy_m": fmt.Sprintf("%.0f", pos.Accuracy),
	})

	return s.resolver.Resolve(ctx, pos.Coordinates)
}
