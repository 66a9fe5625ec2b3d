package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"food-marketplace/internal/data/entity"
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/dto/request"
	"food-marketplace/internal/dto/response"
	"food-marketplace/pkg/apperror"

	"go.uber.org/zap"
)

const (
	DefaultHeartbeatWindow = 2 * time.Minute
	heartbeatTimeLayout    = "2006-01-02 15:04:05"
)

type AvailabilityService interface {
	ListAvailability(ctx context.Context) ([]response.EstablishmentAvailabilityResponse, error)
	Heartbeat(ctx context.Context, req *request.HeartbeatRequest) (*response.HeartbeatResponse, error)
}

type availabilityService struct {
	establishments repository.EstablishmentRepository
	window         time.Duration
	now            func() time.Time
	log            *zap.Logger
}

func NewAvailabilityService(establishments repository.EstablishmentRepository, window time.Duration, log *zap.Logger) AvailabilityService {
	if window <= 0 {
		window = DefaultHeartbeatWindow
	}
	return &availabilityService{
		establishments: establishments,
		window:         window,
		now:            time.Now,
		log:            log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) ListAvailability(ctx context.Context) ([]response.EstablishmentAvailabilityResponse, error) {
	rows, err := s.establishments.ListAvailability(ctx, s.window)
	if err != nil {
		s.log.Error("Failed to list establishment availability", zap.Error(err))
		return nil, apperror.Store("failed to list establishments", err)
	}

	out := make([]response.EstablishmentAvailabilityResponse, len(rows))
	for i, row := range rows {
		status := Classify(row)
		out[i] = response.EstablishmentAvailabilityResponse{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Phone:         row.Phone,
			ProductCount:  row.ProductCount,
			MinPrice:      row.MinPrice,
			MaxPrice:      row.MaxPrice,
			AvgPrice:      math.Round(row.AvgPrice*100) / 100,
			LastHeartbeat: row.LastHeartbeat,
			Status:        string(status),
			StatusText:    StatusText(status, row),
		}
	}

	return out, nil
}

// Classify derives the live status of one establishment. Zero active products always wins
// over a fresh heartbeat.
func Classify(row *entity.EstablishmentAvailability) entity.AvailabilityStatus {
	if row.ProductCount == 0 {
		return entity.StatusNoProducts
	}
	if row.LastHeartbeat != nil && row.HeartbeatFresh {
		return entity.StatusAvailable
	}
	return entity.StatusUnavailable
}

// StatusText is the display line shown next to the establishment in discovery listings.
func StatusText(status entity.AvailabilityStatus, row *entity.EstablishmentAvailability) string {
	switch status {
	case entity.StatusAvailable:
		return fmt.Sprintf("%d productos • $%s - $%s",
			row.ProductCount, formatPesos(row.MinPrice), formatPesos(row.MaxPrice))
	case entity.StatusNoProducts:
		return "Sin productos disponibles"
	default:
		return "No disponible en este momento"
	}
}

// formatPesos renders v without decimals and with '.' as thousands separator.
func formatPesos(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

func (s *availabilityService) Heartbeat(ctx context.Context, req *request.HeartbeatRequest) (*response.HeartbeatResponse, error) {
	if req.EstablishmentID <= 0 {
		return nil, apperror.Validation("establishmentId debe ser un entero positivo")
	}

	if req.Offline {
		if err := s.establishments.DeleteHeartbeat(ctx, req.EstablishmentID); err != nil {
			return nil, apperror.Store("failed to clear heartbeat", err)
		}

		s.log.Info("Establishment went offline", zap.Int64("establishment_id", req.EstablishmentID))
		return &response.HeartbeatResponse{
			Success:   true,
			Message:   "Establecimiento marcado como offline",
			Timestamp: s.now().Format(heartbeatTimeLayout),
		}, nil
	}

	at, err := s.establishments.UpsertHeartbeat(ctx, req.EstablishmentID)
	if err != nil {
		return nil, apperror.Store("failed to register heartbeat", err)
	}

	s.log.Debug("Heartbeat registered", zap.Int64("establishment_id", req.EstablishmentID))
	return &response.HeartbeatResponse{
		Success:   true,
		Message:   "Heartbeat registrado",
		Timestamp: at.Format(heartbeatTimeLayout),
	}, nil
}
