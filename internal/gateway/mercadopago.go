package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"food-marketplace/pkg/circuitbreaker"
	"food-marketplace/pkg/tracing"
	"food-marketplace/pkg/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const preferencesPath = "/checkout/preferences"

type mercadoPagoGateway struct {
	baseURL     string
	accessToken string
	client      *http.Client
	breaker     *circuitbreaker.CircuitBreaker
	log         *zap.Logger
}

// NewMercadoPagoGateway builds the HTTP gateway. Calls go through breaker and are bounded
// by config.Timeout.
func NewMercadoPagoGateway(config utils.PaymentConfig, breaker *circuitbreaker.CircuitBreaker, log *zap.Logger) Gateway {
	return &mercadoPagoGateway{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		accessToken: config.AccessToken,
		client:      &http.Client{Timeout: config.Timeout},
		breaker:     breaker,
		log:         log.With(zap.String("gateway", "mercadopago")),
	}
}

func (g *mercadoPagoGateway) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	ctx, span := tracing.Tracer().Start(ctx, "gateway.CreatePreference")
	defer span.End()
	span.SetAttributes(attribute.String("order.external_reference", req.ExternalReference))

	var pref *Preference
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		pref, err = g.createPreference(ctx, req)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	g.log.Info("Preference created",
		zap.String("preference_id", pref.ID),
		zap.String("external_reference", req.ExternalReference),
	)
	return pref, nil
}

func (g *mercadoPagoGateway) createPreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode preference: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+preferencesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build preference request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var pref Preference
	if err := json.Unmarshal(raw, &pref); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if pref.ID == "" {
		return nil, fmt.Errorf("payment gateway returned no preference id")
	}

	return &pref, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
