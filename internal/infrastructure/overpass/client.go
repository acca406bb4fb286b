package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/funmap-service/internal/config"
	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	endpoints  []string
	userAgent  string
	maxDataLag time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewOverpassClient создает новый клиент для Overpass API.
// Эндпоинты опрашиваются по порядку: побеждает первый, который вернул
// успешный и достаточно свежий ответ.
func NewOverpassClient(cfg *config.OverpassConfig, logger *zap.Logger) repository.OverpassRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		endpoints:  cfg.Endpoints,
		userAgent:  cfg.UserAgent,
		maxDataLag: cfg.MaxDataLag,
		logger:     logger,
		now:        time.Now,
	}
}

// Execute отправляет текст запроса на эндпоинты с фолбэком.
// Удалённые ошибки не интерпретируются и не ретраятся здесь: политика
// повторных раундов принадлежит воркеру.
func (c *client) Execute(ctx context.Context, query string) (*domain.OverpassResult, string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, "", fmt.Errorf("query text cannot be empty")
	}

	form := url.Values{"data": {query}}.Encode()

	var lastErr error
	var lastEndpoint string

	for _, endpoint := range c.endpoints {
		c.logger.Debug("Trying Overpass endpoint", zap.String("endpoint", endpoint))

		result, err := c.fetch(ctx, endpoint, form)
		if err != nil {
			c.logger.Warn("Overpass endpoint failed",
				zap.String("endpoint", endpoint),
				zap.Error(err))
			lastErr = err
			lastEndpoint = endpoint
			if ctx.Err() != nil {
				return nil, endpoint, ctx.Err()
			}
			continue
		}

		if !c.isFresh(result) {
			c.logger.Warn("Overpass data too stale, trying next endpoint",
				zap.String("endpoint", endpoint),
				zap.String("timestamp_osm_base", result.OSM3S.TimestampOSMBase))
			lastErr = fmt.Errorf("endpoint %s: data older than %s", endpoint, c.maxDataLag)
			lastEndpoint = endpoint
			continue
		}

		c.logger.Info("Overpass query succeeded",
			zap.String("endpoint", endpoint),
			zap.Int("elements", len(result.Elements)))
		return result, endpoint, nil
	}

	return nil, lastEndpoint, fmt.Errorf("all overpass endpoints failed, last error: %w", lastErr)
}

func (c *client) fetch(ctx context.Context, endpoint, form string) (*domain.OverpassResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("overpass API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result domain.OverpassResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Remark сигнализирует об ошибке внутри успешного HTTP ответа,
	// например об истечении серверного таймаута
	if result.Remark != "" && len(result.Elements) == 0 {
		return nil, fmt.Errorf("overpass remark: %s", result.Remark)
	}

	return &result, nil
}

// isFresh проверяет osm3s.timestamp_osm_base против допустимого отставания.
// Отсутствующий или нечитаемый таймстемп не валит запрос.
func (c *client) isFresh(result *domain.OverpassResult) bool {
	ts := result.OSM3S.TimestampOSMBase
	if ts == "" {
		return true
	}

	dataTime, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return true
	}

	return c.now().Sub(dataTime) <= c.maxDataLag
}
