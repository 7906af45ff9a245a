// Package api содержит HTTP-адаптер удаленного API платформы.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"sporttars/internal/client/app/dto"
	"sporttars/internal/client/config"
	"sporttars/internal/client/domain/entities"
	portsapi "sporttars/internal/client/ports/api"
	"sporttars/pkg/logger"
)

// Пути эндпоинтов платформы.
const (
	loginPath             = "/api/v1/login"
	addUserPath           = "/api/v1/addUser"
	createEventPath       = "/api/v1/createEsemeny"
	eventsPath            = "/api/v1/getEsemenyek"
	eventsWithDetailsPath = "/api/v1/events-with-details"
)

// headerRequestID - заголовок корреляции исходящих запросов.
const headerRequestID = "X-Request-ID"

// Константы для логирования.
const (
	LogClientLogin       = "api client: login"
	LogClientRegister    = "api client: register"
	LogClientCreateEvent = "api client: create event"
	LogClientEvents      = "api client: events by location and sport"
	LogClientDetails     = "api client: events with details"

	ErrorRequestFailed  = "request could not be delivered"
	ErrorServerRejected = "server rejected the request"

	errCtxEncodingBody    = "encoding request body"
	errCtxBuildingRequest = "building request"
	errCtxSendingRequest  = "sending request"
	errCtxReadingBody     = "reading response body"
	errCtxDecodingBody    = "decoding response body"
	errCtxWritingPart     = "writing multipart field"
)

// Client — HTTP-клиент платформы.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создает клиента API по конфигурации.
func NewClient(cfg *config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// Компилируемая проверка соответствия порту.
var _ portsapi.Client = (*Client)(nil)

// Login выполняет вход пользователя.
func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogClientLogin)

	var resp dto.LoginResponse
	if err := c.postJSON(ctx, loginPath, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register создает нового пользователя.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogClientRegister)

	return c.postJSON(ctx, addUserPath, "", req, nil)
}

// CreateEvent отправляет multipart-запрос создания события с токеном владельца.
func (c *Client) CreateEvent(ctx context.Context, token string, req *dto.CreateEventRequest, image *dto.ImageAttachment) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogClientCreateEvent)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	parts := []struct {
		name  string
		value string
	}{
		{dto.PartLocationID, strconv.FormatInt(req.LocationID, 10)},
		{dto.PartSportID, strconv.FormatInt(req.SportID, 10)},
		{dto.PartStartTime, req.StartTime.Format(time.RFC3339)},
		{dto.PartEndTime, req.EndTime.Format(time.RFC3339)},
		{dto.PartSkillLevel, req.SkillLevel},
		{dto.PartMinimumAge, strconv.Itoa(req.MinimumAge)},
		{dto.PartMaximumAge, strconv.Itoa(req.MaximumAge)},
	}
	for _, part := range parts {
		if err := writer.WriteField(part.name, part.value); err != nil {
			return fmt.Errorf("%s %q: %w", errCtxWritingPart, part.name, err)
		}
	}

	if image != nil {
		filePart, err := writer.CreateFormFile(dto.PartImageFile, image.Name)
		if err != nil {
			return fmt.Errorf("%s %q: %w", errCtxWritingPart, dto.PartImageFile, err)
		}
		if _, err := io.Copy(filePart, image.Reader); err != nil {
			return fmt.Errorf("%s %q: %w", errCtxWritingPart, dto.PartImageFile, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("%s: %w", errCtxEncodingBody, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+createEventPath, &body)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildingRequest, err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+token)

	return c.do(ctx, httpReq, nil)
}

// EventsByLocationAndSport возвращает события, отобранные сервером по
// площадке и спорту (серверная стадия фильтрации).
func (c *Client) EventsByLocationAndSport(ctx context.Context, location, sport string) ([]entities.ListingItem, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogClientEvents, zap.String("location", location), zap.String("sport", sport))

	path := eventsPath + "/" + location + "/" + sport
	return c.getEvents(ctx, path)
}

// EventsWithDetails возвращает все события, разрешая относительные ссылки на
// изображения против адреса API.
func (c *Client) EventsWithDetails(ctx context.Context) ([]entities.ListingItem, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogClientDetails)

	return c.getEvents(ctx, eventsWithDetailsPath)
}

func (c *Client) getEvents(ctx context.Context, path string) ([]entities.ListingItem, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxBuildingRequest, err)
	}

	var resp dto.EventsResponse
	if err := c.do(ctx, httpReq, &resp); err != nil {
		return nil, err
	}

	items := make([]entities.ListingItem, 0, len(resp.Events))
	for _, event := range resp.Events {
		items = append(items, c.toListingItem(event))
	}
	return items, nil
}

// toListingItem переводит карточку из ответа сервера в доменную сущность.
func (c *Client) toListingItem(event dto.ListingItem) entities.ListingItem {
	return entities.ListingItem{
		ID:           event.ID,
		Location:     event.Location,
		Sport:        event.Sport,
		StartTime:    parseTime(event.StartTime),
		EndTime:      parseTime(event.EndTime),
		Capacity:     event.Capacity,
		Occupied:     event.Occupied,
		Covered:      event.Covered,
		ChangingRoom: event.ChangingRoom,
		Parking:      event.Parking,
		Price:        event.Price,
		MinimumAge:   event.MinimumAge,
		MaximumAge:   event.MaximumAge,
		Description:  event.Description,
		ImageURL:     c.resolveImageURL(event.ImageURL),
	}
}

// resolveImageURL разрешает относительную ссылку против адреса API.
func (c *Client) resolveImageURL(imageURL string) string {
	if imageURL == "" || strings.HasPrefix(imageURL, "http://") || strings.HasPrefix(imageURL, "https://") {
		return imageURL
	}
	return c.baseURL + "/" + strings.TrimLeft(imageURL, "/")
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// postJSON отправляет JSON-запрос; ответ при необходимости декодируется в out.
func (c *Client) postJSON(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncodingBody, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildingRequest, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(ctx, httpReq, out)
}

// do выполняет запрос и разбирает ответ по таксономии ошибок: ошибка сети
// оборачивает ErrConnectivity, неуспешный статус дает APIError с текстом
// из тела или запасным сообщением.
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	log := logger.Log(ctx)

	if id, ok := logger.GetRequestID(ctx); ok {
		req.Header.Set(headerRequestID, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Отмененный вызов - не сетевая ошибка: компонент ушел со страницы.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Error(ctx, ErrorRequestFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSendingRequest, ErrConnectivity)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, ErrorRequestFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxReadingBody, ErrConnectivity)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := c.apiError(resp.StatusCode, data)
		log.Warn(ctx, ErrorServerRejected,
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: %w", errCtxDecodingBody, err)
		}
	}
	return nil
}

// apiError строит APIError из статуса и тела ответа.
func (c *Client) apiError(status int, body []byte) *APIError {
	message := FallbackServerMessage
	var errResp dto.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		message = errResp.Message
	}
	return &APIError{StatusCode: status, Message: message}
}
