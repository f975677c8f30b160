package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/paulocell/paulocell-api/internal/application/dto"
	"github.com/paulocell/paulocell-api/internal/domain"
)

// RemoteStore implementa Store contra os endpoints /api/user-data da API remota.
// Usa net/http da stdlib com timeout; falha de rede e 5xx viram domain.ErrOffline
// para a camada offline-first acionar o fallback.
type RemoteStore struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

var _ Store = (*RemoteStore)(nil)

// NewRemoteStore constrói o store remoto.
func NewRemoteStore(baseURL, userID string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteStore{
		baseURL:    baseURL,
		userID:     userID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (r *RemoteStore) keyURL(store, key string) string {
	return fmt.Sprintf("%s/api/user-data/%s/%s/%s",
		r.baseURL, url.PathEscape(r.userID), url.PathEscape(store), url.PathEscape(key))
}

func (r *RemoteStore) storeURL(store string) string {
	return fmt.Sprintf("%s/api/user-data/%s/%s",
		r.baseURL, url.PathEscape(r.userID), url.PathEscape(store))
}

// Get busca o documento de uma chave; (nil, nil) se o servidor devolver 404.
func (r *RemoteStore) Get(ctx context.Context, store, key string) (*Record, error) {
	body, status, err := r.do(ctx, http.MethodGet, r.keyURL(store, key), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, remoteStatusError(status)
	}
	var resp dto.UserDataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decodificar resposta: %w", err)
	}
	return &Record{Key: key, Data: resp.Data}, nil
}

// Put grava o documento da chave e devolve o registro com o carimbo do servidor.
func (r *RemoteStore) Put(ctx context.Context, store, key string, data json.RawMessage) (*Record, error) {
	payload, err := json.Marshal(dto.UpsertUserDataRequest{Data: data})
	if err != nil {
		return nil, fmt.Errorf("montar corpo: %w", err)
	}
	body, status, err := r.do(ctx, http.MethodPut, r.keyURL(store, key), payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, remoteStatusError(status)
	}
	var resp dto.UpsertUserDataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decodificar resposta: %w", err)
	}
	return &Record{Key: key, Data: data, UpdatedAt: resp.UpdatedAt}, nil
}

// Delete remove a chave; domain.ErrNotFound se o servidor devolver 404.
func (r *RemoteStore) Delete(ctx context.Context, store, key string) error {
	_, status, err := r.do(ctx, http.MethodDelete, r.keyURL(store, key), nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if status != http.StatusOK {
		return remoteStatusError(status)
	}
	return nil
}

// List busca todos os registros da store.
func (r *RemoteStore) List(ctx context.Context, store string) ([]Record, error) {
	body, status, err := r.do(ctx, http.MethodGet, r.storeURL(store), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, remoteStatusError(status)
	}
	var resp dto.ListUserDataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decodificar resposta: %w", err)
	}
	records := make([]Record, 0, len(resp.Data))
	for _, entry := range resp.Data {
		records = append(records, Record{Key: entry.Key, Data: entry.Data, UpdatedAt: entry.UpdatedAt})
	}
	return records, nil
}

// Sync envia o lote de mutações pendentes para o endpoint de reconciliação.
func (r *RemoteStore) Sync(ctx context.Context, changes []dto.SyncChange) (*dto.SyncResponse, error) {
	payload, err := json.Marshal(dto.SyncRequest{Changes: changes})
	if err != nil {
		return nil, fmt.Errorf("montar corpo: %w", err)
	}
	u := fmt.Sprintf("%s/api/user-data/%s/sync", r.baseURL, url.PathEscape(r.userID))
	body, status, err := r.do(ctx, http.MethodPost, u, payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, remoteStatusError(status)
	}
	var resp dto.SyncResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decodificar resposta: %w", err)
	}
	return &resp, nil
}

// do executa a chamada e devolve corpo e status. Falha de transporte vira ErrOffline.
func (r *RemoteStore) do(ctx context.Context, method, url string, payload []byte) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("montar requisição: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrOffline, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("ler resposta: %w", err)
	}
	return body, resp.StatusCode, nil
}

// remoteStatusError traduz status não-2xx: 5xx conta como indisponibilidade
// (aciona fallback), 400 vira entrada inválida.
func remoteStatusError(status int) error {
	switch {
	case status >= 500:
		return fmt.Errorf("%w: HTTP %d", domain.ErrOffline, status)
	case status == http.StatusBadRequest:
		return domain.ErrInvalidInput
	case status == http.StatusConflict:
		return domain.ErrConflict
	}
	return fmt.Errorf("resposta inesperada da API: HTTP %d", status)
}
