// errors стандартизирует ответы об ошибках HTTP-слоя CMS.
// На вход принимает ошибку сервисного слоя, на выход даёт:
//   - HTTP-статус;
//   - короткий стабильный code для фронта;
//   - msg для показа пользователю без утечки деталей.
//
// Источник истинности по маппингу: ошибки пакета internal/service.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-lawfirm-cms/internal/service"
)

// Сообщения по умолчанию. Фронтенд показывает msg как есть.
const (
	MsgUnauthenticated    = "Acesso Bloqueado!"
	MsgInvalidToken       = "Token inválido"
	MsgInvalidCredentials = "Usuário ou senha inválidos"
	MsgInvalidID          = "ID inválido"
	MsgNotFound           = "Artigo não encontrado"
	MsgValidation         = "Dados inválidos"
	MsgInternal           = "Erro interno do servidor"
)

// ErrorResponse — единый формат ошибки для фронта.
// Code — машиночитаемый код, Msg — человекочитаемое сообщение,
// RequestID — из X-Request-Id, если есть.
type ErrorResponse struct {
	Msg       string `json:"msg"`
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и тело ответа.
//
// Поведение:
//   - err == nil — программная ошибка вызова: 500/internal,
//     чтобы не отправить "200 OK" с телом ошибки;
//   - *service.ValidationError — 422 с сообщением и полем из ошибки;
//   - прочие ошибки маппятся через errors.Is, неизвестные — 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	var ve *service.ValidationError

	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrorResponse{Code: "internal", Msg: MsgInternal}
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ErrorResponse{Code: "validation", Msg: ve.Msg, Field: ve.Field}
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity, ErrorResponse{Code: "validation", Msg: MsgValidation}
	case errors.Is(err, service.ErrInvalidID):
		return http.StatusBadRequest, ErrorResponse{Code: "invalid_id", Msg: MsgInvalidID}
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		return http.StatusBadRequest, ErrorResponse{Code: "invalid_token", Msg: MsgInvalidToken}
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorResponse{Code: "unauthenticated", Msg: MsgUnauthenticated}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Code: "not_found", Msg: MsgNotFound}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusNotFound, ErrorResponse{Code: "invalid_credentials", Msg: MsgInvalidCredentials}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: "internal", Msg: MsgInternal}
	}
}

// WriteError — хелпер для HTTP-хендлеров и middleware.
// Пишет статус и тело, добавляет request_id из заголовка запроса.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
