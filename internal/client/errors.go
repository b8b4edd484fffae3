package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorKind 把各种失败归一成固定几类，调用方按类处理即可。
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"    // 请求没有到达服务端
	KindValidation ErrorKind = "validation" // 4xx 参数/业务校验失败
	KindAuth       ErrorKind = "auth"       // 401/403
	KindNotFound   ErrorKind = "not_found"  // 404
	KindServer     ErrorKind = "server"     // 5xx
)

// APIError 客户端对外抛出的唯一错误类型：{kind, message}。
type APIError struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int // 0 表示网络层失败
}

func (e *APIError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// kindFor 按 HTTP 状态码归类。
func kindFor(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// normalize 把非 2xx 响应体转成 APIError。服务端的错误信息优先
// 原样透出（error/message/msg 任一键），解析不了再退回状态码文案。
func normalize(status int, body []byte) *APIError {
	msg := ""
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		case payload.Msg != "":
			msg = payload.Msg
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", status)
		}
	}
	return &APIError{Kind: kindFor(status), Message: msg, HTTPStatus: status}
}

// netError 包装传输层失败（连接拒绝、超时等）。
func netError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: err.Error()}
}

// validationError 客户端本地校验失败，不发请求。
func validationError(format string, args ...any) *APIError {
	return &APIError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
