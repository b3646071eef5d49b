package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"campuseats/internal/domain/model"
)

// usecaseの失敗はHTTPステータスに対応させて返す。
// 404=対象なし / 403=他人の資源 / 400=入力不正 / 409=状態不正。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 状態不正。呼び出し側が反応できるよう現在ステータスをメッセージに含める。
func NewOrderStateError(current model.OrderStatus) error {
	return NewHTTPError(http.StatusConflict, "invalid order status: "+string(current))
}
