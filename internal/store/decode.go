package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// クライアントから直接送れないアクション（ゲートウェイ経由でのみ発行する）
var ErrActionNotAllowed = errors.New("action not allowed from client")

// DecodeClientAction は POST /state/actions の {type, payload} をアクションに変換する。
// UI系のアクションのみ受け付け、未知の type は Unknown として返す。
func DecodeClientAction(typ string, payload json.RawMessage) (Action, error) {
	switch ActionType(typ) {
	case TypeToggleDarkMode:
		return ToggleDarkMode{}, nil
	case TypeToggleChat:
		return ToggleChat{}, nil
	case TypeToggleCheckout:
		return ToggleCheckout{}, nil
	case TypeSetLanguage:
		var p struct {
			Language string `json:"language"`
		}
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return SetLanguage{Language: p.Language}, nil
	case TypeDismissNotification:
		var p struct {
			ID string `json:"id"`
		}
		if err := decodePayload(payload, &p); err != nil {
			return nil, err
		}
		return DismissNotification{ID: p.ID}, nil
	case TypeSetUser, TypeSetProducts, TypeAddToCart, TypeRemoveFromCart,
		TypeUpdateCartQuantity, TypeClearCart, TypeAddOrder, TypeUpdateProduct,
		TypeAddProduct, TypeSponsorFarmer, TypeSetFarmers, TypeSetNGOs,
		TypeSetMarketTrends, TypeSetNewsArticles, TypeNotify, TypeExpireNotifications:
		return nil, fmt.Errorf("%s: %w", typ, ErrActionNotAllowed)
	default:
		return Unknown{Name: typ}, nil
	}
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return errors.New("payload is required")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
