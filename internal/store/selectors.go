package store

import (
	"time"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

// CartTotal は毎回カートから計算する（キャッシュしない）
func CartTotal(s *State) float64 {
	var total float64
	for _, it := range s.Cart {
		total += it.Subtotal()
	}
	return total
}

func CartCount(s *State) int {
	n := 0
	for _, it := range s.Cart {
		n += it.Quantity
	}
	return n
}

func ActiveNotifications(s *State, now time.Time) []model.Notification {
	out := make([]model.Notification, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		if !n.Expired(now) {
			out = append(out, n)
		}
	}
	return out
}

func FindProduct(s *State, id string) (model.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func IsLoggedIn(s *State) bool {
	return s.User != nil
}
