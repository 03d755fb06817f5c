package store

import "github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"

// Reduce は純粋関数。既知のアクションでは新しい *State を返し、
// 未知のアクションでは受け取った s をそのまま返す。
// s 自体と s が持つスライスは変更しない。
func Reduce(s *State, a Action) *State {
	switch act := a.(type) {
	case SetUser:
		next := *s
		if act.User != nil {
			u := *act.User
			next.User = &u
		} else {
			next.User = nil
		}
		return &next

	case SetProducts:
		next := *s
		next.Products = cloneSlice(act.Products)
		return &next

	case AddToCart:
		next := *s
		cart := make([]model.CartItem, 0, len(s.Cart)+1)
		found := false
		for _, it := range s.Cart {
			if it.Product.ID == act.Product.ID {
				it.Quantity++
				found = true
			}
			cart = append(cart, it)
		}
		if !found {
			cart = append(cart, model.CartItem{Product: act.Product, Quantity: 1})
		}
		next.Cart = cart
		return &next

	case RemoveFromCart:
		next := *s
		next.Cart = filterCart(s.Cart, func(it model.CartItem) bool {
			return it.Product.ID != act.ProductID
		})
		return &next

	case UpdateCartQuantity:
		next := *s
		cart := make([]model.CartItem, 0, len(s.Cart))
		for _, it := range s.Cart {
			if it.Product.ID == act.ProductID {
				it.Quantity = act.Quantity
			}
			// 0以下は行ごと削除
			if it.Quantity > 0 {
				cart = append(cart, it)
			}
		}
		next.Cart = cart
		return &next

	case ClearCart:
		next := *s
		next.Cart = []model.CartItem{}
		return &next

	case AddOrder:
		next := *s
		next.Orders = appendClone(s.Orders, act.Order)
		next.Cart = []model.CartItem{}
		return &next

	case UpdateProduct:
		next := *s
		products := make([]model.Product, len(s.Products))
		for i, p := range s.Products {
			if p.ID == act.Product.ID {
				p = act.Product
			}
			products[i] = p
		}
		next.Products = products
		return &next

	case AddProduct:
		next := *s
		next.Products = appendClone(s.Products, act.Product)
		return &next

	case SponsorFarmer:
		next := *s
		farmers := make([]model.Farmer, len(s.Farmers))
		for i, f := range s.Farmers {
			if f.ID == act.FarmerID {
				f.Sponsored = true
			}
			farmers[i] = f
		}
		next.Farmers = farmers
		return &next

	case ToggleDarkMode:
		next := *s
		next.IsDarkMode = !s.IsDarkMode
		return &next

	case SetLanguage:
		next := *s
		next.CurrentLanguage = act.Language
		return &next

	case ToggleChat:
		next := *s
		next.IsChatOpen = !s.IsChatOpen
		return &next

	case ToggleCheckout:
		next := *s
		next.ShowCheckout = !s.ShowCheckout
		return &next

	case SetFarmers:
		next := *s
		next.Farmers = cloneSlice(act.Farmers)
		return &next

	case SetNGOs:
		next := *s
		next.NGOs = cloneSlice(act.NGOs)
		return &next

	case SetMarketTrends:
		next := *s
		next.MarketTrends = cloneSlice(act.Trends)
		return &next

	case SetNewsArticles:
		next := *s
		next.NewsArticles = cloneSlice(act.Articles)
		return &next

	case Notify:
		next := *s
		next.Notifications = appendClone(s.Notifications, act.Notification)
		return &next

	// 消すものが無ければ同じ state を返す
	case DismissNotification:
		kept := filterNotifications(s.Notifications, func(n model.Notification) bool {
			return n.ID != act.ID
		})
		if len(kept) == len(s.Notifications) {
			return s
		}
		next := *s
		next.Notifications = kept
		return &next

	case ExpireNotifications:
		kept := filterNotifications(s.Notifications, func(n model.Notification) bool {
			return !n.Expired(act.Now)
		})
		if len(kept) == len(s.Notifications) {
			return s
		}
		next := *s
		next.Notifications = kept
		return &next

	default:
		return s
	}
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func appendClone[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

func filterCart(in []model.CartItem, keep func(model.CartItem) bool) []model.CartItem {
	out := make([]model.CartItem, 0, len(in))
	for _, it := range in {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func filterNotifications(in []model.Notification, keep func(model.Notification) bool) []model.Notification {
	out := make([]model.Notification, 0, len(in))
	for _, n := range in {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}
