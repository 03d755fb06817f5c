package usecase

import "time"

// 画面に出す固定メッセージ
const (
	MsgLoginToAddToCart    = "Please login to add items to cart"
	MsgOnlyConsumersCart   = "Only consumers can add items to cart"
	MsgLoginToPurchase     = "Please login to purchase items"
	MsgOnlyConsumersBuy    = "Only consumers can purchase items"
	MsgLoginToOrder        = "Please log in to place an order"
	MsgOrderConfirmed      = "Order Confirmed!"
	MsgOrderFailed         = "Order failed. Please try again."
	MsgLoginToAddProducts  = "Please log in to add products"
	MsgProductAdded        = "Product Added Successfully!"
	MsgProductAddFailed    = "Failed to add product. Please try again."
	MsgLoginToSponsor      = "Please login to sponsor a farm"
	MsgFarmSponsored       = "Farm Sponsored!"
	MsgLoggedOut           = "Logged out successfully!"
	MsgWelcomeBack         = "Welcome back"
	MsgWelcome             = "Welcome to KisanConnect"
	MsgProfileUpdated      = "Profile updated successfully!"
	MsgProfileUpdateFailed = "Failed to update profile"

	MsgInvalidCredentials = "Invalid email or password. Please check your credentials."
	MsgEmailTaken         = "This email is already registered. Please sign in instead."
	MsgPasswordTooShort   = "Password should be at least 6 characters long."
	MsgInvalidEmail       = "Please enter a valid email address."
	MsgAuthFailed         = "Authentication failed. Please try again."
	MsgNotConfigured      = "Database not configured. Please set up backend credentials."
)

// 通知の表示時間
const (
	ttlShort  = 2 * time.Second
	ttlNormal = 3 * time.Second
	ttlAuth   = 4 * time.Second
	ttlLong   = 5 * time.Second
)
