package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePackageRequest struct {
	Title      string   `json:"title"`
	Duration   string   `json:"duration"`
	Limit      int      `json:"limit"`
	PriceCents int64    `json:"price_cents"`
	Features   []string `json:"features"`
}

type UpdatePackageRequest struct {
	Limit      *int      `json:"limit"`
	PriceCents *int64    `json:"price_cents"`
	Features   *[]string `json:"features"`
}

type SubscribeRequest struct {
	PackageID string `json:"package_id"`
}

type PackageView struct {
	PackageID  string   `json:"package_id"`
	Title      string   `json:"title"`
	Duration   string   `json:"duration"`
	Limit      int      `json:"limit"`
	PriceCents int64    `json:"price_cents"`
	Features   []string `json:"features,omitempty"`
}

type SubscriptionView struct {
	SubscriptionID     string `json:"subscription_id"`
	UserID             string `json:"user_id"`
	PackageID          string `json:"package_id"`
	Status             string `json:"status"`
	CurrentPeriodStart string `json:"current_period_start"`
	CurrentPeriodEnd   string `json:"current_period_end"`
}

type AccountView struct {
	UserID     string `json:"user_id"`
	Subscribed bool   `json:"subscribed"`
	Title      string `json:"title,omitempty"`
}

type PackageResponse struct {
	Package PackageView `json:"package"`
}

type ListPackagesResponse struct {
	Packages []PackageView `json:"packages"`
}

type SubscriptionResponse struct {
	Subscription SubscriptionView `json:"subscription"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionView `json:"subscriptions"`
}

type AccountResponse struct {
	Account AccountView `json:"account"`
}
