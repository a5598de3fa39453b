package rest

import "subscription-service/internal/core/domain"

// SubscriptionPriceResponse - строка ответа getsubscribes
type SubscriptionPriceResponse struct {
	Link  string `json:"link"`
	Price string `json:"price"`
}

// SubscriptionResponse - строка ответа getallsubscribes
type SubscriptionResponse struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Link  string  `json:"link"`
	Price *string `json:"price"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toSubscriptionPriceResponses(items []domain.SubscriptionPrice) []SubscriptionPriceResponse {
	resp := make([]SubscriptionPriceResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, SubscriptionPriceResponse{Link: it.Link, Price: it.Price})
	}
	return resp
}

func toSubscriptionResponses(items []domain.Subscription) []SubscriptionResponse {
	resp := make([]SubscriptionResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, SubscriptionResponse{
			ID:    it.ID,
			Email: it.Email,
			Link:  it.Link,
			Price: it.Price,
		})
	}
	return resp
}
