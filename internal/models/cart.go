package models

type CartLineItem struct {
	CartItemID     string                `json:"cartItemId"`
	DishID         string                `json:"dishId"`
	DishName       string                `json:"dishName"`
	BasePrice      float64               `json:"basePrice"`
	FinalPrice     float64               `json:"finalPrice"`
	RestaurantID   string                `json:"restaurantId"`
	RestaurantName string                `json:"restaurantName"`
	Customizations []CustomizationRecord `json:"customizations"`
}
